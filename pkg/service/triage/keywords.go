package triage

// Keyword lists for distress detection. Matching is lowercase
// substring match over the raw message, so multi-word phrases and
// partial words both count ("pain" matches inside "painting").
// The stress tier folds general stress, sadness and avoidance
// language together; the crisis tier is matched on its own once an
// exercise has already been offered in the current conversation.

var stressKeywords = []string{
	"stressed",
	"stress",
	"anxious",
	"anxiety",
	"panic",
	"overwhelmed",
	"worried",
	"nervous",
	"scared",
	"afraid",
	"tense",
	"pressure",
	"breathe",
	"breathing",
	"calm down",
	"relax",
	"can't handle",
	"too much",
	"breaking down",
	"falling apart",
	"losing it",
	"freaking out",
	"heart racing",
	"chest tight",
	"hyperventilating",
	"shaking",
	"trembling",
}

var sadnessKeywords = []string{
	"sad",
	"depressed",
	"down",
	"low",
	"empty",
	"hopeless",
	"worthless",
	"alone",
	"lonely",
	"crying",
	"tears",
	"hurt",
	"pain",
	"broken",
	"lost",
	"numb",
	"dark",
	"heavy",
}

var avoidanceKeywords = []string{
	"avoid",
	"avoiding",
	"can't face",
	"hiding",
	"running away",
	"escape",
	"don't want to",
	"procrastinating",
	"putting off",
	"scared to",
	"afraid to",
	"too hard",
	"give up",
}

var crisisKeywords = []string{
	"suicidal",
	"kill myself",
	"end it all",
	"can't go on",
	"want to die",
	"self harm",
	"cut myself",
	"hurt myself",
	"panic attack",
	"can't breathe",
	"hyperventilating",
	"chest pain",
	"heart attack",
	"dying",
	"collapsing",
	"breakdown",
	"crisis",
	"emergency",
	"help me",
	"desperate",
}
