package model

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
)

// FactKind is the value kind of a remembered fact. The set of kinds is
// deliberately closed: anything the LLM returns outside of it is rejected
// instead of being merged as an opaque structure.
type FactKind string

const (
	FactKindString FactKind = "string"
	FactKindNumber FactKind = "number"
	FactKindBool   FactKind = "bool"
)

// FactValue is a single remembered attribute value.
type FactValue struct {
	Kind FactKind
	Str  string
	Num  float64
	Bool bool
}

func StringFact(s string) FactValue {
	return FactValue{Kind: FactKindString, Str: s}
}

func NumberFact(n float64) FactValue {
	return FactValue{Kind: FactKindNumber, Num: n}
}

func BoolFact(b bool) FactValue {
	return FactValue{Kind: FactKindBool, Bool: b}
}

// Native returns the value as a plain Go type (string, float64 or bool),
// suitable for document stores and JSON encoding.
func (v FactValue) Native() any {
	switch v.Kind {
	case FactKindNumber:
		return v.Num
	case FactKindBool:
		return v.Bool
	default:
		return v.Str
	}
}

// FactFromNative converts a dynamically-typed value into a FactValue.
// Recognized shapes are string, bool, float64 and the integer types document
// stores hand back. Everything else is rejected.
func FactFromNative(value any) (FactValue, error) {
	switch t := value.(type) {
	case string:
		return StringFact(t), nil
	case bool:
		return BoolFact(t), nil
	case float64:
		return NumberFact(t), nil
	case float32:
		return NumberFact(float64(t)), nil
	case int:
		return NumberFact(float64(t)), nil
	case int64:
		return NumberFact(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return FactValue{}, goerr.Wrap(err, "invalid numeric fact", goerr.V("value", t.String()))
		}
		return NumberFact(f), nil
	default:
		return FactValue{}, goerr.New("unsupported fact value shape", goerr.V("value", value))
	}
}

func (v FactValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Native())
}

func (v *FactValue) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return goerr.Wrap(err, "invalid fact value")
	}

	parsed, err := FactFromNative(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// String renders the value for prompt embedding.
func (v FactValue) String() string {
	switch v.Kind {
	case FactKindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case FactKindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

// FactSet is the per-user mapping of remembered personal attributes used to
// personalize replies. Keys are free-form (identity, goals, scores, ...).
type FactSet map[string]FactValue

// Clone returns a shallow copy. FactValue is a value type, so a shallow copy
// is a full copy.
func (s FactSet) Clone() FactSet {
	out := make(FactSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Equal reports whether two fact sets hold the same keys and values.
func (s FactSet) Equal(other FactSet) bool {
	if len(s) != len(other) {
		return false
	}
	for k, v := range s {
		if other[k] != v {
			return false
		}
	}
	return true
}

// Merge applies a delta and returns the resulting set. The receiver is not
// modified. Overlapping keys are overwritten (last write wins) and removed
// keys are dropped; applying the same delta twice yields the same set.
func (s FactSet) Merge(delta FactDelta) FactSet {
	out := s.Clone()
	for k, v := range delta.Set {
		out[k] = v
	}
	for _, k := range delta.Remove {
		delete(out, k)
	}
	return out
}

// JSON serializes the set for prompt embedding. encoding/json sorts map keys,
// so the output is deterministic for a given set.
func (s FactSet) JSON() string {
	data, err := json.Marshal(s)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// Keys returns the fact keys in sorted order.
func (s FactSet) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FactDelta is the outcome of a memory extraction: keys to set and keys to
// remove. A nil/empty delta means the message carried nothing to remember.
type FactDelta struct {
	Set    map[string]FactValue
	Remove []string
}

// Empty reports whether applying the delta would be a no-op.
func (d FactDelta) Empty() bool {
	return len(d.Set) == 0 && len(d.Remove) == 0
}

// ParseFactDelta decodes an LLM-returned JSON object into a delta. A JSON
// null value requests removal of the key; string, number and bool values are
// set. Arrays and nested objects are rejected as a whole so a malformed
// response never partially merges.
func ParseFactDelta(data []byte) (FactDelta, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return FactDelta{}, goerr.Wrap(err, "fact delta is not a JSON object")
	}

	delta := FactDelta{Set: make(map[string]FactValue)}
	for key, value := range raw {
		if value == nil {
			delta.Remove = append(delta.Remove, key)
			continue
		}

		fv, err := FactFromNative(value)
		if err != nil {
			return FactDelta{}, goerr.Wrap(err, "fact delta has unsupported value", goerr.V("key", key))
		}
		delta.Set[key] = fv
	}

	sort.Strings(delta.Remove)
	return delta, nil
}
