package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/saathi-app/saathi/pkg/domain/model"
)

func TestFactSetMerge(t *testing.T) {
	t.Run("merge into empty set is idempotent", func(t *testing.T) {
		delta := model.FactDelta{
			Set: map[string]model.FactValue{
				"identity": model.StringFact("student"),
			},
		}

		once := model.FactSet{}.Merge(delta)
		twice := once.Merge(delta)

		gt.Bool(t, once.Equal(model.FactSet{"identity": model.StringFact("student")})).True()
		gt.Bool(t, twice.Equal(once)).True()
	})

	t.Run("overlapping key is overwritten", func(t *testing.T) {
		existing := model.FactSet{"neet_score": model.NumberFact(650)}
		merged := existing.Merge(model.FactDelta{
			Set: map[string]model.FactValue{
				"neet_score": model.NumberFact(700),
			},
		})

		gt.Value(t, merged["neet_score"]).Equal(model.NumberFact(700))
		// Receiver untouched.
		gt.Value(t, existing["neet_score"]).Equal(model.NumberFact(650))
	})

	t.Run("removal drops the key", func(t *testing.T) {
		existing := model.FactSet{
			"identity":   model.StringFact("medical student"),
			"neet_score": model.NumberFact(650),
		}
		merged := existing.Merge(model.FactDelta{Remove: []string{"neet_score"}})

		gt.Number(t, len(merged)).Equal(1)
		_, ok := merged["neet_score"]
		gt.Bool(t, ok).False()
	})

	t.Run("empty delta is a no-op", func(t *testing.T) {
		existing := model.FactSet{"identity": model.StringFact("athlete")}
		gt.Bool(t, existing.Merge(model.FactDelta{}).Equal(existing)).True()
	})
}

func TestParseFactDelta(t *testing.T) {
	t.Run("string, number and bool values", func(t *testing.T) {
		delta, err := model.ParseFactDelta([]byte(`{"identity":"medical student","neet_score":650,"retaking":true}`))
		gt.NoError(t, err).Required()

		gt.Value(t, delta.Set["identity"]).Equal(model.StringFact("medical student"))
		gt.Value(t, delta.Set["neet_score"]).Equal(model.NumberFact(650))
		gt.Value(t, delta.Set["retaking"]).Equal(model.BoolFact(true))
		gt.Array(t, delta.Remove).Length(0)
	})

	t.Run("null value requests removal", func(t *testing.T) {
		delta, err := model.ParseFactDelta([]byte(`{"neet_score":null}`))
		gt.NoError(t, err).Required()

		gt.Number(t, len(delta.Set)).Equal(0)
		gt.Array(t, delta.Remove).Equal([]string{"neet_score"})
	})

	t.Run("nested object is rejected", func(t *testing.T) {
		_, err := model.ParseFactDelta([]byte(`{"scores":{"neet":650}}`))
		gt.Value(t, err).NotNil()
	})

	t.Run("array value is rejected", func(t *testing.T) {
		_, err := model.ParseFactDelta([]byte(`{"subjects":["physics","biology"]}`))
		gt.Value(t, err).NotNil()
	})

	t.Run("non-object payload is rejected", func(t *testing.T) {
		_, err := model.ParseFactDelta([]byte(`"NO_UPDATE"`))
		gt.Value(t, err).NotNil()
	})

	t.Run("rejection is all-or-nothing", func(t *testing.T) {
		_, err := model.ParseFactDelta([]byte(`{"identity":"student","bad":{}}`))
		gt.Value(t, err).NotNil()
	})
}

func TestFactSetJSON(t *testing.T) {
	t.Run("deterministic key order", func(t *testing.T) {
		s := model.FactSet{
			"b_goal":     model.StringFact("crack NEET"),
			"a_identity": model.StringFact("student"),
		}
		gt.Value(t, s.JSON()).Equal(`{"a_identity":"student","b_goal":"crack NEET"}`)
	})

	t.Run("number rendering has no exponent", func(t *testing.T) {
		s := model.FactSet{"neet_score": model.NumberFact(700)}
		gt.Value(t, s.JSON()).Equal(`{"neet_score":700}`)
		gt.Value(t, model.NumberFact(700).String()).Equal("700")
	})
}

func TestFactFromNative(t *testing.T) {
	t.Run("integer types normalize to number", func(t *testing.T) {
		v, err := model.FactFromNative(int64(42))
		gt.NoError(t, err).Required()
		gt.Value(t, v).Equal(model.NumberFact(42))
	})

	t.Run("map is rejected", func(t *testing.T) {
		_, err := model.FactFromNative(map[string]any{"k": "v"})
		gt.Value(t, err).NotNil()
	})
}
