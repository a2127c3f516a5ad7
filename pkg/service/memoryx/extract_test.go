package memoryx_test

import (
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/saathi-app/saathi/pkg/domain/model"
	"github.com/saathi-app/saathi/pkg/service/genai"
	"github.com/saathi-app/saathi/pkg/service/memoryx"
)

type mockGenAI struct {
	response string
	err      error
	lastReq  genai.Request
}

func (m *mockGenAI) Generate(_ context.Context, req genai.Request) (string, error) {
	m.lastReq = req
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func TestExtract(t *testing.T) {
	ctx := context.Background()

	t.Run("json object becomes a delta", func(t *testing.T) {
		mock := &mockGenAI{response: `{"identity": "medical student", "neet_score": 650}`}
		x, err := memoryx.New(mock)
		gt.NoError(t, err).Required()

		delta, err := x.Extract(ctx, "I am a medical student and scored 650 in NEET", nil)
		gt.NoError(t, err).Required()
		gt.Number(t, len(delta.Set)).Equal(2)
		gt.Value(t, delta.Set["identity"]).Equal(model.StringFact("medical student"))
		gt.Value(t, delta.Set["neet_score"]).Equal(model.NumberFact(650))
	})

	t.Run("no update sentinel yields empty delta", func(t *testing.T) {
		mock := &mockGenAI{response: "NO_UPDATE"}
		x, err := memoryx.New(mock)
		gt.NoError(t, err).Required()

		delta, err := x.Extract(ctx, "How are you?", nil)
		gt.NoError(t, err).Required()
		gt.Bool(t, delta.Empty()).True()
	})

	t.Run("chatty non-json response yields empty delta", func(t *testing.T) {
		mock := &mockGenAI{response: "Sure! Here are the facts I found: identity=student"}
		x, err := memoryx.New(mock)
		gt.NoError(t, err).Required()

		delta, err := x.Extract(ctx, "I'm a student", nil)
		gt.NoError(t, err).Required()
		gt.Bool(t, delta.Empty()).True()
	})

	t.Run("surrounding whitespace is tolerated", func(t *testing.T) {
		mock := &mockGenAI{response: "\n  {\"goal\": \"crack JEE\"}  \n"}
		x, err := memoryx.New(mock)
		gt.NoError(t, err).Required()

		delta, err := x.Extract(ctx, "my goal is to crack JEE", nil)
		gt.NoError(t, err).Required()
		gt.Value(t, delta.Set["goal"]).Equal(model.StringFact("crack JEE"))
	})

	t.Run("null values become removals", func(t *testing.T) {
		mock := &mockGenAI{response: `{"neet_score": null}`}
		x, err := memoryx.New(mock)
		gt.NoError(t, err).Required()

		delta, err := x.Extract(ctx, "forget my score", model.FactSet{
			"neet_score": model.NumberFact(650),
		})
		gt.NoError(t, err).Required()
		gt.A(t, delta.Remove).Length(1)
		gt.Value(t, delta.Remove[0]).Equal("neet_score")
	})

	t.Run("malformed json-like response is an error", func(t *testing.T) {
		mock := &mockGenAI{response: `{"identity": }`}
		x, err := memoryx.New(mock)
		gt.NoError(t, err).Required()

		_, err = x.Extract(ctx, "hello", nil)
		gt.Error(t, err)
	})

	t.Run("existing facts appear in the prompt", func(t *testing.T) {
		mock := &mockGenAI{response: "NO_UPDATE"}
		x, err := memoryx.New(mock)
		gt.NoError(t, err).Required()

		_, err = x.Extract(ctx, "hello", model.FactSet{
			"identity": model.StringFact("topper"),
		})
		gt.NoError(t, err).Required()
		gt.Bool(t, strings.Contains(mock.lastReq.Prompt, `"identity":"topper"`)).True()
	})

	t.Run("request carries extraction limits", func(t *testing.T) {
		mock := &mockGenAI{response: "NO_UPDATE"}
		x, err := memoryx.New(mock)
		gt.NoError(t, err).Required()

		_, err = x.Extract(ctx, "hello", nil)
		gt.NoError(t, err).Required()
		gt.Number(t, mock.lastReq.MaxTokens).Equal(100)
		gt.Number(t, mock.lastReq.Temperature).Equal(0.3)
	})

	t.Run("nil genai service is rejected", func(t *testing.T) {
		_, err := memoryx.New(nil)
		gt.Error(t, err)
	})
}
