package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	server "github.com/saathi-app/saathi/pkg/controller/http"
	"github.com/saathi-app/saathi/pkg/domain/model"
	"github.com/saathi-app/saathi/pkg/domain/types"
	"github.com/saathi-app/saathi/pkg/repository/memory"
	"github.com/saathi-app/saathi/pkg/service/genai"
	"github.com/saathi-app/saathi/pkg/usecase"
)

type scriptedGenAI struct {
	mu    sync.Mutex
	queue []func(genai.Request) (string, error)
}

func (m *scriptedGenAI) Generate(_ context.Context, req genai.Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return "NO_UPDATE", nil
	}
	fn := m.queue[0]
	m.queue = m.queue[1:]
	return fn(req)
}

func respond(text string) func(genai.Request) (string, error) {
	return func(genai.Request) (string, error) { return text, nil }
}

func fail(err error) func(genai.Request) (string, error) {
	return func(genai.Request) (string, error) { return "", err }
}

type fixture struct {
	server *server.Server
	repo   *memory.Repository
	mock   *scriptedGenAI
}

func newFixture(t *testing.T, opts ...usecase.Option) *fixture {
	t.Helper()
	repo := memory.New()
	mock := &scriptedGenAI{}
	uc, err := usecase.New(repo, mock, opts...)
	gt.NoError(t, err).Required()
	return &fixture{
		server: server.New(uc),
		repo:   repo,
		mock:   mock,
	}
}

func (f *fixture) do(t *testing.T, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		gt.NoError(t, err).Required()
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

// signup registers a user and returns the session cookies.
func (f *fixture) signup(t *testing.T, email string) []*http.Cookie {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"email":    email,
		"password": "correct-horse-battery",
		"name":     "Asha",
	}, nil)
	gt.Number(t, rec.Code).Equal(http.StatusOK)

	cookies := rec.Result().Cookies()
	gt.A(t, cookies).Length(2)
	return cookies
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out)).Required()
	return out
}

func TestChatEndpoint(t *testing.T) {
	t.Run("success with breathing exercise", func(t *testing.T) {
		f := newFixture(t)
		cookies := f.signup(t, "asha@example.com")
		f.mock.queue = []func(genai.Request) (string, error){
			respond("NO_UPDATE"),
			respond("Let's breathe together. [BREATHING_EXERCISE]"),
		}

		rec := f.do(t, http.MethodPost, "/api/chat", map[string]any{
			"message": "I'm so stressed",
		}, cookies)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		body := decodeBody[map[string]any](t, rec)
		gt.Value(t, body["response"]).Equal("Let's breathe together.")
		gt.Value(t, body["success"]).Equal(true)
		gt.Value(t, body["showBreathingExercise"]).Equal(true)
	})

	t.Run("missing message is a 400", func(t *testing.T) {
		f := newFixture(t)
		cookies := f.signup(t, "asha@example.com")

		rec := f.do(t, http.MethodPost, "/api/chat", map[string]any{}, cookies)
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)

		body := decodeBody[map[string]string](t, rec)
		gt.Value(t, body["error"]).Equal("Message is required")
	})

	t.Run("whitespace-only message is a 400", func(t *testing.T) {
		f := newFixture(t)
		cookies := f.signup(t, "asha@example.com")

		rec := f.do(t, http.MethodPost, "/api/chat", map[string]any{
			"message": "   ",
		}, cookies)
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)

		body := decodeBody[map[string]string](t, rec)
		gt.Value(t, body["error"]).Equal("Message is required")
	})

	t.Run("no session is a 401", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(t, http.MethodPost, "/api/chat", map[string]any{
			"message": "hello",
		}, nil)
		gt.Number(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("composer failure is a 500 with a generic body", func(t *testing.T) {
		f := newFixture(t)
		cookies := f.signup(t, "asha@example.com")
		f.mock.queue = []func(genai.Request) (string, error){
			respond("NO_UPDATE"),
			fail(errors.New("model unavailable")),
		}

		rec := f.do(t, http.MethodPost, "/api/chat", map[string]any{
			"message": "hello",
		}, cookies)
		gt.Number(t, rec.Code).Equal(http.StatusInternalServerError)

		body := decodeBody[map[string]string](t, rec)
		gt.Value(t, body["error"]).Equal("Failed to process message")
	})

	t.Run("history returns persisted turns", func(t *testing.T) {
		f := newFixture(t)
		cookies := f.signup(t, "asha@example.com")
		f.mock.queue = []func(genai.Request) (string, error){
			respond("NO_UPDATE"),
			respond("Hi!"),
		}

		rec := f.do(t, http.MethodPost, "/api/chat", map[string]any{
			"message": "hello",
		}, cookies)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		rec = f.do(t, http.MethodGet, "/api/chat/history?limit=10", nil, cookies)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		body := decodeBody[map[string][]map[string]any](t, rec)
		gt.A(t, body["messages"]).Length(2)
	})
}

func TestMoodEndpoint(t *testing.T) {
	f := newFixture(t)
	cookies := f.signup(t, "asha@example.com")

	t.Run("create and list", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/mood", map[string]any{
			"score":    7,
			"label":    "happy",
			"notes":    "slept well",
			"triggers": []string{"Sleep"},
		}, cookies)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		created := decodeBody[map[string]any](t, rec)
		id, ok := created["id"].(string)
		gt.Bool(t, ok).True()
		gt.String(t, id).NotEqual("")

		rec = f.do(t, http.MethodGet, "/api/mood", nil, cookies)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		body := decodeBody[map[string][]map[string]any](t, rec)
		gt.A(t, body["entries"]).Length(1)
	})

	t.Run("invalid score is a 400", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/mood", map[string]any{
			"score": 42,
		}, cookies)
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestDashboardEndpoint(t *testing.T) {
	f := newFixture(t)
	cookies := f.signup(t, "asha@example.com")

	rec := f.do(t, http.MethodPost, "/api/mood", map[string]any{
		"score": 8, "label": "happy",
	}, cookies)
	gt.Number(t, rec.Code).Equal(http.StatusOK)

	rec = f.do(t, http.MethodGet, "/api/dashboard", nil, cookies)
	gt.Number(t, rec.Code).Equal(http.StatusOK)

	body := decodeBody[map[string]any](t, rec)
	gt.Value(t, body["moodCount"]).Equal(float64(1))
	gt.Value(t, body["moodAverage"]).Equal(float64(8))
	gt.Value(t, body["moodTrend"]).Equal("stable")
}

func TestAuthEndpoints(t *testing.T) {
	t.Run("signup then me", func(t *testing.T) {
		f := newFixture(t)
		cookies := f.signup(t, "asha@example.com")

		rec := f.do(t, http.MethodGet, "/api/auth/me", nil, cookies)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		body := decodeBody[map[string]string](t, rec)
		gt.Value(t, body["email"]).Equal("asha@example.com")
	})

	t.Run("login with wrong password is a 401", func(t *testing.T) {
		f := newFixture(t)
		f.signup(t, "asha@example.com")

		rec := f.do(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "asha@example.com",
			"password": "wrong-password-123",
		}, nil)
		gt.Number(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("duplicate signup is a 409", func(t *testing.T) {
		f := newFixture(t)
		f.signup(t, "asha@example.com")

		rec := f.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
			"email":    "asha@example.com",
			"password": "correct-horse-battery",
			"name":     "Asha",
		}, nil)
		gt.Number(t, rec.Code).Equal(http.StatusConflict)
	})

	t.Run("logout clears the session", func(t *testing.T) {
		f := newFixture(t)
		cookies := f.signup(t, "asha@example.com")

		rec := f.do(t, http.MethodPost, "/api/auth/logout", nil, cookies)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		rec = f.do(t, http.MethodGet, "/api/auth/me", nil, cookies)
		gt.Number(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("no-auth mode serves a fixed user", func(t *testing.T) {
		f := newFixture(t, usecase.WithAuth(usecase.NewNoAuthnUseCase()))

		rec := f.do(t, http.MethodGet, "/api/auth/me", nil, nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		body := decodeBody[map[string]string](t, rec)
		gt.Value(t, body["sub"]).Equal("anonymous")

		rec = f.do(t, http.MethodGet, "/api/dashboard", nil, nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)
	})
}

func TestAccountEndpoints(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, f *fixture, cookies []*http.Cookie) types.UserID {
		t.Helper()
		rec := f.do(t, http.MethodGet, "/api/auth/me", nil, cookies)
		body := decodeBody[map[string]string](t, rec)
		userID := types.UserID(body["sub"])

		_, err := f.repo.Message().Create(ctx, model.NewUserTurn(userID, "hello"))
		gt.NoError(t, err).Required()
		gt.NoError(t, f.repo.Fact().Put(ctx, userID, model.FactSet{
			"identity": model.StringFact("student"),
		})).Required()
		return userID
	}

	t.Run("export includes everything", func(t *testing.T) {
		f := newFixture(t)
		cookies := f.signup(t, "asha@example.com")
		seed(t, f, cookies)

		rec := f.do(t, http.MethodGet, "/api/account/export", nil, cookies)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		body := decodeBody[map[string]any](t, rec)
		policy, ok := body["dataPolicy"].(string)
		gt.Bool(t, ok).True()
		gt.String(t, policy).NotEqual("")
		facts := body["facts"].(map[string]any)
		gt.Value(t, facts["identity"]).Equal("student")
	})

	t.Run("clear chat removes turns only", func(t *testing.T) {
		f := newFixture(t)
		cookies := f.signup(t, "asha@example.com")
		userID := seed(t, f, cookies)

		rec := f.do(t, http.MethodPost, "/api/account/clear-chat", nil, cookies)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		msgs, err := f.repo.Message().ListAll(ctx, userID)
		gt.NoError(t, err).Required()
		gt.A(t, msgs).Length(0)

		facts, err := f.repo.Fact().Get(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Number(t, len(facts)).Equal(1)
	})

	t.Run("clear memory removes facts only", func(t *testing.T) {
		f := newFixture(t)
		cookies := f.signup(t, "asha@example.com")
		userID := seed(t, f, cookies)

		rec := f.do(t, http.MethodPost, "/api/account/clear-memory", nil, cookies)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		facts, err := f.repo.Fact().Get(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Number(t, len(facts)).Equal(0)
	})

	t.Run("delete removes the profile and session", func(t *testing.T) {
		f := newFixture(t)
		cookies := f.signup(t, "asha@example.com")
		userID := seed(t, f, cookies)

		rec := f.do(t, http.MethodDelete, "/api/account", nil, cookies)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		_, err := f.repo.Profile().Get(ctx, userID)
		gt.Error(t, err)

		rec = f.do(t, http.MethodGet, "/api/auth/me", nil, cookies)
		gt.Number(t, rec.Code).Equal(http.StatusUnauthorized)
	})
}
