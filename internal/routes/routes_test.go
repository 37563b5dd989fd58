package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/brainbox/internal/app"
	"github.com/templui/brainbox/internal/config"
	"github.com/templui/brainbox/internal/db/dbtest"
	"github.com/templui/brainbox/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
}

func testConfig() *config.Config {
	return &config.Config{
		AppName:         "Brainbox",
		AppEnv:          "development",
		AppURL:          "http://localhost:8090",
		CORSOrigin:      "http://localhost:5173",
		JWTSecret:       "test-secret-that-is-long-enough-for-hs256",
		BcryptCost:      bcrypt.MinCost,
		S3PresignExpiry: time.Hour,
	}
}

func newTestServer(t *testing.T, cfg *config.Config, exportStorage storage.Storage) *testServer {
	t.Helper()

	a := app.Wire(cfg, dbtest.Open(t), exportStorage)
	return &testServer{t: t, handler: SetupRoutes(a)}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("token", token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) signup(email, password, displayName string) {
	s.t.Helper()

	rec := s.do(http.MethodPost, "/api/v1/signup", "", map[string]string{
		"email":       email,
		"password":    password,
		"displayName": displayName,
	})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
}

func (s *testServer) signin(email, password string) string {
	s.t.Helper()

	rec := s.do(http.MethodPost, "/api/v1/signin", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decode(s.t, rec, &resp)
	require.NotEmpty(s.t, resp.Token)
	return resp.Token
}

func (s *testServer) login(email string) string {
	s.t.Helper()

	s.signup(email, "Abcdef1!", "Alice")
	return s.signin(email, "Abcdef1!")
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

type errorBody struct {
	Message string `json:"message"`
	Errors  []struct {
		Field string `json:"field"`
		Rule  string `json:"rule"`
	} `json:"errors"`
}

func TestShareScenario(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	s.signup("a@x.com", "Abcdef1!", "Alice")
	token := s.signin("a@x.com", "Abcdef1!")

	rec := s.do(http.MethodPost, "/api/v1/content", token, map[string]string{
		"title":   "T",
		"kind":    "note",
		"locator": "hello",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/share", token, map[string]bool{"share": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var enabled struct {
		Hash string `json:"hash"`
	}
	decode(t, rec, &enabled)
	require.NotEmpty(t, enabled.Hash)

	rec = s.do(http.MethodGet, "/api/v1/share/"+enabled.Hash, "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var view struct {
		DisplayName string `json:"displayName"`
		Items       []struct {
			Title   string `json:"title"`
			Kind    string `json:"kind"`
			Locator string `json:"locator"`
			HTML    string `json:"html"`
		} `json:"items"`
	}
	decode(t, rec, &view)
	assert.Equal(t, "Alice", view.DisplayName)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "T", view.Items[0].Title)
	assert.Equal(t, "note", view.Items[0].Kind)
	assert.Equal(t, "hello", view.Items[0].Locator)
	assert.Contains(t, view.Items[0].HTML, "hello")

	rec = s.do(http.MethodPost, "/api/v1/share", token, map[string]bool{"share": false})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"message"`)

	rec = s.do(http.MethodGet, "/api/v1/share/"+enabled.Hash, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSignup(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	rec := s.do(http.MethodPost, "/api/v1/signup", "", map[string]string{
		"email":       "a@x.com",
		"password":    "Abcdef1!",
		"displayName": "Alice",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	t.Run("duplicate email in any casing", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/api/v1/signup", "", map[string]string{
			"email":       "A@X.com",
			"password":    "Abcdef1!",
			"displayName": "Bob",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("every violation is reported", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/api/v1/signup", "", map[string]string{
			"email":       "b@x.com",
			"password":    "abcdefgh",
			"displayName": "Bob",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var body errorBody
		decode(t, rec, &body)
		var rules []string
		for _, v := range body.Errors {
			assert.Equal(t, "password", v.Field)
			rules = append(rules, v.Rule)
		}
		assert.ElementsMatch(t, []string{"uppercase", "digit", "symbol"}, rules)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/signup", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSignin(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)
	s.signup("a@x.com", "Abcdef1!", "Alice")

	rec := s.do(http.MethodPost, "/api/v1/signin", "", map[string]string{"email": "b@x.com", "password": "Abcdef1!"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/signin", "", map[string]string{"email": "a@x.com", "password": "Abcdef1?"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := s.signin("A@x.com", "Abcdef1!")

	rec = s.do(http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me map[string]any
	decode(t, rec, &me)
	assert.Equal(t, "a@x.com", me["email"])
	assert.Equal(t, "Alice", me["displayName"])
	assert.NotContains(t, me, "passwordHash")
	assert.NotContains(t, rec.Body.String(), "$2a$")
}

func TestAuthGate(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	rec := s.do(http.MethodGet, "/api/v1/content", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/content", "not-a-token", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	token := s.login("a@x.com")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/content", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitedAuth(t *testing.T) {
	cfg := testConfig()
	cfg.AuthRateLimit = 2
	cfg.AuthRateWindow = time.Minute
	s := newTestServer(t, cfg, nil)

	body := map[string]string{"email": "a@x.com", "password": "Abcdef1!"}
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/api/v1/signin", "", body).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/api/v1/signin", "", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, s.do(http.MethodPost, "/api/v1/signin", "", body).Code)
}

func TestContent(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)
	owner := s.login("a@x.com")
	intruder := s.login("b@x.com")

	rec := s.do(http.MethodPost, "/api/v1/content", owner, map[string]string{
		"title":   "Talk",
		"kind":    "youtube",
		"locator": "https://youtube.com/watch?v=1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	decode(t, rec, &created)

	t.Run("invalid item", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/api/v1/content", owner, map[string]string{
			"title":   "",
			"kind":    "podcast",
			"locator": "",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		var body errorBody
		decode(t, rec, &body)
		assert.Len(t, body.Errors, 3)
	})

	t.Run("list is owner scoped", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/v1/content", owner, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var list struct {
			Content []struct {
				ID string `json:"id"`
			} `json:"content"`
		}
		decode(t, rec, &list)
		require.Len(t, list.Content, 1)
		assert.Equal(t, created.ID, list.Content[0].ID)

		rec = s.do(http.MethodGet, "/api/v1/content", intruder, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"content":[]}`, rec.Body.String())

		rec = s.do(http.MethodGet, "/api/v1/content?kind=note", owner, nil)
		assert.JSONEq(t, `{"content":[]}`, rec.Body.String())

		rec = s.do(http.MethodGet, "/api/v1/content?kind=podcast", owner, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("foreign delete looks like missing", func(t *testing.T) {
		foreign := s.do(http.MethodDelete, "/api/v1/content/"+created.ID, intruder, nil)
		missing := s.do(http.MethodDelete, "/api/v1/content/does-not-exist", intruder, nil)

		assert.Equal(t, http.StatusNotFound, foreign.Code)
		assert.Equal(t, missing.Code, foreign.Code)
		assert.Equal(t, missing.Body.String(), foreign.Body.String())
	})

	t.Run("owner delete", func(t *testing.T) {
		rec := s.do(http.MethodDelete, "/api/v1/content/"+created.ID, owner, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"deletedId":"`+created.ID+`"}`, rec.Body.String())

		rec = s.do(http.MethodDelete, "/api/v1/content/"+created.ID, owner, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestShareToggle(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)
	token := s.login("a@x.com")

	rec := s.do(http.MethodGet, "/api/v1/share", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"active":false}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/share", token, map[string]bool{"share": false})
	assert.Equal(t, http.StatusNotFound, rec.Code, "disable without a link")

	rec = s.do(http.MethodPost, "/api/v1/share", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	first := s.do(http.MethodPost, "/api/v1/share", token, map[string]bool{"share": true})
	second := s.do(http.MethodPost, "/api/v1/share", token, map[string]bool{"share": true})
	require.Equal(t, http.StatusOK, first.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	var enabled struct {
		Hash string `json:"hash"`
	}
	decode(t, first, &enabled)

	rec = s.do(http.MethodGet, "/api/v1/share", token, nil)
	assert.JSONEq(t, `{"active":true,"hash":"`+enabled.Hash+`"}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/share", "", map[string]bool{"share": true})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestResolveUnknownAndDisabledMatch(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)
	token := s.login("a@x.com")

	rec := s.do(http.MethodPost, "/api/v1/share", token, map[string]bool{"share": true})
	var enabled struct {
		Hash string `json:"hash"`
	}
	decode(t, rec, &enabled)
	s.do(http.MethodPost, "/api/v1/share", token, map[string]bool{"share": false})

	disabled := s.do(http.MethodGet, "/api/v1/share/"+enabled.Hash, "", nil)
	unknown := s.do(http.MethodGet, "/api/v1/share/never-issued", "", nil)

	assert.Equal(t, http.StatusNotFound, disabled.Code)
	assert.Equal(t, unknown.Code, disabled.Code)
	assert.Equal(t, unknown.Body.String(), disabled.Body.String())
}

func TestUpdateMe(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)
	token := s.login("a@x.com")

	rec := s.do(http.MethodPatch, "/api/v1/me", token, map[string]string{"displayName": "Bob"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"displayName":"Bob"`)

	rec = s.do(http.MethodPatch, "/api/v1/me", token, map[string]string{"displayName": "A much too long name"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type fakeStorage struct {
	keys []string
}

func (f *fakeStorage) Save(_ context.Context, key, _ string, _ io.Reader) error {
	f.keys = append(f.keys, key)
	return nil
}

func (f *fakeStorage) Delete(context.Context, string) error { return nil }

func (f *fakeStorage) PresignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.example.com/" + key, nil
}

func TestExport(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		s := newTestServer(t, testConfig(), nil)
		token := s.login("a@x.com")

		rec := s.do(http.MethodPost, "/api/v1/content/export", token, nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("configured", func(t *testing.T) {
		store := &fakeStorage{}
		s := newTestServer(t, testConfig(), store)
		token := s.login("a@x.com")

		rec := s.do(http.MethodPost, "/api/v1/content/export", token, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp struct {
			URL string `json:"url"`
		}
		decode(t, rec, &resp)
		require.Len(t, store.keys, 1)
		assert.Equal(t, "https://storage.example.com/"+store.keys[0], resp.URL)
	})
}

func TestSystemRoutes(t *testing.T) {
	cfg := testConfig()
	s := newTestServer(t, cfg, nil)

	rec := s.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/v1/config", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), cfg.JWTSecret)
	assert.Contains(t, rec.Body.String(), `"appName":"Brainbox"`)

	rec = s.do(http.MethodGet, "/api/v1/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestPreflight(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/share", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "token, content-type")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
