package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/quixlabs/lead-capture/internal/adapters/auth"
	"github.com/quixlabs/lead-capture/internal/adapters/history"
	"github.com/quixlabs/lead-capture/internal/core"
	"go.uber.org/zap"
)

type stubLLM struct {
	complete func(ctx context.Context, prompt string) ([]byte, error)
}

func (s *stubLLM) Complete(ctx context.Context, prompt string) ([]byte, error) {
	return s.complete(ctx, prompt)
}

type stubForwarder struct {
	forwarded chan core.Record
}

func (s *stubForwarder) Forward(ctx context.Context, record core.Record) {
	s.forwarded <- record
}

type testEnv struct {
	server    *httptest.Server
	forwarder *stubForwarder
}

func newTestEnv(t *testing.T, llm core.LLMClient, hist core.HistoryRepository) *testEnv {
	t.Helper()

	logger := zap.NewNop()
	forwarder := &stubForwarder{forwarded: make(chan core.Record, 4)}
	service := core.NewEnrichmentService(llm, forwarder, hist, logger)

	identity, err := auth.NewMemoryProvider([]string{"admin", "Steve"}, "admin123", logger)
	if err != nil {
		t.Fatalf("failed to seed identity provider: %v", err)
	}
	sessions := auth.NewSessionStore("test-secret", time.Hour, time.Hour, logger)
	t.Cleanup(sessions.Stop)

	ws := NewWebServer(service, identity, sessions, hist, logger, "127.0.0.1:0", true)
	server := httptest.NewServer(ws.handler())
	t.Cleanup(server.Close)

	return &testEnv{server: server, forwarder: forwarder}
}

// login runs the form login and returns the session cookie
func (e *testEnv) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	form := url.Values{"username": {username}, "password": {password}}
	resp, err := client.PostForm(e.server.URL+"/login", form)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("login status = %d, want 303", resp.StatusCode)
	}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookieName {
			return cookie
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func (e *testEnv) analyze(t *testing.T, cookie *http.Cookie, body string) (*http.Response, map[string]interface{}) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, e.server.URL+"/api/analyze-email", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp, decoded
}

const validEnvelope = `{"content": [{"text": "{\"company_domain\":\"acme.com\",\"linkedin_profile\":\"https://linkedin.com/company/acme\",\"cheat_sheet_bullets\":\"Goal: a|Goal: b\"}"}]}`

func TestAnalyzeRequiresSession(t *testing.T) {
	env := newTestEnv(t, &stubLLM{complete: func(ctx context.Context, prompt string) ([]byte, error) {
		t.Error("LLM must not be called without a session")
		return nil, errors.New("unexpected call")
	}}, nil)

	resp, body := env.analyze(t, nil, `{"email": "jane@acme.com"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
	if body["error"] != "Authentication required" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	env := newTestEnv(t, &stubLLM{complete: func(ctx context.Context, prompt string) ([]byte, error) {
		return []byte(validEnvelope), nil
	}}, nil)

	resp, err := http.PostForm(env.server.URL+"/login", url.Values{
		"username": {"admin"},
		"password": {"wrong"},
	})
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()

	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookieName {
			t.Error("session cookie issued for bad credentials")
		}
	}
}

func TestAnalyzeMissingEmail(t *testing.T) {
	env := newTestEnv(t, &stubLLM{complete: func(ctx context.Context, prompt string) ([]byte, error) {
		t.Error("LLM must not be called without an email")
		return nil, errors.New("unexpected call")
	}}, nil)
	cookie := env.login(t, "admin", "admin123")

	resp, body := env.analyze(t, cookie, `{"email": ""}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if body["error"] != "Email is required" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestAnalyzeProviderFailure(t *testing.T) {
	env := newTestEnv(t, &stubLLM{complete: func(ctx context.Context, prompt string) ([]byte, error) {
		return nil, &core.ProviderTransportError{StatusCode: 529, Details: "overloaded"}
	}}, nil)
	cookie := env.login(t, "admin", "admin123")

	resp, body := env.analyze(t, cookie, `{"email": "jane@acme.com"}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
	if body["error"] != "Failed to analyze email" {
		t.Errorf("error = %v", body["error"])
	}
	if got, ok := body["status_code"].(float64); !ok || int(got) != 529 {
		t.Errorf("status_code = %v, want provider's 529", body["status_code"])
	}
	if body["details"] != "overloaded" {
		t.Errorf("details = %v", body["details"])
	}
}

func TestAnalyzeMalformedCompletion(t *testing.T) {
	env := newTestEnv(t, &stubLLM{complete: func(ctx context.Context, prompt string) ([]byte, error) {
		return []byte(`{"content": [{"text": "not json"}]}`), nil
	}}, nil)
	cookie := env.login(t, "admin", "admin123")

	resp, body := env.analyze(t, cookie, `{"email": "jane@acme.com"}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
	if body["error"] != "Error parsing API response" {
		t.Errorf("error = %v", body["error"])
	}
	if _, present := body["raw_response"]; !present {
		t.Error("expected raw provider response for diagnosis")
	}

	select {
	case <-env.forwarder.forwarded:
		t.Error("webhook must not fire on parse failure")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestAnalyzeSuccess(t *testing.T) {
	env := newTestEnv(t, &stubLLM{complete: func(ctx context.Context, prompt string) ([]byte, error) {
		if !strings.Contains(prompt, "jane@acme.com") {
			t.Error("prompt does not embed the submitted email")
		}
		return []byte(validEnvelope), nil
	}}, nil)
	cookie := env.login(t, "Steve", "admin123")

	resp, body := env.analyze(t, cookie, `{"email": "jane@acme.com"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	want := map[string]string{
		"company_domain":      "acme.com",
		"linkedin_profile":    "https://linkedin.com/company/acme",
		"cheat_sheet_bullets": "Goal: a|Goal: b",
		"email":               "jane@acme.com",
		"requested_by":        "Steve",
	}
	for key, value := range want {
		if body[key] != value {
			t.Errorf("%s = %v, want %q", key, body[key], value)
		}
	}

	select {
	case record := <-env.forwarder.forwarded:
		if record.StringField("requested_by") != "Steve" {
			t.Error("webhook record missing merged metadata")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected one webhook delivery attempt")
	}
}

func TestHistoryEndpoint(t *testing.T) {
	hist := history.NewMemoryHistory(time.Hour, time.Hour, zap.NewNop())
	t.Cleanup(hist.Stop)

	env := newTestEnv(t, &stubLLM{complete: func(ctx context.Context, prompt string) ([]byte, error) {
		return []byte(validEnvelope), nil
	}}, hist)
	cookie := env.login(t, "admin", "admin123")

	if resp, _ := env.analyze(t, cookie, `{"email": "jane@acme.com"}`); resp.StatusCode != http.StatusOK {
		t.Fatalf("analyze status = %d", resp.StatusCode)
	}
	<-env.forwarder.forwarded

	req, _ := http.NewRequest(http.MethodGet, env.server.URL+"/api/history", nil)
	req.AddCookie(cookie)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("history request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("history status = %d, want 200", resp.StatusCode)
	}

	var decoded struct {
		History []map[string]interface{} `json:"history"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if len(decoded.History) != 1 {
		t.Fatalf("history entries = %d, want 1", len(decoded.History))
	}
	if decoded.History[0]["company_domain"] != "acme.com" {
		t.Errorf("history entry = %v", decoded.History[0])
	}
}

func TestHistoryDisabled(t *testing.T) {
	env := newTestEnv(t, &stubLLM{complete: func(ctx context.Context, prompt string) ([]byte, error) {
		return []byte(validEnvelope), nil
	}}, nil)
	cookie := env.login(t, "admin", "admin123")

	req, _ := http.NewRequest(http.MethodGet, env.server.URL+"/api/history", nil)
	req.AddCookie(cookie)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("history request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestIndexRedirectsWithoutSession(t *testing.T) {
	env := newTestEnv(t, &stubLLM{complete: func(ctx context.Context, prompt string) ([]byte, error) {
		return []byte(validEnvelope), nil
	}}, nil)

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Get(env.server.URL + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Errorf("location = %q, want /login", loc)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	env := newTestEnv(t, &stubLLM{complete: func(ctx context.Context, prompt string) ([]byte, error) {
		return []byte(validEnvelope), nil
	}}, nil)
	cookie := env.login(t, "admin", "admin123")

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	req, _ := http.NewRequest(http.MethodGet, env.server.URL+"/logout", nil)
	req.AddCookie(cookie)
	if resp, err := client.Do(req); err != nil {
		t.Fatalf("logout failed: %v", err)
	} else {
		resp.Body.Close()
	}

	resp, body := env.analyze(t, cookie, `{"email": "jane@acme.com"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status after logout = %d, want 401", resp.StatusCode)
	}
	if body["error"] != "Authentication required" {
		t.Errorf("error = %v", body["error"])
	}
}
