package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rvasek/mailbrief/internal/domain"
)

const testToken = "ya29.test-token-0123456789"

func TestFetchUnread(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/unread-emails" {
			t.Errorf("path = %q, want /api/unread-emails", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{
			"emails": []domain.Email{
				{ID: "m1", Subject: "Invoice due", Sender: "billing@corp.example", Priority: 8},
				{ID: "m2", Subject: "Weekly digest", Sender: "news@list.example", Priority: 2},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	emails, err := c.FetchUnread(context.Background(), testToken)
	if err != nil {
		t.Fatalf("FetchUnread() error: %v", err)
	}
	if gotAuth != "Bearer "+testToken {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if len(emails) != 2 {
		t.Fatalf("got %d emails, want 2", len(emails))
	}
	// Server response order is preserved.
	if emails[0].ID != "m1" || emails[1].ID != "m2" {
		t.Errorf("order = [%s %s], want [m1 m2]", emails[0].ID, emails[1].ID)
	}
}

func TestFetchUnread_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"emails": []domain.Email{}})
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	emails, err := c.FetchUnread(context.Background(), testToken)
	if err != nil {
		t.Fatalf("empty digest should not be an error, got: %v", err)
	}
	if len(emails) != 0 {
		t.Errorf("got %d emails, want 0", len(emails))
	}
}

func TestFetchUnread_ShortTokenSkipsNetwork(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	_, err := c.FetchUnread(context.Background(), "short")
	if !IsValidationError(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if requests != 0 {
		t.Errorf("server saw %d requests, want 0", requests)
	}
}

func TestFetchUnread_BackendErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid Authorization header"})
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	_, err := c.FetchUnread(context.Background(), testToken)
	if !IsBackendError(err) {
		t.Fatalf("err = %v, want BackendError", err)
	}
	if !strings.Contains(err.Error(), "Invalid Authorization header") {
		t.Errorf("error text %q should carry the backend message", err.Error())
	}
}

func TestFetchUnread_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway timeout</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	_, err := c.FetchUnread(context.Background(), testToken)
	if !IsNetworkError(err) {
		t.Fatalf("err = %v, want NetworkError", err)
	}
}

func TestFetchUnread_Non2xxWithoutPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	_, err := c.FetchUnread(context.Background(), testToken)
	if !IsNetworkError(err) {
		t.Fatalf("err = %v, want NetworkError", err)
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error text %q should mention the status code", err.Error())
	}
}

func TestMarkRead(t *testing.T) {
	var gotBody markReadRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/mark-read" {
			t.Errorf("got %s %s, want POST /api/mark-read", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	if err := c.MarkRead(context.Background(), testToken, "m42"); err != nil {
		t.Fatalf("MarkRead() error: %v", err)
	}
	if gotBody.EmailID != "m42" {
		t.Errorf("email_id = %q, want m42", gotBody.EmailID)
	}
}

func TestMarkRead_MissingID(t *testing.T) {
	c := New("http://127.0.0.1:0", 0)
	if err := c.MarkRead(context.Background(), testToken, ""); !IsValidationError(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestAsk(t *testing.T) {
	var gotReq askRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("ask-question should not carry an Authorization header")
		}
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]string{"answer": "Your top email is the invoice."})
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	digest := []domain.Email{{ID: "m1", Subject: "Invoice due", Priority: 8}}
	answer, err := c.Ask(context.Background(), "what matters most?", digest)
	if err != nil {
		t.Fatalf("Ask() error: %v", err)
	}
	if answer != "Your top email is the invoice." {
		t.Errorf("answer = %q", answer)
	}
	if gotReq.Question != "what matters most?" {
		t.Errorf("question = %q", gotReq.Question)
	}
	if len(gotReq.Emails) != 1 || gotReq.Emails[0].ID != "m1" {
		t.Errorf("request should carry the full digest context, got %+v", gotReq.Emails)
	}
}

func TestAsk_EmptyQuestion(t *testing.T) {
	c := New("http://127.0.0.1:0", 0)
	if _, err := c.Ask(context.Background(), "   \n", nil); !IsValidationError(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestAsk_BackendErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "missing API key"})
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	_, err := c.Ask(context.Background(), "anything urgent?", nil)
	if !IsBackendError(err) {
		t.Fatalf("err = %v, want BackendError", err)
	}
	if !strings.Contains(err.Error(), "missing API key") {
		t.Errorf("error text %q should carry the backend message", err.Error())
	}
}

func TestAsk_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	c := New(srv.URL, 0)
	_, err := c.Ask(context.Background(), "anything urgent?", nil)
	if !IsNetworkError(err) {
		t.Fatalf("err = %v, want NetworkError", err)
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			t.Errorf("path = %q, want /api/health", r.URL.Path)
		}
		json.NewEncoder(w).Encode(HealthInfo{Status: "ok", AIProvider: "Google Gemini 2.5 Flash", APIKeyConfigured: true})
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	info, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error: %v", err)
	}
	if info.Status != "ok" || !info.APIKeyConfigured {
		t.Errorf("info = %+v", info)
	}
}
