//go:build !integration

package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"honeypot-arena/internal/domain"
	"honeypot-arena/internal/domain/ports/adapter"
)

func newLogger() *zerolog.Logger { l := zerolog.Nop(); return &l }

func testRequest() adapter.AnalyzeRequest {
	return adapter.AnalyzeRequest{
		SessionID: "sess-1",
		Message:   adapter.Message{Sender: "counterpart", Text: "share your OTP", Timestamp: 1000},
		History: []adapter.Message{
			{Sender: "counterpart", Text: "share your OTP", Timestamp: 1000},
		},
		Metadata: adapter.Metadata{Channel: "sms", Platform: "sms", Language: "en", Locale: "en-IN"},
	}
}

func TestAnalyze(t *testing.T) {
	t.Run("sends the wire contract and decodes the verdict", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/analyze" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			if got := r.Header.Get("x-api-key"); got != "secret" {
				t.Errorf("expected x-api-key header, got %q", got)
			}

			var body map[string]json.RawMessage
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decode request body: %v", err)
			}
			for _, key := range []string{"sessionId", "message", "conversationHistory", "metadata"} {
				if _, ok := body[key]; !ok {
					t.Errorf("request body missing %q", key)
				}
			}

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"status": "success",
				"reply": "oh no, what do I do?",
				"scamDetected": true,
				"shouldEngage": true,
				"extractedIntelligence": {
					"upiIds": ["scammer@ybl"],
					"phoneNumbers": "not-a-list",
					"bankAccounts": null,
					"phishingLinks": ["http://evil.example"]
				},
				"agentNotes": "urgency tactics"
			}`))
		}))
		defer srv.Close()

		a := NewHTTPAdapter(srv.URL, "secret", 5*time.Second, time.Second, newLogger())
		v, err := a.Analyze(context.Background(), testRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !v.ScamDetected || !v.ShouldEngage {
			t.Errorf("unexpected flags: %+v", v)
		}
		if v.Reply != "oh no, what do I do?" || v.AgentNotes != "urgency tactics" {
			t.Errorf("unexpected verdict text: %+v", v)
		}
		if got := v.Intelligence["upiIds"]; len(got) != 1 || got[0] != "scammer@ybl" {
			t.Errorf("unexpected upiIds: %v", got)
		}
		if got := v.Intelligence["phishingLinks"]; len(got) != 1 {
			t.Errorf("unexpected phishingLinks: %v", got)
		}
		// Non-list categories count as zero, not as an error.
		if v.IntelCount("phoneNumbers") != 0 || v.IntelCount("bankAccounts") != 0 {
			t.Errorf("expected malformed categories dropped, got %v", v.Intelligence)
		}
	})

	t.Run("non-2xx is a hard failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		a := NewHTTPAdapter(srv.URL, "secret", 5*time.Second, time.Second, newLogger())
		if _, err := a.Analyze(context.Background(), testRequest()); !errors.Is(err, domain.ErrGatewayUnavailable) {
			t.Errorf("expected ErrGatewayUnavailable, got %v", err)
		}
	})

	t.Run("malformed body is a hard failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer srv.Close()

		a := NewHTTPAdapter(srv.URL, "secret", 5*time.Second, time.Second, newLogger())
		if _, err := a.Analyze(context.Background(), testRequest()); !errors.Is(err, domain.ErrMalformedVerdict) {
			t.Errorf("expected ErrMalformedVerdict, got %v", err)
		}
	})

	t.Run("network error is a hard failure", func(t *testing.T) {
		a := NewHTTPAdapter("http://127.0.0.1:1", "secret", time.Second, time.Second, newLogger())
		if _, err := a.Analyze(context.Background(), testRequest()); !errors.Is(err, domain.ErrGatewayUnavailable) {
			t.Errorf("expected ErrGatewayUnavailable, got %v", err)
		}
	})
}

func TestHealth(t *testing.T) {
	t.Run("2xx means up", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/health" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		a := NewHTTPAdapter(srv.URL, "", 5*time.Second, time.Second, newLogger())
		if !a.Health(context.Background()) {
			t.Error("expected healthy on 200")
		}
	})

	t.Run("non-2xx means down", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		a := NewHTTPAdapter(srv.URL, "", 5*time.Second, time.Second, newLogger())
		if a.Health(context.Background()) {
			t.Error("expected unhealthy on 503")
		}
	})

	t.Run("transport error means down", func(t *testing.T) {
		a := NewHTTPAdapter("http://127.0.0.1:1", "", time.Second, time.Second, newLogger())
		if a.Health(context.Background()) {
			t.Error("expected unhealthy on connection error")
		}
	})
}
