package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/geocoder89/payrollhub/internal/domain/payroll"
)

func TestHTTPGateway_Complete(t *testing.T) {
	var got chatRequest
	var auth, path string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Your tax is 10%."}}]}`))
	}))
	defer srv.Close()

	g := NewHTTPGateway(HTTPGatewayConfig{BaseURL: srv.URL + "/", APIKey: "secret", Model: "test-model"})

	user := &payroll.UserProfile{ID: "1", Name: "Jane Doe", Role: "Engineer", HourlyRate: 50}
	reply, err := g.Complete(context.Background(), "Why is my tax so high?", Sanitize(ChatContext{Bundle: sampleBundle(), User: user}))
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}

	if reply != "Your tax is 10%." {
		t.Fatalf("reply = %q", reply)
	}
	if path != "/chat/completions" {
		t.Fatalf("path = %q", path)
	}
	if auth != "Bearer secret" {
		t.Fatalf("authorization = %q", auth)
	}
	if got.Model != "test-model" || len(got.Messages) != 2 {
		t.Fatalf("unexpected request %+v", got)
	}
	if got.Messages[0].Role != "system" || got.Messages[0].Content != SystemPrompt {
		t.Fatalf("unexpected system message %+v", got.Messages[0])
	}

	userMsg := got.Messages[1].Content
	if !strings.HasPrefix(userMsg, "User question: Why is my tax so high?\n\nContext:\n") {
		t.Fatalf("unexpected user message %q", userMsg)
	}
	if strings.Contains(userMsg, "Jane Doe") {
		t.Fatalf("real name crossed the trust boundary: %q", userMsg)
	}
	if !strings.Contains(userMsg, `"gross_pay": 2000`) {
		t.Fatalf("context missing gross pay: %q", userMsg)
	}
}

func TestHTTPGateway_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusBadGateway, body: `upstream down`},
		{name: "malformed json", status: http.StatusOK, body: `{"choices":`},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantErr: ErrEmptyCompletion},
		{name: "blank content", status: http.StatusOK, body: `{"choices":[{"message":{"content":"  "}}]}`, wantErr: ErrEmptyCompletion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			g := NewHTTPGateway(HTTPGatewayConfig{BaseURL: srv.URL, APIKey: "k"})

			_, err := g.Complete(context.Background(), "hi", SanitizedContext{})
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
