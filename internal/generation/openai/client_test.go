package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rai-review-backend/internal/generation"
)

func TestIsGPT5(t *testing.T) {
	tests := []struct {
		name  string
		model string
		want  bool
	}{
		{name: "gpt5", model: "gpt-5", want: true},
		{name: "gpt5 variant", model: "gpt-5-mini", want: true},
		{name: "gpt5 uppercase", model: " GPT-5o ", want: true},
		{name: "gpt4", model: "gpt-4o", want: false},
		{name: "empty", model: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isGPT5(tt.model); got != tt.want {
				t.Fatalf("isGPT5(%q) = %v, want %v", tt.model, got, tt.want)
			}
		})
	}
}

func TestGenerateSendsOneJSONModeRequest(t *testing.T) {
	var calls int
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":" {\"next_steps\":[\"a\"]} "}}],"usage":{"total_tokens":12}}`))
	}))
	defer srv.Close()

	c, err := NewClient("sk-test", "gpt-4o", time.Second, WithEndpoint(srv.URL))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	out, err := c.Generate(context.Background(), generation.Prompt{System: "sys", User: "usr"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != `{"next_steps":["a"]}` {
		t.Fatalf("unexpected content %q", out)
	}
	if calls != 1 {
		t.Fatalf("expected a single call, got %d", calls)
	}
	if got.ResponseFormat.Type != "json_object" || len(got.Messages) != 2 || got.Temperature == nil {
		t.Fatalf("unexpected request %+v", got)
	}
}

func TestGenerateErrorsAreNotRetried(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit"}}`))
	}))
	defer srv.Close()

	c, err := NewClient("sk-test", "gpt-4o", time.Second, WithEndpoint(srv.URL))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = c.Generate(context.Background(), generation.Prompt{})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected one call, got %d", calls)
	}
	if code := generation.Classify(err); code != generation.ErrorCodeFailed {
		t.Fatalf("expected %s, got %s", generation.ErrorCodeFailed, code)
	}
}

func TestGenerateEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  "}}]}`))
	}))
	defer srv.Close()

	c, _ := NewClient("sk-test", "gpt-5-mini", time.Second, WithEndpoint(srv.URL))
	_, err := c.Generate(context.Background(), generation.Prompt{})
	if !errors.Is(err, generation.ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestNewClientRequiresKeyAndModel(t *testing.T) {
	if _, err := NewClient("", "gpt-4o", 0); err == nil {
		t.Fatal("expected missing key error")
	}
	if _, err := NewClient("sk", "", 0); err == nil {
		t.Fatal("expected missing model error")
	}
}
