package transform

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func candidateResponse(text string) string {
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestGeminiTransform(t *testing.T) {
	var gotReq geminiRequest
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Write([]byte(candidateResponse("Hello, World.")))
	}))
	defer srv.Close()

	g := newGemini("secret", srv.URL)
	got, err := g.Transform(context.Background(), "Make this formal:", "hello world")
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got != "Hello, World." {
		t.Errorf("got %q, want %q", got, "Hello, World.")
	}
	if gotKey != "secret" {
		t.Errorf("key = %q, want %q", gotKey, "secret")
	}

	if len(gotReq.Contents) != 1 || len(gotReq.Contents[0].Parts) != 1 {
		t.Fatalf("unexpected request shape: %+v", gotReq)
	}
	wantPrompt := "Make this formal:" + promptSeparator + "hello world"
	if gotReq.Contents[0].Parts[0].Text != wantPrompt {
		t.Errorf("prompt = %q, want %q", gotReq.Contents[0].Parts[0].Text, wantPrompt)
	}
	gc := gotReq.GenerationConfig
	if gc.Temperature != 0.7 || gc.TopP != 0.8 || gc.TopK != 40 || gc.MaxOutputTokens != 2048 {
		t.Errorf("unexpected generation config: %+v", gc)
	}
}

func TestGeminiErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   Kind
	}{
		{"auth_401", http.StatusUnauthorized, `{}`, KindAuth},
		{"auth_403", http.StatusForbidden, `{}`, KindAuth},
		{"rate_limited", http.StatusTooManyRequests, `{}`, KindRateLimited},
		{"server_error", http.StatusInternalServerError, `{}`, KindAPI},
		{"malformed", http.StatusOK, `{not json`, KindMalformed},
		{"no_candidates", http.StatusOK, `{"candidates":[]}`, KindEmpty},
		{"no_parts", http.StatusOK, `{"candidates":[{"content":{"parts":[]}}]}`, KindEmpty},
		{"blank_text", http.StatusOK, candidateResponse("   "), KindEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			g := newGemini("k", srv.URL)
			_, err := g.Transform(context.Background(), "p", "s")
			if err == nil {
				t.Fatal("expected error")
			}
			if got := KindOf(err); got != tt.want {
				t.Errorf("KindOf = %v, want %v (err: %v)", got, tt.want, err)
			}
		})
	}
}

func TestGeminiNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	g := newGemini("k", srv.URL)
	_, err := g.Transform(context.Background(), "p", "s")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := KindOf(err); got != KindNetwork {
		t.Errorf("KindOf = %v, want %v", got, KindNetwork)
	}
}

func TestGeminiContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := newGemini("k", srv.URL)
	_, err := g.Transform(ctx, "p", "s")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestKindOfUnclassified(t *testing.T) {
	if got := KindOf(errors.New("plain")); got != KindNetwork {
		t.Errorf("KindOf(plain) = %v, want %v", got, KindNetwork)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindNetwork, "network"},
		{KindTimeout, "timeout"},
		{KindAuth, "auth"},
		{KindRateLimited, "rate_limited"},
		{KindAPI, "api"},
		{KindMalformed, "malformed"},
		{KindEmpty, "empty"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
