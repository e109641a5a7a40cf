package agent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var questions = []string{"Tell me about yourself.", "Why this role?"}

func TestBuildPromptMVP(t *testing.T) {
	svc := NewService("", "")
	prompt, err := svc.BuildPrompt(Config{
		JobTitle:    "Backend Engineer",
		Company:     "Acme",
		Description: "Long description that mvp prompts omit.",
		Questions:   questions,
		Style:       StyleMVP,
	})
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}
	if !strings.Contains(prompt, "Backend Engineer") || !strings.Contains(prompt, "Acme") {
		t.Fatalf("role or company missing:\n%s", prompt)
	}
	if !strings.Contains(prompt, "1. Tell me about yourself.") {
		t.Fatalf("questions missing:\n%s", prompt)
	}
	if strings.Contains(prompt, "Long description") {
		t.Fatalf("mvp prompt includes the job description:\n%s", prompt)
	}
}

func TestBuildPromptFullIncludesDescriptionAndTestLine(t *testing.T) {
	svc := NewService("", "")
	prompt, err := svc.BuildPrompt(Config{
		JobTitle:    "Backend Engineer",
		Description: "Design and run Go services.",
		Questions:   questions,
		Style:       StyleFull,
		TestLine:    "This is a test session; keep answers brief.",
	})
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}
	for _, want := range []string{"Design and run Go services.", "This is a test session", "follow-up"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptValidation(t *testing.T) {
	svc := NewService("", "")
	if _, err := svc.BuildPrompt(Config{Questions: questions, Style: "casual"}); !errors.Is(err, ErrInvalidStyle) {
		t.Fatalf("err = %v, want ErrInvalidStyle", err)
	}
	if _, err := svc.BuildPrompt(Config{Style: StyleMVP}); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("err = %v, want ErrNoQuestions", err)
	}
}

func TestPrepareWithoutProviderSkipsSession(t *testing.T) {
	svc := NewService("", "")
	session, err := svc.Prepare(context.Background(), Config{Questions: questions, Style: StyleMVP})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if session.ID != "" || session.SystemPrompt == "" {
		t.Fatalf("session = %+v", session)
	}
}

func TestPrepareCreatesHostedSession(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["system_prompt"] == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"session_id": "sess-42"}`))
	}))
	t.Cleanup(server.Close)

	svc := NewService(server.URL, "key-123")
	session, err := svc.Prepare(context.Background(), Config{Questions: questions, Style: StyleFull})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if session.ID != "sess-42" {
		t.Fatalf("session ID = %q", session.ID)
	}
	if gotAuth != "Bearer key-123" {
		t.Fatalf("auth header = %q", gotAuth)
	}
}

func TestPrepareProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	svc := NewService(server.URL, "key-123")
	if _, err := svc.Prepare(context.Background(), Config{Questions: questions, Style: StyleMVP}); err == nil {
		t.Fatal("expected error from failing provider")
	}
}
