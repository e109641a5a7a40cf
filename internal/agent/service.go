package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Prompt styles.
const (
	StyleMVP  = "mvp"
	StyleFull = "full"
)

var (
	// ErrInvalidStyle indicates an unknown prompt style.
	ErrInvalidStyle = errors.New("invalid prompt style")
	// ErrNoQuestions indicates an empty question list.
	ErrNoQuestions = errors.New("question list is empty")
)

const sessionTimeout = 15 * time.Second

// Config holds the interview setup used to prepare the agent.
type Config struct {
	JobTitle    string   `json:"jobTitle"`
	Company     string   `json:"company"`
	Description string   `json:"description"`
	Questions   []string `json:"questions"`
	Style       string   `json:"style"`
	TestLine    string   `json:"testLine,omitempty"`
}

// Session is a created hosted interview session.
type Session struct {
	ID           string `json:"sessionId"`
	SystemPrompt string `json:"systemPrompt"`
}

// Service synthesizes interviewer system prompts and, when a provider is
// configured, creates hosted sessions for them.
type Service struct {
	SessionURL string
	APIKey     string

	client *resty.Client
}

func NewService(sessionURL, apiKey string) *Service {
	return &Service{
		SessionURL: sessionURL,
		APIKey:     apiKey,
		client:     resty.New().SetTimeout(sessionTimeout),
	}
}

// BuildPrompt synthesizes the interviewer system prompt from the config.
func (s *Service) BuildPrompt(cfg Config) (string, error) {
	if cfg.Style != StyleMVP && cfg.Style != StyleFull {
		return "", ErrInvalidStyle
	}
	if len(cfg.Questions) == 0 {
		return "", ErrNoQuestions
	}

	role := cfg.JobTitle
	if role == "" {
		role = "the open position"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a professional interviewer conducting a mock interview for %s", role)
	if cfg.Company != "" {
		fmt.Fprintf(&sb, " at %s", cfg.Company)
	}
	sb.WriteString(".\n")

	if cfg.Style == StyleFull && cfg.Description != "" {
		sb.WriteString("\nJob description:\n")
		sb.WriteString(cfg.Description)
		sb.WriteString("\n")
	}

	sb.WriteString("\nAsk the following questions one at a time, in order. Wait for the candidate's full answer before moving on:\n")
	for i, q := range cfg.Questions {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, q)
	}

	switch cfg.Style {
	case StyleMVP:
		sb.WriteString("\nKeep the session short. Do not ask follow-up questions. Thank the candidate when the list is done.\n")
	case StyleFull:
		sb.WriteString("\nProbe vague answers with one follow-up. After the last question, give the candidate brief, constructive feedback on their strongest and weakest answers.\n")
	}

	if cfg.TestLine != "" {
		sb.WriteString("\n")
		sb.WriteString(cfg.TestLine)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// Prepare builds the prompt and creates a hosted session when a provider is
// configured. Without one the prompt alone is returned.
func (s *Service) Prepare(ctx context.Context, cfg Config) (Session, error) {
	prompt, err := s.BuildPrompt(cfg)
	if err != nil {
		return Session{}, err
	}

	session := Session{SystemPrompt: prompt}
	if s.SessionURL == "" || s.APIKey == "" {
		return session, nil
	}

	var created struct {
		SessionID string `json:"session_id"`
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.APIKey).
		SetBody(map[string]any{"system_prompt": prompt}).
		SetResult(&created).
		Post(s.SessionURL)
	if err != nil {
		return Session{}, err
	}
	if resp.IsError() {
		return Session{}, fmt.Errorf("session provider returned status %d", resp.StatusCode())
	}

	session.ID = created.SessionID
	return session, nil
}
