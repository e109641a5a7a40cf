package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"coach-backend/internal/cvs"
	"coach-backend/internal/llm"
)

const readableResume = "Jane Doe, Senior Engineer. Experience: eight years building backend services in Go. Education: BSc Computer Science. Skills: Go, Postgres, AWS."

type stubStore struct {
	data map[string][]byte
}

func (s *stubStore) Save(ctx context.Context, userID, fileName string, r io.Reader) (string, int64, string, error) {
	return "", 0, "", errors.New("not used")
}

func (s *stubStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := s.data[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *stubStore) Delete(ctx context.Context, key string) error { return nil }

func (s *stubStore) PresignGet(ctx context.Context, key string, expires time.Duration) (string, error) {
	return "", errors.New("not used")
}

type stubLLM struct {
	llm.Client

	ocrText    string
	ocrErr     error
	structured string
	embedVec   []float32
	embedErr   error

	ocrCalls int
}

func (s *stubLLM) OCRDocument(ctx context.Context, data []byte, mimeType string) (string, error) {
	s.ocrCalls++
	return s.ocrText, s.ocrErr
}

func (s *stubLLM) StructureCV(ctx context.Context, rawText string) (json.RawMessage, error) {
	if s.structured == "" {
		return nil, errors.New("structure unavailable")
	}
	return json.RawMessage(s.structured), nil
}

func (s *stubLLM) Embed(ctx context.Context, text string) ([]float32, error) {
	return s.embedVec, s.embedErr
}

type stubOCR struct {
	text  string
	err   error
	calls int
}

func (s *stubOCR) Recognize(ctx context.Context, data []byte, mimeType string) (string, error) {
	s.calls++
	return s.text, s.err
}

type stubSink struct {
	vectors map[string][]float32
}

func (s *stubSink) SaveEmbedding(ctx context.Context, userID, cvID string, vector []float32) error {
	if s.vectors == nil {
		s.vectors = make(map[string][]float32)
	}
	s.vectors[cvID] = vector
	return nil
}

func newTestService(t *testing.T, ai *stubLLM, ocr *stubOCR) (*Service, string, string) {
	t.Helper()
	records := cvs.NewMemoryRepo()
	rec := cvs.CVRecord{
		ID:         "cv-1",
		UserID:     "user-1",
		FileName:   "resume.pdf",
		MimeType:   "application/pdf",
		StorageKey: "cvs/user-1/resume.pdf",
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}
	if err := records.Create(context.Background(), rec); err != nil {
		t.Fatalf("seed record: %v", err)
	}
	svc := &Service{
		Records:  records,
		Store:    &stubStore{data: map[string][]byte{rec.StorageKey: []byte("%PDF-garbage")}},
		Contents: NewMemoryContentRepo(),
		LLM:      ai,
		OCR:      ocr,
	}
	return svc, rec.UserID, rec.ID
}

func overrideDirect(t *testing.T, fn func([]byte, string, string) (string, error)) {
	t.Helper()
	orig := directExtract
	directExtract = fn
	t.Cleanup(func() { directExtract = orig })
}

func TestProcessDirectExtraction(t *testing.T) {
	overrideDirect(t, func([]byte, string, string) (string, error) {
		return readableResume, nil
	})
	ai := &stubLLM{structured: `{"skills":["Go","Postgres"],"experience":[],"education":[],"certifications":[],"languages":[]}`}
	ocr := &stubOCR{}
	svc, userID, cvID := newTestService(t, ai, ocr)

	content, err := svc.Process(context.Background(), userID, cvID)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if content.Method != MethodTextExtraction {
		t.Fatalf("method = %q, want %q", content.Method, MethodTextExtraction)
	}
	if content.Confidence != ConfidenceTextExtraction {
		t.Fatalf("confidence = %v, want %v", content.Confidence, ConfidenceTextExtraction)
	}
	if ai.ocrCalls != 0 || ocr.calls != 0 {
		t.Fatalf("OCR tiers should not run when direct extraction is readable")
	}
	if len(content.Structured.Skills) != 2 {
		t.Fatalf("structured skills = %v", content.Structured.Skills)
	}

	stored, err := svc.GetContent(context.Background(), userID, cvID)
	if err != nil {
		t.Fatalf("GetContent: %v", err)
	}
	if stored.RawText != content.RawText {
		t.Fatalf("persisted raw text differs")
	}
}

func TestProcessFallsToAIOCR(t *testing.T) {
	overrideDirect(t, func([]byte, string, string) (string, error) {
		return "", errors.New("encrypted stream")
	})
	ai := &stubLLM{ocrText: readableResume}
	ocr := &stubOCR{}
	svc, userID, cvID := newTestService(t, ai, ocr)

	content, err := svc.Process(context.Background(), userID, cvID)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if content.Method != MethodOCRAI {
		t.Fatalf("method = %q, want %q", content.Method, MethodOCRAI)
	}
	if content.Confidence != ConfidenceOCRAI {
		t.Fatalf("confidence = %v, want %v", content.Confidence, ConfidenceOCRAI)
	}
	if ocr.calls != 0 {
		t.Fatalf("fallback OCR ran despite readable AI OCR output")
	}
}

func TestProcessKeepsShortAIOCROutput(t *testing.T) {
	// A sparse but genuine OCR result stays at the AI tier instead of
	// being demoted to the local fallback.
	overrideDirect(t, func([]byte, string, string) (string, error) {
		return "", errors.New("encrypted stream")
	})
	ai := &stubLLM{ocrText: "Jane Doe"}
	ocr := &stubOCR{text: readableResume}
	svc, userID, cvID := newTestService(t, ai, ocr)

	content, err := svc.Process(context.Background(), userID, cvID)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if content.Method != MethodOCRAI {
		t.Fatalf("method = %q, want %q", content.Method, MethodOCRAI)
	}
	if content.Confidence != ConfidenceOCRAI {
		t.Fatalf("confidence = %v, want %v", content.Confidence, ConfidenceOCRAI)
	}
	if ocr.calls != 0 {
		t.Fatalf("fallback OCR ran despite non-empty AI OCR output")
	}
}

func TestProcessUnreadableDirectTextTriggersOCR(t *testing.T) {
	// Parses fine but is too garbled to pass the readability gate.
	overrideDirect(t, func([]byte, string, string) (string, error) {
		return strings.Repeat("\x01\x02\x03 ", 40), nil
	})
	ai := &stubLLM{ocrText: readableResume}
	svc, userID, cvID := newTestService(t, ai, &stubOCR{})

	content, err := svc.Process(context.Background(), userID, cvID)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if content.Method != MethodOCRAI {
		t.Fatalf("method = %q, want %q", content.Method, MethodOCRAI)
	}
	if ai.ocrCalls != 1 {
		t.Fatalf("ocrCalls = %d, want 1", ai.ocrCalls)
	}
}

func TestProcessFallbackOCRAcceptsDegradedText(t *testing.T) {
	overrideDirect(t, func([]byte, string, string) (string, error) {
		return "", errors.New("no text layer")
	})
	ai := &stubLLM{ocrErr: llm.ErrRateLimited}
	ocr := &stubOCR{text: "short scan"}
	svc, userID, cvID := newTestService(t, ai, ocr)

	content, err := svc.Process(context.Background(), userID, cvID)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if content.Method != MethodOCRFallback {
		t.Fatalf("method = %q, want %q", content.Method, MethodOCRFallback)
	}
	if content.Confidence != ConfidenceOCRFallback {
		t.Fatalf("confidence = %v, want %v", content.Confidence, ConfidenceOCRFallback)
	}
}

func TestProcessExhaustionFails(t *testing.T) {
	overrideDirect(t, func([]byte, string, string) (string, error) {
		return "", errors.New("no text layer")
	})
	ai := &stubLLM{ocrErr: errors.New("provider down")}
	ocr := &stubOCR{err: errors.New("tesseract not installed")}
	svc, userID, cvID := newTestService(t, ai, ocr)

	_, err := svc.Process(context.Background(), userID, cvID)
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("err = %v, want ErrExtractionFailed", err)
	}
}

func TestProcessStructuringFailureIsNonFatal(t *testing.T) {
	overrideDirect(t, func([]byte, string, string) (string, error) {
		return readableResume, nil
	})
	ai := &stubLLM{structured: ""} // StructureCV errors
	svc, userID, cvID := newTestService(t, ai, &stubOCR{})

	content, err := svc.Process(context.Background(), userID, cvID)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(content.Structured.Skills) != 0 {
		t.Fatalf("expected empty structured content, got %v", content.Structured)
	}
}

func TestProcessSavesEmbedding(t *testing.T) {
	overrideDirect(t, func([]byte, string, string) (string, error) {
		return readableResume, nil
	})
	ai := &stubLLM{
		structured: `{"skills":[],"experience":[],"education":[],"certifications":[],"languages":[]}`,
		embedVec:   []float32{0.1, 0.2, 0.3},
	}
	svc, userID, cvID := newTestService(t, ai, &stubOCR{})
	sink := &stubSink{}
	svc.Embeddings = sink

	if _, err := svc.Process(context.Background(), userID, cvID); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(sink.vectors[cvID]) != 3 {
		t.Fatalf("embedding not saved: %v", sink.vectors)
	}
}

func TestProcessUnknownCV(t *testing.T) {
	svc, userID, _ := newTestService(t, &stubLLM{}, &stubOCR{})
	_, err := svc.Process(context.Background(), userID, "missing")
	if !errors.Is(err, cvs.ErrNotFound) {
		t.Fatalf("err = %v, want cvs.ErrNotFound", err)
	}
}

func TestGetContentBeforeProcessing(t *testing.T) {
	svc, userID, cvID := newTestService(t, &stubLLM{}, &stubOCR{})
	_, err := svc.GetContent(context.Background(), userID, cvID)
	if !errors.Is(err, ErrNoContent) {
		t.Fatalf("err = %v, want ErrNoContent", err)
	}
}
