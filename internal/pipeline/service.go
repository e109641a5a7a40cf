package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"coach-backend/internal/cvs"
	"coach-backend/internal/llm"
	"coach-backend/internal/shared/jsonx"
	"coach-backend/internal/shared/metrics"
	"coach-backend/internal/shared/storage/object"
	"coach-backend/internal/shared/telemetry"
	"coach-backend/internal/textproc"
)

// ErrExtractionFailed indicates every extraction tier was exhausted without
// producing usable text.
var ErrExtractionFailed = errors.New("all extraction tiers failed")

var directExtract = extractDirect

// EmbeddingSink receives an embedding vector for processed CV text. The
// search package provides the persistent implementation.
type EmbeddingSink interface {
	SaveEmbedding(ctx context.Context, userID, cvID string, vector []float32) error
}

// Service runs the extraction pipeline over an uploaded CV. Tiers run in
// order of descending confidence; a tier failure falls through to the next
// tier and only exhaustion surfaces an error.
type Service struct {
	Records  cvs.Repo
	Store    object.ObjectStore
	Contents ContentRepo
	LLM      llm.Client
	OCR      OCREngine

	// Embeddings is optional; when nil no vectors are produced.
	Embeddings EmbeddingSink
}

// Process extracts, normalizes, structures, and persists the content of one
// uploaded CV. The result replaces any previous content for the same CV.
func (s *Service) Process(ctx context.Context, userID, cvID string) (ProcessedContent, error) {
	metrics.IncPipelineStarted()
	start := time.Now()

	content, err := s.process(ctx, userID, cvID)
	metrics.ObservePipelineDurationMs(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.IncPipelineFailed()
		return ProcessedContent{}, err
	}
	metrics.IncPipelineCompleted()
	return content, nil
}

func (s *Service) process(ctx context.Context, userID, cvID string) (ProcessedContent, error) {
	rec, err := s.Records.GetByID(ctx, userID, cvID)
	if err != nil {
		return ProcessedContent{}, err
	}

	reader, err := s.Store.Open(ctx, rec.StorageKey)
	if err != nil {
		return ProcessedContent{}, err
	}
	data, err := io.ReadAll(reader)
	reader.Close()
	if err != nil {
		return ProcessedContent{}, err
	}

	rawText, method, err := s.extract(ctx, data, rec.MimeType, rec.FileName, cvID)
	if err != nil {
		return ProcessedContent{}, err
	}

	content := ProcessedContent{
		CVID:       cvID,
		UserID:     userID,
		RawText:    rawText,
		Method:     method,
		Confidence: ConfidenceFor(method),
		Structured: s.structure(ctx, cvID, rawText),
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.Contents.Save(ctx, content); err != nil {
		return ProcessedContent{}, err
	}

	s.embed(ctx, content)

	return content, nil
}

// extract walks the tiers: direct library extraction, AI OCR, then local
// OCR. Only the direct tier is readability gated; OCR already reconstructs
// the text, so any non-empty output is taken at the tier's confidence.
func (s *Service) extract(ctx context.Context, data []byte, mimeType, fileName, cvID string) (string, ProcessingMethod, error) {
	text, err := directExtract(data, mimeType, fileName)
	if err == nil {
		text = textproc.Normalize(text)
		if textproc.Readable(text) {
			return text, MethodTextExtraction, nil
		}
		err = errors.New("extracted text failed readability check")
	}
	telemetry.Info("pipeline.tier.direct", map[string]any{
		"cv_id": cvID,
		"err":   err.Error(),
	})
	metrics.IncOCRFallback()

	text, err = s.LLM.OCRDocument(ctx, data, mimeType)
	if err == nil {
		text = textproc.Normalize(text)
		if text != "" {
			return text, MethodOCRAI, nil
		}
		err = errors.New("OCR produced no text")
	}
	telemetry.Info("pipeline.tier.ocr_ai", map[string]any{
		"cv_id": cvID,
		"err":   err.Error(),
	})

	// Last tier: degraded output is still accepted as long as it is
	// non-empty, the 0.6 confidence marks it for consumers.
	text, err = s.OCR.Recognize(ctx, data, mimeType)
	if err == nil {
		text = textproc.Normalize(text)
		if text != "" {
			return text, MethodOCRFallback, nil
		}
		err = errors.New("fallback OCR produced no text")
	}
	telemetry.Error("pipeline.tier.ocr_fallback", map[string]any{
		"cv_id": cvID,
		"err":   err.Error(),
	})

	return "", "", ErrExtractionFailed
}

// structure asks the model for the structured schema. A structuring failure
// does not fail the pipeline; the raw text alone is still usable.
func (s *Service) structure(ctx context.Context, cvID, rawText string) StructuredContent {
	var structured StructuredContent

	raw, err := s.LLM.StructureCV(ctx, rawText)
	if err != nil {
		telemetry.Error("pipeline.structure", map[string]any{"cv_id": cvID, "err": err.Error()})
		return structured
	}
	recovered, err := jsonx.Recover(raw)
	if err != nil {
		telemetry.Error("pipeline.structure.parse", map[string]any{"cv_id": cvID, "err": err.Error()})
		return structured
	}
	if err := json.Unmarshal(recovered, &structured); err != nil {
		telemetry.Error("pipeline.structure.decode", map[string]any{"cv_id": cvID, "err": err.Error()})
		return StructuredContent{}
	}
	return structured
}

// embed stores a vector for semantic search. Failures never fail the
// pipeline; search degrades to its keyword tiers.
func (s *Service) embed(ctx context.Context, content ProcessedContent) {
	if s.Embeddings == nil {
		return
	}
	vector, err := s.LLM.Embed(ctx, content.RawText)
	if err != nil {
		telemetry.Error("pipeline.embed", map[string]any{"cv_id": content.CVID, "err": err.Error()})
		return
	}
	if err := s.Embeddings.SaveEmbedding(ctx, content.UserID, content.CVID, vector); err != nil {
		telemetry.Error("pipeline.embed.save", map[string]any{"cv_id": content.CVID, "err": err.Error()})
	}
}

// GetContent returns the processed content for a CV owned by the user.
func (s *Service) GetContent(ctx context.Context, userID, cvID string) (ProcessedContent, error) {
	if userID == "" || cvID == "" {
		return ProcessedContent{}, cvs.ErrInvalidInput
	}
	return s.Contents.GetByCV(ctx, userID, cvID)
}

// LatestContent returns the user's most recently processed CV content.
func (s *Service) LatestContent(ctx context.Context, userID string) (ProcessedContent, error) {
	if userID == "" {
		return ProcessedContent{}, cvs.ErrInvalidInput
	}
	return s.Contents.GetLatestByUser(ctx, userID)
}
