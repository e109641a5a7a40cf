package pipeline

import "time"

// ProcessingMethod tags how raw text was obtained from a document.
type ProcessingMethod string

const (
	MethodTextExtraction ProcessingMethod = "text_extraction"
	MethodOCRAI          ProcessingMethod = "ocr_ai"
	MethodOCRFallback    ProcessingMethod = "ocr_fallback"
)

// Confidence per extraction tier. The fallback tier has no provider-reported
// value; 0.6 marks its output as usable but degraded.
const (
	ConfidenceTextExtraction = 1.0
	ConfidenceOCRAI          = 0.9
	ConfidenceOCRFallback    = 0.6
)

// ConfidenceFor returns the confidence score for a processing method.
func ConfidenceFor(method ProcessingMethod) float64 {
	switch method {
	case MethodTextExtraction:
		return ConfidenceTextExtraction
	case MethodOCRAI:
		return ConfidenceOCRAI
	default:
		return ConfidenceOCRFallback
	}
}

// ExperienceEntry is one position in the candidate's history.
type ExperienceEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// EducationEntry is one entry in the candidate's education history.
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// StructuredContent is the candidate profile derived from a CV.
type StructuredContent struct {
	Skills         []string          `json:"skills"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education"`
	Certifications []string          `json:"certifications"`
	Languages      []string          `json:"languages"`
}

// ProcessedContent is the immutable result of running the pipeline over one
// uploaded document. A re-upload supersedes it with a fresh row.
type ProcessedContent struct {
	CVID       string
	UserID     string
	RawText    string
	Method     ProcessingMethod
	Confidence float64
	Structured StructuredContent
	CreatedAt  time.Time
}
