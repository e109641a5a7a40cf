package textproc

import "strings"

const (
	minReadableLength = 50
	minAllowedRatio   = 0.6
)

var sectionKeywords = []string{
	"experience",
	"education",
	"skills",
	"work",
	"university",
	"project",
	"company",
}

// Readable reports whether extracted text looks like usable CV content or
// whether the document needs an OCR pass. The gate is intentionally
// permissive: a false positive degrades structuring quality downstream
// instead of failing the pipeline.
func Readable(text string) bool {
	runes := []rune(text)
	if len(runes) < minReadableLength {
		return false
	}

	allowed := 0
	for _, r := range runes {
		if isAllowed(r) {
			allowed++
		}
	}
	if float64(allowed)/float64(len(runes)) <= minAllowedRatio {
		return false
	}

	lower := strings.ToLower(text)
	for _, kw := range sectionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func isAllowed(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z':
		return true
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	}
	switch r {
	case ' ', '.', ',', '!', '?', ';', ':', '(', ')', '-':
		return true
	}
	return false
}
