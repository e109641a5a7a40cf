package textproc

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	spaceRunRe  = regexp.MustCompile(`[ \t]+`)
	blankLineRe = regexp.MustCompile(`\n{3,}`)

	punctReplacer = strings.NewReplacer(
		"‘", "'", // left single quote
		"’", "'", // right single quote
		"“", `"`, // left double quote
		"”", `"`, // right double quote
		"–", "-", // en dash
		"—", "--", // em dash
	)
)

// Normalize canonicalizes extracted text: NFC composition, straight quotes,
// ASCII dashes, collapsed whitespace, at most one blank line between
// paragraphs. Accented characters pass through unchanged.
func Normalize(text string) string {
	s := norm.NFC.String(text)
	s = punctReplacer.Replace(s)
	s = spaceRunRe.ReplaceAllString(s, " ")
	s = trimLineEdges(s)
	s = blankLineRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

func trimLineEdges(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}
