package pipeline

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// OCREngine is the last extraction tier, used when both direct extraction
// and the AI OCR call have failed.
type OCREngine interface {
	Recognize(ctx context.Context, data []byte, mimeType string) (string, error)
}

// TesseractEngine shells out to a locally installed tesseract binary.
type TesseractEngine struct{}

// Recognize writes the payload to a temp file and runs tesseract over it.
func (TesseractEngine) Recognize(ctx context.Context, data []byte, mimeType string) (string, error) {
	if _, err := exec.LookPath("tesseract"); err != nil {
		return "", fmt.Errorf("tesseract not installed: %w", err)
	}

	tmp, err := os.CreateTemp("", "cv-ocr-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	cmd := exec.CommandContext(ctx, "tesseract", tmpPath, "stdout", "-l", "eng")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, strings.TrimSpace(string(out)))
	}

	text := strings.TrimSpace(string(out))
	if text == "" {
		return "", fmt.Errorf("tesseract produced no text")
	}
	return text, nil
}
