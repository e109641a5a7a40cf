package jobs

import (
	"context"
	"html"
	"net/url"
	"regexp"
	"time"

	"github.com/go-resty/resty/v2"

	"coach-backend/internal/textproc"
)

const (
	fetchTimeout = 10 * time.Second
	// Pages shorter than this after tag stripping cannot hold a real JD.
	minContentLength = 100
)

var (
	scriptBlockRe = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>|<style[^>]*>.*?</style>|<noscript[^>]*>.*?</noscript>`)
	tagRe         = regexp.MustCompile(`<[^>]*>`)
)

// Fetcher downloads a job-posting page and reduces it to plain text.
type Fetcher struct {
	client *resty.Client
}

func NewFetcher() *Fetcher {
	client := resty.New().
		SetTimeout(fetchTimeout).
		SetHeader("User-Agent", "coach-backend/1.0")
	return &Fetcher{client: client}
}

// FetchPage returns the normalized text content of the page at rawURL.
// Failures carry a FetchError code for user-facing reporting.
func (f *Fetcher) FetchPage(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", fetchErr(CodeInvalidURL, err)
	}

	resp, err := f.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return "", fetchErr(CodeNetworkError, err)
	}
	switch {
	case resp.StatusCode() == 404:
		return "", fetchErr(CodePageNotFound, nil)
	case resp.StatusCode() == 403:
		return "", fetchErr(CodeAccessDenied, nil)
	case resp.StatusCode() >= 400:
		return "", fetchErr(CodeNetworkError, nil)
	}

	text := StripHTML(resp.String())
	if len(text) < minContentLength {
		return "", fetchErr(CodeInsufficientContent, nil)
	}
	return text, nil
}

// StripHTML reduces an HTML document to normalized plain text.
func StripHTML(page string) string {
	text := scriptBlockRe.ReplaceAllString(page, " ")
	text = tagRe.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)
	return textproc.Normalize(text)
}
