package jobs

import "errors"

// ErrNotFound indicates a job record does not exist for the user.
var ErrNotFound = errors.New("job not found")

// Fetch error codes. Each maps to a user-facing message via MessageFor.
const (
	CodeInvalidURL          = "invalid_url"
	CodeNetworkError        = "network_error"
	CodePageNotFound        = "page_not_found"
	CodeAccessDenied        = "access_denied"
	CodeInsufficientContent = "insufficient_content"
	CodeInvalidAPIKey       = "invalid_api_key"
	CodeRateLimited         = "rate_limited"
)

// FetchError is a typed failure from the JD fetch pipeline.
type FetchError struct {
	Code string
	Err  error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *FetchError) Unwrap() error { return e.Err }

func fetchErr(code string, err error) *FetchError {
	return &FetchError{Code: code, Err: err}
}

// fetchMessages maps fetch error codes to user-facing text. Kept as a table
// so translations can replace it wholesale.
var fetchMessages = map[string]string{
	CodeInvalidURL:          "The job posting URL is not valid.",
	CodeNetworkError:        "We could not reach the job posting page. Check the URL and try again.",
	CodePageNotFound:        "The job posting page was not found. It may have been taken down.",
	CodeAccessDenied:        "The job site refused access to this posting. Try pasting the description instead.",
	CodeInsufficientContent: "The page did not contain enough text to read a job description from.",
	CodeInvalidAPIKey:       "The analysis service rejected our credentials. Contact support.",
	CodeRateLimited:         "Too many requests right now. Try again in a minute.",
}

// MessageFor returns the user-facing message for a fetch error code.
func MessageFor(code string) string {
	if msg, ok := fetchMessages[code]; ok {
		return msg
	}
	return "Something went wrong while reading the job posting."
}
