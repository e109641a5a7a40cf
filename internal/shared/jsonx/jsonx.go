package jsonx

import (
	"encoding/json"
	"errors"
	"regexp"

	"github.com/tidwall/gjson"
)

// ErrNoJSON indicates no parseable JSON object could be recovered.
var ErrNoJSON = errors.New("no JSON object found")

var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// Recover attempts to salvage a JSON object from a loosely formatted AI
// response: strict parse first, then the largest brace-delimited block
// (handles fenced code blocks and prose around the payload). One recovery
// attempt only; callers treat failure as fatal.
func Recover(raw []byte) (json.RawMessage, error) {
	if json.Valid(raw) && gjson.ParseBytes(raw).IsObject() {
		return json.RawMessage(raw), nil
	}

	block := jsonBlockRe.Find(raw)
	if block == nil {
		return nil, ErrNoJSON
	}
	if !json.Valid(block) || !gjson.ParseBytes(block).IsObject() {
		return nil, ErrNoJSON
	}
	return json.RawMessage(block), nil
}
