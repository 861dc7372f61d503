package service

import (
	"encoding/json"
	"strings"
)

// StageOutput is the raw result of a pipeline stage: either an already
// structured value or free-form text. Exactly one side is set; resolution
// happens in Normalize, never at call sites.
type StageOutput struct {
	structured interface{}
	text       string
	isText     bool
}

// StructuredOutput wraps a native object or array as a stage output.
func StructuredOutput(v interface{}) StageOutput {
	return StageOutput{structured: v}
}

// TextOutput wraps raw model text as a stage output.
func TextOutput(s string) StageOutput {
	return StageOutput{text: s, isText: true}
}

const (
	fenceOpen  = "```json"
	fenceClose = "```"
)

// Normalize converts a stage's raw output into a structured value.
//
// Precedence:
//  1. An already structured value is used unchanged.
//  2. Text containing a ```json fence: the substring between the first
//     opening marker and the last closing marker is trimmed and parsed.
//  3. Otherwise the entire text is parsed as JSON.
//
// A failed parse surfaces a MalformedOutputError carrying the original text;
// no result is ever fabricated.
func Normalize(stage string, out StageOutput) (interface{}, error) {
	if !out.isText {
		return out.structured, nil
	}

	text := out.text
	if start := strings.Index(text, fenceOpen); start >= 0 {
		inner := text[start+len(fenceOpen):]
		if end := strings.LastIndex(inner, fenceClose); end >= 0 {
			var v interface{}
			if err := json.Unmarshal([]byte(strings.TrimSpace(inner[:end])), &v); err != nil {
				return nil, &MalformedOutputError{Stage: stage, Raw: text}
			}
			return v, nil
		}
	}

	var v interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &v); err != nil {
		return nil, &MalformedOutputError{Stage: stage, Raw: text}
	}
	return v, nil
}

// decodeInto round-trips a normalized value through JSON into a typed
// destination.
func decodeInto(v interface{}, dst interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
