// Copyright (C) 2026 Ongoza CyberHub (eng@ongozacyberhub.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package advice extracts a structured advice document from raw model
// output. Parsing never fails: any malformed output degrades to a fixed
// fallback document, so errors from this layer never reach the caller.
package advice

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/datatypes"
)

// Exactly two fence patterns are recognized: a ```json fence and a
// plain ``` fence. Anything else falls through to treating the entire
// text as the JSON candidate.
var (
	jsonFencePattern  = regexp.MustCompile("(?s)```json\\s*(.*?)```")
	plainFencePattern = regexp.MustCompile("(?s)```\\s*(.*?)```")
)

// Parse extracts an AdviceDocument from rawText. The second return
// value reports whether the model's own output was used; false means
// the fixed fallback document was substituted.
//
// A decoded document must carry at least one of the greeting or
// diagnosis top-level keys; a JSON value of the wrong shape (or an
// unrelated object) is treated the same as a decode failure.
func Parse(rawText string) (datatypes.AdviceDocument, bool) {
	candidate := extractCandidate(rawText)

	var doc datatypes.AdviceDocument
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		return Fallback(), false
	}
	if doc.Greeting == "" && doc.Diagnosis == "" {
		return Fallback(), false
	}
	return doc, true
}

// extractCandidate returns the interior of the first fenced block, or
// the trimmed raw text when no fence is present.
func extractCandidate(rawText string) string {
	if m := jsonFencePattern.FindStringSubmatch(rawText); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := plainFencePattern.FindStringSubmatch(rawText); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(rawText)
}

// Fallback returns the fixed advice document used whenever the model
// output cannot be parsed.
func Fallback() datatypes.AdviceDocument {
	return datatypes.AdviceDocument{
		Greeting:      "Hello! Let's continue your cybersecurity journey.",
		Diagnosis:     "Ready to help you progress.",
		Priorities:    []datatypes.Priority{},
		Encouragement: "You've got this!",
		Actions:       []datatypes.Action{},
	}
}
