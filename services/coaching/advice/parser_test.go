// Copyright (C) 2026 Ongoza CyberHub (eng@ongozacyberhub.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package advice

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/datatypes"
)

const validAdviceJSON = `{
  "greeting": "Hey Amina!",
  "diagnosis": "You are close to finishing the SOC defense circle.",
  "priorities": [
    {"priority": "high", "action": "Finish the SIEM triage recipe", "reason": "It blocks your next mission", "recipes": ["rcp-siem-01"], "deadline": "2026-09-15"}
  ],
  "encouragement": "Great momentum this week.",
  "actions": [
    {"type": "send_nudge", "target": "user", "payload": {"channel": "email"}}
  ]
}`

// =============================================================================
// Fenced Extraction Tests
// =============================================================================

func TestParse_JSONFencedBlock(t *testing.T) {
	raw := "Here is your advice:\n```json\n" + validAdviceJSON + "\n```\nHope it helps!"

	doc, parsed := Parse(raw)
	assert.True(t, parsed)
	assert.Equal(t, "Hey Amina!", doc.Greeting)
	require.Len(t, doc.Priorities, 1)
	assert.Equal(t, "high", doc.Priorities[0].Priority)
	assert.Equal(t, []string{"rcp-siem-01"}, doc.Priorities[0].Recipes)
	require.Len(t, doc.Actions, 1)
	assert.Equal(t, "send_nudge", doc.Actions[0].Type)
	assert.Equal(t, "email", doc.Actions[0].Payload["channel"])
}

func TestParse_PlainFencedBlock(t *testing.T) {
	raw := "```\n" + validAdviceJSON + "\n```"

	doc, parsed := Parse(raw)
	assert.True(t, parsed)
	assert.Equal(t, "Hey Amina!", doc.Greeting)
}

func TestParse_BareJSONWithoutFence(t *testing.T) {
	doc, parsed := Parse(validAdviceJSON)
	assert.True(t, parsed)
	assert.Equal(t, "You are close to finishing the SOC defense circle.", doc.Diagnosis)
}

func TestParse_RoundTripsExactDocument(t *testing.T) {
	var want datatypes.AdviceDocument
	require.NoError(t, json.Unmarshal([]byte(validAdviceJSON), &want))

	got, parsed := Parse("```json\n" + validAdviceJSON + "\n```")
	assert.True(t, parsed)
	assert.Equal(t, want, got)
}

func TestParse_DeepProviderExtensionFields(t *testing.T) {
	raw := `{"greeting": "Hi", "diagnosis": "Struggling with log analysis",
		"priorities": [], "encouragement": "Keep going", "actions": [],
		"path_adjustments": [{"recipe_id": "rcp-logs-02", "change": "add", "reason": "fills the gap"}],
		"skill_gaps": ["log correlation"]}`

	doc, parsed := Parse(raw)
	assert.True(t, parsed)
	require.Len(t, doc.PathAdjustments, 1)
	assert.Equal(t, "add", doc.PathAdjustments[0].Change)
	assert.Equal(t, []string{"log correlation"}, doc.SkillGaps)
}

// =============================================================================
// Fallback Tests
// =============================================================================

func TestParse_NonJSONFallsBack(t *testing.T) {
	doc, parsed := Parse("I'm sorry, I can't produce JSON right now.")
	assert.False(t, parsed)
	assert.Equal(t, Fallback(), doc)
}

func TestParse_EmptyInputFallsBack(t *testing.T) {
	doc, parsed := Parse("")
	assert.False(t, parsed)
	assert.Equal(t, Fallback(), doc)
}

func TestParse_MalformedFenceInteriorFallsBack(t *testing.T) {
	doc, parsed := Parse("```json\n{\"greeting\": \"unterminated\n```")
	assert.False(t, parsed)
	assert.Equal(t, Fallback(), doc)
}

func TestParse_UnrelatedObjectFallsBack(t *testing.T) {
	// Valid JSON, wrong shape: no greeting and no diagnosis.
	doc, parsed := Parse(`{"status": "ok", "count": 3}`)
	assert.False(t, parsed)
	assert.Equal(t, Fallback(), doc)
}

func TestParse_JSONArrayFallsBack(t *testing.T) {
	doc, parsed := Parse(`["not", "an", "object"]`)
	assert.False(t, parsed)
	assert.Equal(t, Fallback(), doc)
}

func TestFallback_FixedDocument(t *testing.T) {
	doc := Fallback()
	assert.Equal(t, "Hello! Let's continue your cybersecurity journey.", doc.Greeting)
	assert.Equal(t, "Ready to help you progress.", doc.Diagnosis)
	assert.Empty(t, doc.Priorities)
	assert.Equal(t, "You've got this!", doc.Encouragement)
	assert.Empty(t, doc.Actions)
}
