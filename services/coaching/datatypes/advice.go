// Copyright (C) 2026 Ongoza CyberHub (eng@ongozacyberhub.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

// Priority is one prioritized coaching action. Consumers expect at most
// three actionable items per session; the model is instructed to cap the
// list but the contract does not enforce it.
type Priority struct {
	Priority string   `json:"priority"` // "high", "medium", "low"
	Action   string   `json:"action"`
	Reason   string   `json:"reason"`
	Recipes  []string `json:"recipes,omitempty"`
	Deadline string   `json:"deadline,omitempty"` // date string, e.g. "2026-09-15"
}

// Action is a dispatchable follow-up returned by the model. Type selects
// the registered handler; Target and Payload are handler-specific.
type Action struct {
	Type    string                 `json:"type"`
	Target  string                 `json:"target,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// PathAdjustment is a deep-provider extension: a suggested change to the
// learner's recipe path.
type PathAdjustment struct {
	RecipeID string `json:"recipe_id,omitempty"`
	Change   string `json:"change,omitempty"` // "add", "remove", "reorder"
	Reason   string `json:"reason,omitempty"`
}

// AdviceDocument is the structured coaching output extracted from a
// provider response. It is either parsed from the model's JSON or the
// fixed fallback document; a successfully decoded document is trusted
// as-is apart from the top-level key check in the advice parser.
type AdviceDocument struct {
	Greeting      string     `json:"greeting"`
	Diagnosis     string     `json:"diagnosis"`
	Priorities    []Priority `json:"priorities"`
	Encouragement string     `json:"encouragement"`
	Actions       []Action   `json:"actions"`

	// Deep-provider extension fields.
	PathAdjustments []PathAdjustment `json:"path_adjustments,omitempty"`
	SkillGaps       []string         `json:"skill_gaps,omitempty"`
}
