// Copyright (C) 2026 Ongoza CyberHub (eng@ongozacyberhub.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package prompt builds the provider-specific coaching prompts. Both
// builders are pure functions over the learner snapshot; no I/O.
package prompt

import (
	"fmt"
	"strings"

	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/datatypes"
	"github.com/strivego254/ongozaCyberHub-sub010/services/llm"
)

const (
	fastTemperature float32 = 0.7
	deepTemperature float32 = 0.6
	fastMaxTokens           = 1024
	deepMaxTokens           = 2048
)

// adviceSchemaExample is embedded in both prompts. The schema is
// enforced by instruction only; the advice parser falls back to a fixed
// document when the model ignores it.
const adviceSchemaExample = `{
  "greeting": "short personal greeting",
  "diagnosis": "one-paragraph read of where the learner stands",
  "priorities": [
    {"priority": "high", "action": "what to do", "reason": "why it matters", "recipes": ["recipe-id"], "deadline": "2026-09-15"}
  ],
  "encouragement": "one or two motivating sentences",
  "actions": [
    {"type": "send_nudge", "target": "user", "payload": {}}
  ]
}`

// BuildDeepSeekPrompt builds the fast-provider prompt: a daily-cadence
// coach that keeps the advice short and concrete.
func BuildDeepSeekPrompt(state *datatypes.LearnerState, context string) ([]llm.Message, llm.GenerationParams) {
	system := strings.Join([]string{
		"You are a cybersecurity learning coach on the Ongoza CyberHub platform.",
		"Be specific and actionable. Reference concrete recipes and missions from the learner's data by name or id.",
		"Limit yourself to 1-3 priority actions.",
		"Respond with strict JSON only, matching this schema exactly:",
		adviceSchemaExample,
	}, "\n")

	user := fmt.Sprintf("Request context: %s\n\nLearner state:\n%s\n\nProduce the coaching advice JSON now.",
		context, renderState(state))

	// Model is left empty: the routed client completes with its own
	// configured model, which is also what the response reports.
	temp := fastTemperature
	maxTokens := fastMaxTokens
	return []llm.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		}, llm.GenerationParams{
			Temperature: &temp,
			MaxTokens:   &maxTokens,
		}
}

// BuildClaudePrompt builds the deep-provider prompt. On top of the fast
// template it asks for a skill-gap analysis and learning-path
// adjustments, which is why high-complexity learners are routed here.
func BuildClaudePrompt(state *datatypes.LearnerState, context string) ([]llm.Message, llm.GenerationParams) {
	system := strings.Join([]string{
		"You are a senior cybersecurity learning coach on the Ongoza CyberHub platform, handling learners who are struggling or escalated.",
		"Be specific and actionable. Reference concrete recipes and missions from the learner's data by name or id.",
		"Limit yourself to 1-3 priority actions.",
		"Also analyze the learner's skill gaps and propose learning-path adjustments.",
		"Respond with strict JSON only, matching this schema exactly, plus two extra top-level fields:",
		adviceSchemaExample,
		`"path_adjustments": [{"recipe_id": "...", "change": "add|remove|reorder", "reason": "..."}],`,
		`"skill_gaps": ["short gap description"]`,
	}, "\n")

	user := fmt.Sprintf("Request context: %s\n\nLearner state:\n%s\n\nProduce the coaching advice JSON now.",
		context, renderState(state))

	temp := deepTemperature
	maxTokens := deepMaxTokens
	return []llm.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		}, llm.GenerationParams{
			Temperature: &temp,
			MaxTokens:   &maxTokens,
		}
}

// renderState flattens the snapshot into prompt-friendly lines. Absent
// sources are skipped so a default state renders as just the track line.
func renderState(state *datatypes.LearnerState) string {
	var b strings.Builder

	fmt.Fprintf(&b, "- track: %s (circle level %d, complexity %.2f)\n",
		state.TrackCode, state.CircleLevel, state.Complexity)

	if rc := state.RecipeCoverage; rc != nil {
		fmt.Fprintf(&b, "- recipe coverage: %.0f%% (%d of %d completed)\n",
			rc.Percentage, rc.Completed, rc.Total)
		for _, r := range rc.Recipes {
			if r.Status != "completed" {
				fmt.Fprintf(&b, "  - open recipe %s (%s): %s\n", r.RecipeID, r.Title, r.Status)
			}
		}
	}
	if ms := state.MissionStats; ms != nil {
		fmt.Fprintf(&b, "- missions: %d completed, %d failed of %d (completion rate %.0f%%)\n",
			ms.Completed, ms.Failed, ms.Total, ms.CompletionRate)
	}
	if a := state.Analytics; a != nil {
		fmt.Fprintf(&b, "- activity: %d-day login streak, %d minutes active this week\n",
			a.LoginStreakDays, a.MinutesActive7d)
	}
	if cs := state.Community; cs != nil {
		fmt.Fprintf(&b, "- community: %d posts, %d replies, %d upvotes\n",
			cs.Posts, cs.Replies, cs.Upvotes)
	}
	for _, s := range state.MentorshipSessions {
		fmt.Fprintf(&b, "- mentorship session %s on %q (%s)\n", s.SessionID, s.Topic, s.HeldAt)
	}

	return strings.TrimRight(b.String(), "\n")
}
