// Copyright (C) 2026 Ongoza CyberHub (eng@ongozacyberhub.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/strivego254/ongozaCyberHub-sub010/services/llm"
)

// =============================================================================
// Route Tests
// =============================================================================

func TestRoute_DailyAlwaysFast(t *testing.T) {
	// "daily" forces the fast provider even at maximum complexity.
	assert.Equal(t, llm.ProviderDeepSeek, Route("daily", 1.0).Provider)
	assert.Equal(t, llm.ProviderDeepSeek, Route("daily", 0.0).Provider)
}

func TestRoute_LowComplexityFast(t *testing.T) {
	assert.Equal(t, llm.ProviderDeepSeek, Route("escalation", 0.0).Provider)
	assert.Equal(t, llm.ProviderDeepSeek, Route("escalation", 0.69).Provider)
	assert.Equal(t, llm.ProviderDeepSeek, Route("mission_review", 0.5).Provider)
}

func TestRoute_HighComplexityDeep(t *testing.T) {
	assert.Equal(t, llm.ProviderClaude, Route("escalation", 0.7).Provider)
	assert.Equal(t, llm.ProviderClaude, Route("escalation", 0.9).Provider)
	assert.Equal(t, llm.ProviderClaude, Route("", 1.0).Provider)
}

func TestRoute_TriggerOtherThanDailyDoesNotForceFast(t *testing.T) {
	// Any non-"daily" trigger defers entirely to the complexity score.
	for _, trigger := range []string{"weekly", "escalation", "DAILY", "daily "} {
		assert.Equal(t, llm.ProviderClaude, Route(trigger, 0.95).Provider,
			"trigger %q should not force the fast path", trigger)
	}
}

// =============================================================================
// ScoreComplexity Tests
// =============================================================================

func TestScoreComplexity_ZeroTotalAvoidsDivisionByZero(t *testing.T) {
	// total=0 yields a zero fail rate; both percentage terms fire
	// because 0% completion and 0% coverage are below their cutoffs.
	score := ScoreComplexity(0, 0, 0, 0)
	assert.InDelta(t, 0.5, score, 1e-9)
}

func TestScoreComplexity_AllFailuresClampsToOne(t *testing.T) {
	// failRate 1.0*0.5 + 0.3 + 0.2 = 1.0, and any overshoot clamps.
	score := ScoreComplexity(10, 10, 0, 0)
	assert.Equal(t, 1.0, score)

	// failed > total still clamps.
	score = ScoreComplexity(30, 10, 0, 0)
	assert.Equal(t, 1.0, score)
}

func TestScoreComplexity_HealthyLearnerScoresZero(t *testing.T) {
	score := ScoreComplexity(0, 20, 95, 80)
	assert.Equal(t, 0.0, score)
}

func TestScoreComplexity_ThresholdTerms(t *testing.T) {
	// Only the low-completion term fires.
	assert.InDelta(t, 0.3, ScoreComplexity(0, 10, 49.9, 50), 1e-9)
	// Only the low-coverage term fires.
	assert.InDelta(t, 0.2, ScoreComplexity(0, 10, 50, 29.9), 1e-9)
	// Boundary values do not fire.
	assert.Equal(t, 0.0, ScoreComplexity(0, 10, 50, 30))
}

func TestScoreComplexity_AlwaysWithinUnitInterval(t *testing.T) {
	cases := []struct {
		failed, total            int
		completionRate, coverage float64
	}{
		{0, 0, 0, 0},
		{0, 0, 100, 100},
		{5, 10, 25, 10},
		{100, 1, 0, 0},
		{0, 1000, 49, 29},
	}
	for _, tc := range cases {
		score := ScoreComplexity(tc.failed, tc.total, tc.completionRate, tc.coverage)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}
