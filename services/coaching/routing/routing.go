// Copyright (C) 2026 Ongoza CyberHub (eng@ongozacyberhub.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package routing holds the pure decision logic of the coaching
// orchestrator: the complexity scorer and the provider routing policy.
// Nothing in this package performs I/O.
package routing

import (
	"github.com/strivego254/ongozaCyberHub-sub010/services/llm"
)

// ComplexityThreshold is the score at or above which a non-daily
// request is routed to the deep provider.
const ComplexityThreshold = 0.7

// TriggerDaily always routes to the fast provider regardless of the
// learner's complexity score.
const TriggerDaily = "daily"

// Decision is the immutable result of routing one request.
type Decision struct {
	Provider string // llm.ProviderDeepSeek or llm.ProviderClaude
}

// Route maps (trigger, complexity) to a provider. Daily check-ins and
// low-complexity learners go to the fast provider; everything else goes
// to the deep provider. No other inputs affect routing.
func Route(trigger string, complexity float64) Decision {
	if trigger == TriggerDaily || complexity < ComplexityThreshold {
		return Decision{Provider: llm.ProviderDeepSeek}
	}
	return Decision{Provider: llm.ProviderClaude}
}

// ScoreComplexity derives the 0-1 difficulty/risk signal from raw
// mission and recipe metrics:
//
//	min(1, failRate*0.5 + (completionRate<50 ? 0.3 : 0) + (coverage<30 ? 0.2 : 0))
//
// failed/total uses max(total, 1) as the divisor, so total=0 yields a
// zero fail rate rather than a division by zero. completionRate and
// recipeCoverage are percentages in [0,100].
func ScoreComplexity(failed, total int, completionRate, recipeCoverage float64) float64 {
	divisor := total
	if divisor < 1 {
		divisor = 1
	}
	score := float64(failed) / float64(divisor) * 0.5
	if completionRate < 50 {
		score += 0.3
	}
	if recipeCoverage < 30 {
		score += 0.2
	}
	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
