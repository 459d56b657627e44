// Copyright (C) 2026 Ongoza CyberHub (eng@ongozacyberhub.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package state aggregates a learner's cross-system progress snapshot.
package state

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/datatypes"
	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/observability"
	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/platform"
	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/routing"
)

// Aggregator fetches and normalizes a learner's progress state from the
// platform data API. Metrics may be nil in tests; the recording helpers
// are nil-safe.
type Aggregator struct {
	api     platform.Client
	metrics *observability.CoachingMetrics
}

func New(api platform.Client, metrics *observability.CoachingMetrics) *Aggregator {
	return &Aggregator{api: api, metrics: metrics}
}

// Aggregate issues the six progress reads concurrently and joins them
// all-or-nothing: if any single read fails, the entire snapshot is
// replaced by the fixed default state rather than a partial merge. The
// caller always gets a usable state; degradation is logged, never
// surfaced as an error.
func (a *Aggregator) Aggregate(ctx context.Context, userID string) *datatypes.LearnerState {
	var (
		analytics  *datatypes.LearnerAnalytics
		recipes    []datatypes.RecipeProgress
		track      *datatypes.TrackProgress
		missions   []datatypes.MissionProgress
		community  *datatypes.CommunitySummary
		mentorship []datatypes.MentorshipSession
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		analytics, err = a.api.LearnerAnalytics(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		recipes, err = a.api.RecipeProgress(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		track, err = a.api.TrackProgress(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		missions, err = a.api.MissionProgress(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		community, err = a.api.CommunitySummary(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		mentorship, err = a.api.MentorshipSessions(gctx, userID, platform.MentorshipSessionLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		slog.Warn("State aggregation degraded to defaults", "user_id", userID, "error", err)
		a.metrics.RecordAggregationDefault()
		return datatypes.DefaultLearnerState()
	}

	return build(analytics, recipes, track, missions, community, mentorship)
}

// build computes the derived fields and assembles the snapshot.
func build(
	analytics *datatypes.LearnerAnalytics,
	recipes []datatypes.RecipeProgress,
	track *datatypes.TrackProgress,
	missions []datatypes.MissionProgress,
	community *datatypes.CommunitySummary,
	mentorship []datatypes.MentorshipSession,
) *datatypes.LearnerState {
	coverage := summarizeRecipes(recipes)
	stats := summarizeMissions(missions)

	trackCode := datatypes.DefaultTrackCode
	circleLevel := 1
	if track != nil {
		if track.TrackCode != "" {
			trackCode = track.TrackCode
		}
		if track.CircleLevel > 1 {
			circleLevel = track.CircleLevel
		}
	}

	return &datatypes.LearnerState{
		Analytics:          analytics,
		RecipeCoverage:     coverage,
		TrackProgress:      track,
		MissionStats:       stats,
		Community:          community,
		MentorshipSessions: mentorship,
		TrackCode:          trackCode,
		CircleLevel:        circleLevel,
		Complexity: routing.ScoreComplexity(
			stats.Failed, stats.Total, stats.CompletionRate, coverage.Percentage),
	}
}

func summarizeRecipes(recipes []datatypes.RecipeProgress) *datatypes.RecipeCoverage {
	coverage := &datatypes.RecipeCoverage{
		Total:   len(recipes),
		Recipes: recipes,
	}
	for _, r := range recipes {
		if r.Status == "completed" {
			coverage.Completed++
		}
	}
	if coverage.Total > 0 {
		coverage.Percentage = float64(coverage.Completed) / float64(coverage.Total) * 100
	}
	return coverage
}

func summarizeMissions(missions []datatypes.MissionProgress) *datatypes.MissionStats {
	stats := &datatypes.MissionStats{
		Total:    len(missions),
		Missions: missions,
	}
	for _, m := range missions {
		switch m.Status {
		case "completed":
			stats.Completed++
		case "failed":
			stats.Failed++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total) * 100
	}
	return stats
}
