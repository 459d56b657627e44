// Copyright (C) 2026 Ongoza CyberHub (eng@ongozacyberhub.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package datatypes provides data structures for the coaching service.
//
// This file contains the learner progress snapshot types. Request and
// response types for the coaching endpoint live in coaching.go; the
// model-generated advice types live in advice.go.
package datatypes

// DefaultTrackCode is the curriculum track assigned when a learner's
// track progress cannot be read.
const DefaultTrackCode = "SOCDEFENSE"

// LearnerAnalytics is the platform analytics record for a single learner.
// All fields are optional; a new learner may have an empty record.
type LearnerAnalytics struct {
	UserID          string `json:"user_id"`
	LoginStreakDays int    `json:"login_streak_days,omitempty"`
	MinutesActive7d int    `json:"minutes_active_7d,omitempty"`
	LastActiveAt    string `json:"last_active_at,omitempty"`
}

// RecipeProgress is one curriculum recipe and the learner's status on it.
type RecipeProgress struct {
	RecipeID    string `json:"recipe_id"`
	Title       string `json:"title,omitempty"`
	Status      string `json:"status"` // "completed", "in_progress", "not_started"
	CompletedAt string `json:"completed_at,omitempty"`
}

// RecipeCoverage summarizes how much of the curriculum's recipes the
// learner has completed. Percentage is derived, not stored.
type RecipeCoverage struct {
	Percentage float64          `json:"percentage"`
	Completed  int              `json:"completed"`
	Total      int              `json:"total"`
	Recipes    []RecipeProgress `json:"recipes,omitempty"`
}

// TrackProgress is the learner's position on a curriculum track.
type TrackProgress struct {
	TrackCode   string  `json:"track_code"`
	CircleLevel int     `json:"circle_level"`
	Milestone   string  `json:"milestone,omitempty"`
	Percent     float64 `json:"percent,omitempty"`
}

// MissionProgress is one hands-on mission attempt.
type MissionProgress struct {
	MissionID string  `json:"mission_id"`
	Title     string  `json:"title,omitempty"`
	Status    string  `json:"status"` // "completed", "failed", "in_progress"
	Score     float64 `json:"score,omitempty"`
}

// MissionStats summarizes the learner's mission attempts.
// CompletionRate is derived, not stored.
type MissionStats struct {
	Completed      int               `json:"completed"`
	Failed         int               `json:"failed"`
	Total          int               `json:"total"`
	CompletionRate float64           `json:"completion_rate"`
	Missions       []MissionProgress `json:"missions,omitempty"`
}

// CommunitySummary is the learner's recent community activity.
type CommunitySummary struct {
	Posts      int    `json:"posts"`
	Replies    int    `json:"replies"`
	Upvotes    int    `json:"upvotes"`
	LastPostAt string `json:"last_post_at,omitempty"`
}

// MentorshipSession is one past mentorship session.
type MentorshipSession struct {
	SessionID  string `json:"session_id"`
	MentorName string `json:"mentor_name,omitempty"`
	Topic      string `json:"topic,omitempty"`
	HeldAt     string `json:"held_at,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// LearnerState is the aggregated, read-only progress snapshot for one
// learner. It is built fresh per request by the state aggregator and
// never mutated after construction.
//
// Invariants: Complexity is in [0,1]; CircleLevel >= 1.
type LearnerState struct {
	Analytics          *LearnerAnalytics   `json:"analytics,omitempty"`
	RecipeCoverage     *RecipeCoverage     `json:"recipe_coverage,omitempty"`
	TrackProgress      *TrackProgress      `json:"track_progress,omitempty"`
	MissionStats       *MissionStats       `json:"mission_stats,omitempty"`
	Community          *CommunitySummary   `json:"community,omitempty"`
	MentorshipSessions []MentorshipSession `json:"mentorship_sessions,omitempty"`
	TrackCode          string              `json:"track_code"`
	CircleLevel        int                 `json:"circle_level"`
	Complexity         float64             `json:"complexity"`
}

// DefaultLearnerState returns the fixed minimal state used when any of
// the progress reads fails. Callers always get a usable state; on a
// partial-source outage the whole snapshot is replaced, never merged.
func DefaultLearnerState() *LearnerState {
	return &LearnerState{
		TrackCode:   DefaultTrackCode,
		CircleLevel: 1,
		Complexity:  0.5,
	}
}
