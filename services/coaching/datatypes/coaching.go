// Copyright (C) 2026 Ongoza CyberHub (eng@ongozacyberhub.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	// MaxContextBytes is the maximum size of the free-text context string.
	// Oversized payloads are rejected before any prompt is built.
	MaxContextBytes = 8 * 1024 // 8KB

	// DefaultContext is used when the caller omits the context field.
	DefaultContext = "dashboard"

	// DefaultTrigger is used when the caller omits the trigger field.
	// "daily" always routes to the fast provider.
	DefaultTrigger = "daily"
)

// coachingValidate is the validator instance for coaching datatypes.
var coachingValidate *validator.Validate

func init() {
	coachingValidate = validator.New()
	_ = coachingValidate.RegisterValidation("maxbytes", validateContextBytes)
}

// validateContextBytes checks byte length (not rune count) so large
// multi-byte payloads cannot slip past a rune-based limit.
func validateContextBytes(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= MaxContextBytes
}

// CoachingSessionRequest is the body of POST /coaching/session.
//
// # Fields
//
//   - UserID: Required. The learner the session is for.
//   - Context: Optional. Free-text description of where the request came
//     from (e.g. "dashboard", "mission_review"). Defaults to "dashboard".
//   - Trigger: Optional. Caller-supplied reason code ("daily",
//     "escalation", ...). Defaults to "daily". Only the "daily" value is
//     special-cased by routing.
//
// # Validation
//
// UserID presence is checked by the handler so the documented
// `{"error": "user_id required"}` body is returned verbatim; the
// validator covers size limits on the remaining fields.
type CoachingSessionRequest struct {
	UserID  string `json:"user_id" validate:"required,max=64"`
	Context string `json:"context" validate:"maxbytes"`
	Trigger string `json:"trigger" validate:"max=64"`
}

// Validate validates the request fields using the shared validator.
func (r *CoachingSessionRequest) Validate() error {
	return coachingValidate.Struct(r)
}

// EnsureDefaults populates the optional fields the caller omitted.
func (r *CoachingSessionRequest) EnsureDefaults() {
	if r.Context == "" {
		r.Context = DefaultContext
	}
	if r.Trigger == "" {
		r.Trigger = DefaultTrigger
	}
}

// SessionSummary echoes the request identity back to the caller.
type SessionSummary struct {
	UserID  string `json:"user_id"`
	Trigger string `json:"trigger"`
	Context string `json:"context"`
}

// CoachingSessionResponse is the 200 body of POST /coaching/session.
// Model is the identifier of the model that actually produced the
// advice (e.g. "deepseek-chat").
type CoachingSessionResponse struct {
	Session SessionSummary `json:"session"`
	Advice  AdviceDocument `json:"advice"`
	Model   string         `json:"model"`
}

// SessionRecord is the append-only log entry written after a coaching
// session completes. A failed write never changes the response already
// computed for the caller.
type SessionRecord struct {
	RecordID  string         `json:"record_id"`
	UserID    string         `json:"user_id"`
	Trigger   string         `json:"trigger"`
	Context   string         `json:"context"`
	Advice    AdviceDocument `json:"advice"`
	ModelUsed string         `json:"model_used"`
	CreatedAt int64          `json:"created_at"` // Unix milliseconds, UTC
}

// NewSessionRecord builds a SessionRecord with a fresh ID and timestamp.
func NewSessionRecord(userID, trigger, context string, advice AdviceDocument, modelUsed string) *SessionRecord {
	return &SessionRecord{
		RecordID:  uuid.NewString(),
		UserID:    userID,
		Trigger:   trigger,
		Context:   context,
		Advice:    advice,
		ModelUsed: modelUsed,
		CreatedAt: time.Now().UnixMilli(),
	}
}
