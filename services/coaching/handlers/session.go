// Copyright (C) 2026 Ongoza CyberHub (eng@ongozacyberhub.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package handlers contains the gin handlers of the coaching service.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/strivego254/ongozaCyberHub-sub010/pkg/validation"
	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/actions"
	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/advice"
	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/datatypes"
	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/observability"
	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/prompt"
	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/routing"
	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/sessionlog"
	"github.com/strivego254/ongozaCyberHub-sub010/services/llm"
)

var sessionTracer = otel.Tracer("ongoza.coaching.handlers")

// StateAggregator is the snapshot dependency of the session handler.
// Satisfied by *state.Aggregator; kept as an interface so tests can
// inject a fixed snapshot.
type StateAggregator interface {
	Aggregate(ctx context.Context, userID string) *datatypes.LearnerState
}

// HandleCoachingSession orchestrates one coaching session:
// aggregate state, route to a provider, build the prompt, call the
// model, parse the advice, dispatch follow-up actions, persist the
// session log, respond.
//
// Only validation, configuration, and provider failures change the
// HTTP response; aggregation, parse, dispatch, and persistence failures
// all degrade silently to safe defaults.
func HandleCoachingSession(
	aggregator StateAggregator,
	registry llm.Registry,
	dispatcher *actions.Dispatcher,
	persister *sessionlog.Persister,
	metrics *observability.CoachingMetrics,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := sessionTracer.Start(c.Request.Context(), "HandleCoachingSession")
		defer span.End()

		var req datatypes.CoachingSessionRequest
		if err := c.BindJSON(&req); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("Failed to parse the coaching request", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		if req.UserID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id required"})
			return
		}
		userID, err := validation.SanitizeUserID(req.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return
		}
		req.UserID = userID
		if err := req.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		req.EnsureDefaults()

		// Aggregation never fails; a source outage yields the default
		// snapshot and the request proceeds.
		learnerState := aggregator.Aggregate(ctx, req.UserID)

		decision := routing.Route(req.Trigger, learnerState.Complexity)
		slog.Info("Routed coaching request", "user_id", req.UserID,
			"trigger", req.Trigger, "complexity", learnerState.Complexity,
			"provider", decision.Provider)

		client, err := registry.Get(decision.Provider)
		if err != nil {
			var notConfigured *llm.NotConfiguredError
			if errors.As(err, &notConfigured) {
				span.SetStatus(codes.Error, err.Error())
				slog.Error("Routed provider is not configured", "provider", decision.Provider)
				metrics.RecordSession(decision.Provider, false)
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": err.Error(),
					"model": llm.DefaultModel(decision.Provider),
				})
				return
			}
			span.RecordError(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Coaching failed", "message": err.Error()})
			return
		}

		var messages []llm.Message
		var params llm.GenerationParams
		switch decision.Provider {
		case llm.ProviderClaude:
			messages, params = prompt.BuildClaudePrompt(learnerState, req.Context)
		default:
			messages, params = prompt.BuildDeepSeekPrompt(learnerState, req.Context)
		}

		start := time.Now()
		rawText, err := client.Complete(ctx, messages, params)
		metrics.RecordProviderLatency(decision.Provider, time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("Provider completion failed", "provider", decision.Provider, "error", err)
			metrics.RecordSession(decision.Provider, false)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Coaching failed", "message": err.Error()})
			return
		}

		adviceDoc, parsed := advice.Parse(rawText)
		if !parsed {
			slog.Warn("Model output was not valid advice JSON, serving fallback",
				"provider", decision.Provider, "user_id", req.UserID)
			metrics.RecordFallback()
		}

		dispatcher.Dispatch(ctx, adviceDoc.Actions, req.UserID)

		record := datatypes.NewSessionRecord(req.UserID, req.Trigger, req.Context, adviceDoc, client.Model())
		persister.Persist(ctx, record)

		metrics.RecordSession(decision.Provider, true)
		c.JSON(http.StatusOK, datatypes.CoachingSessionResponse{
			Session: datatypes.SessionSummary{
				UserID:  req.UserID,
				Trigger: req.Trigger,
				Context: req.Context,
			},
			Advice: adviceDoc,
			Model:  client.Model(),
		})
	}
}
