// Copyright (C) 2026 Ongoza CyberHub (eng@ongozacyberhub.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package actions dispatches the follow-up actions a coaching advice
// document carries. Handlers are registered per action type so new
// action kinds are additive; the orchestrator never changes.
package actions

import (
	"context"
	"log/slog"

	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/datatypes"
)

// Well-known action types emitted by the coaching prompts.
const (
	TypeSendNudge  = "send_nudge"
	TypeUpdatePath = "update_path"
)

// Handler executes the side effect for one action type.
type Handler interface {
	Handle(ctx context.Context, userID string, action datatypes.Action) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, userID string, action datatypes.Action) error

func (f HandlerFunc) Handle(ctx context.Context, userID string, action datatypes.Action) error {
	return f(ctx, userID, action)
}

// Dispatcher routes advice actions to registered handlers. It is built
// once at startup and read-only afterwards; Register is not safe to
// call concurrently with Dispatch.
type Dispatcher struct {
	handlers map[string]Handler
}

// NewDispatcher creates a dispatcher with logging no-op handlers for
// the well-known action types. The delivery integrations (notifications
// service, path editor) plug in here once they exist.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{handlers: make(map[string]Handler)}
	d.Register(TypeSendNudge, HandlerFunc(logOnly))
	d.Register(TypeUpdatePath, HandlerFunc(logOnly))
	return d
}

// Register installs or replaces the handler for an action type.
func (d *Dispatcher) Register(actionType string, h Handler) {
	d.handlers[actionType] = h
}

// Dispatch runs the actions in order. Unregistered types are logged and
// skipped, and a failing handler never aborts the remaining actions or
// the response already computed for the caller.
func (d *Dispatcher) Dispatch(ctx context.Context, acts []datatypes.Action, userID string) {
	for _, action := range acts {
		handler, ok := d.handlers[action.Type]
		if !ok {
			slog.Warn("Skipping unregistered advice action", "type", action.Type, "user_id", userID)
			continue
		}
		if err := handler.Handle(ctx, userID, action); err != nil {
			slog.Error("Advice action handler failed", "type", action.Type, "user_id", userID, "error", err)
		}
	}
}

func logOnly(_ context.Context, userID string, action datatypes.Action) error {
	slog.Info("Advice action received", "type", action.Type, "target", action.Target, "user_id", userID)
	return nil
}
