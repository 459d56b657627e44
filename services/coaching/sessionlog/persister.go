// Copyright (C) 2026 Ongoza CyberHub (eng@ongozacyberhub.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package sessionlog appends finished coaching sessions to the log
// store. Persistence is best-effort by contract: a failed write is
// logged and otherwise ignored, and never changes the response already
// prepared for the caller.
package sessionlog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"

	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/datatypes"
)

// Store is the insert-only session log collaborator.
type Store interface {
	SaveSession(ctx context.Context, record *datatypes.SessionRecord) error
}

// WeaviateStore writes session records into the CoachingSession class.
type WeaviateStore struct {
	client *weaviate.Client
}

func NewWeaviateStore(client *weaviate.Client) *WeaviateStore {
	return &WeaviateStore{client: client}
}

// SaveSession implements Store. The advice document is stored as a JSON
// text property so the log survives advice schema evolution.
func (s *WeaviateStore) SaveSession(ctx context.Context, record *datatypes.SessionRecord) error {
	adviceJSON, err := json.Marshal(record.Advice)
	if err != nil {
		return fmt.Errorf("failed to marshal advice document: %w", err)
	}

	properties := map[string]interface{}{
		"record_id":   record.RecordID,
		"user_id":     record.UserID,
		"trigger":     record.Trigger,
		"context":     record.Context,
		"advice_json": string(adviceJSON),
		"model_used":  record.ModelUsed,
		"created_at":  record.CreatedAt,
	}

	_, err = s.client.Data().Creator().
		WithClassName("CoachingSession").
		WithProperties(properties).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to save CoachingSession object: %w", err)
	}
	return nil
}

// Persister wraps a Store with the best-effort contract. A nil store
// means the service runs in lightweight mode and sessions are only
// logged.
type Persister struct {
	store Store
}

func NewPersister(store Store) *Persister {
	return &Persister{store: store}
}

// Persist appends the record, swallowing any failure.
func (p *Persister) Persist(ctx context.Context, record *datatypes.SessionRecord) {
	if p == nil || p.store == nil {
		slog.Info("Session log disabled, skipping persist", "user_id", record.UserID, "record_id", record.RecordID)
		return
	}
	if err := p.store.SaveSession(ctx, record); err != nil {
		slog.Error("Failed to persist coaching session", "user_id", record.UserID,
			"record_id", record.RecordID, "error", err)
		return
	}
	slog.Info("Persisted coaching session", "user_id", record.UserID, "record_id", record.RecordID)
}
