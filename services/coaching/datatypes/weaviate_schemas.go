// Copyright (C) 2026 Ongoza CyberHub (eng@ongozacyberhub.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import (
	"context"
	"log"
	"log/slog"

	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate/entities/models"
)

// GetCoachingSessionSchema returns the Weaviate class for the
// append-only coaching session log.
//
// # Properties
//
//   - record_id: UUID of the log entry.
//   - user_id: Learner the session was for.
//   - trigger: Caller-supplied reason code ("daily", "escalation", ...).
//   - context: Free-text request context.
//   - advice_json: The full AdviceDocument serialized as JSON.
//   - model_used: Identifier of the model that produced the advice.
//   - created_at: Unix milliseconds when the session completed.
func GetCoachingSessionSchema() *models.Class {
	indexFilterable := new(bool)
	*indexFilterable = true

	return &models.Class{
		Class:       "CoachingSession",
		Description: "One completed coaching session and the advice it produced.",
		Vectorizer:  "none",
		InvertedIndexConfig: &models.InvertedIndexConfig{
			IndexTimestamps: true,
		},
		Properties: []*models.Property{
			{
				Name:            "record_id",
				DataType:        []string{"text"},
				Description:     "UUID of this log entry.",
				IndexFilterable: indexFilterable,
				Tokenization:    "field",
			},
			{
				Name:            "user_id",
				DataType:        []string{"text"},
				Description:     "Learner this session was for.",
				IndexFilterable: indexFilterable,
				Tokenization:    "field",
			},
			{
				Name:            "trigger",
				DataType:        []string{"text"},
				Description:     "Caller-supplied reason code for the session.",
				IndexFilterable: indexFilterable,
				Tokenization:    "field",
			},
			{
				Name:        "context",
				DataType:    []string{"text"},
				Description: "Free-text request context.",
			},
			{
				Name:        "advice_json",
				DataType:    []string{"text"},
				Description: "The advice document serialized as JSON.",
			},
			{
				Name:            "model_used",
				DataType:        []string{"text"},
				Description:     "Identifier of the model that produced the advice.",
				IndexFilterable: indexFilterable,
				Tokenization:    "field",
			},
			{
				Name:            "created_at",
				DataType:        []string{"number"},
				Description:     "Unix milliseconds when the session completed.",
				IndexFilterable: indexFilterable,
			},
		},
	}
}

// EnsureWeaviateSchema creates any missing coaching classes. Creation
// failure is fatal; a session log with a half-created schema would fail
// every insert afterwards.
func EnsureWeaviateSchema(client *weaviate.Client) {
	schemaGetters := []func() *models.Class{
		GetCoachingSessionSchema,
	}

	for _, getSchema := range schemaGetters {
		class := getSchema()
		slog.Info("Checking schema", "class", class.Class)

		_, err := client.Schema().ClassGetter().WithClassName(class.Class).Do(context.Background())
		if err != nil {
			// The client errors when the class does not exist yet.
			slog.Info("Schema not found, creating it...", "class", class.Class)
			err := client.Schema().ClassCreator().WithClass(class).Do(context.Background())
			if err != nil {
				log.Fatalf("Failed to create schema for class %s: %v", class.Class, err)
			}
			slog.Info("Successfully created schema", "class", class.Class)
		} else {
			slog.Info("Schema already exists", "class", class.Class)
		}
	}
}
