// Copyright (C) 2026 Ongoza CyberHub (eng@ongozacyberhub.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package sessionlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/datatypes"
)

// mockStore implements Store for persister testing.
type mockStore struct {
	saveErr error
	saved   []*datatypes.SessionRecord
}

func (m *mockStore) SaveSession(_ context.Context, record *datatypes.SessionRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, record)
	return nil
}

func testRecord() *datatypes.SessionRecord {
	return datatypes.NewSessionRecord("user-1", "daily", "dashboard",
		datatypes.AdviceDocument{Greeting: "Hi", Diagnosis: "Fine"}, "deepseek-chat")
}

func TestPersist_SavesRecord(t *testing.T) {
	store := &mockStore{}
	p := NewPersister(store)

	p.Persist(context.Background(), testRecord())

	require.Len(t, store.saved, 1)
	assert.Equal(t, "user-1", store.saved[0].UserID)
	assert.Equal(t, "deepseek-chat", store.saved[0].ModelUsed)
}

func TestPersist_StoreFailureIsSwallowed(t *testing.T) {
	store := &mockStore{saveErr: errors.New("class CoachingSession does not exist")}
	p := NewPersister(store)

	// Best-effort contract: no panic, no error escapes.
	p.Persist(context.Background(), testRecord())
	assert.Empty(t, store.saved)
}

func TestPersist_NilStoreIsLightweightMode(t *testing.T) {
	p := NewPersister(nil)
	p.Persist(context.Background(), testRecord())
}

func TestNewSessionRecord_PopulatesIdentity(t *testing.T) {
	record := testRecord()
	assert.NotEmpty(t, record.RecordID)
	assert.NotZero(t, record.CreatedAt)
	assert.Equal(t, "daily", record.Trigger)
	assert.Equal(t, "dashboard", record.Context)
}
