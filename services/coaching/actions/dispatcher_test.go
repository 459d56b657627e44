// Copyright (C) 2026 Ongoza CyberHub (eng@ongozacyberhub.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package actions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/datatypes"
)

func TestDispatch_RunsHandlersInOrder(t *testing.T) {
	d := NewDispatcher()

	var got []string
	d.Register("a", HandlerFunc(func(_ context.Context, _ string, action datatypes.Action) error {
		got = append(got, "a:"+action.Target)
		return nil
	}))
	d.Register("b", HandlerFunc(func(_ context.Context, _ string, action datatypes.Action) error {
		got = append(got, "b:"+action.Target)
		return nil
	}))

	d.Dispatch(context.Background(), []datatypes.Action{
		{Type: "b", Target: "first"},
		{Type: "a", Target: "second"},
		{Type: "b", Target: "third"},
	}, "user-1")

	assert.Equal(t, []string{"b:first", "a:second", "b:third"}, got)
}

func TestDispatch_SkipsUnregisteredTypes(t *testing.T) {
	d := NewDispatcher()

	var calls int
	d.Register("known", HandlerFunc(func(_ context.Context, _ string, _ datatypes.Action) error {
		calls++
		return nil
	}))

	d.Dispatch(context.Background(), []datatypes.Action{
		{Type: "unknown_type"},
		{Type: "known"},
		{Type: "another_unknown"},
	}, "user-1")

	assert.Equal(t, 1, calls)
}

func TestDispatch_HandlerFailureDoesNotAbortRemaining(t *testing.T) {
	d := NewDispatcher()

	var got []string
	d.Register("boom", HandlerFunc(func(_ context.Context, _ string, _ datatypes.Action) error {
		got = append(got, "boom")
		return errors.New("handler exploded")
	}))
	d.Register("ok", HandlerFunc(func(_ context.Context, _ string, _ datatypes.Action) error {
		got = append(got, "ok")
		return nil
	}))

	d.Dispatch(context.Background(), []datatypes.Action{
		{Type: "boom"},
		{Type: "ok"},
		{Type: "boom"},
		{Type: "ok"},
	}, "user-1")

	assert.Equal(t, []string{"boom", "ok", "boom", "ok"}, got)
}

func TestDispatch_EmptyActionListIsNoop(t *testing.T) {
	d := NewDispatcher()
	// Must not panic on nil or empty input.
	d.Dispatch(context.Background(), nil, "user-1")
	d.Dispatch(context.Background(), []datatypes.Action{}, "user-1")
}

func TestNewDispatcher_RegistersWellKnownTypes(t *testing.T) {
	d := NewDispatcher()
	_, hasNudge := d.handlers[TypeSendNudge]
	_, hasPath := d.handlers[TypeUpdatePath]
	assert.True(t, hasNudge)
	assert.True(t, hasPath)
}

func TestDispatch_PassesUserIDAndPayload(t *testing.T) {
	d := NewDispatcher()

	var gotUser string
	var gotPayload map[string]interface{}
	d.Register(TypeSendNudge, HandlerFunc(func(_ context.Context, userID string, action datatypes.Action) error {
		gotUser = userID
		gotPayload = action.Payload
		return nil
	}))

	d.Dispatch(context.Background(), []datatypes.Action{
		{Type: TypeSendNudge, Payload: map[string]interface{}{"channel": "email"}},
	}, "user-42")

	assert.Equal(t, "user-42", gotUser)
	assert.Equal(t, "email", gotPayload["channel"])
}
