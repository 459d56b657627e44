// Copyright (C) 2026 Ongoza CyberHub (eng@ongozacyberhub.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/actions"
	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/datatypes"
	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/sessionlog"
	"github.com/strivego254/ongozaCyberHub-sub010/services/llm"
)

type stubAggregator struct{}

func (stubAggregator) Aggregate(_ context.Context, _ string) *datatypes.LearnerState {
	return datatypes.DefaultLearnerState()
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, stubAggregator{}, llm.Registry{}, actions.NewDispatcher(), sessionlog.NewPersister(nil), nil)
	return router
}

func TestSetupRoutes_RegistersEndpoints(t *testing.T) {
	router := newTestRouter()

	registered := make(map[string]string)
	for _, route := range router.Routes() {
		registered[route.Path] = route.Method
	}

	assert.Equal(t, "GET", registered["/health"])
	assert.Equal(t, "GET", registered["/metrics"])
	assert.Equal(t, "POST", registered["/coaching/session"])
}

func TestSetupRoutes_HealthResponds(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req, err := http.NewRequest("GET", "/health", nil)
	require.NoError(t, err)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRoutes_MetricsResponds(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req, err := http.NewRequest("GET", "/metrics", nil)
	require.NoError(t, err)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
