// Copyright (C) 2026 Ongoza CyberHub (eng@ongozacyberhub.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/actions"
	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/handlers"
	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/observability"
	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/sessionlog"
	"github.com/strivego254/ongozaCyberHub-sub010/services/llm"
)

// SetupRoutes registers the coaching service's endpoints. The persister
// may wrap a nil store (lightweight mode); everything else is required.
func SetupRoutes(
	router *gin.Engine,
	aggregator handlers.StateAggregator,
	registry llm.Registry,
	dispatcher *actions.Dispatcher,
	persister *sessionlog.Persister,
	metrics *observability.CoachingMetrics,
) {
	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	coaching := router.Group("/coaching")
	{
		coaching.POST("/session", handlers.HandleCoachingSession(
			aggregator, registry, dispatcher, persister, metrics))
	}
}
