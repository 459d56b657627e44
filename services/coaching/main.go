// Copyright (C) 2026 Ongoza CyberHub (eng@ongozacyberhub.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"log"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/actions"
	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/datatypes"
	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/observability"
	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/platform"
	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/routes"
	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/sessionlog"
	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/state"
	"github.com/strivego254/ongozaCyberHub-sub010/services/llm"
)

func initTracer() (func(context.Context), error) {
	ctx := context.Background()

	otelEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otelEndpoint == "" {
		otelEndpoint = "ongoza-otel-collector:4317"
	}
	conn, err := grpc.NewClient(otelEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String("coaching-service")))
	if err != nil {
		return nil, err
	}
	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.
		TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}, nil
}

// newSessionStore connects the weaviate session log. Returns nil (log
// only, lightweight mode) when the URL is absent or unusable; the
// coaching flow itself does not depend on the store.
func newSessionStore() *sessionlog.WeaviateStore {
	weaviateURL := os.Getenv("WEAVIATE_SERVICE_URL")
	// Trim quotes and whitespace in case the container runtime passes them literally.
	weaviateURL = strings.Trim(weaviateURL, "\"' ")

	if weaviateURL == "" || !strings.Contains(weaviateURL, "http") {
		slog.Info("WEAVIATE_SERVICE_URL not set or empty. Running in lightweight mode (no session log).")
		return nil
	}

	parsedURL, err := url.Parse(weaviateURL)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		slog.Warn("WEAVIATE_SERVICE_URL is invalid. Running in lightweight mode.",
			"url", weaviateURL, "error", err)
		return nil
	}

	client, err := weaviate.NewClient(weaviate.Config{
		Host:   parsedURL.Host,
		Scheme: parsedURL.Scheme,
	})
	if err != nil {
		slog.Error("Failed to create Weaviate client", "error", err)
		return nil
	}
	datatypes.EnsureWeaviateSchema(client)
	return sessionlog.NewWeaviateStore(client)
}

// newProviderRegistry constructs the two process-lifetime provider
// handles from the environment. A missing key leaves that slot nil;
// requests routed to it get a configuration error, not a crash.
func newProviderRegistry() llm.Registry {
	var registry llm.Registry

	if fast, err := llm.NewDeepSeekClient(); err == nil {
		registry.Fast = fast
		slog.Info("Configured fast provider", "provider", fast.Name(), "model", fast.Model())
	} else {
		slog.Warn("Fast provider (DeepSeek) not configured", "error", err)
	}

	if deep, err := llm.NewClaudeClient(); err == nil {
		registry.Deep = deep
		slog.Info("Configured deep provider", "provider", deep.Name(), "model", deep.Model())
	} else {
		slog.Warn("Deep provider (Claude) not configured", "error", err)
	}

	return registry
}

func main() {
	port := os.Getenv("COACHING_PORT")
	if port == "" {
		port = "12310"
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cleanup, err := initTracer()
	if err != nil {
		log.Fatalf("failed to setup the OTLP tracer: %v", err)
	}
	defer cleanup(context.Background())

	metrics := observability.InitMetrics()

	platformURL := os.Getenv("PLATFORM_API_URL")
	if platformURL == "" {
		platformURL = "http://ongoza-data-api:8080"
		slog.Warn("PLATFORM_API_URL not set, defaulting to", "url", platformURL)
	}
	aggregator := state.New(platform.NewAPIClient(platformURL), metrics)

	registry := newProviderRegistry()
	dispatcher := actions.NewDispatcher()

	var store sessionlog.Store
	if ws := newSessionStore(); ws != nil {
		store = ws
	}
	persister := sessionlog.NewPersister(store)

	router := gin.Default()
	router.Use(otelgin.Middleware("coaching-service"))

	routes.SetupRoutes(router, aggregator, registry, dispatcher, persister, metrics)
	log.Println("started up the container")

	log.Println("Starting the coaching server on port ", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
