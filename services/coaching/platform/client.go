// Copyright (C) 2026 Ongoza CyberHub (eng@ongozacyberhub.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package platform is the client for the learning-platform data API.
//
// The coaching service never talks to the platform's database directly;
// it reads per-learner progress records through this keyed REST
// collaborator. All reads are idempotent, so each call gets a per-call
// timeout and one bounded retry.
package platform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/strivego254/ongozaCyberHub-sub010/services/coaching/datatypes"
)

const (
	requestTimeout = 10 * time.Second
	maxAttempts    = 2 // original attempt + one retry
	retryBackoff   = 250 * time.Millisecond

	// MentorshipSessionLimit caps the mentorship read to the most
	// recent sessions; the coach only references recent history.
	MentorshipSessionLimit = 5
)

// errNotFound marks a 404 from the data API: the learner simply has no
// record for that read yet. Every read maps it to an empty result so a
// new learner is not treated as a source outage.
var errNotFound = errors.New("learner record not found")

// HTTPClient allows injecting mock HTTP clients for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the read API the state aggregator depends on. All six reads
// are keyed by the learner's user ID.
type Client interface {
	LearnerAnalytics(ctx context.Context, userID string) (*datatypes.LearnerAnalytics, error)
	RecipeProgress(ctx context.Context, userID string) ([]datatypes.RecipeProgress, error)
	TrackProgress(ctx context.Context, userID string) (*datatypes.TrackProgress, error)
	MissionProgress(ctx context.Context, userID string) ([]datatypes.MissionProgress, error)
	CommunitySummary(ctx context.Context, userID string) (*datatypes.CommunitySummary, error)
	MentorshipSessions(ctx context.Context, userID string, limit int) ([]datatypes.MentorshipSession, error)
}

// APIClient is the HTTP implementation of Client.
type APIClient struct {
	baseURL    string
	httpClient HTTPClient
}

// NewAPIClient creates a client against the given base URL, e.g.
// "http://ongoza-data-api:8080".
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// NewAPIClientWithHTTP creates a client with an injected HTTP client.
func NewAPIClientWithHTTP(baseURL string, httpClient HTTPClient) *APIClient {
	return &APIClient{baseURL: baseURL, httpClient: httpClient}
}

func (c *APIClient) LearnerAnalytics(ctx context.Context, userID string) (*datatypes.LearnerAnalytics, error) {
	var out datatypes.LearnerAnalytics
	path := fmt.Sprintf("/v1/learners/%s/analytics", url.PathEscape(userID))
	if err := c.getJSON(ctx, path, &out); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) RecipeProgress(ctx context.Context, userID string) ([]datatypes.RecipeProgress, error) {
	var out []datatypes.RecipeProgress
	path := fmt.Sprintf("/v1/learners/%s/recipes", url.PathEscape(userID))
	if err := c.getJSON(ctx, path, &out); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

func (c *APIClient) TrackProgress(ctx context.Context, userID string) (*datatypes.TrackProgress, error) {
	var out datatypes.TrackProgress
	path := fmt.Sprintf("/v1/learners/%s/track", url.PathEscape(userID))
	if err := c.getJSON(ctx, path, &out); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) MissionProgress(ctx context.Context, userID string) ([]datatypes.MissionProgress, error) {
	var out []datatypes.MissionProgress
	path := fmt.Sprintf("/v1/learners/%s/missions", url.PathEscape(userID))
	if err := c.getJSON(ctx, path, &out); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

func (c *APIClient) CommunitySummary(ctx context.Context, userID string) (*datatypes.CommunitySummary, error) {
	var out datatypes.CommunitySummary
	path := fmt.Sprintf("/v1/learners/%s/community", url.PathEscape(userID))
	if err := c.getJSON(ctx, path, &out); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) MentorshipSessions(ctx context.Context, userID string, limit int) ([]datatypes.MentorshipSession, error) {
	var out []datatypes.MentorshipSession
	path := fmt.Sprintf("/v1/learners/%s/mentorship?limit=%d", url.PathEscape(userID), limit)
	if err := c.getJSON(ctx, path, &out); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

// getJSON fetches baseURL+path and decodes the body into out. Transport
// errors and 5xx responses are retried once; a 404 returns errNotFound
// and any other 4xx fails immediately.
func (c *APIClient) getJSON(ctx context.Context, path string, out interface{}) error {
	fullURL := c.baseURL + path

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			slog.Debug("Retrying platform read", "url", fullURL, "attempt", attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBackoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("platform request failed: %w", err)
			continue
		}

		bodyBytes, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("failed to read platform response: %w", readErr)
			continue
		}

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("platform API returned status %d: %s", resp.StatusCode, string(bodyBytes))
			continue
		}
		if resp.StatusCode == http.StatusNotFound {
			return errNotFound
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("platform API returned status %d: %s", resp.StatusCode, string(bodyBytes))
		}

		if err := json.Unmarshal(bodyBytes, out); err != nil {
			return fmt.Errorf("failed to decode platform response: %w", err)
		}
		return nil
	}
	return lastErr
}
