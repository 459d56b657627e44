// Copyright (C) 2026 Ongoza CyberHub (eng@ongozacyberhub.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package validation provides input validation utilities for
// security-critical operations.
//
// This package contains validators for user-provided inputs that end up
// in outbound request paths or database queries. Using these validators
// prevents injection attacks (path traversal, query injection).
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// userIDPattern matches valid learner identifiers.
// Allows: letters, digits, hyphens, underscores (covers UUIDs and slugs).
// Max length: 64 characters.
var userIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_\-]{0,63}$`)

// ValidateUserID validates a learner identifier before it is used in an
// outbound URL path or a log-store query.
//
// Valid IDs:
//   - 1-64 characters
//   - Letters, digits
//   - Hyphens (-) and underscores (_), not leading
//
// Returns an error if the ID is invalid.
//
// Example:
//
//	if err := validation.ValidateUserID(userID); err != nil {
//	    return nil, fmt.Errorf("invalid user id: %w", err)
//	}
func ValidateUserID(userID string) error {
	if userID == "" {
		return fmt.Errorf("user id cannot be empty")
	}
	if !userIDPattern.MatchString(userID) {
		return fmt.Errorf("invalid user id format: %q (must be 1-64 alphanumeric chars, hyphens, or underscores)", userID)
	}
	return nil
}

// SanitizeUserID normalizes and validates a learner identifier.
// Returns the trimmed ID if valid, or an error if invalid.
func SanitizeUserID(userID string) (string, error) {
	normalized := strings.TrimSpace(userID)
	if err := ValidateUserID(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}
