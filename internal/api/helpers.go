// Reelist - Content-Based Movie Recommendation Service
// Copyright 2025 Null Pointers
// SPDX-License-Identifier: MIT
// https://github.com/Null-Pointers-2/COSC-310-Project-2025-sub000

package api

import (
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/logging"
	"github.com/Null-Pointers-2/COSC-310-Project-2025-sub000/internal/models"
)

// Error codes for API responses
const (
	errCodeValidation       = "VALIDATION_ERROR"
	errCodeNotFound         = "NOT_FOUND"
	errCodeIndexUnavailable = "INDEX_UNAVAILABLE"
	errCodeInternal         = "INTERNAL_ERROR"
)

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("failed to write JSON response")
	}
}

// respondError sends an error response
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		logger := logging.Ctx(r.Context())
		logger.Error().Str("code", code).Err(err).Msg("api error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}

// getIntParam parses an integer query parameter, falling back to def
// when absent or malformed.
func getIntParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// getBoolParam parses a boolean query parameter, treating anything but
// an explicit true value as false.
func getBoolParam(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}
