// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

// Package api contains the health check handlers for liveness and readiness probes.
package api

import (
	"log/slog"
	"net/http"

	"github.com/mandresy/fiangonana/internal/platform/respond"
)

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase func() error

	// CheckCache pings the Redis client.
	CheckCache func() error
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{"status": "ok"})
}

type dependencyCheck struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// runCheck executes a single dependency probe and records the outcome.
func (handler *healthHandler) runCheck(name string, check func() error) dependencyCheck {
	result := dependencyCheck{Name: name, IsOK: true}

	if err := check(); err != nil {
		result.IsOK = false
		result.Error = err.Error()
		handler.logger.Error("readiness_check_failed",
			slog.String("dependency", name),
			slog.Any("error", err),
		)
	}

	return result
}

// readiness handles GET /ready (Readiness probe).
//
// It reports 503 with a "degraded" status as soon as any wired dependency
// fails its ping, so orchestrators stop routing traffic to this instance.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	results := make([]dependencyCheck, 0, 2)
	isSystemReady := true

	if handler.dependencies.CheckDatabase != nil {
		result := handler.runCheck("postgres", handler.dependencies.CheckDatabase)
		isSystemReady = isSystemReady && result.IsOK
		results = append(results, result)
	}

	if handler.dependencies.CheckCache != nil {
		result := handler.runCheck("redis", handler.dependencies.CheckCache)
		isSystemReady = isSystemReady && result.IsOK
		results = append(results, result)
	}

	responseStatus := "ready"

	if !isSystemReady {
		responseStatus = "degraded"
		// We use WriteHeader manually because respond.OK always sends 200
		writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		writer.WriteHeader(http.StatusServiceUnavailable)
	}

	respond.OK(writer, map[string]any{
		"status": responseStatus,
		"checks": results,
	})
}
