// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

/*
HTTP interface for statistics and dashboards.

# Routing Strategy

  - /statistiques: Full aggregates, ADMIN and RESPONSABLE only.
  - /dashboard: Role-shaped summary, any authenticated account.
*/
package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mandresy/fiangonana/internal/platform/middleware"
	requestutil "github.com/mandresy/fiangonana/internal/platform/request"
	"github.com/mandresy/fiangonana/internal/platform/respond"
	"github.com/mandresy/fiangonana/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for aggregate views.
type Handler struct {
	service *Service
}

// NewHandler constructs a new aggregates [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// StatsRoutes returns the router for /statistiques.
func (handler *Handler) StatsRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAnyRole(sec.RoleAdmin, sec.RoleResponsable))
	router.Get("/", handler.getStatistiques)
	return router
}

// DashboardRoutes returns the router for /dashboard.
func (handler *Handler) DashboardRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)
	router.Get("/", handler.getDashboard)
	return router
}

/*
GET /api/v1/statistiques.

Description: Recomputes the full registry aggregates. Nothing is cached;
every request reflects the current rows.

Response:
  - 200: Statistiques: Complete aggregate payload
  - 403: ErrForbidden: Role not in the statistics allow-list
*/
func (handler *Handler) getStatistiques(writer http.ResponseWriter, request *http.Request) {
	statistiques, err := handler.service.GetStatistiques(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, statistiques)
}

/*
GET /api/v1/dashboard.

Description: Returns the dashboard shaped for the caller's role. Unknown
roles receive the read-only shape.

Response:
  - 200: Dashboard: Role-shaped summary
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getDashboard(writer http.ResponseWriter, request *http.Request) {
	role, err := requestutil.RequiredRole(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	dashboard, err := handler.service.GetDashboard(request.Context(), role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, dashboard)
}
