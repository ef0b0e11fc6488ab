// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

/*
HTTP interface for parish group management.

# Routing Strategy

  - Reads: Any authenticated role may list groups and rosters.
  - Mutations: Group and roster changes are ADMIN only.

The handler translates between the REST layer and the [Service] domain.
*/
package groupe

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mandresy/fiangonana/internal/platform/middleware"
	requestutil "github.com/mandresy/fiangonana/internal/platform/request"
	"github.com/mandresy/fiangonana/internal/platform/respond"
	"github.com/mandresy/fiangonana/internal/platform/sec"
	"github.com/mandresy/fiangonana/internal/platform/validate"
	"github.com/mandresy/fiangonana/pkg/pagination"
	"github.com/mandresy/fiangonana/pkg/pointer"
)

// # Handler Implementation

// Handler implements the HTTP layer for group operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new group [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with group endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	// ## Reads (any authenticated role)
	router.Get("/", handler.listGroupes)
	router.Get("/{id}", handler.getGroupe)
	router.Get("/{id}/membres", handler.listMembres)

	// ## Mutations (ADMIN only)
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAnyRole(sec.RoleAdmin))
		r.Post("/", handler.createGroupe)
		r.Put("/{id}", handler.updateGroupe)
		r.Delete("/{id}", handler.deleteGroupe)
		r.Post("/{id}/membres", handler.addMembre)
		r.Delete("/{id}/membres/{adherentID}", handler.removeMembre)
	})

	return router
}

// # Request Payloads

type groupeRequest struct {
	Nom         string `json:"nom"`
	Description string `json:"description"`
}

type addMembreRequest struct {
	AdherentID   string `json:"adherent_id"`
	DateAdhesion string `json:"date_adhesion"`
}

// # Group Endpoints

/*
GET /api/v1/groupes.

Description: Retrieves the group list ordered by nom. The optional `q`
parameter applies a case- and accent-insensitive substring filter over nom
and description.

Request:
  - q: string (Search term)
  - limit: int
  - page: int

Response:
  - 200: []Groupe: Paginated list
*/
func (handler *Handler) listGroupes(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query: request.URL.Query().Get("q"),
	}

	groupes, total, err := handler.service.ListGroupes(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, groupes, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/groupes/{id}.

Description: Retrieves full details of one group.

Request:
  - id: string (UUID)

Response:
  - 200: Groupe: Success
  - 404: ErrNotFound: Group not found
*/
func (handler *Handler) getGroupe(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	groupe, err := handler.service.GetGroupe(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, groupe)
}

/*
POST /api/v1/groupes.

Description: Registers a new group. Nom is mandatory and unique.

Request (Body):
  - groupeRequest JSON object

Response:
  - 201: Groupe: Created record
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 403: ErrForbidden: ADMIN only
  - 409: ErrConflict: Nom already exists
*/
func (handler *Handler) createGroupe(writer http.ResponseWriter, request *http.Request) {
	var input groupeRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldNom, input.Nom).MaxLen(FieldNom, input.Nom, 150)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	groupe := &Groupe{
		Nom: input.Nom,
	}
	if input.Description != "" {
		groupe.Description = pointer.To(input.Description)
	}

	if err := handler.service.CreateGroupe(request.Context(), groupe); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, groupe)
}

/*
PUT /api/v1/groupes/{id}.

Description: Replaces the group's nom and description.

Request:
  - id: string (Target UUID)
  - body: groupeRequest JSON object

Response:
  - 200: Groupe: Updated record
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 403: ErrForbidden: ADMIN only
  - 404: ErrNotFound: Group not found
  - 409: ErrConflict: Nom already exists
*/
func (handler *Handler) updateGroupe(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	var input groupeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	groupe := &Groupe{
		ID:  id,
		Nom: input.Nom,
	}
	if input.Description != "" {
		groupe.Description = pointer.To(input.Description)
	}

	if err := handler.service.UpdateGroupe(request.Context(), groupe); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, groupe)
}

/*
DELETE /api/v1/groupes/{id}.

Description: Removes exactly one group; its memberships cascade.

Request:
  - id: string (UUID)

Response:
  - 204: No Content: Success
  - 403: ErrForbidden: ADMIN only
  - 404: ErrNotFound: Group not found
*/
func (handler *Handler) deleteGroupe(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeleteGroupe(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Membership Endpoints

/*
GET /api/v1/groupes/{id}/membres.

Description: Lists the roster with denormalized member names, oldest
affiliation first.

Request:
  - id: string (Group UUID)

Response:
  - 200: []Membre: Success
  - 404: ErrNotFound: Group not found
*/
func (handler *Handler) listMembres(writer http.ResponseWriter, request *http.Request) {
	groupeID := requestutil.ID(request, "id")

	membres, err := handler.service.ListMembres(request.Context(), groupeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, membres)
}

/*
POST /api/v1/groupes/{id}/membres.

Description: Adds one adherent to the roster. The join date defaults to
today when omitted.

Request:
  - id: string (Group UUID)
  - body: addMembreRequest (AdherentID, DateAdhesion)

Response:
  - 201: Membre: Created affiliation
  - 400: ErrInvalidJSON/Validation: Invalid payload
  - 403: ErrForbidden: ADMIN only
  - 409: ErrConflict: Adherent already in the roster
  - 422: ErrUnprocessable: Unknown adherent or group
*/
func (handler *Handler) addMembre(writer http.ResponseWriter, request *http.Request) {
	groupeID := requestutil.ID(request, "id")

	var input addMembreRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldAdherentID, input.AdherentID).UUID(FieldAdherentID, input.AdherentID)
	if input.DateAdhesion != "" {
		v.Date(FieldDateAdhesion, input.DateAdhesion)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	membre := &Membre{
		GroupeID:   groupeID,
		AdherentID: input.AdherentID,
	}
	if input.DateAdhesion != "" {
		if adhesion, err := time.Parse(validate.DateLayout, input.DateAdhesion); err == nil {
			membre.DateAdhesion = adhesion
		}
	}

	if err := handler.service.AddMembre(request.Context(), membre); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, membre)
}

/*
DELETE /api/v1/groupes/{id}/membres/{adherentID}.

Description: Removes exactly one membership link.

Request:
  - id: string (Group UUID)
  - adherentID: string (Adherent UUID)

Response:
  - 204: No Content: Success
  - 403: ErrForbidden: ADMIN only
  - 404: ErrNotFound: Membership not found
*/
func (handler *Handler) removeMembre(writer http.ResponseWriter, request *http.Request) {
	groupeID := requestutil.ID(request, "id")
	adherentID := requestutil.ID(request, "adherentID")

	if err := handler.service.RemoveMembre(request.Context(), groupeID, adherentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
