// Copyright (c) 2026 Fiangonana. All rights reserved.
// Author: mandresy.andria@gmail.com

/*
HTTP interface for the parish member registry.

# Routing Strategy

  - Reads: Any authenticated role may list and view member records.
  - Mutations: Restricted to the ADMIN and RESPONSABLE allow-list.

The handler translates between the REST layer and the [Service] domain.
*/
package adherent

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

// Handler implements the HTTP layer for member registry operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new registry [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with registry endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	// ## Reads (any authenticated role)
	router.Get("/", handler.listAdherents)
	router.Get("/{id}", handler.getAdherent)

	// ## Mutations (ADMIN, RESPONSABLE)
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAnyRole(sec.RoleAdmin, sec.RoleResponsable))
		r.Post("/", handler.createAdherent)
		r.Put("/{id}", handler.updateAdherent)
		r.Delete("/{id}", handler.deleteAdherent)
	})

	return router
}

// # Request Payloads

// adherentRequest carries form fields as strings; dates use the 2006-01-02
// layout and empty optional fields become nulls.
type adherentRequest struct {
	Nom             string `json:"nom"`
	Prenom          string `json:"prenom"`
	Sexe            string `json:"sexe"`
	DateNaissance   string `json:"date_naissance"`
	Adresse         string `json:"adresse"`
	Quartier        string `json:"quartier"`
	Telephone       string `json:"telephone"`
	Email           string `json:"email"`
	FonctionEglise  string `json:"fonction_eglise"`
	DateInscription string `json:"date_inscription"`
}

// toEntity converts the validated payload into a domain entity.
func (input adherentRequest) toEntity() *Adherent {
	adherent := &Adherent{
		Nom:            input.Nom,
		Prenom:         input.Prenom,
		Sexe:           input.Sexe,
		Adresse:        optional(input.Adresse),
		Quartier:       optional(input.Quartier),
		Telephone:      optional(input.Telephone),
		Email:          optional(input.Email),
		FonctionEglise: optional(input.FonctionEglise),
	}

	if input.DateNaissance != "" {
		if birth, err := time.Parse(validate.DateLayout, input.DateNaissance); err == nil {
			adherent.DateNaissance = pointer.To(birth)
		}
	}
	if input.DateInscription != "" {
		if inscription, err := time.Parse(validate.DateLayout, input.DateInscription); err == nil {
			adherent.DateInscription = inscription
		}
	}

	return adherent
}

// optional maps an empty form field to a null column value.
func optional(value string) *string {
	if value == "" {
		return nil
	}
	return pointer.To(value)
}

// validatePayload runs the form-level checks shared by create and update.
func validatePayload(input adherentRequest) error {
	v := &validate.Validator{}
	v.Required(FieldNom, input.Nom).
		MaxLen(FieldNom, input.Nom, 100).
		Required(FieldPrenom, input.Prenom).
		MaxLen(FieldPrenom, input.Prenom, 100).
		OneOf(FieldSexe, input.Sexe, "M", "F")

	if input.DateNaissance != "" {
		v.Date(FieldDateNaissance, input.DateNaissance)
	}
	if input.DateInscription != "" {
		v.Date(FieldDateInscription, input.DateInscription)
	}
	if input.Email != "" {
		v.Email(FieldEmail, input.Email)
	}

	return v.Err()
}

// # Registry Endpoints

/*
GET /api/v1/adherents.

Description: Retrieves the member registry ordered by nom. The optional `q`
parameter applies a case- and accent-insensitive substring filter over nom,
prenom and quartier; an empty term returns the full list.

Request:
  - q: string (Search term)
  - limit: int
  - page: int

Response:
  - 200: []Adherent: Paginated list
*/
func (handler *Handler) listAdherents(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query: request.URL.Query().Get("q"),
	}

	adherents, total, err := handler.service.ListAdherents(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, adherents, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/adherents/{id}.

Description: Retrieves a single member record for the edit form prefill.
Optional fields that were never captured come back as nulls, not errors.

Request:
  - id: string (UUID)

Response:
  - 200: Adherent: Success
  - 404: ErrNotFound: Member record not found
*/
func (handler *Handler) getAdherent(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	adherent, err := handler.service.GetAdherent(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, adherent)
}

/*
POST /api/v1/adherents.

Description: Registers a new parish member. Nom, prenom and sexe are
mandatory; a missing mandatory field returns field-level details so the
form keeps the entered values.

Request (Body):
  - adherentRequest JSON object

Response:
  - 201: Adherent: Created record
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 403: ErrForbidden: Role not in the mutate allow-list
*/
func (handler *Handler) createAdherent(writer http.ResponseWriter, request *http.Request) {
	var input adherentRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validatePayload(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	adherent := input.toEntity()
	if err := handler.service.CreateAdherent(request.Context(), adherent); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, adherent)
}

/*
PUT /api/v1/adherents/{id}.

Description: Replaces all descriptive fields of a member record with the
submitted form values.

Request:
  - id: string (Target UUID)
  - body: adherentRequest JSON object

Response:
  - 200: Adherent: Updated record
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 403: ErrForbidden: Role not in the mutate allow-list
  - 404: ErrNotFound: Member record not found
*/
func (handler *Handler) updateAdherent(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	var input adherentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validatePayload(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	adherent := input.toEntity()
	adherent.ID = id

	if err := handler.service.UpdateAdherent(request.Context(), adherent); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, adherent)
}

/*
DELETE /api/v1/adherents/{id}.

Description: Removes exactly one member record. The confirmation prompt is
the console's concern; the API contract is one-row removal.

Request:
  - id: string (UUID)

Response:
  - 204: No Content: Success
  - 403: ErrForbidden: Role not in the mutate allow-list
  - 404: ErrNotFound: Member record not found
*/
func (handler *Handler) deleteAdherent(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeleteAdherent(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
