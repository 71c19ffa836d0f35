// Application HTTP handlers.
//
// This file exposes REST endpoints for application records:
//   - POST   /applications          (create)
//   - GET    /applications          (list, newest first, weak ETag support)
//   - GET    /applications/{id}     (fetch one)
//   - PATCH  /applications/{id}     (partial update)
//   - DELETE /applications/{id}     (hard delete)
//
// Handlers are transport-thin: they confirm the identity resolved by the
// gate, bind and shape input, call the application service, and translate
// outcomes into HTTP responses. Ownership scoping happens below, in the
// service/repository and the row-level owner policy.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/avasquez/go-apptrack-backend/internal/domain"
	"github.com/avasquez/go-apptrack-backend/internal/http/middleware"
	"github.com/avasquez/go-apptrack-backend/internal/repo"
	"github.com/avasquez/go-apptrack-backend/internal/services"
)

// ApplicationService defines the record-store operations consumed by HTTP
// handlers. Implementations must be safe for concurrent use and honor the
// provided context for cancellation.
type ApplicationService interface {
	// Create validates input and inserts a record owned by userID.
	Create(ctx context.Context, userID string, in services.CreateApplicationInput) (*domain.Application, error)
	// List returns all of userID's records, newest first.
	List(ctx context.Context, userID string) ([]domain.Application, error)
	// Get fetches one owned record, or services.ErrApplicationNotFound.
	Get(ctx context.Context, userID, id string) (*domain.Application, error)
	// Update applies a partial update to an owned record.
	Update(ctx context.Context, userID, id string, upd domain.ApplicationUpdate) (*domain.Application, error)
	// Delete removes an owned record.
	Delete(ctx context.Context, userID, id string) error
}

// Handlers groups the HTTP endpoints for application records and sessions.
type Handlers struct {
	appSvc   ApplicationService
	sessions SessionWriter
}

// New constructs a Handlers bound to the given service and session writer.
func New(appSvc ApplicationService, sessions SessionWriter) *Handlers {
	return &Handlers{appSvc: appSvc, sessions: sessions}
}

//
// DTOs
//

// CreateApplicationRequest is the JSON payload for creating an application.
// There is intentionally no owner or id field; both are server-assigned, and
// any such key in the payload is ignored.
type CreateApplicationRequest struct {
	CompanyName     string `json:"company_name" binding:"required" example:"Acme"`
	PositionTitle   string `json:"position_title" binding:"required" example:"Engineer"`
	ApplicationDate string `json:"application_date" binding:"required" example:"2026-01-10"`
	Status          string `json:"status" example:"applied"`
	Notes           string `json:"notes" example:"Referred by Sam"`
}

// UpdateApplicationRequest is the JSON payload for a partial update. Absent
// keys leave the field unchanged; "notes": "" clears the notes. At least one
// key must be present.
type UpdateApplicationRequest struct {
	CompanyName     *string `json:"company_name"`
	PositionTitle   *string `json:"position_title"`
	ApplicationDate *string `json:"application_date"`
	Status          *string `json:"status"`
	Notes           *string `json:"notes"`
}

// ListApplicationsResponse wraps the full list of a user's applications.
type ListApplicationsResponse struct {
	Applications []domain.Application `json:"applications"`
}

// DeleteApplicationResponse confirms a deletion with the removed id.
type DeleteApplicationResponse struct {
	ID string `json:"id"`
}

//
// Helpers
//

// requireUser returns the identity resolved by the gate, failing the request
// with a uniform 401 when absent. Handlers call this before anything else.
func requireUser(c *gin.Context) (string, bool) {
	uid, ok := middleware.UserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthenticated, "valid session required")
	}
	return uid, ok
}

// bindRecordID validates the :id path parameter against the storage id
// format (UUID).
func bindRecordID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "application id must be a UUID")
		return "", false
	}
	return id, true
}

// writeServiceError maps service-layer outcomes onto the HTTP taxonomy.
// Anything that is not a recognized first-class outcome is a storage failure:
// its detail is logged and an opaque 500 is returned.
func writeServiceError(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		fail(c, http.StatusUnauthorized, ErrCodeUnauthenticated, "valid session required")
	case errors.Is(err, services.ErrApplicationNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "application not found")
	case errors.Is(err, services.ErrEmptyUpdate):
		fail(c, http.StatusBadRequest, ErrCodeEmptyUpdate, "update must set at least one field")
	case errors.As(err, &ve):
		failFields(c, http.StatusBadRequest, ErrCodeValidation, "one or more fields are invalid", ve.Fields)
	default:
		trace.SpanFromContext(c.Request.Context()).RecordError(err)
		middleware.LoggerFrom(c).Error().Err(err).Msg("storage failure")
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}

//
// Handlers
//

// CreateApplication godoc
// @ID          createApplication
// @Summary     Create a job application
// @Description Creates an application owned by the current user and returns the persisted record.
// @Tags        Applications
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreateApplicationRequest  true  "Application payload"
// @Success     201  {object}  domain.Application
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /applications [post]
func (h *Handlers) CreateApplication(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}

	var req CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	app, err := h.appSvc.Create(c.Request.Context(), uid, services.CreateApplicationInput{
		CompanyName:     req.CompanyName,
		PositionTitle:   req.PositionTitle,
		ApplicationDate: req.ApplicationDate,
		Status:          req.Status,
		Notes:           req.Notes,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, http.StatusCreated, app)
}

// ListApplications godoc
// @ID          listApplications
// @Summary     List the current user's applications
// @Description Returns every application owned by the current user, newest first. Supports weak ETag via If-None-Match.
// @Tags        Applications
// @Produce     json
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
// @Success     200  {object}  handlers.ListApplicationsResponse
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string  "Not Modified"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /applications [get]
func (h *Handlers) ListApplications(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, isConcrete := h.appSvc.(*services.ApplicationService); isConcrete {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.ApplicationsStats(ctx, db, uid)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"applications:%s:%d:%d"`, uid, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, err := h.appSvc.List(ctx, uid)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, http.StatusOK, ListApplicationsResponse{Applications: items})
}

// GetApplication godoc
// @ID          getApplication
// @Summary     Fetch one application
// @Description Returns the application if it exists and is owned by the current user; otherwise 404.
// @Tags        Applications
// @Produce     json
// @Param       id  path  string  true  "Application ID (UUID)"  format(uuid)
// @Success     200  {object}  domain.Application
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed id"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Router      /applications/{id} [get]
func (h *Handlers) GetApplication(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	id, idOK := bindRecordID(c)
	if !idOK {
		return
	}

	app, err := h.appSvc.Get(c.Request.Context(), uid, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, http.StatusOK, app)
}

// UpdateApplication godoc
// @ID          updateApplication
// @Summary     Partially update an application
// @Description Applies the supplied fields to an application owned by the current user and returns the refreshed record.
// @Tags        Applications
// @Accept      json
// @Produce     json
// @Param       id    path  string  true  "Application ID (UUID)"  format(uuid)
// @Param       body  body  handlers.UpdateApplicationRequest  true  "Fields to change"
// @Success     200  {object}  domain.Application
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed or empty update"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Router      /applications/{id} [patch]
func (h *Handlers) UpdateApplication(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	id, idOK := bindRecordID(c)
	if !idOK {
		return
	}

	var req UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	upd := domain.ApplicationUpdate{
		CompanyName:     req.CompanyName,
		PositionTitle:   req.PositionTitle,
		ApplicationDate: req.ApplicationDate,
		Notes:           req.Notes,
	}
	if req.Status != nil {
		s := domain.Status(*req.Status)
		upd.Status = &s
	}

	app, err := h.appSvc.Update(c.Request.Context(), uid, id, upd)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, http.StatusOK, app)
}

// DeleteApplication godoc
// @ID          deleteApplication
// @Summary     Delete an application
// @Description Hard-deletes an application owned by the current user and returns its id.
// @Tags        Applications
// @Produce     json
// @Param       id  path  string  true  "Application ID (UUID)"  format(uuid)
// @Success     200  {object}  handlers.DeleteApplicationResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed id"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Router      /applications/{id} [delete]
func (h *Handlers) DeleteApplication(c *gin.Context) {
	uid, authed := requireUser(c)
	if !authed {
		return
	}
	id, idOK := bindRecordID(c)
	if !idOK {
		return
	}

	if err := h.appSvc.Delete(c.Request.Context(), uid, id); err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, http.StatusOK, DeleteApplicationResponse{ID: id})
}
