// Package handler is the HTTP surface of the membership feature. It decodes
// payloads, resolves the acting principal, delegates to the service, and
// renders the uniform result envelope; no business rules live here.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"guild/internal/identity"
	"guild/internal/member/models"
	"guild/internal/member/service"
	"guild/internal/platform/metrics"
	"guild/internal/platform/middleware"
	"guild/pkg/action"
	"guild/pkg/domain"
	"guild/pkg/requestcontext"
)

// Tokens issues and validates access tokens.
type Tokens interface {
	IssueAccessToken(account *identity.Account, now time.Time) (string, error)
	ValidateToken(tokenString string) (*identity.Claims, error)
}

// Handler handles the membership endpoints.
type Handler struct {
	service  *service.Service
	identity identity.Manager
	tokens   Tokens
	tokenTTL time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New creates the membership Handler.
func New(
	svc *service.Service,
	identityManager identity.Manager,
	tokens Tokens,
	tokenTTL time.Duration,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Handler {
	return &Handler{
		service:  svc,
		identity: identityManager,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		logger:   logger,
		metrics:  m,
	}
}

// Register mounts the membership routes.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(middleware.RequestContext)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Timeout(30 * time.Second))
	router.Use(middleware.Latency(h.metrics))

	router.Post("/members/register", h.handleRegister)
	router.Post("/auth/login", h.handleLogin)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.tokens, h.logger))

		r.Get("/me", h.handleGetProfile)

		r.Route("/me/educations", func(r chi.Router) {
			r.Get("/", h.handleListEducations)
			r.Post("/", h.handleAddEducation)
			r.Put("/{educationID}", h.handleUpdateEducation)
			r.Delete("/{educationID}", h.handleDeleteEducation)
			r.Put("/{educationID}/document", h.handleReplaceDocument)
		})

		r.Route("/me/experiences", func(r chi.Router) {
			r.Get("/", h.handleListExperiences)
			r.Post("/", h.handleAddExperience)
			r.Put("/{experienceID}", h.handleUpdateExperience)
			r.Delete("/{experienceID}", h.handleDeleteExperience)
		})

		r.Get("/institutions", h.handleListInstitutions)
		r.Get("/institutions/{institutionID}", h.handleGetInstitution)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin, h.logger))

			r.Get("/members", h.handleListMembers)
			r.Get("/members/{memberID}", h.handleGetMember)
			r.Post("/members/{memberID}/approve", h.handleApprove)
			r.Post("/members/{memberID}/reject", h.handleReject)

			r.Post("/institutions", h.handleAddInstitution)
			r.Delete("/institutions/{institutionID}", h.handleDeleteInstitution)
			r.Post("/institutions/{institutionID}/restore", h.handleRestoreInstitution)
		})
	})

	r.Mount("/", router)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResponse(w, action.Invalid[*service.RegistrationResult]("invalid request body", nil))
		return
	}
	writeCreated(w, h.service.Register(r.Context(), req.toInput()))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResponse(w, action.Invalid[*loginResponse]("invalid request body", nil))
		return
	}

	account, err := h.identity.CheckPassword(ctx, req.Username, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "login failed",
			"username", req.Username,
			"request_id", requestcontext.RequestID(ctx),
		)
		writeResponse(w, action.FromError[*loginResponse](err))
		return
	}

	now := requestcontext.Now(ctx)
	token, err := h.tokens.IssueAccessToken(account, now)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue access token",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		writeResponse(w, action.FromError[*loginResponse](err))
		return
	}

	writeResponse(w, action.Success(&loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.tokenTTL.Seconds()),
		PersonID:    account.PersonID.String(),
		Roles:       account.Roles,
	}))
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, h.service.GetPerson(r.Context(), requestcontext.PersonID(r.Context())))
}

func (h *Handler) handleListMembers(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, h.service.ListMembers(r.Context()))
}

func (h *Handler) handleGetMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := domain.ParseMemberID(chi.URLParam(r, "memberID"))
	if err != nil {
		writeResponse(w, action.FromError[*models.Member](err))
		return
	}
	writeResponse(w, h.service.GetMember(r.Context(), memberID))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	memberID, err := domain.ParseMemberID(chi.URLParam(r, "memberID"))
	if err != nil {
		writeResponse(w, action.FromError[*models.Member](err))
		return
	}
	writeResponse(w, h.service.Approve(r.Context(), memberID))
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	memberID, err := domain.ParseMemberID(chi.URLParam(r, "memberID"))
	if err != nil {
		writeResponse(w, action.FromError[*models.Member](err))
		return
	}
	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResponse(w, action.Invalid[*models.Member]("invalid request body", nil))
		return
	}
	writeResponse(w, h.service.Reject(r.Context(), memberID, req.Note))
}

func (h *Handler) handleListEducations(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, h.service.ListEducations(r.Context(), requestcontext.PersonID(r.Context())))
}

func (h *Handler) handleAddEducation(w http.ResponseWriter, r *http.Request) {
	var req educationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResponse(w, action.Invalid[*models.Education]("invalid request body", nil))
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeResponse(w, action.FromError[*models.Education](err))
		return
	}
	writeCreated(w, h.service.AddEducation(r.Context(), requestcontext.PersonID(r.Context()), input))
}

func (h *Handler) handleUpdateEducation(w http.ResponseWriter, r *http.Request) {
	educationID, ok := h.recordID(w, r, "educationID")
	if !ok {
		return
	}
	var req educationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResponse(w, action.Invalid[*models.Education]("invalid request body", nil))
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeResponse(w, action.FromError[*models.Education](err))
		return
	}
	writeResponse(w, h.service.UpdateEducation(r.Context(), requestcontext.PersonID(r.Context()), educationID, input))
}

func (h *Handler) handleDeleteEducation(w http.ResponseWriter, r *http.Request) {
	educationID, ok := h.recordID(w, r, "educationID")
	if !ok {
		return
	}
	writeResponse(w, h.service.DeleteEducation(r.Context(), requestcontext.PersonID(r.Context()), educationID))
}

func (h *Handler) handleReplaceDocument(w http.ResponseWriter, r *http.Request) {
	educationID, ok := h.recordID(w, r, "educationID")
	if !ok {
		return
	}
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		writeResponse(w, action.Invalid[*models.Education]("Content-Type is required", nil))
		return
	}
	writeResponse(w, h.service.ReplaceEducationDocument(
		r.Context(),
		requestcontext.PersonID(r.Context()),
		educationID,
		service.DocumentInput{ContentType: contentType, Body: r.Body},
	))
}

func (h *Handler) handleListExperiences(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, h.service.ListWorkExperiences(r.Context(), requestcontext.PersonID(r.Context())))
}

func (h *Handler) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	var req experienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResponse(w, action.Invalid[*models.WorkExperience]("invalid request body", nil))
		return
	}
	writeCreated(w, h.service.AddWorkExperience(r.Context(), requestcontext.PersonID(r.Context()), req.toInput()))
}

func (h *Handler) handleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	experienceID, ok := h.recordID(w, r, "experienceID")
	if !ok {
		return
	}
	var req experienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResponse(w, action.Invalid[*models.WorkExperience]("invalid request body", nil))
		return
	}
	writeResponse(w, h.service.UpdateWorkExperience(r.Context(), requestcontext.PersonID(r.Context()), experienceID, req.toInput()))
}

func (h *Handler) handleDeleteExperience(w http.ResponseWriter, r *http.Request) {
	experienceID, ok := h.recordID(w, r, "experienceID")
	if !ok {
		return
	}
	writeResponse(w, h.service.DeleteWorkExperience(r.Context(), requestcontext.PersonID(r.Context()), experienceID))
}

func (h *Handler) handleListInstitutions(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, h.service.ListInstitutions(r.Context()))
}

func (h *Handler) handleGetInstitution(w http.ResponseWriter, r *http.Request) {
	institutionID, err := domain.ParseInstitutionID(chi.URLParam(r, "institutionID"))
	if err != nil {
		writeResponse(w, action.FromError[*models.Institution](err))
		return
	}
	writeResponse(w, h.service.GetInstitution(r.Context(), institutionID))
}

func (h *Handler) handleAddInstitution(w http.ResponseWriter, r *http.Request) {
	var req institutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResponse(w, action.Invalid[*models.Institution]("invalid request body", nil))
		return
	}
	writeCreated(w, h.service.AddInstitution(r.Context(), req.Name, req.Country, req.Website))
}

func (h *Handler) handleDeleteInstitution(w http.ResponseWriter, r *http.Request) {
	institutionID, err := domain.ParseInstitutionID(chi.URLParam(r, "institutionID"))
	if err != nil {
		writeResponse(w, action.FromError[*models.Institution](err))
		return
	}
	writeResponse(w, h.service.DeleteInstitution(r.Context(), institutionID))
}

func (h *Handler) handleRestoreInstitution(w http.ResponseWriter, r *http.Request) {
	institutionID, err := domain.ParseInstitutionID(chi.URLParam(r, "institutionID"))
	if err != nil {
		writeResponse(w, action.FromError[*models.Institution](err))
		return
	}
	writeResponse(w, h.service.RestoreInstitution(r.Context(), institutionID))
}

// recordID parses a raw UUID path parameter shared by the history endpoints.
func (h *Handler) recordID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		writeResponse(w, action.Invalid[struct{}](param+" is not a valid UUID", nil))
		return uuid.Nil, false
	}
	return id, true
}
