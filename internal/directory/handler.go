package directory

import (
	"net/http"

	"github.com/foresight-sec/incident-room/internal/domain"
	"github.com/foresight-sec/incident-room/internal/pkg/httputil"
	"github.com/go-chi/chi/v5"
)

// Handler handles HTTP requests for the specialist directory.
type Handler struct {
	service *Service
}

// NewHandler creates a new directory handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers all HTTP routes for the directory module.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/specialists", func(r chi.Router) {
		r.Get("/", h.Search)
		r.Get("/{userID}", h.GetSpecialist)
	})
}

var errorMappings = []httputil.ErrorMapping{
	{Error: ErrSpecialistNotFound, Status: http.StatusNotFound},
}

// Search handles GET /specialists.
//
// Query parameters: q (free-text term), incident_type, role, organization,
// available=true. When incident_type is present it takes precedence and the
// other filters are ignored, matching how rooms pick candidates.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if incidentType := q.Get("incident_type"); incidentType != "" {
		profiles, err := h.service.ByIncidentType(r.Context(), incidentType)
		if err != nil {
			httputil.HandleError(r.Context(), w, err, errorMappings)
			return
		}
		httputil.Success(w, http.StatusOK, profiles)
		return
	}

	profiles, err := h.service.Search(r.Context(), SearchFilter{
		Term:          q.Get("q"),
		Role:          domain.SpecialistRole(q.Get("role")),
		Organization:  domain.Organization(q.Get("organization")),
		AvailableOnly: q.Get("available") == "true",
	})
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.Success(w, http.StatusOK, profiles)
}

// GetSpecialist handles GET /specialists/{userID}.
func (h *Handler) GetSpecialist(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetByID(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}
	httputil.Success(w, http.StatusOK, profile)
}
