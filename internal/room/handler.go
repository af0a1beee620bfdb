package room

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/foresight-sec/incident-room/internal/domain"
	"github.com/foresight-sec/incident-room/internal/pkg/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Handler handles HTTP requests for incident rooms.
type Handler struct {
	service   *Service
	collector *Collector
	validator *validator.Validate
}

// NewHandler creates a new room handler.
func NewHandler(service *Service, collector *Collector) *Handler {
	return &Handler{
		service:   service,
		collector: collector,
		validator: validator.New(),
	}
}

// RegisterRoutes registers all HTTP routes for the room module.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/rooms", func(r chi.Router) {
		r.Get("/", h.ListRooms)
		r.Post("/", h.CreateRoom)
		r.Route("/{roomID}", func(r chi.Router) {
			r.Get("/", h.GetRoom)
			r.Post("/stage", h.TransitionStage)
			r.Get("/timeline", h.GetTimeline)
			r.Post("/participants", h.AddParticipant)
			r.Delete("/participants/{userID}", h.RemoveParticipant)
			r.Get("/evidence", h.ListEvidence)
			r.Post("/evidence", h.AddEvidence)
			r.Post("/evidence/collect", h.CollectEvidence)
			r.Route("/disclosure", func(r chi.Router) {
				r.Post("/request", h.RequestDisclosure)
				r.Post("/approve", h.ApproveDisclosure)
				r.Post("/cancel", h.CancelDisclosure)
			})
		})
	})
}

// errorMappings maps room domain errors to HTTP statuses. Authorization
// failures are deliberately distinct from validation failures.
var errorMappings = []httputil.ErrorMapping{
	{Error: ErrRoomNotFound, Status: http.StatusNotFound},
	{Error: ErrParticipantNotFound, Status: http.StatusForbidden},
	{Error: ErrUnauthorized, Status: http.StatusForbidden},
	{Error: ErrRoomClosed, Status: http.StatusConflict},
	{Error: ErrInvalidTransition, Status: http.StatusUnprocessableEntity},
	{Error: ErrDuplicateEvidence, Status: http.StatusConflict},
	{Error: ErrNoCloser, Status: http.StatusConflict},
	{Error: ErrJustificationTooShort, Status: http.StatusBadRequest},
	{Error: ErrDisclosurePending, Status: http.StatusConflict},
	{Error: ErrAlreadyRevealed, Status: http.StatusConflict},
	{Error: ErrNoDisclosureRequest, Status: http.StatusConflict},
	{Error: ErrInvalidInput, Status: http.StatusBadRequest},
}

// ParticipantRequest represents a participant seed in request bodies.
type ParticipantRequest struct {
	UserID       string `json:"user_id" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Role         string `json:"role" validate:"required,oneof=mssp_analyst ciso legal hr forensics observer"`
	Organization string `json:"organization" validate:"required,oneof=mssp client independent"`
}

func (r *ParticipantRequest) toSeed() ParticipantSeed {
	return ParticipantSeed{
		UserID:       r.UserID,
		Name:         r.Name,
		Email:        r.Email,
		Role:         domain.RoomRole(r.Role),
		Organization: domain.Organization(r.Organization),
	}
}

// CreateRoomRequest represents the request body for creating a room.
type CreateRoomRequest struct {
	Alert struct {
		ID          string `json:"id" validate:"required"`
		ClientID    string `json:"client_id" validate:"required"`
		ClientName  string `json:"client_name" validate:"required"`
		NotableType string `json:"notable_type" validate:"required"`
		RiskScore   int    `json:"risk_score" validate:"min=0,max=100"`
		Trigger     string `json:"trigger" validate:"required"`
		DetectedAt  string `json:"detected_at"`
	} `json:"alert" validate:"required"`
	Creator  ParticipantRequest `json:"creator" validate:"required"`
	Approver ParticipantRequest `json:"approver" validate:"required"`
}

// CreateRoom handles POST /rooms.
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	room, err := h.service.CreateRoom(r.Context(), CreateRoomInput{
		Alert: domain.Alert{
			ID:          req.Alert.ID,
			ClientID:    req.Alert.ClientID,
			ClientName:  req.Alert.ClientName,
			NotableType: req.Alert.NotableType,
			RiskScore:   req.Alert.RiskScore,
			Trigger:     req.Alert.Trigger,
		},
		Creator:  req.Creator.toSeed(),
		Approver: req.Approver.toSeed(),
	})
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.Success(w, http.StatusCreated, room)
}

// ListRooms handles GET /rooms.
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.ListRooms(r.Context())
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}
	httputil.Success(w, http.StatusOK, summaries)
}

// GetRoom handles GET /rooms/{roomID}.
func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.service.GetRoom(r.Context(), chi.URLParam(r, "roomID"))
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}
	httputil.Success(w, http.StatusOK, room)
}

// TransitionStageRequest represents the request body for a stage change.
type TransitionStageRequest struct {
	Stage string `json:"stage" validate:"required,oneof=triage containment investigation remediation closed"`
}

// TransitionStage handles POST /rooms/{roomID}/stage.
func (h *Handler) TransitionStage(w http.ResponseWriter, r *http.Request) {
	actorID := httputil.ActorID(r)
	if actorID == "" {
		httputil.Error(w, http.StatusBadRequest, "missing X-Actor-ID header")
		return
	}

	var req TransitionStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	room, err := h.service.TransitionStage(r.Context(), chi.URLParam(r, "roomID"),
		domain.RoomStage(req.Stage), actorID)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.Success(w, http.StatusOK, room)
}

// GetTimeline handles GET /rooms/{roomID}/timeline.
func (h *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	timeline, err := h.service.GetTimeline(r.Context(), chi.URLParam(r, "roomID"))
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}
	httputil.Success(w, http.StatusOK, timeline)
}

// AddParticipant handles POST /rooms/{roomID}/participants.
func (h *Handler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	var req ParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	room, err := h.service.AddParticipant(r.Context(), chi.URLParam(r, "roomID"), req.toSeed())
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.Success(w, http.StatusOK, room)
}

// RemoveParticipant handles DELETE /rooms/{roomID}/participants/{userID}.
func (h *Handler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	room, err := h.service.RemoveParticipant(r.Context(),
		chi.URLParam(r, "roomID"), chi.URLParam(r, "userID"))
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}
	httputil.Success(w, http.StatusOK, room)
}

// ListEvidence handles GET /rooms/{roomID}/evidence.
func (h *Handler) ListEvidence(w http.ResponseWriter, r *http.Request) {
	evidence, err := h.service.ListEvidence(r.Context(), chi.URLParam(r, "roomID"))
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}
	httputil.Success(w, http.StatusOK, evidence)
}

// AddEvidenceRequest represents the request body for a manual evidence
// upload. Content is base64-encoded and hashed server-side for chain of
// custody.
type AddEvidenceRequest struct {
	FileName      string `json:"file_name" validate:"required"`
	FileType      string `json:"file_type" validate:"required"`
	Category      string `json:"category" validate:"required,oneof=dlp_alert email forensic_image screenshot document other"`
	Source        string `json:"source" validate:"required"`
	ContentBase64 string `json:"content_base64" validate:"required"`
}

// AddEvidence handles POST /rooms/{roomID}/evidence.
func (h *Handler) AddEvidence(w http.ResponseWriter, r *http.Request) {
	actorID := httputil.ActorID(r)
	if actorID == "" {
		httputil.Error(w, http.StatusBadRequest, "missing X-Actor-ID header")
		return
	}

	var req AddEvidenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	content, err := base64.StdEncoding.DecodeString(req.ContentBase64)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "content_base64 is not valid base64")
		return
	}

	current, err := h.service.GetRoom(r.Context(), chi.URLParam(r, "roomID"))
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}
	uploader := current.Participant(actorID)
	if uploader == nil {
		httputil.HandleError(r.Context(), w, ErrParticipantNotFound, errorMappings)
		return
	}

	room, err := h.service.AddEvidence(r.Context(), current.ID, EvidenceInput{
		FileName:         req.FileName,
		FileSize:         int64(len(content)),
		FileType:         req.FileType,
		Category:         domain.EvidenceCategory(req.Category),
		Source:           req.Source,
		CollectionMethod: domain.CollectionMethodManual,
		Content:          content,
	}, uploader.AsActor())
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.Success(w, http.StatusCreated, room)
}

// CollectEvidence handles POST /rooms/{roomID}/evidence/collect.
func (h *Handler) CollectEvidence(w http.ResponseWriter, r *http.Request) {
	// Collection tasks outlive the request; they stop with the server.
	if err := h.collector.Collect(chi.URLParam(r, "roomID")); err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}
	httputil.Success(w, http.StatusAccepted, map[string]string{"status": "collecting"})
}

// RequestDisclosureRequest represents the request body for requesting
// identity disclosure.
type RequestDisclosureRequest struct {
	Justification string `json:"justification" validate:"required,min=50"`
}

// RequestDisclosure handles POST /rooms/{roomID}/disclosure/request.
func (h *Handler) RequestDisclosure(w http.ResponseWriter, r *http.Request) {
	actorID := httputil.ActorID(r)
	if actorID == "" {
		httputil.Error(w, http.StatusBadRequest, "missing X-Actor-ID header")
		return
	}

	var req RequestDisclosureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	room, err := h.service.RequestDisclosure(r.Context(), chi.URLParam(r, "roomID"),
		actorID, req.Justification)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.Success(w, http.StatusOK, room)
}

// ApproveDisclosureRequest represents the request body for approving
// identity disclosure.
type ApproveDisclosureRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Department    string `json:"department" validate:"required"`
	Justification string `json:"justification"`
}

// ApproveDisclosure handles POST /rooms/{roomID}/disclosure/approve.
func (h *Handler) ApproveDisclosure(w http.ResponseWriter, r *http.Request) {
	actorID := httputil.ActorID(r)
	if actorID == "" {
		httputil.Error(w, http.StatusBadRequest, "missing X-Actor-ID header")
		return
	}

	var req ApproveDisclosureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	room, err := h.service.ApproveDisclosure(r.Context(), chi.URLParam(r, "roomID"),
		actorID, RealIdentityInput{
			Name:       req.Name,
			Email:      req.Email,
			Department: req.Department,
		}, req.Justification)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.Success(w, http.StatusOK, room)
}

// CancelDisclosure handles POST /rooms/{roomID}/disclosure/cancel.
func (h *Handler) CancelDisclosure(w http.ResponseWriter, r *http.Request) {
	actorID := httputil.ActorID(r)
	if actorID == "" {
		httputil.Error(w, http.StatusBadRequest, "missing X-Actor-ID header")
		return
	}

	room, err := h.service.CancelDisclosure(r.Context(), chi.URLParam(r, "roomID"), actorID)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.Success(w, http.StatusOK, room)
}
