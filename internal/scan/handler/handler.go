package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"scanid/internal/platform/middleware"
	"scanid/internal/scan/models"
	"scanid/internal/scan/service"
	"scanid/internal/transport/http/shared"
	"scanid/pkg/domain"
	dErrors "scanid/pkg/domain-errors"
)

// Service defines the interface for scan operations.
type Service interface {
	Resolve(ctx context.Context, req service.ResolveRequest) (models.ResolvedResult, error)
	History(ctx context.Context, orgID domain.OrganizationID, limit int) ([]models.HistoryEntry, error)
}

// Handler wires scan endpoints to the scan service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a scan handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts scan endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/scan", h.HandleScan)
	r.Get("/scan/history", h.HandleHistory)
}

// HandleScan handles POST /scan requests.
func (h *Handler) HandleScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	start := time.Now()

	orgID := middleware.GetOrganizationID(ctx)
	if orgID.IsNil() {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		shared.WriteError(w, err)
		return
	}

	result, err := h.service.Resolve(ctx, service.ResolveRequest{
		OrganizationID:    orgID,
		Context:           models.Context(req.Context),
		RawInput:          req.Input,
		Key:               req.Key,
		SupportsTabSubmit: req.SupportsTabSubmit,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "scan resolution failed",
			"request_id", requestID,
			"organization_id", orgID,
			"context", req.Context,
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "scan resolved",
		"request_id", requestID,
		"organization_id", orgID,
		"context", req.Context,
		"outcome", result.Outcome(),
		"device", middleware.GetDevice(ctx).Browser,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	shared.WriteJSON(w, http.StatusOK, FromResolved(result))
}

// HandleHistory handles GET /scan/history requests.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orgID := middleware.GetOrganizationID(ctx)
	if orgID.IsNil() {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	entries, err := h.service.History(ctx, orgID, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "scan history read failed",
			"request_id", middleware.GetRequestID(ctx),
			"organization_id", orgID,
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, HistoryResponse{Entries: entries})
}
