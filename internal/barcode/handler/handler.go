package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"scanid/internal/barcode/models"
	"scanid/internal/barcode/service"
	"scanid/internal/platform/middleware"
	"scanid/internal/transport/http/shared"
	dErrors "scanid/pkg/domain-errors"
)

// Service defines the interface for barcode operations.
type Service interface {
	Allocate(ctx context.Context, req service.AllocateRequest) (*service.Allocation, error)
	Validate(value string) bool
	RenderSpec(value string) models.RenderSpec
}

// Handler wires barcode endpoints to the barcode service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a barcode handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts barcode endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/barcodes/allocate", h.HandleAllocate)
	r.Post("/barcodes/validate", h.HandleValidate)
	r.Get("/barcodes/render-spec", h.HandleRenderSpec)
}

// HandleAllocate handles POST /barcodes/allocate requests.
func (h *Handler) HandleAllocate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	start := time.Now()

	orgID := middleware.GetOrganizationID(ctx)
	if orgID.IsNil() {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	var req AllocateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		shared.WriteError(w, err)
		return
	}

	alloc, err := h.service.Allocate(ctx, service.AllocateRequest{
		OrganizationID: orgID,
		ProductID:      req.ParsedProductID(),
		Mode:           req.ParsedMode(),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "barcode allocation failed",
			"request_id", requestID,
			"organization_id", orgID,
			"product_id", req.ProductID,
			"error", err,
		)
		shared.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "barcode allocated",
		"request_id", requestID,
		"organization_id", orgID,
		"product_id", req.ProductID,
		"barcode", alloc.Barcode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	shared.WriteJSON(w, http.StatusCreated, FromAllocation(alloc))
}

// HandleValidate handles POST /barcodes/validate requests.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, ValidateResponse{
		Value: req.Value,
		Valid: h.service.Validate(req.Value),
	})
}

// HandleRenderSpec handles GET /barcodes/render-spec?value= requests.
func (h *Handler) HandleRenderSpec(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("value")
	if value == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "value query parameter is required"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, FromRenderSpec(h.service.RenderSpec(value)))
}
