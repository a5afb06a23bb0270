// Package service orchestrates barcode allocation: probing for a free
// candidate, persisting it, and retrying past persistence races.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"scanid/internal/audit"
	"scanid/internal/barcode/allocator"
	"scanid/internal/barcode/ean13"
	"scanid/internal/barcode/metrics"
	"scanid/internal/barcode/models"
	"scanid/internal/barcode/ports"
	"scanid/internal/barcode/render"
	"scanid/pkg/domain"
	dErrors "scanid/pkg/domain-errors"
)

const tracerName = "scanid/internal/barcode/service"

type Service struct {
	store           ports.CatalogStore
	logger          *slog.Logger
	metrics         *metrics.Metrics
	auditPublisher  ports.AuditPublisher
	tracer          trace.Tracer
	maxProbes       int
	persistAttempts int
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(publisher ports.AuditPublisher) Option {
	return func(s *Service) { s.auditPublisher = publisher }
}

func WithMaxProbes(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxProbes = n
		}
	}
}

// WithPersistAttempts bounds how many times an allocation is retried after
// losing a persistence race to a concurrent allocator.
func WithPersistAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.persistAttempts = n
		}
	}
}

func New(store ports.CatalogStore, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog store is required")
	}

	svc := &Service{
		store:           store,
		logger:          slog.Default(),
		tracer:          otel.Tracer(tracerName),
		maxProbes:       allocator.DefaultMaxProbes,
		persistAttempts: 3,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// AllocateRequest carries the parameters for minting one barcode.
type AllocateRequest struct {
	OrganizationID domain.OrganizationID
	ProductID      domain.ProductID
	Mode           models.Mode
	StartSequence  uint64
}

// Allocation is the durable result of a successful allocation.
type Allocation struct {
	Barcode    string
	RenderSpec models.RenderSpec
}

// Allocate resolves a unique candidate and persists it, honoring the division
// of responsibility from the allocator: probing avoids collisions, the store's
// unique constraint guarantees uniqueness, and a constraint conflict restarts
// probing at the lost sequence + 1.
func (s *Service) Allocate(ctx context.Context, req AllocateRequest) (*Allocation, error) {
	if req.OrganizationID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "organization_id is required")
	}
	if req.ProductID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "product_id is required")
	}
	if !req.Mode.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeBadRequest, "unknown barcode mode %q", req.Mode)
	}

	ctx, span := s.tracer.Start(ctx, "barcode.allocate",
		trace.WithAttributes(
			attribute.String("barcode.mode", string(req.Mode)),
			attribute.Int64("barcode.start_sequence", int64(req.StartSequence)),
		))
	defer span.End()

	start := time.Now()
	taken := allocator.TakenFunc(func(ctx context.Context, candidate string) (bool, error) {
		return s.store.IsTaken(ctx, req.OrganizationID, candidate)
	})

	sequence := req.StartSequence
	for attempt := 1; attempt <= s.persistAttempts; attempt++ {
		candidate, err := allocator.ResolveUnique(ctx, req.OrganizationID.String(), req.Mode, sequence, taken,
			allocator.WithMaxProbes(s.maxProbes))
		if err != nil {
			s.observe(ctx, req, resultOf(err), time.Since(start))
			if errors.Is(err, allocator.ErrExhausted) {
				s.emitAudit(ctx, req.OrganizationID, audit.EventBarcodeExhausted, map[string]string{
					"mode": string(req.Mode),
				})
			}
			return nil, err
		}

		err = s.store.Assign(ctx, models.AssignedBarcode{
			OrganizationID: req.OrganizationID,
			Barcode:        candidate,
			ProductID:      req.ProductID,
			AssignedAt:     time.Now().UTC(),
		})
		if err == nil {
			s.observe(ctx, req, "ok", time.Since(start))
			s.emitAudit(ctx, req.OrganizationID, audit.EventBarcodeAllocated, map[string]string{
				"barcode":    candidate,
				"product_id": req.ProductID.String(),
				"mode":       string(req.Mode),
				"attempts":   fmt.Sprintf("%d", attempt),
			})
			return &Allocation{
				Barcode:    candidate,
				RenderSpec: render.Resolve(candidate),
			}, nil
		}

		if !dErrors.HasCode(err, dErrors.CodeConflict) {
			s.observe(ctx, req, "store_error", time.Since(start))
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist allocated barcode")
		}

		// Lost the race: a concurrent allocator persisted the same candidate
		// between our probe and our insert. Restart past the lost sequence.
		if s.metrics != nil {
			s.metrics.IncrementPersistConflicts()
		}
		lostSeq, seqErr := allocator.SequenceOf(candidate)
		if seqErr != nil {
			return nil, dErrors.Wrap(seqErr, dErrors.CodeInternal, "failed to recover sequence from candidate")
		}
		sequence = lostSeq + 1
		s.logger.WarnContext(ctx, "barcode persistence conflict, retrying",
			"candidate", candidate,
			"next_sequence", sequence,
			"attempt", attempt,
		)
	}

	s.observe(ctx, req, "conflict_exhausted", time.Since(start))
	return nil, dErrors.New(dErrors.CodeConflict, "barcode allocation kept losing persistence races")
}

// Validate reports whether a value is a well-formed EAN-13.
func (s *Service) Validate(value string) bool {
	return ean13.IsValid(value)
}

// RenderSpec resolves the render symbology for any value.
func (s *Service) RenderSpec(value string) models.RenderSpec {
	return render.Resolve(value)
}

func (s *Service) observe(ctx context.Context, req AllocateRequest, result string, elapsed time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveAllocation(result, elapsed.Seconds())
	}
	if result != "ok" {
		s.logger.WarnContext(ctx, "barcode allocation did not succeed",
			"result", result,
			"mode", string(req.Mode),
			"organization_id", req.OrganizationID.String(),
		)
	}
}

func (s *Service) emitAudit(ctx context.Context, orgID domain.OrganizationID, action string, metadata map[string]string) {
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, audit.Event{
		OrganizationID: orgID,
		Action:         action,
		Metadata:       metadata,
	}); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "action", action, "error", err)
	}
}

func resultOf(err error) string {
	switch {
	case dErrors.HasCode(err, dErrors.CodeExhausted):
		return "exhausted"
	case dErrors.HasCode(err, dErrors.CodeCancelled):
		return "cancelled"
	default:
		return "error"
	}
}
