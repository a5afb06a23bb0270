// Package service orchestrates scan resolution: normalizing the raw input,
// classifying the submit trigger, querying the catalog lookup and classifying
// what came back.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"scanid/internal/audit"
	"scanid/internal/scan/metrics"
	"scanid/internal/scan/models"
	"scanid/internal/scan/normalize"
	"scanid/internal/scan/ports"
	"scanid/internal/scan/resolver"
	"scanid/internal/scan/trigger"
	"scanid/pkg/domain"
	dErrors "scanid/pkg/domain-errors"
)

const tracerName = "scanid/internal/scan/service"

type Service struct {
	lookup             ports.LookupService
	history            ports.HistoryStore
	logger             *slog.Logger
	metrics            *metrics.Metrics
	auditPublisher     ports.AuditPublisher
	tracer             trace.Tracer
	tabSubmitMinLength int
	historyLimit       int
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

func WithHistoryStore(store ports.HistoryStore) Option {
	return func(s *Service) { s.history = store }
}

// WithTabSubmitMinLength overrides the minimum normalized length a Tab
// keystroke needs before it submits a scan.
func WithTabSubmitMinLength(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.tabSubmitMinLength = n
		}
	}
}

// WithHistoryLimit bounds how many entries History returns by default.
func WithHistoryLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

func New(lookup ports.LookupService, opts ...Option) (*Service, error) {
	if lookup == nil {
		return nil, fmt.Errorf("lookup service is required")
	}

	svc := &Service{
		lookup:             lookup,
		logger:             slog.Default(),
		tracer:             otel.Tracer(tracerName),
		tabSubmitMinLength: trigger.DefaultTabSubmitMinLength,
		historyLimit:       50,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// ResolveRequest carries one submitted scan buffer.
type ResolveRequest struct {
	OrganizationID domain.OrganizationID
	Context        models.Context
	RawInput       string

	// Key, when set, is the keystroke that flushed the buffer; it is run
	// through the submit classifier and a non-submitting keystroke rejects
	// the request. When empty the scan is treated as already submitted.
	Key               string
	SupportsTabSubmit bool
}

// Resolve classifies one scan end to end. The outcome is always one of the
// three ResolvedResult variants; errors are reserved for invalid requests and
// lookup failures.
func (s *Service) Resolve(ctx context.Context, req ResolveRequest) (models.ResolvedResult, error) {
	if req.OrganizationID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "organization_id is required")
	}
	if req.Context == "" {
		req.Context = models.ContextGlobal
	}
	if !req.Context.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeBadRequest, "unknown scan context %q", req.Context)
	}

	ctx, span := s.tracer.Start(ctx, "scan.resolve",
		trace.WithAttributes(attribute.String("scan.context", string(req.Context))))
	defer span.End()

	start := time.Now()
	query := normalize.Normalize(req.RawInput)

	trig := models.TriggerEnter
	if req.Key != "" {
		trig = trigger.Classify(req.Key, query, req.SupportsTabSubmit, s.tabSubmitMinLength)
		if trig == models.TriggerNone {
			return nil, dErrors.Newf(dErrors.CodeInvalidInput, "keystroke %q does not submit a scan", req.Key)
		}
	}

	// An input that normalizes to nothing has nothing to look up.
	var lookup models.LookupResult
	if query != "" {
		lookupStart := time.Now()
		var err error
		lookup, err = s.lookup.Lookup(ctx, req.OrganizationID, req.Context, query)
		s.metrics.ObserveLookupLatency(time.Since(lookupStart))
		if err != nil {
			s.logger.ErrorContext(ctx, "catalog lookup failed",
				"organization_id", req.OrganizationID,
				"context", req.Context,
				"error", err,
			)
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "catalog lookup failed")
		}
	}

	result := resolver.Resolve(req.Context, trig, query, lookup)
	span.SetAttributes(attribute.String("scan.outcome", string(result.Outcome())))

	s.metrics.IncrementOutcome(string(result.Outcome()), string(req.Context))
	s.metrics.ObserveResolveLatency(time.Since(start))
	s.recordHistory(ctx, req.OrganizationID, query, trig, result)
	s.emitAudit(ctx, req.OrganizationID, query, result)

	return result, nil
}

// History returns the organization's most recent scans, newest first.
func (s *Service) History(ctx context.Context, orgID domain.OrganizationID, limit int) ([]models.HistoryEntry, error) {
	if orgID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "organization_id is required")
	}
	if s.history == nil {
		return nil, nil
	}
	if limit <= 0 || limit > s.historyLimit {
		limit = s.historyLimit
	}
	return s.history.List(ctx, orgID, limit)
}

// recordHistory appends to the recent-scan log. History is best effort; a
// store failure never fails the scan.
func (s *Service) recordHistory(ctx context.Context, orgID domain.OrganizationID, query string, trig models.Trigger, result models.ResolvedResult) {
	if s.history == nil {
		return
	}

	entry := models.HistoryEntry{
		Input:     query,
		Trigger:   trig,
		Outcome:   result.Outcome(),
		ItemCount: itemCount(result),
		ScannedAt: time.Now().UTC(),
	}
	switch r := result.(type) {
	case models.Exact:
		entry.Context = r.Context
	case models.Multiple:
		entry.Context = r.Context
	case models.NotFound:
		entry.Context = r.Context
	}

	if err := s.history.Record(ctx, orgID, entry); err != nil {
		s.logger.WarnContext(ctx, "failed to record scan history",
			"organization_id", orgID,
			"error", err,
		)
	}
}

func (s *Service) emitAudit(ctx context.Context, orgID domain.OrganizationID, query string, result models.ResolvedResult) {
	if s.auditPublisher == nil {
		return
	}

	err := s.auditPublisher.Emit(ctx, audit.Event{
		OrganizationID: orgID,
		Action:         audit.EventScanResolved,
		Metadata: map[string]string{
			"input":   query,
			"outcome": string(result.Outcome()),
			"items":   fmt.Sprintf("%d", itemCount(result)),
		},
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to emit scan audit event",
			"organization_id", orgID,
			"error", err,
		)
	}
}

func itemCount(result models.ResolvedResult) int {
	switch r := result.(type) {
	case models.Exact:
		return 1
	case models.Multiple:
		return len(r.Items)
	default:
		return 0
	}
}
