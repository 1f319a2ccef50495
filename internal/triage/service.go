package triage

import (
	"context"
	"time"

	"github.com/linnemanlabs/go-core/log"
	"github.com/oklog/ulid/v2"
)

// Notifier escalates urgent reports to an external channel.
type Notifier interface {
	Send(ctx context.Context, r *Report) error
}

// Service is the business boundary for triage operations: it runs the
// engine, assigns report IDs, persists results, and escalates red flags.
type Service struct {
	store    Store
	engine   *Engine
	logger   log.Logger
	metrics  *Metrics // optional
	notifier Notifier // optional
}

// NewService creates a new triage service.
func NewService(store Store, engine *Engine, logger log.Logger, metrics *Metrics, notifier Notifier) *Service {
	if logger == nil {
		logger = log.Nop()
	}
	return &Service{
		store:    store,
		engine:   engine,
		logger:   logger,
		metrics:  metrics,
		notifier: notifier,
	}
}

// Submit evaluates the symptoms and persists the resulting report.
// Evaluation itself cannot fail; the only error source is the store.
func (s *Service) Submit(ctx context.Context, symptoms string, age int) (*Report, error) {
	ev := s.engine.Evaluate(symptoms, age)

	r := &Report{
		ID:         ulid.Make().String(),
		Symptoms:   symptoms,
		Age:        age,
		Results:    ev.Results,
		IsUrgent:   ev.IsUrgent,
		Fallback:   ev.Fallback,
		TokenCount: ev.TokenCount,
		MatchCount: ev.MatchCount,
		CreatedAt:  time.Now().UTC(),
		Duration:   ev.Duration,
	}

	if err := s.store.Put(ctx, r); err != nil {
		if s.metrics != nil {
			s.metrics.SubmitsTotal.WithLabelValues("store_error").Inc()
		}
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.SubmitsTotal.WithLabelValues("ok").Inc()
	}

	s.logger.Info(ctx, "triage evaluated",
		"report_id", r.ID,
		"tokens", r.TokenCount,
		"matches", r.MatchCount,
		"results", len(r.Results),
		"urgent", r.IsUrgent,
		"fallback", r.Fallback,
	)

	if r.IsUrgent && s.notifier != nil {
		// escalate off the request path; delivery must survive request cancellation
		go s.escalate(context.WithoutCancel(ctx), r)
	}

	return r, nil
}

// Get retrieves a stored report by ID.
func (s *Service) Get(ctx context.Context, id string) (*Report, bool, error) {
	return s.store.Get(ctx, id)
}

// Recent lists the most recently created reports, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]*Report, error) {
	return s.store.Recent(ctx, limit)
}

func (s *Service) escalate(ctx context.Context, r *Report) {
	if err := s.notifier.Send(ctx, r); err != nil {
		s.logger.Error(ctx, err, "urgent escalation failed", "report_id", r.ID)
		if s.metrics != nil {
			s.metrics.EscalationsTotal.WithLabelValues("error").Inc()
		}
		return
	}
	if s.metrics != nil {
		s.metrics.EscalationsTotal.WithLabelValues("ok").Inc()
	}
}
