package triage

import "context"

// Store is the persistence interface for triage reports.
type Store interface {
	Get(ctx context.Context, id string) (*Report, bool, error)
	Put(ctx context.Context, r *Report) error
	Recent(ctx context.Context, limit int) ([]*Report, error)
}
