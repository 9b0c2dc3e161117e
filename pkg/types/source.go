package types

import (
	"context"
	"errors"
)

// Source supplies records from a remote mailbox. The archive itself has
// no transport dependency; it only ever sees materialized tuples.
type Source interface {
	// Search returns metadata-only summaries for the query, newest
	// first, capped at limit.
	Search(ctx context.Context, query string, limit int) ([]Summary, error)

	// GetMessage fetches one full message including decoded body parts.
	GetMessage(ctx context.Context, id string) (*Message, error)
}

// Source errors.
var (
	ErrNotAuthenticated = errors.New("source is not authenticated")
	ErrMessageNotFound  = errors.New("message not found")
)
