package session

import "context"

// WorkSessionRepository persists reconstructed sessions. Like salaries,
// a month's rows are replaced wholesale per recompute.
type WorkSessionRepository interface {
	ReplaceForMonth(ctx context.Context, month, generationID string, sessions []WorkSession) error
	ListByMonth(ctx context.Context, month string) ([]WorkSession, error)
}
