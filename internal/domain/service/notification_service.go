package service

import (
	"context"
)

// MaxWakeBatchSize is the largest token batch a single send accepts.
const MaxWakeBatchSize = 500

// WakeNotifier sends data-only pushes telling offline devices to sync.
type WakeNotifier interface {
	// SendWake sends a data-only message to up to MaxWakeBatchSize tokens.
	// Returns success count, failure count, list of invalid tokens, and error
	SendWake(ctx context.Context, tokens []string, data map[string]string) (successCount, failureCount int, invalidTokens []string, err error)
}
