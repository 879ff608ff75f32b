// In file: internal/llm/constants.go
package llm

import "time"

// Shared by the provider clients. Retries apply to model calls only; tool
// executions are never retried.
const (
	defaultTimeout    = 60 * time.Second
	maxRetries        = 3
	initialRetryDelay = 1 * time.Second
	defaultMaxTokens  = 1024
)
