package llm

import (
	"context"
	"fmt"
)

// Request describes one completion round trip. A request carrying an image
// is dispatched to the vision-capable model regardless of the Model field.
type Request struct {
	Model       string
	System      string
	User        string
	ImageBase64 string
	MaxTokens   int
	Temperature float32
}

// Client is the completion provider boundary. Implementations return the
// raw assistant text; they never partially decode.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// UpstreamError reports a network, timeout, quota, or auth failure talking
// to the completion provider. Callers treat it as total failure for that
// call; it is never retried automatically.
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API error: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
