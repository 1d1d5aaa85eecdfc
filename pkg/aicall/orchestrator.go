// Package aicall wraps outbound AI requests with a wall-clock timeout budget
// and a fixed error taxonomy. It issues exactly the call it is given; request
// de-duplication stays with the caller, which can consult the busy flags.
package aicall

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"reflect360-be/pkg/llm"
	"reflect360-be/pkg/llm/openaicompat"
)

// Timeout budgets per logical operation.
const (
	InsightTimeout  = 15 * time.Second
	SummaryTimeout  = 25 * time.Second
	DialogueTimeout = 25 * time.Second
)

// Fn is the unit of work Invoke supervises. It must honor ctx cancellation.
type Fn func(ctx context.Context) (string, error)

// Orchestrator applies timeouts, classifies failures and tracks which logical
// operations currently have a call outstanding.
type Orchestrator struct {
	busy *cache.Cache
}

func NewOrchestrator() *Orchestrator {
	// Busy flags self-expire as a safety net in case a caller forgets End.
	return &Orchestrator{busy: cache.New(2*time.Minute, 5*time.Minute)}
}

// Invoke runs fn under the given budget and returns either its result or a
// *CallError. A deadline hit is always KindTimeout, never KindNetwork.
func (o *Orchestrator) Invoke(ctx context.Context, op string, timeout time.Duration, fn Fn) (string, *CallError) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := fn(callCtx)
	if err == nil {
		return result, nil
	}

	if callCtx.Err() == context.DeadlineExceeded {
		return "", &CallError{Kind: KindTimeout, Message: "no response in time", Details: op}
	}
	return "", classify(err)
}

// TryBegin marks op busy and reports whether it was free. Callers gate their
// triggers on this; the orchestrator itself never blocks a second call.
func (o *Orchestrator) TryBegin(op string) bool {
	return o.busy.Add(op, true, cache.DefaultExpiration) == nil
}

// End clears the busy flag for op.
func (o *Orchestrator) End(op string) {
	o.busy.Delete(op)
}

// Busy reports whether a call for op is outstanding.
func (o *Orchestrator) Busy(op string) bool {
	_, found := o.busy.Get(op)
	return found
}

func classify(err error) *CallError {
	// Missing credential, either typed or via the upstream's message text.
	if errors.Is(err, llm.ErrMissingAPIKey) || strings.Contains(err.Error(), "API key not configured") {
		return &CallError{Kind: KindServerConfig, Message: "upstream credential missing"}
	}

	var upstream *openaicompat.UpstreamError
	if errors.As(err, &upstream) {
		return &CallError{Kind: KindServer, Message: "upstream returned an error", Details: upstream.Body}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return &CallError{Kind: KindTimeout, Message: "no response in time"}
		}
		return &CallError{Kind: KindNetwork, Message: "network failure", Details: err.Error()}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &CallError{Kind: KindNetwork, Message: "network failure", Details: urlErr.Err.Error()}
	}

	return &CallError{Kind: KindUnknown, Message: err.Error()}
}
