package pipeline

import (
	"context"
	"time"

	"netpulse/internal/graphql"
	"netpulse/internal/tool"
	"netpulse/internal/transform"
	"netpulse/pkg/logging"

	"github.com/google/uuid"
)

// Invoker runs one tool invocation end to end:
// lookup, normalize, input policy, downstream call, response policy, finalize.
// It holds no mutable state and is safe for concurrent use.
type Invoker struct {
	registry  *tool.Registry
	executor  graphql.Executor
	finalizer *Finalizer
}

// NewInvoker wires the pipeline stages together.
func NewInvoker(registry *tool.Registry, executor graphql.Executor, finalizer *Finalizer) *Invoker {
	if finalizer == nil {
		finalizer = NewFinalizer(DefaultMaxResponseLength)
	}
	return &Invoker{registry: registry, executor: executor, finalizer: finalizer}
}

// Registry returns the registry the invoker serves.
func (i *Invoker) Registry() *tool.Registry {
	return i.registry
}

// Invoke runs the named tool with the caller's raw arguments, which may be nil.
// Errors are typed (see the tool and graphql packages) and carry a message
// suitable for the caller.
func (i *Invoker) Invoke(ctx context.Context, name string, raw map[string]any) (string, error) {
	id := uuid.NewString()
	start := time.Now()

	d, err := i.registry.Lookup(name)
	if err != nil {
		return "", err
	}

	args, err := tool.Normalize(d, raw)
	if err != nil {
		return "", err
	}
	args, err = d.ApplyInput(args)
	if err != nil {
		return "", err
	}
	logging.Debug("Pipeline", "[%s] %s: calling downstream with %d arguments", id, name, len(args))

	env, err := i.executor.Execute(ctx, d.Query, args)
	if err != nil {
		return "", err
	}

	var response tool.ResponsePolicy = transform.Passthrough{}
	if d.Response != nil {
		response = d.Response
	}
	result, err := response.Transform(args, env)
	if err != nil {
		return "", err
	}

	text, err := i.finalizer.Finalize(result)
	if err != nil {
		return "", err
	}
	logging.Info("Pipeline", "[%s] %s completed in %s (%d bytes)", id, name, time.Since(start).Round(time.Millisecond), len(text))
	return text, nil
}
