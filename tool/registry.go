package tool

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/butler-ai/butler/core"
	"github.com/butler-ai/butler/logging"
)

// toolCallRecorder is the optional per-call telemetry hook a logger may
// provide (logging.StructuredLogger does).
type toolCallRecorder interface {
	LogToolCall(tool string, dur time.Duration, err error)
}

// Registry holds the immutable tool table built at startup. Register all
// tools before the first Execute call; the registry itself takes no locks and
// is safe for concurrent reads thereafter.
type Registry struct {
	tools  map[string]Tool
	order  []string
	logger logging.Logger
}

// RegistryOptions configure a Registry.
type RegistryOptions struct {
	Logger logging.Logger
}

// NewRegistry constructs an empty registry.
func NewRegistry(optFns ...func(o *RegistryOptions)) *Registry {
	opts := RegistryOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Registry{tools: make(map[string]Tool), logger: opts.Logger}
}

// Register adds a tool. Registration is idempotent per name: a repeated name
// replaces the handler but keeps its original position in schema order.
func (r *Registry) Register(t Tool) {
	if _, exists := r.tools[t.Name()]; !exists {
		r.order = append(r.order, t.Name())
	}
	r.tools[t.Name()] = t
}

// Names returns all registered tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Has reports whether a tool name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.tools[name]
	return ok
}

// Schemas returns schema entries in registration order. A nil subset returns
// every entry; otherwise only tools whose name appears in subset are
// included (unknown subset names are ignored).
func (r *Registry) Schemas(subset []string) []core.ToolSchema {
	var wanted map[string]struct{}
	if subset != nil {
		wanted = make(map[string]struct{}, len(subset))
		for _, name := range subset {
			wanted[name] = struct{}{}
		}
	}

	out := make([]core.ToolSchema, 0, len(r.order))
	for _, name := range r.order {
		if wanted != nil {
			if _, ok := wanted[name]; !ok {
				continue
			}
		}
		t := r.tools[name]
		out = append(out, core.ToolSchema{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return out
}

// Execute looks up and invokes a tool by name. It never returns an error and
// never panics: unknown names, handler errors and recovered panics all
// surface as an error envelope, successful handlers pass their own payload
// through untouched.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) core.ToolResult {
	t, ok := r.tools[name]
	if !ok {
		r.logger.Warn("tool.execute.unknown", "tool", name)
		return core.ErrorResult(fmt.Sprintf("unknown tool: %s", name))
	}
	if args == nil {
		args = map[string]any{}
	}

	start := time.Now()
	var (
		payload map[string]any
		err     error
	)
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("panic in tool %s: %v", name, rec)
				r.logger.Error("tool.execute.panic", "tool", name, "recover", rec, "stack", string(debug.Stack()))
			}
		}()
		payload, err = t.Call(ctx, args)
	}()
	dur := time.Since(start)

	if rec, ok := r.logger.(toolCallRecorder); ok {
		rec.LogToolCall(name, dur, err)
	} else if err != nil {
		r.logger.Error("tool.execute.error", "tool", name, "duration_ms", dur.Milliseconds(), "error", err.Error())
	} else {
		r.logger.Info("tool.execute.success", "tool", name, "duration_ms", dur.Milliseconds())
	}

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return core.ErrorResult(fmt.Sprintf("tool %s timed out", name))
		}
		var toolErr *ToolError
		if errors.As(err, &toolErr) {
			return core.ErrorResult(toolErr.Message)
		}
		return core.ErrorResult(err.Error())
	}

	if payload == nil {
		return core.SuccessResult(nil)
	}
	return core.ToolResult(payload)
}
