package tool

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/butler-ai/butler/core"
	"github.com/butler-ai/butler/logging"
)

// -------------------- FunctionTool Tests --------------------

func TestFunctionTool_Success(t *testing.T) {
	params := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{"type": "number"},
			"b": map[string]any{"type": "number"},
		},
		"required": []string{"a", "b"},
	}

	sumTool := NewFunctionTool("sum", "Add numbers", params, func(_ context.Context, args map[string]any) (map[string]any, error) {
		a := args["a"].(float64)
		b := args["b"].(float64)
		return map[string]any{"status": core.StatusSuccess, "sum": a + b}, nil
	})

	result, err := sumTool.Call(context.Background(), map[string]any{"a": 2.0, "b": 3.0})
	assert.NoError(t, err)
	assert.Equal(t, 5.0, result["sum"])
}

func TestFunctionTool_ValidationError(t *testing.T) {
	params := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{"type": "number"},
		},
		"required": []any{"a"},
	}
	fn := NewFunctionTool("test", "Test", params, func(_ context.Context, _ map[string]any) (map[string]any, error) {
		return map[string]any{}, nil
	})
	_, err := fn.Call(context.Background(), map[string]any{})
	assert.Error(t, err)
	toolErr, ok := err.(*ToolError)
	assert.True(t, ok)
	assert.Equal(t, CodeValidation, toolErr.Code)
}

func TestFunctionTool_ExecutionError(t *testing.T) {
	params := map[string]any{"type": "object", "properties": map[string]any{}}
	fn := NewFunctionTool("fail", "Fails", params, func(_ context.Context, _ map[string]any) (map[string]any, error) {
		return nil, errors.New("boom")
	})
	_, err := fn.Call(context.Background(), map[string]any{})
	assert.Error(t, err)
	toolErr, ok := err.(*ToolError)
	assert.True(t, ok)
	assert.Equal(t, CodeExecution, toolErr.Code)
}

// -------------------- Registry Tests --------------------

func noArgTool(name string, fn func(ctx context.Context, args map[string]any) (map[string]any, error)) Tool {
	return NewFunctionTool(name, name, map[string]any{"type": "object", "properties": map[string]any{}}, fn)
}

func TestRegistry_ExecuteUnknownTool(t *testing.T) {
	r := NewRegistry()
	result := r.Execute(context.Background(), "nope", map[string]any{})
	assert.True(t, result.IsError())
	assert.Contains(t, result["error"], "unknown tool: nope")
}

func TestRegistry_ExecuteSuccess(t *testing.T) {
	r := NewRegistry()
	r.Register(noArgTool("ping", func(_ context.Context, _ map[string]any) (map[string]any, error) {
		return map[string]any{"status": core.StatusSuccess, "pong": true}, nil
	}))

	result := r.Execute(context.Background(), "ping", map[string]any{})
	assert.False(t, result.IsError())
	assert.Equal(t, true, result["pong"])
}

func TestRegistry_ExecuteRecoversPanic(t *testing.T) {
	r := NewRegistry()
	r.Register(noArgTool("bomb", func(_ context.Context, _ map[string]any) (map[string]any, error) {
		panic("kaboom")
	}))

	var result core.ToolResult
	assert.NotPanics(t, func() {
		result = r.Execute(context.Background(), "bomb", map[string]any{})
	})
	assert.True(t, result.IsError())
}

func TestRegistry_ExecuteTimeout(t *testing.T) {
	r := NewRegistry()
	r.Register(noArgTool("slow", func(ctx context.Context, _ map[string]any) (map[string]any, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Second):
			return map[string]any{"status": core.StatusSuccess}, nil
		}
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	result := r.Execute(ctx, "slow", map[string]any{})
	assert.True(t, result.IsError())
	assert.Contains(t, result["error"], "timed out")
}

func TestRegistry_SchemasOrderAndSubset(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"alpha", "beta", "gamma"} {
		r.Register(noArgTool(name, func(_ context.Context, _ map[string]any) (map[string]any, error) {
			return map[string]any{"status": core.StatusSuccess}, nil
		}))
	}

	all := r.Schemas(nil)
	require.Len(t, all, 3)
	assert.Equal(t, "alpha", all[0].Name)
	assert.Equal(t, "beta", all[1].Name)
	assert.Equal(t, "gamma", all[2].Name)

	subset := r.Schemas([]string{"gamma", "alpha", "missing"})
	require.Len(t, subset, 2)
	// Registration order wins over the requested order.
	assert.Equal(t, "alpha", subset[0].Name)
	assert.Equal(t, "gamma", subset[1].Name)
}

func TestRegistry_RegisterLastWins(t *testing.T) {
	r := NewRegistry()
	r.Register(noArgTool("dup", func(_ context.Context, _ map[string]any) (map[string]any, error) {
		return map[string]any{"v": 1}, nil
	}))
	r.Register(noArgTool("dup", func(_ context.Context, _ map[string]any) (map[string]any, error) {
		return map[string]any{"v": 2}, nil
	}))

	assert.Equal(t, []string{"dup"}, r.Names())
	result := r.Execute(context.Background(), "dup", map[string]any{})
	assert.Equal(t, 2, result["v"])
}

func TestRegistry_ExecuteRecordsTelemetry(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(&logging.Config{Level: logging.LogLevelDebug, Format: "json", Output: &buf})

	r := NewRegistry(func(o *RegistryOptions) { o.Logger = logger })
	r.Register(noArgTool("ping", func(_ context.Context, _ map[string]any) (map[string]any, error) {
		return map[string]any{"status": core.StatusSuccess}, nil
	}))
	r.Register(noArgTool("boom", func(_ context.Context, _ map[string]any) (map[string]any, error) {
		return nil, errors.New("kaput")
	}))

	r.Execute(context.Background(), "ping", nil)
	r.Execute(context.Background(), "boom", nil)

	logged := buf.String()
	assert.Contains(t, logged, "tool.call.completed")
	assert.Contains(t, logged, "duration_ms")
	assert.Contains(t, logged, `"tool":"ping"`)
	assert.Contains(t, logged, `"tool":"boom"`)
	assert.Contains(t, logged, "kaput")
}

// -------------------- Builtin Tool Tests --------------------

func TestCalculatorTool(t *testing.T) {
	calc := NewCalculatorTool()
	result, err := calc.Call(context.Background(), map[string]any{"expression": "2 + 2"})
	require.NoError(t, err)
	assert.Equal(t, core.StatusSuccess, result["status"])
	assert.Equal(t, 4.0, result["result"])
}

func TestCalculatorTool_MissingExpression(t *testing.T) {
	calc := NewCalculatorTool()
	_, err := calc.Call(context.Background(), map[string]any{})
	assert.Error(t, err)
}

func TestCurrentTimeTool(t *testing.T) {
	clock := NewCurrentTimeTool()

	result, err := clock.Call(context.Background(), map[string]any{"timezone": "UTC"})
	require.NoError(t, err)
	assert.Equal(t, core.StatusSuccess, result["status"])
	assert.Equal(t, "UTC", result["timezone"])
	assert.NotEmpty(t, result["datetime"])
	assert.NotEmpty(t, result["date"])
	assert.NotEmpty(t, result["day"])

	// Default timezone applies when none is given.
	result, err = clock.Call(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, DefaultTimezone, result["timezone"])
}

func TestCurrentTimeTool_BadTimezone(t *testing.T) {
	clock := NewCurrentTimeTool()
	_, err := clock.Call(context.Background(), map[string]any{"timezone": "Mars/Olympus"})
	assert.Error(t, err)
}

func TestRegisterBuiltins(t *testing.T) {
	r := NewRegistry()
	RegisterBuiltins(r)
	assert.True(t, r.Has("calculator"))
	assert.True(t, r.Has("get_current_time"))
}

// -------------------- ToolError Formatting --------------------

func TestToolErrorFormatting(t *testing.T) {
	err := NewToolError("demo", "something failed", "E123")
	assert.Contains(t, err.Error(), "E123")
	assert.Contains(t, err.Error(), "demo")
}
