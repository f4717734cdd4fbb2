package tool

import (
	"context"
	"fmt"
	"time"
)

// DefaultTimezone is the fallback for get_current_time when no timezone
// argument is supplied.
const DefaultTimezone = "Asia/Jerusalem"

// NewCalculatorTool returns the builtin arithmetic evaluator. It runs
// locally with bounded execution time and no I/O.
func NewCalculatorTool() *FunctionTool {
	return NewFunctionTool(
		"calculator",
		"Perform mathematical calculations. Supports basic arithmetic, powers, roots, and common math functions.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"expression": map[string]any{
					"type":        "string",
					"description": "Mathematical expression to evaluate (e.g., '2 + 2', 'sqrt(16)', '3 ^ 4')",
				},
			},
			"required": []string{"expression"},
		},
		func(_ context.Context, args map[string]any) (map[string]any, error) {
			expression, _ := args["expression"].(string)
			result, err := evaluate(expression)
			if err != nil {
				return nil, fmt.Errorf("cannot evaluate %q: %w", expression, err)
			}
			return map[string]any{
				"status":     "success",
				"result":     result,
				"expression": expression,
			}, nil
		},
	)
}

// currentTimeArgs declares the get_current_time argument schema; the JSON
// schema is derived from it by reflection.
type currentTimeArgs struct {
	Timezone string `json:"timezone,omitempty" description:"Timezone name (e.g., 'UTC', 'America/New_York', 'Asia/Jerusalem')"`
}

// NewCurrentTimeTool returns the builtin clock reader.
func NewCurrentTimeTool() *FunctionTool {
	return NewFunctionToolFromStruct(
		"get_current_time",
		"Get the current date and time. Default timezone is "+DefaultTimezone+".",
		currentTimeArgs{},
		func(_ context.Context, args map[string]any) (map[string]any, error) {
			name, _ := args["timezone"].(string)
			if name == "" {
				name = DefaultTimezone
			}
			loc, err := time.LoadLocation(name)
			if err != nil {
				return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
			}
			now := time.Now().In(loc)
			return map[string]any{
				"status":   "success",
				"datetime": now.Format(time.RFC3339),
				"date":     now.Format("2006-01-02"),
				"time":     now.Format("15:04:05"),
				"day":      now.Weekday().String(),
				"timezone": name,
			}, nil
		},
	)
}

// RegisterBuiltins registers the local computation tools.
func RegisterBuiltins(r *Registry) {
	r.Register(NewCalculatorTool())
	r.Register(NewCurrentTimeTool())
}
