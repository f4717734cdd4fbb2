package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArguments(t *testing.T) {
	args := ParseArguments(`{"expression": "2 + 2", "precision": 3}`)
	assert.Equal(t, "2 + 2", args["expression"])
	assert.Equal(t, float64(3), args["precision"])
}

func TestParseArgumentsEmpty(t *testing.T) {
	assert.Equal(t, map[string]any{}, ParseArguments(""))
}

func TestParseArgumentsMalformed(t *testing.T) {
	assert.Equal(t, map[string]any{}, ParseArguments(`{"expression": `))
	assert.Equal(t, map[string]any{}, ParseArguments(`[1, 2]`))
	assert.Equal(t, map[string]any{}, ParseArguments(`null`))
}
