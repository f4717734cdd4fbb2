package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		query string
		want  QueryCategory
	}{
		{"Hello, Jarvis!", CategorySimple},
		{"Good morning", CategorySimple},
		{"That will be all", CategorySimple},
		{"What is the capital of France?", CategoryKnowledge},
		{"Explain quicksort to me", CategoryKnowledge},
		{"What time is it?", CategoryTimeCalc},
		{"What is 42 * 17 + 365?", CategoryTimeCalc},
		{"Calculate 256 squared", CategoryTimeCalc},
		{"List all Docker containers", CategorySystem},
		{"Check system status", CategorySystem},
		{"restart the jellyfin container", CategorySystem},
		{"What's playing on Jellyfin?", CategoryMedia},
		{"List n8n workflows", CategoryN8N},
		{"Remember that my birthday is January 15", CategoryMemory},
		{"Run the command ls -la", CategorySSH},
		{"xyzzy unclassifiable nonsense", CategoryFull},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.query), "query: %s", tc.query)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, CategoryTimeCalc, Classify("what is 2+2"))
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	assert.Equal(t, Classify("LIST DOCKER CONTAINERS"), Classify("list docker containers"))
}

func TestPriorityOrder(t *testing.T) {
	// "workflow" (n8n) outranks the knowledge-question opener.
	assert.Equal(t, CategoryN8N, Classify("what is an n8n workflow"))
	// "docker" (system) outranks time/calc keywords in the same query.
	assert.Equal(t, CategorySystem, Classify("calculate docker memory usage"))
}

func TestToolsForCategory(t *testing.T) {
	names, all := ToolsForCategory(CategorySimple)
	assert.False(t, all)
	assert.Empty(t, names)
	assert.NotContains(t, names, "docker_control")

	names, all = ToolsForCategory(CategoryKnowledge)
	assert.False(t, all)
	assert.Empty(t, names)

	names, all = ToolsForCategory(CategoryTimeCalc)
	assert.False(t, all)
	assert.ElementsMatch(t, []string{"calculator", "get_current_time"}, names)

	names, all = ToolsForCategory(CategoryFull)
	assert.True(t, all)
	assert.Nil(t, names)
}

func TestToolsForQuery(t *testing.T) {
	names, category, all := ToolsForQuery("list docker containers")
	assert.Equal(t, CategorySystem, category)
	assert.False(t, all)
	assert.Contains(t, names, "docker_control")
}
