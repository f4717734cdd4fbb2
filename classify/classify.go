// Package classify categorizes user queries so the orchestrator can narrow
// the tool set advertised to the model. Classification is advisory only: a
// wrong category costs efficiency, never correctness, because the model still
// receives a usable (possibly reduced) tool list.
package classify

import (
	"regexp"
	"strings"
)

// QueryCategory is the closed set of query classes.
type QueryCategory string

const (
	// CategorySimple covers greetings and pleasantries; no tools needed.
	CategorySimple QueryCategory = "simple"
	// CategoryKnowledge covers general factual questions; no tools needed.
	CategoryKnowledge QueryCategory = "knowledge"
	// CategoryTimeCalc covers time/date and arithmetic queries.
	CategoryTimeCalc QueryCategory = "time_calc"
	// CategorySystem covers server, docker and service queries.
	CategorySystem QueryCategory = "system"
	// CategoryMedia covers media server queries.
	CategoryMedia QueryCategory = "media"
	// CategoryN8N covers workflow management queries.
	CategoryN8N QueryCategory = "n8n"
	// CategoryMemory covers remember/recall queries.
	CategoryMemory QueryCategory = "memory"
	// CategorySSH covers shell and remote command queries.
	CategorySSH QueryCategory = "ssh"
	// CategoryFull means the query was unclassifiable; advertise every tool.
	CategoryFull QueryCategory = "full"
)

// String returns the category name.
func (c QueryCategory) String() string { return string(c) }

// toolGroups maps each category to the fixed tool subset it unlocks. A nil
// entry (CategoryFull) is the sentinel for "every registered tool".
var toolGroups = map[QueryCategory][]string{
	CategorySimple:    {},
	CategoryKnowledge: {},
	CategoryTimeCalc:  {"calculator", "get_current_time"},
	CategorySystem: {
		"calculator", "get_current_time",
		"system_status", "docker_control", "service_control",
	},
	CategoryMedia: {
		"calculator", "get_current_time",
		"jellyfin_api",
	},
	CategoryN8N: {
		"n8n_workflow_list", "n8n_workflow_get", "n8n_workflow_create",
		"n8n_workflow_update", "n8n_workflow_delete", "n8n_workflow_activate",
		"n8n_workflow_deactivate", "n8n_workflow_execute",
	},
	CategoryMemory: {"add_memory", "memory_governance", "memory_deduplication"},
	CategorySSH:    {"ssh_command", "gemini_cli"},
	CategoryFull:   nil,
}

// patterns holds the matchers per category, tested against the lower-cased
// query.
var patterns = map[QueryCategory][]*regexp.Regexp{
	CategoryTimeCalc: compileAll(
		`\btime\b`, `\bdate\b`, `\bclock\b`, `\btoday\b`,
		`\bcalculate\b`, `\bmath\b`, `\bcompute\b`,
		`\d+\s*[\+\-\*\/\^]\s*\d+`,
		`\bsquared?\b`, `\bsqrt\b`, `\broot\b`,
		`\bwhat\s+is\s+\d+`, `\bhow\s+much\s+is\b`,
	),
	CategorySystem: compileAll(
		`\bsystem\b`, `\bcpu\b`, `\bmemory\b`, `\bram\b`,
		`\bdisk\b`, `\buptime\b`, `\bprocess\b`, `\bnetwork\b`,
		`\bdocker\b`, `\bcontainer\b`, `\bservice\b`, `\bsystemd\b`,
		`\bserver\b`, `\bstatus\b`, `\bhealth\b`,
		`\bstart\b.*\bservice\b`, `\bstop\b.*\bservice\b`,
		`\brestart\b.*\b(service|container|docker)\b`,
	),
	CategoryMedia: compileAll(
		`\bjellyfin\b`, `\bmedia\b`, `\bmovie\b`, `\bshow\b`,
		`\bvideo\b`, `\bstream\b`, `\blibrary\b`, `\bplaying\b`,
		`\bsession\b.*\bactive\b`, `\bwhat\s+(is|are)\s+(being\s+)?watch`,
	),
	CategoryN8N: compileAll(
		`\bn8n\b`, `\bworkflow\b`, `\bautomation\b`,
		`\bactivate\b.*\bworkflow\b`, `\bdeactivate\b.*\bworkflow\b`,
		`\bcreate\b.*\bworkflow\b`, `\blist\b.*\bworkflow\b`,
	),
	CategoryMemory: compileAll(
		`\bremember\b`, `\bmemory\b`, `\bforget\b`,
		`\bsave\b.*\b(this|that|it)\b`, `\bstore\b`,
		`\brecall\b`, `\bwhat\s+do\s+you\s+(know|remember)\b`,
	),
	CategorySSH: compileAll(
		`\bssh\b`, `\bcommand\b`, `\bexecute\b`, `\brun\b`,
		`\bgemini\b`, `\bterminal\b`, `\bshell\b`,
	),
	CategorySimple: compileAll(
		`^(hi|hello|hey|good\s+(morning|afternoon|evening)|greetings)`,
		`^(thanks|thank\s+you|bye|goodbye|dismiss|that\s+will\s+be\s+all)`,
		`^(how\s+are\s+you|what'?s\s+up)`,
	),
	CategoryKnowledge: compileAll(
		`^(what|who|when|where|why|how)\s+(is|are|was|were|did|does|do)\b`,
		`\b(explain|describe|tell\s+me\s+about|define)\b`,
		`\b(capital|president|population|country|city)\b`,
		`\b(compare|difference|between)\b`,
		`\bpros\s+and\s+cons\b`,
	),
}

// priorityOrder fixes evaluation order: explicit tool domains first, then the
// cheap small-talk and knowledge fallthroughs.
var priorityOrder = []QueryCategory{
	CategoryN8N,
	CategorySystem,
	CategoryMedia,
	CategorySSH,
	CategoryMemory,
	CategoryTimeCalc,
	CategorySimple,
	CategoryKnowledge,
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// Classify maps a query to its category. Deterministic, side-effect-free and
// case-insensitive; the first category (in priority order) with a matching
// pattern wins, and an unmatched query yields CategoryFull.
func Classify(query string) QueryCategory {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, category := range priorityOrder {
		for _, re := range patterns[category] {
			if re.MatchString(q) {
				return category
			}
		}
	}
	return CategoryFull
}

// ToolsForCategory returns the tool names unlocked by a category. The second
// return value reports the "all tools" sentinel (CategoryFull): when true the
// name slice is nil and every registered tool should be advertised.
func ToolsForCategory(category QueryCategory) ([]string, bool) {
	names, ok := toolGroups[category]
	if !ok {
		return nil, true
	}
	if names == nil {
		return nil, true
	}
	out := make([]string, len(names))
	copy(out, names)
	return out, false
}

// ToolsForQuery classifies the query and resolves its tool subset in one
// step.
func ToolsForQuery(query string) ([]string, QueryCategory, bool) {
	category := Classify(query)
	names, all := ToolsForCategory(category)
	return names, category, all
}
