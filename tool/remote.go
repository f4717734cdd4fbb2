package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/butler-ai/butler/core"
	"github.com/butler-ai/butler/logging"
)

// workflowIDs maps remote tool names to their automation workflow ids for
// direct API invocation.
var workflowIDs = map[string]string{
	"system_status":           "7LHGwHNVnfFNR7Dz",
	"docker_control":          "oj51dGKjapXRP91r",
	"service_control":         "EmRfZ7kbqyAIbz4m",
	"jellyfin_api":            "JlhBPAIfI8WHfCsj",
	"ssh_command":             "TTqKNvyugLWoVF08",
	"gemini_cli":              "anunjMp26km77JN7",
	"add_memory":              "sCcmYT1ufy8hrHMA",
	"memory_governance":       "dUc4LsfxP25i11wD",
	"memory_deduplication":    "07RhLX2UKvMjY1cr",
	"n8n_workflow_list":       "Qa93D3eLsEyc8lP8",
	"n8n_workflow_get":        "pnlb3Sp3BsBxRMwo",
	"n8n_workflow_create":     "rmHtxGxBYPtmotHz",
	"n8n_workflow_update":     "HGtPmkUCzYOy3lo1",
	"n8n_workflow_delete":     "BMvwGw7h9cRylQUE",
	"n8n_workflow_activate":   "GKM344aryPP29f2O",
	"n8n_workflow_deactivate": "OMqZ93GtwiWTuXne",
	"n8n_workflow_execute":    "eEtS2fTRa7FA8wAl",
}

// RemoteExecutorOptions configure a RemoteExecutor.
type RemoteExecutorOptions struct {
	// APIURL is the base URL of the workflow engine API. When set together
	// with APIKey, tools run via direct workflow invocation.
	APIURL string
	// APIKey authenticates direct API calls.
	APIKey string
	// WebhookURL is the tool-executor webhook used as fallback transport.
	WebhookURL string
	// Timeout bounds one remote execution; exceeding it yields a
	// timeout-classed error result.
	Timeout time.Duration
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
	Logger     logging.Logger
}

// RemoteExecutor delegates tool execution to an out-of-process automation
// workflow over HTTP. All failures, timeouts included, are converted to
// error envelopes; Call never returns a Go error.
type RemoteExecutor struct {
	apiURL     string
	apiKey     string
	webhookURL string
	timeout    time.Duration
	client     *http.Client
	logger     logging.Logger
}

// NewRemoteExecutor constructs an executor. With neither APIURL+APIKey nor
// WebhookURL configured every call fails fast with a configuration error
// result.
func NewRemoteExecutor(optFns ...func(o *RemoteExecutorOptions)) *RemoteExecutor {
	opts := RemoteExecutorOptions{
		Timeout: 60 * time.Second,
		Logger:  logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &RemoteExecutor{
		apiURL:     opts.APIURL,
		apiKey:     opts.APIKey,
		webhookURL: opts.WebhookURL,
		timeout:    opts.Timeout,
		client:     client,
		logger:     opts.Logger,
	}
}

// Call executes the named tool remotely and returns its result envelope.
func (e *RemoteExecutor) Call(ctx context.Context, toolName string, params map[string]any) core.ToolResult {
	if id, ok := workflowIDs[toolName]; ok && e.apiURL != "" && e.apiKey != "" {
		return e.callAPI(ctx, toolName, id, params)
	}
	if e.webhookURL != "" {
		return e.callWebhook(ctx, toolName, params)
	}
	return core.ErrorResult("remote executor not configured (set API URL + key, or webhook URL)")
}

// callAPI runs the mapped workflow directly via the engine API.
func (e *RemoteExecutor) callAPI(ctx context.Context, toolName, workflowID string, params map[string]any) core.ToolResult {
	url := fmt.Sprintf("%s/workflows/%s/run", e.apiURL, workflowID)
	body, status, err := e.post(ctx, url, params, map[string]string{"X-N8N-API-KEY": e.apiKey})
	if err != nil {
		return e.transportError(toolName, err)
	}
	if status < 200 || status >= 300 {
		e.logger.Error("remote.api.status", "tool", toolName, "status", status)
		return core.ErrorResult(fmt.Sprintf("workflow API error: %d", status))
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return core.ToolResult{"status": core.StatusSuccess, "tool": toolName, "result": string(body)}
	}
	if result, ok := lastNodeOutput(body, decoded); ok {
		return core.ToolResult{"status": core.StatusSuccess, "tool": toolName, "result": result}
	}
	return core.ToolResult{"status": core.StatusSuccess, "tool": toolName, "result": decoded}
}

// callWebhook posts {tool, params} to the tool-executor webhook. Non-JSON
// bodies are wrapped as {response: rawText}.
func (e *RemoteExecutor) callWebhook(ctx context.Context, toolName string, params map[string]any) core.ToolResult {
	payload := map[string]any{"tool": toolName, "params": params}
	body, _, err := e.post(ctx, e.webhookURL, payload, nil)
	if err != nil {
		return e.transportError(toolName, err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return core.ToolResult{"response": string(body)}
	}
	return core.ToolResult(decoded)
}

func (e *RemoteExecutor) post(ctx context.Context, url string, payload any, headers map[string]string) ([]byte, int, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("encode payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

func (e *RemoteExecutor) transportError(toolName string, err error) core.ToolResult {
	if errors.Is(err, context.DeadlineExceeded) {
		e.logger.Error("remote.timeout", "tool", toolName, "timeout", e.timeout.String())
		return core.ErrorResult(fmt.Sprintf("tool execution timed out after %s", e.timeout))
	}
	e.logger.Error("remote.transport", "tool", toolName, "error", err.Error())
	return core.ErrorResult(err.Error())
}

// lastNodeOutput digs the final node's JSON output out of a workflow-run API
// response: data.resultData.runData -> last node -> last run -> main[0][0].json.
// The workflow engine writes nodes into runData in execution order, which a
// decoded map loses, so the node order is recovered from the raw body.
func lastNodeOutput(body []byte, decoded map[string]any) (any, bool) {
	data, _ := decoded["data"].(map[string]any)
	resultData, _ := data["resultData"].(map[string]any)
	runData, _ := resultData["runData"].(map[string]any)
	if len(runData) == 0 {
		return nil, false
	}

	names := runDataNodeOrder(body)
	if len(names) == 0 {
		for name := range runData {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	for i := len(names) - 1; i >= 0; i-- {
		runs, _ := runData[names[i]].([]any)
		if len(runs) == 0 {
			continue
		}
		lastRun, _ := runs[len(runs)-1].(map[string]any)
		runOut, _ := lastRun["data"].(map[string]any)
		main, _ := runOut["main"].([]any)
		if len(main) == 0 {
			continue
		}
		items, _ := main[0].([]any)
		if len(items) == 0 {
			continue
		}
		item, _ := items[0].(map[string]any)
		if j, ok := item["json"]; ok {
			return j, true
		}
	}
	return nil, false
}

// runDataNodeOrder walks the raw response tokens and returns the keys of the
// data.resultData.runData object in document order.
func runDataNodeOrder(body []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(body))

	type frame struct {
		object    bool
		key       string
		expectKey bool
	}
	var stack []frame
	var names []string
	runDataDepth := -1

	keyPath := func() []string {
		path := make([]string, 0, len(stack))
		for _, f := range stack {
			if f.object {
				path = append(path, f.key)
			}
		}
		return path
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return names
		}
		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{':
				if runDataDepth == -1 {
					path := keyPath()
					if len(path) == 3 && path[0] == "data" && path[1] == "resultData" && path[2] == "runData" {
						runDataDepth = len(stack)
					}
				}
				stack = append(stack, frame{object: true, expectKey: true})
			case '[':
				stack = append(stack, frame{})
			default: // '}' or ']'
				stack = stack[:len(stack)-1]
				if runDataDepth == len(stack) {
					return names
				}
				if len(stack) > 0 && stack[len(stack)-1].object {
					stack[len(stack)-1].expectKey = true
				}
			}
		case string:
			if len(stack) > 0 && stack[len(stack)-1].object && stack[len(stack)-1].expectKey {
				stack[len(stack)-1].key = t
				stack[len(stack)-1].expectKey = false
				if runDataDepth == len(stack)-1 {
					names = append(names, t)
				}
				continue
			}
			if len(stack) > 0 && stack[len(stack)-1].object {
				stack[len(stack)-1].expectKey = true
			}
		default:
			if len(stack) > 0 && stack[len(stack)-1].object {
				stack[len(stack)-1].expectKey = true
			}
		}
	}
}

// RemoteTool exposes one remote capability through the Tool interface.
type RemoteTool struct {
	name        string
	description string
	parameters  map[string]any
	executor    *RemoteExecutor
}

// NewRemoteTool wraps a named remote capability.
func NewRemoteTool(name, description string, parameters map[string]any, executor *RemoteExecutor) *RemoteTool {
	return &RemoteTool{name: name, description: description, parameters: parameters, executor: executor}
}

// Name returns the tool name.
func (t *RemoteTool) Name() string { return t.name }

// Description returns the model-facing description.
func (t *RemoteTool) Description() string { return t.description }

// Parameters returns the argument schema.
func (t *RemoteTool) Parameters() map[string]any { return t.parameters }

// Call delegates to the executor. The executor already folds every failure
// into the result envelope, so Call never returns an error.
func (t *RemoteTool) Call(ctx context.Context, args map[string]any) (map[string]any, error) {
	return t.executor.Call(ctx, t.name, args), nil
}
