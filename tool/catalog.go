package tool

// remoteCatalog describes every tool served by the remote automation layer,
// with model-facing schemas.
var remoteCatalog = []struct {
	name        string
	description string
	parameters  map[string]any
}{
	{
		name:        "system_status",
		description: "Get system information: CPU, memory, disk, network, processes, or uptime from the server.",
		parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"infoType": map[string]any{
					"type":        "string",
					"enum":        []string{"cpu", "memory", "disk", "network", "processes", "uptime", "all"},
					"description": "Type of system info to retrieve. Use 'all' for a complete overview.",
				},
			},
			"required": []string{"infoType"},
		},
	},
	{
		name:        "docker_control",
		description: "Manage Docker containers: list, start, stop, restart, view logs, inspect, and more.",
		parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"action": map[string]any{
					"type":        "string",
					"enum":        []string{"ps", "list", "running", "stats", "logs", "start", "stop", "restart", "inspect", "images", "volumes", "networks", "compose-ps"},
					"description": "Docker operation to perform",
				},
				"containerName": map[string]any{
					"type":        "string",
					"description": "Container name (required for logs, start, stop, restart, inspect)",
				},
			},
			"required": []string{"action"},
		},
	},
	{
		name:        "service_control",
		description: "Manage systemd services: check status, start, stop, restart, enable, disable, list, and view logs.",
		parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"action": map[string]any{
					"type":        "string",
					"enum":        []string{"status", "start", "stop", "restart", "enable", "disable", "list", "failed", "logs"},
					"description": "Service operation to perform",
				},
				"serviceName": map[string]any{
					"type":        "string",
					"description": "Service name (required for status, start, stop, restart, enable, disable, logs)",
				},
			},
			"required": []string{"action"},
		},
	},
	{
		name:        "jellyfin_api",
		description: "Interact with Jellyfin media server: get status, users, sessions, libraries, search media, trigger scans.",
		parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"action": map[string]any{
					"type":        "string",
					"enum":        []string{"status", "info", "health", "users", "sessions", "libraries", "items", "scan", "refresh", "activity", "scheduled-tasks", "search", "playing", "logs"},
					"description": "Jellyfin API operation to perform",
				},
				"params": map[string]any{
					"type":        "string",
					"description": "Optional JSON string with additional parameters (e.g., for search: {\"query\": \"movie name\"})",
				},
			},
			"required": []string{"action"},
		},
	},
	{
		name:        "ssh_command",
		description: "Execute an SSH command with sudo privileges on the server. Use with caution.",
		parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"command": map[string]any{
					"type":        "string",
					"description": "The command to execute (without sudo prefix, it will be added automatically)",
				},
			},
			"required": []string{"command"},
		},
	},
	{
		name:        "gemini_cli",
		description: "Execute a query using the Gemini CLI on the server. Useful for AI-powered analysis of logs, code, or data.",
		parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"prompt": map[string]any{
					"type":        "string",
					"description": "The prompt/query to send to Gemini",
				},
			},
			"required": []string{"prompt"},
		},
	},
	{
		name:        "add_memory",
		description: "Store a fact or preference about the user for later recall.",
		parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"content": map[string]any{
					"type":        "string",
					"description": "The fact to remember",
				},
			},
			"required": []string{"content"},
		},
	},
	{
		name:        "memory_governance",
		description: "Review, prune, or re-rank stored memories.",
		parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"action": map[string]any{
					"type":        "string",
					"enum":        []string{"review", "prune", "rerank"},
					"description": "Governance operation to perform",
				},
			},
			"required": []string{"action"},
		},
	},
	{
		name:        "memory_deduplication",
		description: "Merge duplicate or near-duplicate stored memories.",
		parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	},
	{
		name:        "n8n_workflow_list",
		description: "List all n8n workflows",
		parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"activeOnly": map[string]any{
					"type":        "boolean",
					"description": "Filter to only active workflows",
				},
			},
			"required": []string{},
		},
	},
	{
		name:        "n8n_workflow_get",
		description: "Get details of a specific n8n workflow",
		parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"workflowId": map[string]any{
					"type":        "string",
					"description": "The workflow ID to retrieve",
				},
			},
			"required": []string{"workflowId"},
		},
	},
	{
		name:        "n8n_workflow_create",
		description: "Create a new n8n workflow from JSON definition",
		parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"workflowJson": map[string]any{
					"type":        "object",
					"description": "Complete workflow definition with name, nodes, connections, settings",
				},
			},
			"required": []string{"workflowJson"},
		},
	},
	{
		name:        "n8n_workflow_update",
		description: "Update an existing n8n workflow",
		parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"workflowId":   map[string]any{"type": "string"},
				"workflowJson": map[string]any{"type": "object"},
			},
			"required": []string{"workflowId", "workflowJson"},
		},
	},
	{
		name:        "n8n_workflow_delete",
		description: "Delete an n8n workflow",
		parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"workflowId": map[string]any{
					"type":        "string",
					"description": "The workflow ID to delete",
				},
			},
			"required": []string{"workflowId"},
		},
	},
	{
		name:        "n8n_workflow_activate",
		description: "Activate an n8n workflow",
		parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"workflowId": map[string]any{
					"type":        "string",
					"description": "The workflow ID to activate",
				},
			},
			"required": []string{"workflowId"},
		},
	},
	{
		name:        "n8n_workflow_deactivate",
		description: "Deactivate an n8n workflow",
		parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"workflowId": map[string]any{
					"type":        "string",
					"description": "The workflow ID to deactivate",
				},
			},
			"required": []string{"workflowId"},
		},
	},
	{
		name:        "n8n_workflow_execute",
		description: "Execute an n8n workflow manually",
		parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"workflowId": map[string]any{"type": "string"},
				"inputData": map[string]any{
					"type":        "object",
					"description": "Optional input data for the workflow",
				},
			},
			"required": []string{"workflowId"},
		},
	},
}

// RegisterRemoteTools registers the full remote catalogue against the given
// executor. Tool names line up with the query-classifier groups.
func RegisterRemoteTools(r *Registry, executor *RemoteExecutor) {
	for _, entry := range remoteCatalog {
		r.Register(NewRemoteTool(entry.name, entry.description, entry.parameters, executor))
	}
}
