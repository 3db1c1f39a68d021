package mcp

// Method is a protocol method identifier used in JSON-RPC messages.
type Method string

// Supported method names.
const (
	InitializeMethod Method = "initialize"

	ToolsListMethod Method = "tools/list"
	ToolsCallMethod Method = "tools/call"

	ResourcesListMethod          Method = "resources/list"
	ResourcesTemplatesListMethod Method = "resources/templates/list"
	ResourcesReadMethod          Method = "resources/read"

	PromptsListMethod Method = "prompts/list"
	PromptsGetMethod  Method = "prompts/get"
)

// Feature name segments, the part of a method before the first "/".
const (
	FeatureInitialize = "initialize"
	FeatureTools      = "tools"
	FeatureResources  = "resources"
	FeaturePrompts    = "prompts"
)

// InitializeResult returns negotiated capabilities and server info.
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      ImplementationInfo `json:"serverInfo"`
	Instructions    string             `json:"instructions,omitzero"`
}

// ListToolsResult returns a page of tool definitions.
type ListToolsResult struct {
	Tools      []Tool `json:"tools"`
	NextCursor string `json:"nextCursor,omitzero"`
}

// CallToolResult represents a tool invocation result.
type CallToolResult struct {
	Content           []ContentBlock `json:"content,omitempty"`
	StructuredContent map[string]any `json:"structuredContent,omitempty"`
	IsError           bool           `json:"isError,omitzero"`
}

// ListResourcesResult returns a page of plain resources.
type ListResourcesResult struct {
	Resources  []Resource `json:"resources"`
	NextCursor string     `json:"nextCursor,omitzero"`
}

// ListResourceTemplatesResult returns a page of resource templates.
type ListResourceTemplatesResult struct {
	ResourceTemplates []Resource `json:"resourceTemplates"`
	NextCursor        string     `json:"nextCursor,omitzero"`
}

// ReadResourceResult returns resource contents.
type ReadResourceResult struct {
	Contents []ResourceContents `json:"contents"`
}

// ListPromptsResult returns a page of prompt definitions.
type ListPromptsResult struct {
	Prompts    []Prompt `json:"prompts"`
	NextCursor string   `json:"nextCursor,omitzero"`
}

// GetPromptResult returns a prompt description and its messages.
type GetPromptResult struct {
	Description string          `json:"description,omitzero"`
	Messages    []PromptMessage `json:"messages"`
}
