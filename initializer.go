package mcpserializer

import "github.com/mdamire/mcp-serializer/mcp"

// InitializerOption customizes the static initialize result.
type InitializerOption func(*Initializer)

// WithServerInfo sets the advertised server name and version.
func WithServerInfo(name, version string) InitializerOption {
	return func(i *Initializer) {
		i.serverInfo.Name = name
		i.serverInfo.Version = version
	}
}

// WithServerTitle sets the human-readable server title.
func WithServerTitle(title string) InitializerOption {
	return func(i *Initializer) {
		i.serverInfo.Title = title
	}
}

// WithProtocolVersion overrides the advertised protocol version.
func WithProtocolVersion(version string) InitializerOption {
	return func(i *Initializer) {
		if version != "" {
			i.protocolVersion = version
		}
	}
}

// WithInstructions sets optional usage instructions returned to clients.
func WithInstructions(instructions string) InitializerOption {
	return func(i *Initializer) {
		i.instructions = instructions
	}
}

// WithToolsCapability advertises tool support.
func WithToolsCapability(listChanged bool) InitializerOption {
	return func(i *Initializer) {
		i.capabilities.Tools = &mcp.ToolsCapability{ListChanged: listChanged}
	}
}

// WithResourcesCapability advertises resource support.
func WithResourcesCapability(subscribe, listChanged bool) InitializerOption {
	return func(i *Initializer) {
		i.capabilities.Resources = &mcp.ResourcesCapability{
			Subscribe:   subscribe,
			ListChanged: listChanged,
		}
	}
}

// WithPromptsCapability advertises prompt support.
func WithPromptsCapability(listChanged bool) InitializerOption {
	return func(i *Initializer) {
		i.capabilities.Prompts = &mcp.PromptsCapability{ListChanged: listChanged}
	}
}

// Initializer builds the static result for the initialize method. The
// dispatcher trims advertised capabilities down to the features that
// actually have registered entries.
type Initializer struct {
	protocolVersion string
	instructions    string
	serverInfo      mcp.ImplementationInfo
	capabilities    mcp.ServerCapabilities
}

// NewInitializer constructs an Initializer with the default protocol
// version and the provided overrides applied in order.
func NewInitializer(opts ...InitializerOption) *Initializer {
	i := &Initializer{protocolVersion: mcp.DefaultProtocolVersion}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// BuildResult renders the initialize result payload.
func (i *Initializer) BuildResult() *mcp.InitializeResult {
	return &mcp.InitializeResult{
		ProtocolVersion: i.protocolVersion,
		Capabilities:    i.capabilities,
		ServerInfo:      i.serverInfo,
		Instructions:    i.instructions,
	}
}
