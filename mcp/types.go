package mcp

// Role indicates the role of a message author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// IsValidRole reports whether the provided role is protocol-defined.
func IsValidRole(role Role) bool {
	return role == RoleUser || role == RoleAssistant
}

// Annotations provide optional routing/prioritization hints on definitions
// and content items.
type Annotations struct {
	Audience     string  `json:"audience,omitzero"`
	Priority     float64 `json:"priority,omitzero"`
	LastModified string  `json:"lastModified,omitzero"`
}

// Content block type discriminators.
const (
	ContentTypeText         = "text"
	ContentTypeImage        = "image"
	ContentTypeAudio        = "audio"
	ContentTypeResourceLink = "resource_link"
	ContentTypeResource     = "resource"
)

// ContentBlock is a typed content part of a tool result or prompt message.
type ContentBlock struct {
	Type string `json:"type"`
	// For text content
	Text string `json:"text,omitzero"`
	// For image and audio content (base64)
	Data     string `json:"data,omitzero"`
	MimeType string `json:"mimeType,omitzero"`
	// For resource links
	URI         string `json:"uri,omitzero"`
	Name        string `json:"name,omitzero"`
	Description string `json:"description,omitzero"`
	// For embedded resources
	Resource    *ResourceContents `json:"resource,omitempty"`
	Annotations *Annotations      `json:"annotations,omitempty"`
}

// ResourceContents is a single item of a resource read: either text or a
// base64 blob, never both.
type ResourceContents struct {
	URI         string       `json:"uri"`
	MimeType    string       `json:"mimeType,omitzero"`
	Name        string       `json:"name,omitzero"`
	Title       string       `json:"title,omitzero"`
	Text        string       `json:"text,omitzero"`
	Blob        string       `json:"blob,omitzero"`
	Annotations *Annotations `json:"annotations,omitempty"`
}

// Tool describes a callable tool and its input schema.
type Tool struct {
	Name        string         `json:"name"`
	Title       string         `json:"title,omitzero"`
	Description string         `json:"description,omitzero"`
	InputSchema map[string]any `json:"inputSchema,omitempty"`
	// OutputSchema optionally declares the structure of structuredContent in
	// CallToolResult for this tool.
	OutputSchema map[string]any `json:"outputSchema,omitempty"`
	Annotations  *Annotations   `json:"annotations,omitempty"`
}

// Resource represents an addressable resource. The same shape is used for
// template listings, where URI carries the synthesized templated form.
type Resource struct {
	URI         string       `json:"uri"`
	Name        string       `json:"name,omitzero"`
	Title       string       `json:"title,omitzero"`
	Description string       `json:"description,omitzero"`
	MimeType    string       `json:"mimeType,omitzero"`
	Size        int64        `json:"size,omitzero"`
	Annotations *Annotations `json:"annotations,omitempty"`
}

// PromptArgument describes a single prompt argument.
type PromptArgument struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitzero"`
	Required    bool   `json:"required"`
}

// Prompt describes a named prompt the server can provide.
type Prompt struct {
	Name        string           `json:"name"`
	Title       string           `json:"title,omitzero"`
	Description string           `json:"description,omitzero"`
	Arguments   []PromptArgument `json:"arguments,omitempty"`
}

// PromptMessage is a role-tagged message in a prompt result.
type PromptMessage struct {
	Role    Role         `json:"role"`
	Content ContentBlock `json:"content"`
}

// ImplementationInfo describes the implementation name and version.
type ImplementationInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Title   string `json:"title,omitzero"`
}

// PromptsCapability advertises prompt support.
type PromptsCapability struct {
	ListChanged bool `json:"listChanged"`
}

// ResourcesCapability advertises resource support.
type ResourcesCapability struct {
	Subscribe   bool `json:"subscribe"`
	ListChanged bool `json:"listChanged"`
}

// ToolsCapability advertises tool support.
type ToolsCapability struct {
	ListChanged bool `json:"listChanged"`
}

// ServerCapabilities advertises server features. Nil members are omitted from
// the wire form, which is how the dispatch layer trims capabilities for
// features with no registered entries.
type ServerCapabilities struct {
	Prompts   *PromptsCapability   `json:"prompts,omitempty"`
	Resources *ResourcesCapability `json:"resources,omitempty"`
	Tools     *ToolsCapability     `json:"tools,omitempty"`
}

// DefaultProtocolVersion is advertised when the host does not configure one.
const DefaultProtocolVersion = "2024-11-05"
