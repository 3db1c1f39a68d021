package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/mdamire/mcp-serializer/contentio"
	"github.com/mdamire/mcp-serializer/mcp"
)

// PromptResult accumulates the role-tagged messages of a single prompt
// invocation. Content added without an explicit role uses the default role.
type PromptResult struct {
	messages    []mcp.PromptMessage
	defaultRole mcp.Role
	resources   *Resources
}

// NewPromptResult creates an empty prompt result accumulator with the
// assistant default role.
func NewPromptResult() *PromptResult {
	return &PromptResult{defaultRole: mcp.RoleAssistant}
}

// SetDefaultRole overrides the role applied to content added without one.
func (r *PromptResult) SetDefaultRole(role mcp.Role) error {
	if !mcp.IsValidRole(role) {
		return fmt.Errorf("role must be either %q or %q", mcp.RoleUser, mcp.RoleAssistant)
	}
	r.defaultRole = role
	return nil
}

// BindResources attaches a resource registry used to resolve embedded
// resources. Returns the receiver for chaining.
func (r *PromptResult) BindResources(res *Resources) *PromptResult {
	r.resources = res
	return r
}

func (r *PromptResult) addMessage(role mcp.Role, content mcp.ContentBlock) error {
	if role == "" {
		role = r.defaultRole
	}
	if !mcp.IsValidRole(role) {
		return fmt.Errorf("role must be either %q or %q", mcp.RoleUser, mcp.RoleAssistant)
	}
	r.messages = append(r.messages, mcp.PromptMessage{Role: role, Content: content})
	return nil
}

// AddText appends a text message.
func (r *PromptResult) AddText(text string, opts ...ContentOption) error {
	if text == "" {
		return errors.New("text must be a non-empty string")
	}
	co := applyContentOpts(opts)
	return r.addMessage(co.role, mcp.ContentBlock{
		Type:        mcp.ContentTypeText,
		Text:        text,
		Annotations: co.annotations,
	})
}

// AddImage appends an image message with base64 data.
func (r *PromptResult) AddImage(data, mimeType string, opts ...ContentOption) error {
	if err := validateBinaryContent(data, mimeType); err != nil {
		return err
	}
	co := applyContentOpts(opts)
	return r.addMessage(co.role, mcp.ContentBlock{
		Type:        mcp.ContentTypeImage,
		Data:        data,
		MimeType:    mimeType,
		Annotations: co.annotations,
	})
}

// AddAudio appends an audio message with base64 data.
func (r *PromptResult) AddAudio(data, mimeType string, opts ...ContentOption) error {
	if err := validateBinaryContent(data, mimeType); err != nil {
		return err
	}
	co := applyContentOpts(opts)
	return r.addMessage(co.role, mcp.ContentBlock{
		Type:        mcp.ContentTypeAudio,
		Data:        data,
		MimeType:    mimeType,
		Annotations: co.annotations,
	})
}

// AddFile resolves a file into content and appends it as a text, image or
// audio message, whichever the file classifies as.
func (r *PromptResult) AddFile(path string, opts ...ContentOption) error {
	fc, err := contentio.DetectFile(path)
	if err != nil {
		return fmt.Errorf("unable to process file %q: %w", path, err)
	}
	switch fc.Kind {
	case contentio.KindText:
		return r.AddText(fc.Text, opts...)
	case contentio.KindImage:
		return r.AddImage(fc.Blob, fc.MimeType, opts...)
	case contentio.KindAudio:
		return r.AddAudio(fc.Blob, fc.MimeType, opts...)
	default:
		return fmt.Errorf("unknown content type for file %q", path)
	}
}

// AddEmbeddedResource appends an embedded-resource message. Content is read
// from the bound resource registry when the caller supplies neither text nor
// blob.
func (r *PromptResult) AddEmbeddedResource(ctx context.Context, uri string, opts ...ContentOption) error {
	co := applyContentOpts(opts)
	contents, err := resolveEmbeddedContents(ctx, r.resources, uri, co)
	if err != nil {
		return err
	}
	return r.addMessage(co.role, mcp.ContentBlock{
		Type:     mcp.ContentTypeResource,
		Resource: contents,
	})
}

// Messages returns the accumulated messages. The slice is never nil so an
// empty result still marshals as an empty array.
func (r *PromptResult) Messages() []mcp.PromptMessage {
	if r.messages == nil {
		return []mcp.PromptMessage{}
	}
	return r.messages
}
