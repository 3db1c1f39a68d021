package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mdamire/mcp-serializer/contentio"
	"github.com/mdamire/mcp-serializer/mcp"
)

// ToolOutcome is the closed set of values a tool handler may produce: a
// *ToolResult accumulator or a Structured value. The assembler resolves the
// union exhaustively; anything else is an UnsupportedResultTypeError.
type ToolOutcome interface {
	isToolOutcome()
}

// structuredOutcome carries a bare structured value returned without an
// accumulator; it becomes pure structuredContent on the wire.
type structuredOutcome struct {
	value any
}

func (structuredOutcome) isToolOutcome() {}

// Structured wraps a struct or map so it is serialized as the tool result's
// structuredContent with no content items.
func Structured(value any) ToolOutcome {
	return structuredOutcome{value: value}
}

// ToolResult accumulates ordered content items plus structured content and
// the error flag for a single tool invocation. It is created fresh per call
// and discarded after assembly.
type ToolResult struct {
	content    []mcp.ContentBlock
	structured map[string]any
	isError    bool

	// resources backs resource-link and embedded-resource lookups.
	resources *Resources
}

func (*ToolResult) isToolOutcome() {}

// NewToolResult creates an empty tool result accumulator.
func NewToolResult() *ToolResult {
	return &ToolResult{}
}

// BindResources attaches a resource registry used to resolve resource links
// and embedded resources. Returns the receiver for chaining.
func (r *ToolResult) BindResources(res *Resources) *ToolResult {
	r.resources = res
	return r
}

// MarkError flags the result as a tool-level failure (isError on the wire).
func (r *ToolResult) MarkError() *ToolResult {
	r.isError = true
	return r
}

// AddText appends a text content item.
func (r *ToolResult) AddText(text string, opts ...ContentOption) error {
	if text == "" {
		return errors.New("text must be a non-empty string")
	}
	co := applyContentOpts(opts)
	r.content = append(r.content, mcp.ContentBlock{
		Type:        mcp.ContentTypeText,
		Text:        text,
		Annotations: co.annotations,
	})
	return nil
}

// AddImage appends an image content item with base64 data.
func (r *ToolResult) AddImage(data, mimeType string, opts ...ContentOption) error {
	if err := validateBinaryContent(data, mimeType); err != nil {
		return err
	}
	co := applyContentOpts(opts)
	r.content = append(r.content, mcp.ContentBlock{
		Type:        mcp.ContentTypeImage,
		Data:        data,
		MimeType:    mimeType,
		Annotations: co.annotations,
	})
	return nil
}

// AddAudio appends an audio content item with base64 data.
func (r *ToolResult) AddAudio(data, mimeType string, opts ...ContentOption) error {
	if err := validateBinaryContent(data, mimeType); err != nil {
		return err
	}
	co := applyContentOpts(opts)
	r.content = append(r.content, mcp.ContentBlock{
		Type:        mcp.ContentTypeAudio,
		Data:        data,
		MimeType:    mimeType,
		Annotations: co.annotations,
	})
	return nil
}

// AddFile resolves a file into content and appends it as text, image or
// audio, whichever the file classifies as.
func (r *ToolResult) AddFile(path string, opts ...ContentOption) error {
	fc, err := contentio.DetectFile(path)
	if err != nil {
		return fmt.Errorf("unable to determine data or mime type from file %q: %w", path, err)
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

// AddResourceLink appends a resource_link content item. Non-HTTP URIs must
// name a registered resource in the bound registry; HTTP(S) URIs may be
// linked freely.
func (r *ToolResult) AddResourceLink(uri string, opts ...ContentOption) error {
	co := applyContentOpts(opts)
	isHTTP := strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://")

	var info Extra
	found := false
	if r.resources != nil {
		info, found = r.resources.lookupExtra(uri)
	}
	if !isHTTP {
		if r.resources == nil {
			return errors.New("a bound resource registry is required for non-HTTP resource links")
		}
		if !found {
			return &NotFoundError{Feature: "resources", Key: uri}
		}
	}

	mimeType := co.mimeType
	if mimeType == "" {
		mimeType = info.MimeType
	}
	if mimeType == "" {
		return fmt.Errorf("could not determine mime type for resource link of uri %q, provide a mime type", uri)
	}

	annotations := co.annotations
	if annotations == nil {
		annotations = info.Annotations
	}

	r.content = append(r.content, mcp.ContentBlock{
		Type:        mcp.ContentTypeResourceLink,
		URI:         uri,
		Name:        firstNonEmpty(co.name, info.Name),
		Description: firstNonEmpty(co.description, info.Description),
		MimeType:    mimeType,
		Annotations: annotations,
	})
	return nil
}

// AddEmbeddedResource appends an embedded-resource content item. Content is
// read from the bound resource registry when the caller supplies neither text
// nor blob.
func (r *ToolResult) AddEmbeddedResource(ctx context.Context, uri string, opts ...ContentOption) error {
	co := applyContentOpts(opts)
	contents, err := resolveEmbeddedContents(ctx, r.resources, uri, co)
	if err != nil {
		return err
	}
	r.content = append(r.content, mcp.ContentBlock{
		Type:     mcp.ContentTypeResource,
		Resource: contents,
	})
	return nil
}

// SetStructuredContent records structured content from a map or a
// JSON-marshalable struct. It may be set at most once.
func (r *ToolResult) SetStructuredContent(value any) error {
	if r.structured != nil {
		return errors.New("structured content already exists")
	}
	m, err := toStructuredMap(value)
	if err != nil {
		return err
	}
	r.structured = m
	return nil
}

func validateBinaryContent(data, mimeType string) error {
	if data == "" {
		return errors.New("data must be a non-empty string")
	}
	if !contentio.IsBase64(data) {
		return errors.New("data must be valid base64 encoded string")
	}
	if mimeType == "" {
		return errors.New("mime type is required for binary content")
	}
	if _, err := contentio.NormalizeMimeType(mimeType); err != nil {
		return err
	}
	return nil
}

func toStructuredMap(value any) (map[string]any, error) {
	if m, ok := value.(map[string]any); ok {
		return m, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("content must be a map or JSON-marshalable struct: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("content must serialize to a JSON object: %w", err)
	}
	return m, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// assembleToolOutcome folds a handler outcome into the wire shape.
func assembleToolOutcome(outcome ToolOutcome) (*mcp.CallToolResult, error) {
	switch v := outcome.(type) {
	case *ToolResult:
		if v == nil {
			return nil, &UnsupportedResultTypeError{Feature: "tools", Result: outcome}
		}
		return &mcp.CallToolResult{
			Content:           v.content,
			StructuredContent: v.structured,
			IsError:           v.isError,
		}, nil
	case structuredOutcome:
		m, err := toStructuredMap(v.value)
		if err != nil {
			return nil, &UnsupportedResultTypeError{Feature: "tools", Result: v.value}
		}
		return &mcp.CallToolResult{StructuredContent: m}, nil
	default:
		return nil, &UnsupportedResultTypeError{Feature: "tools", Result: outcome}
	}
}
