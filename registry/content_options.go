package registry

import "github.com/mdamire/mcp-serializer/mcp"

// ContentOption configures a content item added to a result accumulator.
type ContentOption func(*contentOpts)

type contentOpts struct {
	role        mcp.Role
	mimeType    string
	uri         string
	name        string
	title       string
	description string
	text        string
	blob        string
	annotations *mcp.Annotations
}

func applyContentOpts(opts []ContentOption) contentOpts {
	var co contentOpts
	for _, opt := range opts {
		opt(&co)
	}
	return co
}

// AsRole sets the message role for prompt content. Ignored by tool and
// resource accumulators.
func AsRole(role mcp.Role) ContentOption {
	return func(o *contentOpts) { o.role = role }
}

// WithMimeType sets an explicit mime type on the content item.
func WithMimeType(mimeType string) ContentOption {
	return func(o *contentOpts) { o.mimeType = mimeType }
}

// WithURI sets an explicit URI on the content item.
func WithURI(uri string) ContentOption {
	return func(o *contentOpts) { o.uri = uri }
}

// WithName sets an explicit name on the content item.
func WithName(name string) ContentOption {
	return func(o *contentOpts) { o.name = name }
}

// WithTitle sets an explicit title on the content item.
func WithTitle(title string) ContentOption {
	return func(o *contentOpts) { o.title = title }
}

// WithDescription sets a description on resource-link content.
func WithDescription(description string) ContentOption {
	return func(o *contentOpts) { o.description = description }
}

// WithText supplies literal text for embedded-resource content.
func WithText(text string) ContentOption {
	return func(o *contentOpts) { o.text = text }
}

// WithBlob supplies base64 data for embedded-resource content.
func WithBlob(blob string) ContentOption {
	return func(o *contentOpts) { o.blob = blob }
}

// WithAnnotations attaches annotations to the content item.
func WithAnnotations(a *mcp.Annotations) ContentOption {
	return func(o *contentOpts) { o.annotations = a }
}
