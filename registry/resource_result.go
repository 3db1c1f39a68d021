package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/mdamire/mcp-serializer/contentio"
	"github.com/mdamire/mcp-serializer/mcp"
)

// ResourceResult accumulates the content items of a single resource read (or
// of a statically registered resource).
type ResourceResult struct {
	contents []mcp.ResourceContents
}

// NewResourceResult creates an empty resource result accumulator.
func NewResourceResult() *ResourceResult {
	return &ResourceResult{}
}

// AddText appends a text content item.
func (r *ResourceResult) AddText(text string, opts ...ContentOption) error {
	if text == "" {
		return errors.New("text must be a non-empty string")
	}
	co := applyContentOpts(opts)
	r.contents = append(r.contents, mcp.ResourceContents{
		URI:         co.uri,
		MimeType:    co.mimeType,
		Name:        co.name,
		Title:       co.title,
		Text:        text,
		Annotations: co.annotations,
	})
	return nil
}

// AddBlob appends a binary content item carrying base64 data.
func (r *ResourceResult) AddBlob(blob string, opts ...ContentOption) error {
	if blob == "" {
		return errors.New("blob must be a non-empty string")
	}
	if !contentio.IsBase64(blob) {
		return errors.New("blob must be valid base64 encoded data")
	}
	co := applyContentOpts(opts)
	r.contents = append(r.contents, mcp.ResourceContents{
		URI:         co.uri,
		MimeType:    co.mimeType,
		Name:        co.name,
		Title:       co.title,
		Blob:        blob,
		Annotations: co.annotations,
	})
	return nil
}

// AddFile resolves a file into content and appends it as text or blob,
// whichever the file classifies as.
func (r *ResourceResult) AddFile(path string, opts ...ContentOption) error {
	fc, err := contentio.DetectFile(path)
	if err != nil {
		return fmt.Errorf("failed to process file %q: %w", path, err)
	}
	opts = append(opts, WithMimeType(fc.MimeType))
	if fc.Kind == contentio.KindText {
		return r.AddText(fc.Text, opts...)
	}
	return r.AddBlob(fc.Blob, opts...)
}

// Contents returns the accumulated items.
func (r *ResourceResult) Contents() []mcp.ResourceContents {
	return r.contents
}

// firstMimeType returns the first mime type any accumulated item carries.
func (r *ResourceResult) firstMimeType() string {
	for _, c := range r.contents {
		if c.MimeType != "" {
			return c.MimeType
		}
	}
	return ""
}

// resolveEmbeddedContents builds the ResourceContents of an embedded-resource
// item. Caller-supplied text/blob win; otherwise the URI is read through the
// bound registry.
func resolveEmbeddedContents(ctx context.Context, res *Resources, uri string, co contentOpts) (*mcp.ResourceContents, error) {
	var fetched mcp.ResourceContents
	haveFetched := false
	if res != nil {
		if result, err := res.Read(ctx, uri); err == nil && len(result.Contents) > 0 {
			fetched = result.Contents[0]
			haveFetched = true
		}
	}

	if co.text == "" && co.blob == "" {
		if res == nil {
			return nil, errors.New("a bound resource registry is required when only a URI is provided for an embedded resource")
		}
		if !haveFetched {
			return nil, &NotFoundError{Feature: "resources", Key: uri}
		}
	}

	text := firstNonEmpty(co.text, fetched.Text)
	blob := firstNonEmpty(co.blob, fetched.Blob)
	mimeType := firstNonEmpty(co.mimeType, fetched.MimeType)
	if mimeType == "" {
		return nil, fmt.Errorf("could not determine mime type for embedded resource of uri %q, provide a mime type", uri)
	}
	if text == "" && blob == "" {
		return nil, errors.New("either text or blob must be provided for an embedded resource")
	}

	annotations := co.annotations
	if annotations == nil {
		annotations = fetched.Annotations
	}

	out := &mcp.ResourceContents{
		URI:         uri,
		MimeType:    mimeType,
		Name:        firstNonEmpty(co.name, fetched.Name),
		Title:       firstNonEmpty(co.title, fetched.Title),
		Annotations: annotations,
	}
	if text != "" {
		out.Text = text
	} else {
		out.Blob = blob
	}
	return out, nil
}
