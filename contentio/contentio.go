// Package contentio resolves files into protocol content: mime type detection
// by extension, UTF-8 text extraction and base64 blob encoding.
//
// Detection is an ordered sequence of explicit attempts (text, then image,
// then audio), each returning a definite answer or declining, rather than a
// fallthrough of recovered failures.
package contentio

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/elnormous/contenttype"
)

// Kind classifies resolved file content.
type Kind int

const (
	KindUnknown Kind = iota
	KindText
	KindImage
	KindAudio
)

// FileContent is the resolved content of a file. Exactly one of Text or Blob
// is set: Text for textual content, Blob (base64) for binary content.
type FileContent struct {
	Kind     Kind
	MimeType string
	Text     string
	Blob     string
}

var textMimeTypes = map[string]string{
	".txt":  "text/plain",
	".html": "text/html",
	".htm":  "text/html",
	".css":  "text/css",
	".js":   "text/javascript",
	".json": "application/json",
	".xml":  "text/xml",
	".md":   "text/markdown",
	".csv":  "text/csv",
	".yml":  "text/yaml",
	".yaml": "text/yaml",
	".py":   "text/x-python",
	".sh":   "text/x-shellscript",
	".sql":  "text/x-sql",
	".go":   "text/x-go",
	".rs":   "text/x-rust",
	".ts":   "text/x-typescript",
}

var imageMimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".svg":  "image/svg+xml",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
}

var audioMimeTypes = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".wma":  "audio/x-ms-wma",
	".opus": "audio/opus",
	".webm": "audio/webm",
}

// TextMimeFromName maps a file name to a text mime type by extension.
func TextMimeFromName(name string) (string, bool) {
	mt, ok := textMimeTypes[strings.ToLower(filepath.Ext(name))]
	return mt, ok
}

// ImageMimeFromName maps a file name to an image mime type by extension.
func ImageMimeFromName(name string) (string, bool) {
	mt, ok := imageMimeTypes[strings.ToLower(filepath.Ext(name))]
	return mt, ok
}

// AudioMimeFromName maps a file name to an audio mime type by extension.
func AudioMimeFromName(name string) (string, bool) {
	mt, ok := audioMimeTypes[strings.ToLower(filepath.Ext(name))]
	return mt, ok
}

// NormalizeMimeType parses and canonicalizes a mime type string. It fails on
// strings that are not valid media types.
func NormalizeMimeType(s string) (string, error) {
	mt := contenttype.NewMediaType(s)
	if mt.Type == "" || mt.Subtype == "" {
		return "", fmt.Errorf("invalid mime type %q", s)
	}
	return mt.String(), nil
}

// EncodeBase64 encodes raw bytes for blob content.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// IsBase64 reports whether s is a valid standard base64 string.
func IsBase64(s string) bool {
	_, err := base64.StdEncoding.DecodeString(s)
	return err == nil
}

// DetectFile reads a file and resolves it into content, attempting text,
// image and audio classification in that order. Files whose extension maps to
// no known family produce an error.
func DetectFile(path string) (*FileContent, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if mt, ok := TextMimeFromName(path); ok && utf8.Valid(raw) {
		return &FileContent{Kind: KindText, MimeType: mt, Text: string(raw)}, nil
	}
	if mt, ok := ImageMimeFromName(path); ok {
		return &FileContent{Kind: KindImage, MimeType: mt, Blob: EncodeBase64(raw)}, nil
	}
	if mt, ok := AudioMimeFromName(path); ok {
		return &FileContent{Kind: KindAudio, MimeType: mt, Blob: EncodeBase64(raw)}, nil
	}

	return nil, fmt.Errorf("could not determine content type of %s", path)
}
