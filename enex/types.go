// Package enex implements reading of Evernote export (ENEX) files.
package enex

import (
	"mime"
	"strings"
	"time"

	"github.com/h2non/filetype"
)

// Note mirrors a single <note> element of an ENEX export.
type Note struct {
	ID        string
	Title     string
	Created   time.Time
	Updated   time.Time
	Author    string
	SourceURL string
	Tags      []string
	Content   string
	IsWebClip bool
	Resources []*Resource
}

// Resource stores one embedded binary payload (image, audio, file
// attachment). MD5 is the stable key en-media elements use to reference it.
type Resource struct {
	DataBin  []byte `json:"-"`
	Size     int    `json:"size"`
	MD5      string `json:"md5"`
	Mime     string `json:"mime"`
	FileName string `json:"file_name"`
}

// ResourceSet indexes note resources by their content hash.
type ResourceSet map[string]*Resource

// ByHash returns the resource with the given content hash.
func (rs ResourceSet) ByHash(hash string) (*Resource, bool) {
	r, ok := rs[hash]
	return r, ok
}

// ResourceSet builds the hash index over note resources.
func (n *Note) ResourceSet() ResourceSet {
	set := make(ResourceSet, len(n.Resources))
	for _, r := range n.Resources {
		set[r.MD5] = r
	}
	return set
}

// MimeToExt returns file extension for common MIME types.
func MimeToExt(mimeType string) string {
	// Handle common types directly to prefer standard extensions
	switch strings.ToLower(mimeType) {
	case "image/jpeg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/bmp":
		return "bmp"
	case "image/svg+xml":
		return "svg"
	case "image/webp":
		return "webp"
	case "image/tiff":
		return "tiff"
	case "application/pdf":
		return "pdf"
	case "audio/mpeg":
		return "mp3"
	}
	// Fallback to mime package for other types
	exts, err := mime.ExtensionsByType(mimeType)
	if err == nil && len(exts) > 0 {
		return strings.TrimPrefix(exts[0], ".")
	}
	return "bin"
}

// SniffMime detects payload MIME type from its leading bytes. Used when a
// resource carries no usable type of its own.
func SniffMime(data []byte) string {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return "application/octet-stream"
	}
	return kind.MIME.Value
}
