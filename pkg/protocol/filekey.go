package protocol

import (
	"net/url"
	"path/filepath"
)

// FileKey identifies a document by its absolute, cleaned path. It is a
// comparable value type and can be used directly as a map key.
type FileKey struct {
	path string
}

// NewFileKey canonicalizes path into a FileKey. An empty path yields the zero key.
func NewFileKey(path string) FileKey {
	if path == "" {
		return FileKey{}
	}
	candidate := filepath.FromSlash(path)
	if abs, err := filepath.Abs(candidate); err == nil {
		candidate = abs
	}
	return FileKey{path: filepath.Clean(candidate)}
}

// FileKeyFromURI converts a file:// URI (or a bare path) into a FileKey.
// URIs with any other scheme yield the zero key.
func FileKeyFromURI(uri string) FileKey {
	if uri == "" {
		return FileKey{}
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return FileKey{}
	}
	if parsed.Scheme != "" && parsed.Scheme != "file" {
		return FileKey{}
	}
	path := parsed.Path
	if parsed.Scheme == "" {
		path = uri
	}
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}
	return NewFileKey(path)
}

// Path returns the canonical path.
func (k FileKey) Path() string {
	return k.path
}

// Name returns the last element of the path.
func (k FileKey) Name() string {
	if k.path == "" {
		return ""
	}
	return filepath.Base(k.path)
}

// Ext returns the file name extension, including the dot.
func (k FileKey) Ext() string {
	return filepath.Ext(k.path)
}

// URI returns the file:// URI for the key.
func (k FileKey) URI() string {
	if k.path == "" {
		return ""
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(k.path)}
	return u.String()
}

// IsZero reports whether the key refers to no file.
func (k FileKey) IsZero() bool {
	return k.path == ""
}

func (k FileKey) String() string {
	return k.path
}

// MarshalText implements encoding.TextMarshaler.
func (k FileKey) MarshalText() ([]byte, error) {
	return []byte(k.path), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *FileKey) UnmarshalText(text []byte) error {
	*k = NewFileKey(string(text))
	return nil
}
