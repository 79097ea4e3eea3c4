// Package codec reads and writes family fragments in text formats.
package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"familytree/internal/domain"
)

// Importer interface for importing family data from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.FamilyFragment, error)
	Format() string
}

// Exporter interface for exporting family data to various formats
type Exporter interface {
	Export(fragment *domain.FamilyFragment, w io.Writer) error
	Format() string
}

// Codec is both an Importer and an Exporter
type Codec interface {
	Importer
	Exporter
}

// Formats returns the names accepted by ByFormat
func Formats() []string {
	return []string{"yaml", "json"}
}

// ByFormat returns the codec registered under name
func ByFormat(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	case "json":
		return NewJSONCodec(), nil
	}
	return nil, fmt.Errorf("unsupported format %q", name)
}

// ByExtension picks a codec from a file name
func ByExtension(path string) (Codec, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil, fmt.Errorf("cannot infer format of %s", path)
	}
	return ByFormat(ext)
}
