// Package yaml writes build metadata as YAML.
package yaml

import (
	"io"

	"github.com/timarques/eucatalog"
	"gopkg.in/yaml.v3"
)

// Filename is the name of the metadata file in the output directory.
const Filename = "metadata.yaml"

// Ensure MetadataWriter implements eucatalog.MetadataWriter at compile time.
var _ eucatalog.MetadataWriter = (*MetadataWriter)(nil)

// MetadataWriter encodes build metadata as a YAML document with two-space
// indentation. Map keys are written in sorted order.
type MetadataWriter struct{}

// NewMetadataWriter creates a new MetadataWriter.
func NewMetadataWriter() *MetadataWriter {
	return &MetadataWriter{}
}

// WriteMetadata encodes m to w.
func (mw *MetadataWriter) WriteMetadata(w io.Writer, m *eucatalog.BuildMetadata) error {
	if m == nil {
		return eucatalog.Errorf(eucatalog.EINVALID, "nil build metadata")
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return eucatalog.Errorf(eucatalog.EIO, "encode build metadata: %v", err)
	}
	if err := enc.Close(); err != nil {
		return eucatalog.Errorf(eucatalog.EIO, "flush build metadata: %v", err)
	}
	return nil
}
