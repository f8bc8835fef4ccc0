package mock

import (
	"io"

	"github.com/timarques/eucatalog"
)

var (
	_ eucatalog.TemplateExtractor = (*TemplateExtractor)(nil)
	_ eucatalog.Bundler           = (*Bundler)(nil)
	_ eucatalog.MetadataWriter    = (*MetadataWriter)(nil)
)

// TemplateExtractor is a mock implementation of eucatalog.TemplateExtractor.
type TemplateExtractor struct {
	ExtractTemplatesFn func(source []byte) ([]eucatalog.Template, error)
}

func (e *TemplateExtractor) ExtractTemplates(source []byte) ([]eucatalog.Template, error) {
	return e.ExtractTemplatesFn(source)
}

// Bundler is a mock implementation of eucatalog.Bundler.
type Bundler struct {
	BundleFn func(w io.Writer, files []eucatalog.BundleFile) error
}

func (b *Bundler) Bundle(w io.Writer, files []eucatalog.BundleFile) error {
	return b.BundleFn(w, files)
}

// MetadataWriter is a mock implementation of eucatalog.MetadataWriter.
type MetadataWriter struct {
	WriteMetadataFn func(w io.Writer, m *eucatalog.BuildMetadata) error
}

func (m *MetadataWriter) WriteMetadata(w io.Writer, meta *eucatalog.BuildMetadata) error {
	return m.WriteMetadataFn(w, meta)
}
