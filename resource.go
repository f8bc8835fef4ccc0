package eucatalog

import (
	"io"
	"time"
)

// Template is a UI template split out of the application's UI definition.
type Template struct {
	// Name is the snake case form of the template class.
	Name string
	Data []byte
}

// Filename returns the file name the template is written to.
func (t Template) Filename() string {
	return t.Name + ".ui"
}

// TemplateExtractor splits a UI definition into standalone templates.
type TemplateExtractor interface {
	ExtractTemplates(source []byte) ([]Template, error)
}

// BundleFile is one entry of a resource bundle.
type BundleFile struct {
	Path string
	Data []byte
}

// Bundler packs resource files into a single archive.
type Bundler interface {
	Bundle(w io.Writer, files []BundleFile) error
}

// AppInfo describes the client application the catalog is built for.
type AppInfo struct {
	ID          string   `yaml:"id" mapstructure:"id"`
	Name        string   `yaml:"name" mapstructure:"name"`
	Title       string   `yaml:"title" mapstructure:"title"`
	Description string   `yaml:"description" mapstructure:"description"`
	Version     string   `yaml:"version" mapstructure:"version"`
	Prefix      string   `yaml:"prefix" mapstructure:"prefix"`
	Authors     []string `yaml:"authors" mapstructure:"authors"`
}

// BuildMetadata is emitted after every build for the consuming application.
type BuildMetadata struct {
	BuildID          string            `yaml:"build_id"`
	GeneratedAt      time.Time         `yaml:"generated_at"`
	Mode             string            `yaml:"mode"`
	App              AppInfo           `yaml:"app"`
	SchemasInstalled bool              `yaml:"schemas_installed"`
	Artifacts        map[string]string `yaml:"artifacts"`
	Digests          map[string]string `yaml:"digests"`
	Regenerated      map[string]bool   `yaml:"regenerated"`
}

// MetadataWriter encodes build metadata.
type MetadataWriter interface {
	WriteMetadata(w io.Writer, m *BuildMetadata) error
}
