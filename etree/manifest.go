package etree

import (
	"path"
	"strings"

	"github.com/beevik/etree"
	"github.com/timarques/eucatalog"
)

// Directories of bundled resources, relative to the output directory.
const (
	IconsDir     = "icons"
	TemplatesDir = "templates"
)

// ManifestEntry is one <file> element of a resource manifest.
type ManifestEntry struct {
	Alias       string
	Path        string
	Compressed  bool
	StripBlanks bool
}

// IconEntries lists icon files for the icon manifest. SVG files are
// preprocessed with xml-stripblanks.
func IconEntries(filenames []string) []ManifestEntry {
	entries := make([]ManifestEntry, len(filenames))
	for i, name := range filenames {
		entries[i] = ManifestEntry{
			Alias:       name,
			Path:        path.Join(IconsDir, name),
			Compressed:  true,
			StripBlanks: strings.EqualFold(path.Ext(name), ".svg"),
		}
	}
	return entries
}

// IconFilenames returns the output filenames of icons in order.
func IconFilenames(icons []eucatalog.Icon) []string {
	names := make([]string, len(icons))
	for i, icon := range icons {
		names[i] = icon.Filename
	}
	return names
}

// TemplateEntries lists UI template files for the templates manifest.
func TemplateEntries(templates []eucatalog.Template) []ManifestEntry {
	entries := make([]ManifestEntry, len(templates))
	for i, tmpl := range templates {
		entries[i] = ManifestEntry{
			Alias:       tmpl.Filename(),
			Path:        path.Join(TemplatesDir, tmpl.Filename()),
			StripBlanks: true,
		}
	}
	return entries
}

// WriteManifest renders entries as newline separated <file> elements, the
// fragment substituted into the resource descriptor.
func WriteManifest(entries []ManifestEntry) (string, error) {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		doc := etree.NewDocument()
		file := doc.CreateElement("file")
		file.CreateAttr("compressed", boolAttr(entry.Compressed))
		if entry.StripBlanks {
			file.CreateAttr("preprocess", "xml-stripblanks")
		}
		file.CreateAttr("alias", entry.Alias)
		file.SetText(entry.Path)

		line, err := doc.WriteToString()
		if err != nil {
			return "", eucatalog.Errorf(eucatalog.EIO, "render manifest entry %q: %v", entry.Alias, err)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
