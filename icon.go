package eucatalog

import (
	"context"
	"net/url"
	"path"
	"strings"
)

// IconFormat describes how an icon source is converted.
type IconFormat int

const (
	// IconVector sources are SVG documents passed through canonicalization.
	IconVector IconFormat = iota
	// IconRaster sources are PNG images copied unchanged.
	IconRaster
	// IconTraced sources are other raster images traced into SVG.
	IconTraced
)

// String implements fmt.Stringer.
func (f IconFormat) String() string {
	switch f {
	case IconVector:
		return "vector"
	case IconRaster:
		return "raster"
	case IconTraced:
		return "traced"
	default:
		return "unknown"
	}
}

// Icon is a remote image asset referenced by a category, product or country.
type Icon struct {
	SourceURL string
	Name      string
	Format    IconFormat
	Filename  string
}

// NewIcon derives an icon from its source URL and the name of the entity
// that owns it. The logical name is the snake case form of name and the
// format is decided by the URL's file extension, compared case-insensitively.
func NewIcon(sourceURL, name string) (Icon, error) {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return Icon{}, Errorf(EPARSE, "invalid icon URL %q: %v", sourceURL, err)
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(u.Path), "."))
	if ext == "" {
		return Icon{}, Errorf(EPARSE, "icon URL %q has no file extension", sourceURL)
	}
	logical := SnakeCase(name)
	if logical == "" {
		return Icon{}, Errorf(EPARSE, "icon name for %q is empty", sourceURL)
	}

	icon := Icon{SourceURL: sourceURL, Name: logical}
	switch ext {
	case "svg":
		icon.Format = IconVector
		icon.Filename = logical + ".svg"
	case "png":
		icon.Format = IconRaster
		icon.Filename = logical + ".png"
	default:
		icon.Format = IconTraced
		icon.Filename = logical + ".svg"
	}
	return icon, nil
}

// IconRegistry deduplicates icons by source URL and by logical name.
//
// A URL seen twice maps to the icon registered first. A different URL whose
// logical name is already claimed resolves to the icon that claimed it
// first, and the later URL is never harvested. Registration order must be
// stable for the outcome to be deterministic. Not safe for concurrent use.
type IconRegistry struct {
	byURL  map[string]int
	byName map[string]int
	icons  []Icon
}

// NewIconRegistry returns an empty registry.
func NewIconRegistry() *IconRegistry {
	return &IconRegistry{
		byURL:  make(map[string]int),
		byName: make(map[string]int),
	}
}

// Register records icon and returns the icon entities should reference.
func (r *IconRegistry) Register(icon Icon) Icon {
	if i, ok := r.byURL[icon.SourceURL]; ok {
		return r.icons[i]
	}
	if i, ok := r.byName[icon.Name]; ok {
		r.byURL[icon.SourceURL] = i
		return r.icons[i]
	}
	r.icons = append(r.icons, icon)
	r.byURL[icon.SourceURL] = len(r.icons) - 1
	r.byName[icon.Name] = len(r.icons) - 1
	return icon
}

// Icons returns the unique icons in registration order.
func (r *IconRegistry) Icons() []Icon {
	out := make([]Icon, len(r.icons))
	copy(out, r.icons)
	return out
}

// IconAsset is the converted, ready to write form of an icon.
type IconAsset struct {
	Icon Icon
	Data []byte
}

// IconHarvester fetches and converts icons. Each unique source URL is
// fetched exactly once; assets are returned in the order of icons.
type IconHarvester interface {
	Harvest(ctx context.Context, icons []Icon, mode ExecutionMode) ([]IconAsset, error)
}

// VectorCanonicalizer re-serializes an SVG document in canonical form.
type VectorCanonicalizer interface {
	Canonicalize(svg []byte) ([]byte, error)
}

// RasterTracer converts raster image data into an SVG document.
type RasterTracer interface {
	Trace(raster []byte) ([]byte, error)
}
