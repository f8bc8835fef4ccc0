package etree

import (
	_ "embed"
	"strings"

	"github.com/beevik/etree"
	"github.com/timarques/eucatalog"
)

// Placeholders of the resource descriptor template.
const (
	PlaceholderPrefix    = "@APP_PREFIX@"
	PlaceholderTemplates = "@APP_TEMPLATES@"
	PlaceholderIcons     = "@APP_ICONS@"
)

// DefaultResourcesTemplate is the resource descriptor used when none is
// configured.
//
//go:embed resources.xml.in
var DefaultResourcesTemplate string

// RenderResources fills the resource descriptor template. The templates and
// icons placeholders must each occur exactly once and the prefix
// placeholder exactly twice; the result must be well-formed XML.
func RenderResources(tmpl, prefix, templates, icons string) (string, error) {
	out, err := replaceExactly(tmpl, PlaceholderTemplates, templates, 1)
	if err != nil {
		return "", err
	}
	if out, err = replaceExactly(out, PlaceholderIcons, icons, 1); err != nil {
		return "", err
	}
	if out, err = replaceExactly(out, PlaceholderPrefix, prefix, 2); err != nil {
		return "", err
	}

	if err := etree.NewDocument().ReadFromString(out); err != nil {
		return "", eucatalog.Errorf(eucatalog.EDATA, "rendered resource descriptor is not valid XML: %v", err)
	}
	return out, nil
}

func replaceExactly(s, placeholder, value string, count int) (string, error) {
	if n := strings.Count(s, placeholder); n != count {
		return "", eucatalog.Errorf(eucatalog.EDATA, "expected %d occurrence(s) of %s, found %d", count, placeholder, n)
	}
	return strings.ReplaceAll(s, placeholder, value), nil
}
