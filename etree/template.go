package etree

import (
	"github.com/beevik/etree"
	"github.com/timarques/eucatalog"
)

// Ensure TemplateExtractor implements eucatalog.TemplateExtractor at compile time.
var _ eucatalog.TemplateExtractor = (*TemplateExtractor)(nil)

// TemplateExtractor splits a UI definition into one <interface> document per
// <template class="..."> element.
type TemplateExtractor struct{}

// NewTemplateExtractor creates a new TemplateExtractor.
func NewTemplateExtractor() *TemplateExtractor {
	return &TemplateExtractor{}
}

// ExtractTemplates returns the templates of source in document order.
// Two classes with the same snake case name are an EDATA error.
func (x *TemplateExtractor) ExtractTemplates(source []byte) ([]eucatalog.Template, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(source); err != nil {
		return nil, eucatalog.Errorf(eucatalog.EPARSE, "invalid UI definition: %v", err)
	}

	seen := make(map[string]bool)
	var templates []eucatalog.Template
	for _, el := range doc.FindElements("//template[@class]") {
		name := eucatalog.SnakeCase(el.SelectAttrValue("class", ""))
		if name == "" {
			return nil, eucatalog.Errorf(eucatalog.EPARSE, "template with empty class")
		}
		if seen[name] {
			return nil, eucatalog.Errorf(eucatalog.EDATA, "duplicate template %q", name)
		}
		seen[name] = true

		out := etree.NewDocument()
		out.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
		iface := out.CreateElement("interface")
		iface.AddChild(el.Copy())
		out.Indent(2)

		data, err := out.WriteToBytes()
		if err != nil {
			return nil, eucatalog.Errorf(eucatalog.EIO, "render template %q: %v", name, err)
		}
		templates = append(templates, eucatalog.Template{Name: name, Data: data})
	}
	return templates, nil
}
