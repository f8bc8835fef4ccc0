// Package codegen serializes a catalog into Go source that declares it as
// package-level data, so a client binary embeds the catalog without parsing
// anything at startup.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"strconv"
	"strings"
	"text/template"

	"github.com/timarques/eucatalog"
)

// Default output settings.
const (
	DefaultPackage  = "catalog"
	DefaultVariable = "Catalog"

	// Filename is the name of the generated artifact in the output directory.
	Filename = "catalog.go"
)

const importPath = "github.com/timarques/eucatalog"

// Ensure Generator implements eucatalog.CatalogGenerator at compile time.
var _ eucatalog.CatalogGenerator = (*Generator)(nil)

// Generator renders a catalog as a gofmt-formatted Go file.
type Generator struct {
	// Package is the package clause of the generated file.
	Package string
	// Variable is the name of the exported *eucatalog.Catalog variable.
	Variable string
}

// NewGenerator returns a Generator with default package and variable names.
func NewGenerator() *Generator {
	return &Generator{Package: DefaultPackage, Variable: DefaultVariable}
}

// Generate returns the Go source for c. Index maps are written in catalog
// order, so equal catalogs produce identical bytes.
func (g *Generator) Generate(c *eucatalog.Catalog) ([]byte, error) {
	if c == nil {
		return nil, eucatalog.Errorf(eucatalog.EINVALID, "nil catalog")
	}
	if g.Package == "" || g.Variable == "" {
		return nil, eucatalog.Errorf(eucatalog.EINVALID, "package and variable names are required")
	}

	var buf bytes.Buffer
	err := catalogTemplate.Execute(&buf, struct {
		Package  string
		Import   string
		Variable string
		Catalog  *eucatalog.Catalog
	}{g.Package, importPath, g.Variable, c})
	if err != nil {
		return nil, eucatalog.Errorf(eucatalog.EIO, "render catalog source: %v", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, eucatalog.Errorf(eucatalog.EDATA, "generated catalog source is invalid: %v", err)
	}
	return src, nil
}

var catalogTemplate = template.Must(template.New("catalog").Funcs(template.FuncMap{
	"quote":   strconv.Quote,
	"country": countryExpr,
	"ints":    intsExpr,
}).Parse(`// Code generated by eucatalog. DO NOT EDIT.

package {{.Package}}

import "{{.Import}}"

// {{.Variable}} is the compiled product directory.
var {{.Variable}} = &eucatalog.Catalog{
	Categories: []eucatalog.Category{
{{- range .Catalog.Categories}}
		{
			Slug:        {{quote .Slug}},
			Name:        {{quote .Name}},
			Description: {{quote .Description}},
			Summary:     {{quote .Summary}},
			Icon:        {{quote .Icon}},
		},
{{- end}}
	},
	Products: []eucatalog.Product{
{{- range .Catalog.Products}}
		{
			Name:        {{quote .Name}},
			Description: {{quote .Description}},
			Summary:     {{quote .Summary}},
			Country:     {{country .Country}},
			Categories:  []string{ {{- range $i, $s := .Categories}}{{if $i}}, {{end}}{{quote $s}}{{end -}} },
			Websites: []eucatalog.Website{
{{- range .Websites}}
				{Label: {{quote .Label}}, URL: {{quote .URL}}},
{{- end}}
			},
			Logo: {{quote .Logo}},
		},
{{- end}}
	},
	SlugIndex: map[string]int{
{{- range $i, $c := .Catalog.Categories}}
		{{quote $c.Slug}}: {{$i}},
{{- end}}
	},
	NameIndex: map[string]int{
{{- range $i, $p := .Catalog.Products}}
		{{quote $p.Name}}: {{$i}},
{{- end}}
	},
	CategoryProducts: [][]int{
{{- range .Catalog.CategoryProducts}}
		{{ints .}},
{{- end}}
	},
	CountryProducts: [][]int{
{{- range .Catalog.CountryProducts}}
		{{ints .}},
{{- end}}
	},
}
`))

func countryExpr(c eucatalog.Country) string {
	if !c.Valid() {
		return "eucatalog.NoCountry"
	}
	return "eucatalog.Country" + c.Ident()
}

func intsExpr(positions []int) string {
	if len(positions) == 0 {
		return "nil"
	}
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = strconv.Itoa(p)
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}
