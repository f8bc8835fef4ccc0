package eucatalog

// Product is a single European alternative listed in the directory.
type Product struct {
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Summary     string    `json:"summary" yaml:"summary"`
	Country     Country   `json:"country" yaml:"country"`
	Categories  []string  `json:"categories" yaml:"categories"`
	Websites    []Website `json:"websites" yaml:"websites"`
	Logo        string    `json:"logo" yaml:"logo"`
}

// Website is a labelled link shown for a product.
type Website struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// Validate returns an error if the product contains invalid fields.
func (p *Product) Validate() error {
	if p.Name == "" {
		return Errorf(EDATA, "product name required")
	}
	if len(p.Categories) == 0 {
		return Errorf(EDATA, "product %q: at least one category required", p.Name)
	}
	if p.Logo == "" {
		return Errorf(EDATA, "product %q: logo required", p.Name)
	}
	return nil
}
