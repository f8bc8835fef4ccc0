package eucatalog

// Category groups products of one kind, e.g. cloud storage.
type Category struct {
	Slug        string `json:"slug" yaml:"slug"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Summary     string `json:"summary" yaml:"summary"`
	Icon        string `json:"icon" yaml:"icon"`
}

// Validate returns an error if the category contains invalid fields.
func (c *Category) Validate() error {
	if c.Slug == "" {
		return Errorf(EDATA, "category slug required")
	}
	if c.Name == "" {
		return Errorf(EDATA, "category %q: name required", c.Slug)
	}
	return nil
}
