// Package eucatalog builds an embeddable catalog of European product
// alternatives. It scrapes the european-alternatives.eu directory, extracts
// categories, products and icons, indexes them, and emits a compiled catalog
// together with converted icon assets for a client application.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, etree/).
package eucatalog

// DirectoryName is the label used for links back to the directory site.
const DirectoryName = "European Alternatives"

// DefaultBaseURL is the root of the upstream product directory.
const DefaultBaseURL = "https://european-alternatives.eu"

// DefaultFlagBaseURL hosts the 4:3 country flag images keyed by ISO code.
const DefaultFlagBaseURL = "https://cdn.european-alternatives.eu/countryFlags/4x3"
