package eucatalog

// Country is one of the fixed set of European countries a product can be
// attributed to. The zero value means no country.
type Country int

// Countries in ordinal order. The ordinal addresses country buckets in
// Catalog.CountryProducts.
const (
	NoCountry Country = iota
	CountryAustria
	CountryBelgium
	CountryBulgaria
	CountryCroatia
	CountryCyprus
	CountryCzech
	CountryDenmark
	CountryEstonia
	CountryFinland
	CountryFrance
	CountryGermany
	CountryGreece
	CountryHungary
	CountryIreland
	CountryItaly
	CountryLatvia
	CountryLithuania
	CountryLuxembourg
	CountryMalta
	CountryNetherlands
	CountryPoland
	CountryPortugal
	CountryRomania
	CountrySlovakia
	CountrySlovenia
	CountrySpain
	CountrySweden
	CountrySwitzerland
	CountryUnitedKingdom
)

type countryInfo struct {
	ident string
	name  string
	code  string
}

var countries = [...]countryInfo{
	CountryAustria:       {"Austria", "Austria", "at"},
	CountryBelgium:       {"Belgium", "Belgium", "be"},
	CountryBulgaria:      {"Bulgaria", "Bulgaria", "bg"},
	CountryCroatia:       {"Croatia", "Croatia", "hr"},
	CountryCyprus:        {"Cyprus", "Cyprus", "cy"},
	CountryCzech:         {"Czech", "Czech", "cz"},
	CountryDenmark:       {"Denmark", "Denmark", "dk"},
	CountryEstonia:       {"Estonia", "Estonia", "ee"},
	CountryFinland:       {"Finland", "Finland", "fi"},
	CountryFrance:        {"France", "France", "fr"},
	CountryGermany:       {"Germany", "Germany", "de"},
	CountryGreece:        {"Greece", "Greece", "gr"},
	CountryHungary:       {"Hungary", "Hungary", "hu"},
	CountryIreland:       {"Ireland", "Ireland", "ie"},
	CountryItaly:         {"Italy", "Italy", "it"},
	CountryLatvia:        {"Latvia", "Latvia", "lv"},
	CountryLithuania:     {"Lithuania", "Lithuania", "lt"},
	CountryLuxembourg:    {"Luxembourg", "Luxembourg", "lu"},
	CountryMalta:         {"Malta", "Malta", "mt"},
	CountryNetherlands:   {"Netherlands", "Netherlands", "nl"},
	CountryPoland:        {"Poland", "Poland", "pl"},
	CountryPortugal:      {"Portugal", "Portugal", "pt"},
	CountryRomania:       {"Romania", "Romania", "ro"},
	CountrySlovakia:      {"Slovakia", "Slovakia", "sk"},
	CountrySlovenia:      {"Slovenia", "Slovenia", "si"},
	CountrySpain:         {"Spain", "Spain", "es"},
	CountrySweden:        {"Sweden", "Sweden", "se"},
	CountrySwitzerland:   {"Switzerland", "Switzerland", "ch"},
	CountryUnitedKingdom: {"UnitedKingdom", "United Kingdom", "gb"},
}

// CountryCount is the number of countries in the enumeration.
const CountryCount = len(countries) - 1

var countriesBySlug = func() map[string]Country {
	m := make(map[string]Country, CountryCount)
	for _, c := range AllCountries() {
		m[c.Slug()] = c
	}
	return m
}()

// AllCountries returns every country in ordinal order.
func AllCountries() []Country {
	all := make([]Country, 0, CountryCount)
	for c := CountryAustria; c <= CountryUnitedKingdom; c++ {
		all = append(all, c)
	}
	return all
}

// ParseCountry matches free text against the enumeration after snake case
// normalization, so "united kingdom", "United Kingdom" and "UnitedKingdom"
// all match. The boolean is false when nothing matches.
func ParseCountry(text string) (Country, bool) {
	c, ok := countriesBySlug[SnakeCase(text)]
	return c, ok
}

// CountryFromIndex returns the country with the given bucket index.
func CountryFromIndex(i int) (Country, bool) {
	if i < 0 || i >= CountryCount {
		return NoCountry, false
	}
	return Country(i + 1), true
}

// Valid reports whether c is a member of the enumeration.
func (c Country) Valid() bool {
	return c >= CountryAustria && c <= CountryUnitedKingdom
}

// Index returns the zero-based bucket index of c.
func (c Country) Index() int {
	return int(c) - 1
}

// Name returns the display name, e.g. "United Kingdom".
func (c Country) Name() string {
	if !c.Valid() {
		return ""
	}
	return countries[c].name
}

// Ident returns the identifier form, e.g. "UnitedKingdom".
func (c Country) Ident() string {
	if !c.Valid() {
		return ""
	}
	return countries[c].ident
}

// Slug returns the snake case form, e.g. "united_kingdom".
func (c Country) Slug() string {
	return SnakeCase(c.Ident())
}

// Code returns the lower case ISO 3166-1 alpha-2 code.
func (c Country) Code() string {
	if !c.Valid() {
		return ""
	}
	return countries[c].code
}

// Icon returns the logical icon name of the country's flag.
func (c Country) Icon() string {
	if !c.Valid() {
		return ""
	}
	return c.Slug() + "_flag"
}

// String implements fmt.Stringer.
func (c Country) String() string {
	if !c.Valid() {
		return "none"
	}
	return c.Name()
}
