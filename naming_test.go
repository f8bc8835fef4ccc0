package eucatalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/timarques/eucatalog"
)

func TestSnakeCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"UnitedKingdom", "united_kingdom"},
		{"United Kingdom", "united_kingdom"},
		{"united-kingdom", "united_kingdom"},
		{"  Proton Mail ", "proton_mail"},
		{"HTTPServer", "http_server"},
		{"Cloud Storage & Backup", "cloud_storage_backup"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, eucatalog.SnakeCase(tt.in))
		})
	}
}

func TestTitleCase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Proton Mail", eucatalog.TitleCase("proton mail"))
	assert.Equal(t, "Proton Mail", eucatalog.TitleCase("ProtonMail"))
	assert.Equal(t, "Nextcloud", eucatalog.TitleCase("NEXTCLOUD"))
	assert.Equal(t, "", eucatalog.TitleCase("  "))
}

func TestStripBrandPrefix(t *testing.T) {
	t.Parallel()

	t.Run("removes brand word and capitalizes remainder", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Cloud", eucatalog.StripBrandPrefix("European Cloud", "European"))
		assert.Equal(t, "Search engines", eucatalog.StripBrandPrefix("european search engines", "European"))
	})

	t.Run("keeps names without the brand", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Cloud Providers", eucatalog.StripBrandPrefix("Cloud Providers", "European"))
		assert.Equal(t, "Europeana Apps", eucatalog.StripBrandPrefix("Europeana Apps", "European"))
	})

	t.Run("keeps the brand word alone", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "European", eucatalog.StripBrandPrefix("European", "European"))
	})
}

func TestFirstSentence(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Store files.", eucatalog.FirstSentence("Store files. Share them."))
	assert.Equal(t, "No period here", eucatalog.FirstSentence("No period here"))
}

func TestLeadingSentences(t *testing.T) {
	t.Parallel()

	t.Run("takes the first two sentences", func(t *testing.T) {
		t.Parallel()
		got := eucatalog.LeadingSentences("One. Two. Three.", 2)
		assert.Equal(t, "One. Two.", got)
	})

	t.Run("skips empty pieces", func(t *testing.T) {
		t.Parallel()
		got := eucatalog.LeadingSentences("First... Second. Third.", 2)
		assert.Equal(t, "First. Second.", got)
	})

	t.Run("joins sentences across paragraph breaks on one line", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "One. Two.", eucatalog.LeadingSentences("One.\n\nTwo.", 2))
		assert.Equal(t, "Hetzner runs data centers. It offers servers.",
			eucatalog.LeadingSentences("Hetzner runs data centers.\n It offers\nservers.\n\nFounded in 1997.", 2))
	})

	t.Run("returns fewer sentences when text is short", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Only one.", eucatalog.LeadingSentences("Only one", 2))
	})
}
