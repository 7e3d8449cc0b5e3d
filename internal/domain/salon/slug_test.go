package salon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Bliss Nails", "bliss-nails"},
		{"  Polished & Pretty!  ", "polished-pretty"},
		{"Nails---Spa", "nails-spa"},
		{"UPPER case", "upper-case"},
		{"café élite", "cafe-elite"},
		{"Salón París", "salon-paris"},
		{"Zoë's Nägel", "zoe-s-nagel"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "Slugify(%q)", tc.in)
	}
}

func TestSlugBase(t *testing.T) {
	t.Run("uses first location segment", func(t *testing.T) {
		assert.Equal(t, "bliss-nails-austin", SlugBase("Bliss Nails", "Austin, TX"))
	})

	t.Run("location without comma is used whole", func(t *testing.T) {
		assert.Equal(t, "bliss-nails-austin", SlugBase("Bliss Nails", "Austin"))
	})

	t.Run("empty location uses name only", func(t *testing.T) {
		assert.Equal(t, "bliss-nails", SlugBase("Bliss Nails", ""))
	})

	t.Run("blank first segment uses name only", func(t *testing.T) {
		assert.Equal(t, "bliss-nails", SlugBase("Bliss Nails", "  , TX"))
	})

	t.Run("unsluggable input falls back to random slug", func(t *testing.T) {
		got := SlugBase("!!!", "???")
		assert.True(t, strings.HasPrefix(got, "salon-"), "got %q", got)
		assert.Len(t, got, len("salon-")+6)
	})
}

func TestSuffixedSlug(t *testing.T) {
	assert.Equal(t, "bliss-nails-austin-1", SuffixedSlug("bliss-nails-austin", 1))
	assert.Equal(t, "bliss-nails-austin-12", SuffixedSlug("bliss-nails-austin", 12))
}
