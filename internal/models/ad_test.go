package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdInputValidate(t *testing.T) {
	valid := AdInput{
		Title:     "Wedding Season Offer",
		Positions: []string{"popup", "bottom"},
		Pages:     []string{"home", "contact"},
	}
	assert.Empty(t, valid.Validate())

	t.Run("missing title", func(t *testing.T) {
		in := valid
		in.Title = ""
		assert.Contains(t, in.Validate(), "title")
	})

	t.Run("no positions", func(t *testing.T) {
		in := valid
		in.Positions = nil
		assert.Contains(t, in.Validate(), "positions")
	})

	t.Run("unknown position", func(t *testing.T) {
		in := valid
		in.Positions = []string{"sidebar"}
		assert.Contains(t, in.Validate(), "positions")
	})

	t.Run("unknown page", func(t *testing.T) {
		in := valid
		in.Pages = []string{"home", "pricing"}
		assert.Contains(t, in.Validate(), "pages")
	})
}

func TestAdVisibleOn(t *testing.T) {
	ad := Ad{IsActive: true, Pages: []string{"home", "about"}}

	assert.True(t, ad.VisibleOn("home"))
	assert.True(t, ad.VisibleOn("about"))
	assert.False(t, ad.VisibleOn("contact"))

	ad.IsActive = false
	assert.False(t, ad.VisibleOn("home"), "inactive ads never show")
}
