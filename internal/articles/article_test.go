package articles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateReadingTime(t *testing.T) {
	assert.Equal(t, 1, CalculateReadingTime(""))
	assert.Equal(t, 1, CalculateReadingTime("short one"))
	assert.Equal(t, 1, CalculateReadingTime(strings.Repeat("word ", 200)))
	assert.Equal(t, 2, CalculateReadingTime(strings.Repeat("word ", 201)))
	assert.Equal(t, 5, CalculateReadingTime(strings.Repeat("word ", 1000)))
}

func TestGenerateSlug(t *testing.T) {
	for title, expected := range map[string]string{
		"Hello World":                  "hello-world",
		"  Leading and trailing  ":     "leading-and-trailing",
		"Special!@# Chars$%^":          "special-chars",
		"Multiple   spaces":            "multiple-spaces",
		"Already-dashed -- title":      "already-dashed-title",
		"CAPS and MixedCase":           "caps-and-mixedcase",
		"Numbers 123 are fine":         "numbers-123-are-fine",
		"ünïcödé gets stripped mostly": "ncd-gets-stripped-mostly",
	} {
		assert.Equal(t, expected, GenerateSlug(title), "title: %s", title)
	}
}

func TestArticle_Validate(t *testing.T) {
	validArticle := func() *Article {
		return &Article{
			Title:   "A valid title",
			Slug:    "a-valid-title",
			Content: "Some content here.",
		}
	}

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, validArticle().Validate())
	})

	t.Run("valid without slug", func(t *testing.T) {
		a := validArticle()
		a.Slug = ""
		require.NoError(t, a.Validate())
	})

	t.Run("empty title", func(t *testing.T) {
		a := validArticle()
		a.Title = "   "
		assert.ErrorIs(t, a.Validate(), ErrTitleInvalid)
	})

	t.Run("title too long", func(t *testing.T) {
		a := validArticle()
		a.Title = strings.Repeat("x", 201)
		assert.ErrorIs(t, a.Validate(), ErrTitleInvalid)
	})

	t.Run("empty content", func(t *testing.T) {
		a := validArticle()
		a.Content = " \n\t "
		assert.ErrorIs(t, a.Validate(), ErrContentEmpty)
	})

	t.Run("bad slug chars", func(t *testing.T) {
		a := validArticle()
		a.Slug = "no spaces allowed"
		assert.ErrorIs(t, a.Validate(), ErrSlugInvalid)
	})
}
