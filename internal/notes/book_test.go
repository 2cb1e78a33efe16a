package notes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfdex/internal/catalog"
)

func TestFrontmatterOrderAndOverwrite(t *testing.T) {
	fm := NewFrontmatter()
	fm.Set("title", "A Book")
	fm.Set("year", 1999)
	fm.Set("title", "A Better Title")

	v, ok := fm.Get("title")
	require.True(t, ok)
	assert.Equal(t, "A Better Title", v)

	out, err := fm.Marshal()
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, "---\n"))
	assert.True(t, strings.HasSuffix(text, "---\n"))
	assert.Less(t, strings.Index(text, "title:"), strings.Index(text, "year:"),
		"keys keep insertion order")
	assert.Contains(t, text, "title: A Better Title\n")
}

func TestRenderBookFull(t *testing.T) {
	year := 1937
	h, w, th, pages := 20, 13, 3, 310
	book := catalog.Book{
		ExternalID:  "/works/OL1W",
		Title:       "The Hobbit",
		Year:        &year,
		Description: "There and back again.",
		CoverURL:    "https://covers.openlibrary.org/b/id/42-L.jpg",
		Language:    "eng",
		HeightCM:    &h,
		WidthCM:     &w,
		ThicknessCM: &th,
		Pages:       &pages,
		Format:      "hardcover",
		Authors:     []string{"J. R. R. Tolkien"},
		Subjects:    []string{"Fantasy"},
	}

	out, err := RenderBook(book, "attachments/The Hobbit - cover.jpg")
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "title: The Hobbit\n")
	assert.Contains(t, text, "openlibrary_id: /works/OL1W\n")
	assert.Contains(t, text, "year: 1937\n")
	assert.Contains(t, text, "height_cm: 20\n")
	assert.Contains(t, text, "width_cm: 13\n")
	assert.Contains(t, text, "thickness_cm: 3\n")
	assert.Contains(t, text, "pages: 310\n")
	assert.Contains(t, text, "volume_cm3: 780\n")
	assert.Contains(t, text, "- catalog/book\n")
	assert.Contains(t, text, "- year/1930s\n")
	assert.Contains(t, text, "- format/hardcover\n")

	assert.Contains(t, text, "![[attachments/The Hobbit - cover.jpg]]")
	assert.NotContains(t, text, "![cover](", "embedded cover wins over the remote URL")
	assert.Contains(t, text, "# The Hobbit\n")
	assert.Contains(t, text, "by J. R. R. Tolkien\n")
	assert.Contains(t, text, "There and back again.\n")
}

func TestRenderBookSparse(t *testing.T) {
	book := catalog.Book{
		Title:    "Mystery Pamphlet",
		CoverURL: "https://example.org/cover.jpg",
	}

	out, err := RenderBook(book, "")
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "title: Mystery Pamphlet\n")
	assert.NotContains(t, text, "year:")
	assert.NotContains(t, text, "height_cm:")
	assert.NotContains(t, text, "volume_cm3:")
	assert.Contains(t, text, "![cover](https://example.org/cover.jpg)")
	assert.NotContains(t, text, "by ")
}
