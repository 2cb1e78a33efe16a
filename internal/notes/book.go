package notes

import (
	"fmt"
	"strings"

	"shelfdex/internal/catalog"
	"shelfdex/internal/fileutil"
)

// RenderBook produces the markdown note for one catalog entry: YAML
// frontmatter with the structured fields, then a short human-readable
// body.
func RenderBook(book catalog.Book, coverPath string) ([]byte, error) {
	fm := NewFrontmatter()
	fm.Set("title", fileutil.SanitizeFilename(book.Title))
	fm.Set("type", "book")

	if book.ExternalID != "" {
		fm.Set("openlibrary_id", book.ExternalID)
	}
	if book.Year != nil {
		fm.Set("year", *book.Year)
	}
	if len(book.Authors) > 0 {
		fm.Set("authors", book.Authors)
	}
	if book.Language != "" {
		fm.Set("language", book.Language)
	}
	if len(book.Subjects) > 0 {
		fm.Set("subjects", book.Subjects)
	}

	if book.HeightCM != nil {
		fm.Set("height_cm", *book.HeightCM)
	}
	if book.WidthCM != nil {
		fm.Set("width_cm", *book.WidthCM)
	}
	if book.ThicknessCM != nil {
		fm.Set("thickness_cm", *book.ThicknessCM)
	}
	if book.Pages != nil {
		fm.Set("pages", *book.Pages)
	}
	if volume := book.VolumeCM3(); volume != nil {
		fm.Set("volume_cm3", *volume)
	}
	if book.Format != "" {
		fm.Set("format", book.Format)
	}

	fm.Set("tags", bookTags(book))

	head, err := fm.Marshal()
	if err != nil {
		return nil, err
	}

	var body strings.Builder
	body.WriteString("\n")
	if coverPath != "" {
		body.WriteString(fmt.Sprintf("![[%s]]\n\n", coverPath))
	} else if book.CoverURL != "" {
		body.WriteString(fmt.Sprintf("![cover](%s)\n\n", book.CoverURL))
	}
	body.WriteString(fmt.Sprintf("# %s\n", book.Title))
	if len(book.Authors) > 0 {
		body.WriteString(fmt.Sprintf("\nby %s\n", strings.Join(book.Authors, ", ")))
	}
	if book.Description != "" {
		body.WriteString("\n" + book.Description + "\n")
	}

	return append(head, []byte(body.String())...), nil
}

func bookTags(book catalog.Book) []string {
	tags := []string{"catalog/book"}
	if book.Year != nil {
		decade := (*book.Year / 10) * 10
		tags = append(tags, fmt.Sprintf("year/%ds", decade))
	}
	if book.Format != "" {
		tags = append(tags, "format/"+book.Format)
	}
	return tags
}
