// Package browse implements paginated catalog listings.
package browse

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shelfdex/internal/catalog"
	"shelfdex/internal/cmdutil"
)

// Options configures one listing.
type Options struct {
	Query string
	Page  int
}

var openStore = func() (*catalog.Store, error) { return catalog.Open(cmdutil.DatabasePath()) }

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("254"))
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("247")).Faint(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	footStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).MarginTop(1)
)

// Run prints one page of the catalog with rating summaries.
func Run(opts Options) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	books, total, err := store.ListBooks(ctx, opts.Query, opts.Page)
	if err != nil {
		return err
	}

	if total == 0 {
		fmt.Println("No books in the catalog yet.")
		return nil
	}

	ids := make([]int64, len(books))
	for i, b := range books {
		ids[i] = b.ID
	}
	ratings, err := store.RatingSummaries(ctx, ids)
	if err != nil {
		return err
	}

	for _, book := range books {
		printBook(os.Stdout, book, ratings[book.ID])
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	totalPages := int(math.Ceil(float64(total) / float64(catalog.PageSize)))
	fmt.Println(footStyle.Render(fmt.Sprintf("%d books · page %d/%d", total, page, totalPages)))
	return nil
}

func printBook(w *os.File, book catalog.Book, rating catalog.RatingSummary) {
	authors := strings.Join(book.Authors, ", ")
	if authors == "" {
		authors = "unknown author"
	}

	header := fmt.Sprintf("#%d %s", book.ID, book.Title)
	if book.Year != nil {
		header += fmt.Sprintf(" (%d)", *book.Year)
	}
	fmt.Fprintln(w, titleStyle.Render(header))
	fmt.Fprintln(w, metaStyle.Render("   "+authors))

	if line := dimensionLine(book); line != "" {
		fmt.Fprintln(w, dimStyle.Render("   "+line))
	}
	if rating.Count > 0 {
		fmt.Fprintln(w, metaStyle.Render(fmt.Sprintf("   %.1f/5 (%d reviews)", rating.Average, rating.Count)))
	}
}

func dimensionLine(book catalog.Book) string {
	var parts []string
	if book.HeightCM != nil && book.WidthCM != nil && book.ThicknessCM != nil {
		parts = append(parts, fmt.Sprintf("%d x %d x %d cm", *book.HeightCM, *book.WidthCM, *book.ThicknessCM))
	}
	if volume := book.VolumeCM3(); volume != nil {
		parts = append(parts, fmt.Sprintf("%d cm³", *volume))
	}
	if book.Pages != nil {
		parts = append(parts, fmt.Sprintf("%d pages", *book.Pages))
	}
	return strings.Join(parts, " · ")
}
