// Package stats implements the volume analytics commands: the biggest
// books in the catalog, and shelf space attributed per user.
package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shelfdex/internal/catalog"
	"shelfdex/internal/cmdutil"
)

const defaultChonkerLimit = 20

var openStore = func() (*catalog.Store, error) { return catalog.Open(cmdutil.DatabasePath()) }

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// Run prints the volume ranking and the per-user shelf space summary.
func Run(limit int) error {
	if limit <= 0 {
		limit = defaultChonkerLimit
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	chonkers, err := store.TopChonkers(ctx, limit)
	if err != nil {
		return err
	}
	shelves, err := store.ShelfSpaceByUser(ctx)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render("Top chonkers"))
	if len(chonkers) == 0 {
		fmt.Println("No books with complete dimensions yet.")
	} else {
		printChonkers(chonkers)
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("Shelf space by user"))
	if len(shelves) == 0 {
		fmt.Println("No reviewed books with complete dimensions yet.")
		return nil
	}
	for _, shelf := range shelves {
		fmt.Printf("%s: %d books, %d cm³\n", shelf.Username, shelf.Books, shelf.VolumeCM3)
	}
	return nil
}

// printChonkers renders a proportional bar per book so relative size is
// visible at a glance.
func printChonkers(chonkers []catalog.Chonker) {
	maxVolume := chonkers[0].VolumeCM3
	for _, c := range chonkers {
		if c.VolumeCM3 > maxVolume {
			maxVolume = c.VolumeCM3
		}
	}

	for i, c := range chonkers {
		width := 0
		if maxVolume > 0 {
			width = c.VolumeCM3 * 30 / maxVolume
		}
		bar := barStyle.Render(strings.Repeat("█", width))
		fmt.Printf("%2d. %s %s\n", i+1,
			labelStyle.Render(fmt.Sprintf("%-40.40s %6d cm³", c.Title, c.VolumeCM3)), bar)
	}
}
