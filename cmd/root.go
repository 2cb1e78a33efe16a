package cmd

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"shelfdex/cmd/add"
	"shelfdex/cmd/browse"
	"shelfdex/cmd/edit"
	"shelfdex/cmd/export"
	"shelfdex/cmd/review"
	"shelfdex/cmd/rm"
	"shelfdex/cmd/stats"
	"shelfdex/internal/config"
)

var (
	runAdd    = add.Run
	runManual = add.RunManual
	runBrowse = browse.Run
	runEdit   = edit.Run
	runExport = export.Run
	runRm     = rm.Run
	runStats  = stats.Run
)

// CLI represents the complete command structure for the shelfdex
// application
type CLI struct {
	// Global flags
	Overwrite bool   `help:"Overwrite existing markdown and JSON files"`
	NoCovers  bool   `help:"Skip downloading cover images"`
	DBFile    string `help:"Path to catalog SQLite database file" default:"./shelfdex.db"`
	User      string `help:"Username reviews are attributed to"`

	Add    AddCmd    `cmd:"" help:"Search the catalog source and import a book"`
	Browse BrowseCmd `cmd:"" help:"List books in the catalog"`
	Edit   EditCmd   `cmd:"" help:"Fill in or correct a book's dimensions"`
	Rm     RmCmd     `cmd:"" help:"Delete a book from the catalog"`
	Review ReviewCmd `cmd:"" help:"Rate and review books"`
	Stats  StatsCmd  `cmd:"" help:"Show volume rankings and shelf space"`
	Export ExportCmd `cmd:"" help:"Export the catalog as markdown and JSON"`
}

// EditCmd patches dimension fields on an existing book
type EditCmd struct {
	BookID    int64  `arg:"" help:"Catalog id of the book"`
	Height    int    `help:"Height in cm"`
	Width     int    `help:"Width in cm"`
	Thickness int    `help:"Thickness in cm"`
	Pages     int    `help:"Page count"`
	Format    string `help:"Format: paperback, hardcover, ebook"`
}

// RmCmd deletes a book
type RmCmd struct {
	BookID int64 `arg:"" help:"Catalog id of the book"`
}

// AddCmd represents the add command
type AddCmd struct {
	Query         string `arg:"" optional:"" help:"Title to search for"`
	Limit         int    `short:"n" help:"Maximum number of search results" default:"9"`
	NoInteractive bool   `help:"Skip the selection UI and import the first result"`
	Output        string `short:"o" help:"Subdirectory under markdown output directory for notes" default:"catalog"`
	Note          bool   `help:"Write a markdown note for the imported book" default:"true"`
	JSON          bool   `help:"Write the imported book to JSON"`
	JSONOutput    string `help:"Path to JSON output file (defaults to json/catalog.json)"`

	// Manual entry flags
	Manual      bool     `help:"Add a book by hand instead of searching"`
	Title       string   `help:"Title (manual entry)"`
	Authors     []string `help:"Authors (manual entry)"`
	Subjects    []string `help:"Subjects (manual entry)"`
	Year        int      `help:"Publication year (manual entry)"`
	Language    string   `help:"ISO language code (manual entry)"`
	CoverURL    string   `help:"Cover image URL (manual entry)"`
	Description string   `help:"Description (manual entry)"`
	Height      int      `help:"Height in cm (manual entry)"`
	Width       int      `help:"Width in cm (manual entry)"`
	Thickness   int      `help:"Thickness in cm (manual entry)"`
	Pages       int      `help:"Page count (manual entry)"`
	Format      string   `help:"Format: paperback, hardcover, ebook (manual entry)"`
}

// BrowseCmd represents the browse command
type BrowseCmd struct {
	Query string `short:"q" help:"Case-insensitive title filter"`
	Page  int    `short:"p" help:"1-based page index" default:"1"`
}

// ReviewCmd represents the review command and its subcommands
type ReviewCmd struct {
	Add    ReviewAddCmd    `cmd:"" help:"Rate and optionally review a book"`
	List   ReviewListCmd   `cmd:"" help:"List your reviews"`
	Recent ReviewRecentCmd `cmd:"" help:"Show the newest reviews across all users"`
	Rm     ReviewRmCmd     `cmd:"" help:"Delete your review of a book"`
}

// ReviewAddCmd saves a review
type ReviewAddCmd struct {
	BookID  int64  `arg:"" help:"Catalog id of the book"`
	Rating  int    `arg:"" help:"Rating from 1 to 5"`
	Comment string `arg:"" optional:"" help:"Optional review text"`
}

// ReviewListCmd lists the user's reviews
type ReviewListCmd struct{}

// ReviewRecentCmd lists the newest reviews catalog-wide
type ReviewRecentCmd struct {
	Limit int `short:"n" help:"Number of reviews to show" default:"10"`
}

// ReviewRmCmd deletes a review
type ReviewRmCmd struct {
	BookID int64 `arg:"" help:"Catalog id of the book"`
}

// StatsCmd represents the stats command
type StatsCmd struct {
	Limit int `short:"n" help:"Number of books in the volume ranking" default:"20"`
}

// ExportCmd represents the export command
type ExportCmd struct {
	Output     string `short:"o" help:"Subdirectory under markdown output directory for notes" default:"catalog"`
	JSON       bool   `help:"Write the whole catalog to JSON" default:"true"`
	JSONOutput string `help:"Path to JSON output file (defaults to json/catalog.json)"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("shelfdex"),
		kong.Description("A book catalog manager with physical-dimension tracking."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)

	if err := ctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("MarkdownOutputDir", "./markdown/")
	viper.SetDefault("JSONOutputDir", "./json/")
	viper.SetDefault("OverwriteFiles", false)

	viper.SetDefault("catalog.dbfile", "./shelfdex.db")
	viper.SetDefault("catalog.output", "catalog")

	viper.AutomaticEnv()
	if err := viper.BindEnv("Username", "SHELFDEX_USER"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
			os.Exit(0)
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	config.SetOverwriteFiles(cli.Overwrite)
	config.SetDownloadCovers(!cli.NoCovers)
	config.SetUsername(cli.User)

	viper.Set("catalog.dbfile", cli.DBFile)
}

// Run methods for each command

func (a *AddCmd) Run() error {
	if a.Manual {
		return runManual(add.ManualOptions{
			Title:       a.Title,
			Authors:     a.Authors,
			Subjects:    a.Subjects,
			Year:        a.Year,
			Language:    a.Language,
			CoverURL:    a.CoverURL,
			Description: a.Description,
			HeightCM:    a.Height,
			WidthCM:     a.Width,
			ThicknessCM: a.Thickness,
			Pages:       a.Pages,
			Format:      a.Format,
		})
	}

	return runAdd(add.Options{
		Query:       a.Query,
		Limit:       a.Limit,
		Interactive: !a.NoInteractive,
		OutputDir:   a.Output,
		WriteNote:   a.Note,
		WriteJSON:   a.JSON,
		JSONOutput:  a.JSONOutput,
	})
}

func (b *BrowseCmd) Run() error {
	return runBrowse(browse.Options{Query: b.Query, Page: b.Page})
}

func (e *EditCmd) Run() error {
	return runEdit(edit.Options{
		BookID:      e.BookID,
		HeightCM:    e.Height,
		WidthCM:     e.Width,
		ThicknessCM: e.Thickness,
		Pages:       e.Pages,
		Format:      e.Format,
	})
}

func (r *RmCmd) Run() error {
	return runRm(r.BookID)
}

func (r *ReviewAddCmd) Run() error {
	return review.Add(r.BookID, r.Rating, r.Comment)
}

func (r *ReviewRecentCmd) Run() error {
	return review.Recent(r.Limit)
}

func (r *ReviewListCmd) Run() error {
	return review.List()
}

func (r *ReviewRmCmd) Run() error {
	return review.Remove(r.BookID)
}

func (s *StatsCmd) Run() error {
	return runStats(s.Limit)
}

func (e *ExportCmd) Run() error {
	return runExport(export.Options{
		OutputDir:  e.Output,
		WriteJSON:  e.JSON,
		JSONOutput: e.JSONOutput,
	})
}

func initLogging() {
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: slog.LevelInfo,
	})

	slog.SetDefault(slog.New(handler))
}
