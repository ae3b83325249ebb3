// Package cmd wires the libris CLI together.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/lepinkainen/libris/internal/config"
	"github.com/lepinkainen/libris/internal/fileutil"
	"github.com/lepinkainen/libris/internal/library"
	"github.com/lepinkainen/libris/internal/search"
	"github.com/lepinkainen/libris/internal/sources/applebooks"
	"github.com/lepinkainen/libris/internal/sources/googlebooks"
	"github.com/lepinkainen/libris/internal/sources/kitapyurdu"
	"github.com/lepinkainen/libris/internal/sources/openlibrary"
	"github.com/lepinkainen/libris/internal/tui"
)

var selectCandidate = tui.Select

// CLI represents the complete command structure for the libris application.
type CLI struct {
	// Global flags
	Verbose bool `help:"Enable debug logging"`

	// Library flags
	DBFile   string `help:"Path to the library SQLite database" default:"./libris.db"`
	CoverDir string `help:"Directory cover images are saved under" default:"./covers"`

	Search SearchCmd `cmd:"" help:"Search book metadata across all sources"`
	Add    AddCmd    `cmd:"" help:"Search and add a book to the library"`
	List   ListCmd   `cmd:"" help:"List books saved in the library"`
}

// SearchCmd prints ranked candidates for a query.
type SearchCmd struct {
	Query []string `arg:"" help:"Free-text or ISBN query"`
	JSON  bool     `help:"Print results as JSON"`
	Limit int      `help:"Maximum number of results to print" default:"10"`
}

// AddCmd searches, lets the user pick a candidate and persists it.
type AddCmd struct {
	Query []string `arg:"" help:"Free-text or ISBN query"`
	First bool     `help:"Skip the picker and take the top-ranked result"`
}

// ListCmd prints the saved library.
type ListCmd struct {
	JSON bool `help:"Print the library as JSON"`
}

// Execute runs the Kong-based CLI.
func Execute() {
	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("libris"),
		kong.Description("Aggregated book metadata search for the Libris library."),
		kong.UsageOnError(),
	)

	initLogging(cli.Verbose)
	initConfig(&cli)

	if err := ctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := humanlog.NewHandler(os.Stderr, &humanlog.Options{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func initConfig(cli *CLI) {
	viper.AutomaticEnv()
	if err := viper.BindEnv("GoogleBooksAPIKey", "GOOGLE_BOOKS_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Debug("No config file found, using defaults")
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	viper.Set("library.dbfile", cli.DBFile)
	viper.Set("library.coverdir", cli.CoverDir)

	config.InitConfig()
}

// newAggregator builds the four-source aggregator from global config.
func newAggregator() *search.Aggregator {
	return search.NewAggregator(
		googlebooks.NewClient(googlebooks.WithAPIKey(config.GoogleBooksAPIKey)),
		openlibrary.NewClient(),
		applebooks.NewClient(applebooks.WithCountry(config.StoreCountry)),
		kitapyurdu.NewClient(kitapyurdu.WithUserAgent(config.UserAgent)),
	)
}

// Run methods for each command

// Run executes the search command.
func (s *SearchCmd) Run() error {
	query := strings.Join(s.Query, " ")
	results := newAggregator().Search(context.Background(), query)

	if s.Limit > 0 && len(results) > s.Limit {
		results = results[:s.Limit]
	}

	if s.JSON {
		return printJSON(results)
	}

	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}
	for i, book := range results {
		fmt.Printf("%2d. %s — %s (%.0f pts, %s)\n", i+1, book.Title, book.Author, book.Score, book.Source)
		fmt.Printf("    ISBN %s | %d pages | %s\n", book.ISBN, book.PageCount, book.Publisher)
	}
	return nil
}

// Run executes the add command.
func (a *AddCmd) Run() error {
	query := strings.Join(a.Query, " ")
	results := newAggregator().Search(context.Background(), query)
	if len(results) == 0 {
		return fmt.Errorf("no results for %q", query)
	}

	book := results[0]
	if !a.First {
		selection, err := selectCandidate(query, results)
		if err != nil {
			return fmt.Errorf("selection failed: %w", err)
		}
		if selection.Action != tui.ActionSelected {
			slog.Info("Selection cancelled", "query", query)
			return nil
		}
		book = *selection.Selection
	}

	coverPath, err := fileutil.DownloadCover(fileutil.CoverDownloadOptions{
		URL:       book.CoverURL,
		OutputDir: config.CoverDir,
		Filename:  fileutil.CoverFilename(book.Title),
	})
	if err != nil {
		// The book is still worth saving without its cover.
		slog.Warn("Cover download failed", "title", book.Title, "error", err)
		coverPath = ""
	}

	store, err := library.Open(config.DatabaseFile)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	id, err := store.Add(book, coverPath)
	if err != nil {
		return err
	}

	slog.Info("Book added to library", "id", id, "title", book.Title, "source", book.Source)
	return nil
}

// Run executes the list command.
func (l *ListCmd) Run() error {
	store, err := library.Open(config.DatabaseFile)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entries, err := store.List()
	if err != nil {
		return err
	}

	if l.JSON {
		return printJSON(entries)
	}

	if len(entries) == 0 {
		fmt.Println("Library is empty.")
		return nil
	}
	for _, entry := range entries {
		fmt.Printf("%4d. %s — %s [%s]\n", entry.ID, entry.Book.Title, entry.Book.Author, entry.Status)
	}
	return nil
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}
