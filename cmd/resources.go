package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"traktsync/internal/trakt"
)

var historyLimit int

// watchedCmd lists watched shows.
var watchedCmd = &cobra.Command{
	Use:   "watched",
	Short: "List watched shows",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		shows, err := client.WatchedShows(cmd.Context())
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendHeader(table.Row{"Title", "Year", "Plays", "Last watched"})
		for _, s := range shows {
			t.AppendRow(table.Row{s.Show.Title, s.Show.Year, s.Plays, s.LastWatchedAt.Format("2006-01-02")})
		}
		t.Render()
		return nil
	},
}

// watchlistCmd lists watchlist entries for movies or shows.
var watchlistCmd = &cobra.Command{
	Use:       "watchlist [movies|shows]",
	Short:     "List watchlist entries",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"movies", "shows"},
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		var items []trakt.WatchlistItem
		if args[0] == "movies" {
			items, err = client.WatchlistMovies(cmd.Context())
		} else {
			items, err = client.WatchlistShows(cmd.Context())
		}
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendHeader(table.Row{"Rank", "Title", "Year", "Listed at"})
		for _, item := range items {
			title, year := watchlistTitle(item)
			t.AppendRow(table.Row{item.Rank, title, year, item.ListedAt.Format("2006-01-02")})
		}
		t.Render()
		return nil
	},
}

// historyCmd lists recent watch history.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent watch history",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		items, err := client.History(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendHeader(table.Row{"Watched at", "Action", "Title"})
		for _, item := range items {
			t.AppendRow(table.Row{item.WatchedAt.Format("2006-01-02 15:04"), item.Action, historyTitle(item)})
		}
		t.Render()
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of history entries")

	rootCmd.AddCommand(watchedCmd)
	rootCmd.AddCommand(watchlistCmd)
	rootCmd.AddCommand(historyCmd)
}

// newTable creates a writer with the shared output style.
func newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	return t
}

// watchlistTitle extracts the display title of a watchlist item.
func watchlistTitle(item trakt.WatchlistItem) (string, int) {
	switch {
	case item.Movie != nil:
		return item.Movie.Title, item.Movie.Year
	case item.Show != nil:
		return item.Show.Title, item.Show.Year
	default:
		return "(unknown)", 0
	}
}

// historyTitle extracts the display title of a history item.
func historyTitle(item trakt.HistoryItem) string {
	switch {
	case item.Movie != nil:
		return item.Movie.Title
	case item.Episode != nil && item.Show != nil:
		return fmt.Sprintf("%s %dx%02d %s", item.Show.Title, item.Episode.Season, item.Episode.Number, item.Episode.Title)
	case item.Show != nil:
		return item.Show.Title
	default:
		return "(unknown)"
	}
}
