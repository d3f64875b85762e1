package trakt

import (
	"context"
	"fmt"
	"net/url"
)

// WatchedShows returns every show the user has watched.
func (c *Client) WatchedShows(ctx context.Context) ([]WatchedShow, error) {
	var shows []WatchedShow
	if err := c.GetInto(ctx, "/sync/watched/shows", &shows); err != nil {
		return nil, err
	}
	return shows, nil
}

// WatchlistMovies returns the movies on the user's watchlist.
func (c *Client) WatchlistMovies(ctx context.Context) ([]WatchlistItem, error) {
	var items []WatchlistItem
	if err := c.GetInto(ctx, "/sync/watchlist/movies", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// WatchlistShows returns the shows on the user's watchlist.
func (c *Client) WatchlistShows(ctx context.Context) ([]WatchlistItem, error) {
	var items []WatchlistItem
	if err := c.GetInto(ctx, "/sync/watchlist/shows", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// History returns the most recent watch-history entries, up to limit.
func (c *Client) History(ctx context.Context, limit int) ([]HistoryItem, error) {
	path := "/sync/history"
	if limit > 0 {
		path += "?limit=" + url.QueryEscape(fmt.Sprintf("%d", limit))
	}

	var items []HistoryItem
	if err := c.GetInto(ctx, path, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ShowProgress returns the watched progress for one show, identified by
// Trakt id or slug.
func (c *Client) ShowProgress(ctx context.Context, id string) (*ShowProgress, error) {
	var progress ShowProgress
	if err := c.GetInto(ctx, "/shows/"+url.PathEscape(id)+"/progress/watched", &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// AddToHistory records the given items as watched. It reports whether the
// API accepted the request.
func (c *Client) AddToHistory(ctx context.Context, req HistoryRequest) (bool, error) {
	return c.Post(ctx, "/sync/history", req)
}
