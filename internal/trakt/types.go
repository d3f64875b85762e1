package trakt

import "time"

// IDs is the bundle of external identifiers Trakt attaches to every item.
type IDs struct {
	Trakt int    `json:"trakt,omitempty"`
	Slug  string `json:"slug,omitempty"`
	IMDB  string `json:"imdb,omitempty"`
	TMDB  int    `json:"tmdb,omitempty"`
	TVDB  int    `json:"tvdb,omitempty"`
}

// Show is a TV show.
type Show struct {
	Title string `json:"title"`
	Year  int    `json:"year,omitempty"`
	IDs   IDs    `json:"ids"`
}

// Movie is a feature film.
type Movie struct {
	Title string `json:"title"`
	Year  int    `json:"year,omitempty"`
	IDs   IDs    `json:"ids"`
}

// Episode is a single episode of a show.
type Episode struct {
	Season int    `json:"season"`
	Number int    `json:"number"`
	Title  string `json:"title,omitempty"`
	IDs    IDs    `json:"ids"`
}

// WatchedShow is one entry of the watched-shows listing.
type WatchedShow struct {
	Plays         int       `json:"plays"`
	LastWatchedAt time.Time `json:"last_watched_at"`
	Show          Show      `json:"show"`
}

// WatchlistItem is one entry of a watchlist. Exactly one of Movie and Show
// is set, per Type.
type WatchlistItem struct {
	Rank     int       `json:"rank"`
	ListedAt time.Time `json:"listed_at"`
	Type     string    `json:"type"`
	Movie    *Movie    `json:"movie,omitempty"`
	Show     *Show     `json:"show,omitempty"`
}

// HistoryItem is one entry of the watch history.
type HistoryItem struct {
	ID        int64     `json:"id"`
	WatchedAt time.Time `json:"watched_at"`
	Action    string    `json:"action"`
	Type      string    `json:"type"`
	Movie     *Movie    `json:"movie,omitempty"`
	Show      *Show     `json:"show,omitempty"`
	Episode   *Episode  `json:"episode,omitempty"`
}

// ShowProgress is the watched progress of one show.
type ShowProgress struct {
	Aired         int       `json:"aired"`
	Completed     int       `json:"completed"`
	LastWatchedAt time.Time `json:"last_watched_at,omitempty"`
	NextEpisode   *Episode  `json:"next_episode,omitempty"`
}

// HistoryRequest is the POST body for adding items to the watch history.
type HistoryRequest struct {
	Movies   []Movie   `json:"movies,omitempty"`
	Shows    []Show    `json:"shows,omitempty"`
	Episodes []Episode `json:"episodes,omitempty"`
}
