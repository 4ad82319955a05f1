package voice

// DefaultSearchSource is used for structured queries without a source.
const DefaultSearchSource = "yt"

// TrackQuery is either a raw identifier or a search with an optional source hint.
type TrackQuery struct {
	// Raw is passed to the backend verbatim when set.
	Raw string
	// Source is the search provider prefix, e.g. "yt" or "sc".
	Source string
	Query  string
}

// RawQuery builds a query passed to the backend unchanged (a URL or a
// prefixed search such as "ytsearch:foo").
func RawQuery(identifier string) TrackQuery {
	return TrackQuery{Raw: identifier}
}

// Identifier returns the identifier understood by the backend's track loader.
func (q TrackQuery) Identifier() string {
	if q.Raw != "" {
		return q.Raw
	}
	source := q.Source
	if source == "" {
		source = DefaultSearchSource
	}
	return source + "search:" + q.Query
}

// LoadType classifies a track loading result.
type LoadType string

const (
	LoadTrackLoaded    LoadType = "TRACK_LOADED"
	LoadPlaylistLoaded LoadType = "PLAYLIST_LOADED"
	LoadSearchResult   LoadType = "SEARCH_RESULT"
	LoadNoMatches      LoadType = "NO_MATCHES"
	LoadFailed         LoadType = "LOAD_FAILED"
)

// LoadTrackResponse is the backend's answer to a track query.
type LoadTrackResponse struct {
	LoadType     LoadType      `json:"loadType"`
	PlaylistInfo *PlaylistInfo `json:"playlistInfo,omitempty"`
	Tracks       []Track       `json:"tracks"`
	Exception    *Exception    `json:"exception,omitempty"`
}

type PlaylistInfo struct {
	Name          string `json:"name,omitempty"`
	SelectedTrack int    `json:"selectedTrack,omitempty"`
}

// Track is an encoded track plus its decoded metadata.
type Track struct {
	Track string    `json:"track"`
	Info  TrackInfo `json:"info"`
}

type TrackInfo struct {
	Identifier string `json:"identifier"`
	IsSeekable bool   `json:"isSeekable"`
	Author     string `json:"author"`
	Length     int64  `json:"length"`
	IsStream   bool   `json:"isStream"`
	Position   int64  `json:"position"`
	Title      string `json:"title"`
	URI        string `json:"uri,omitempty"`
	SourceName string `json:"sourceName,omitempty"`
}

type Exception struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
}
