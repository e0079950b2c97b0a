package jellyfin

// ItemsResponse represents a paginated list of items from Jellyfin
type ItemsResponse struct {
	Items            []Item `json:"Items"`
	TotalRecordCount int    `json:"TotalRecordCount"`
	StartIndex       int    `json:"StartIndex"`
}

// Item represents a media item from Jellyfin (movie, series, season, episode, etc.)
type Item struct {
	ID                string     `json:"Id"`
	Name              string     `json:"Name"`
	SortName          string     `json:"SortName"`
	Overview          string     `json:"Overview"`
	Type              string     `json:"Type"`
	CollectionType    string     `json:"CollectionType,omitempty"` // For libraries: "movies", "tvshows"
	DateCreated       string     `json:"DateCreated,omitempty"`
	ProductionYear    int        `json:"ProductionYear,omitempty"`
	RunTimeTicks      int64      `json:"RunTimeTicks,omitempty"` // Duration in 100-nanosecond units
	CommunityRating   float64    `json:"CommunityRating,omitempty"`
	OfficialRating    string     `json:"OfficialRating,omitempty"`
	ImageTags         ImageTags  `json:"ImageTags,omitempty"`
	BackdropImageTags []string   `json:"BackdropImageTags,omitempty"`
	ParentID          string     `json:"ParentId,omitempty"`
	SeriesID          string     `json:"SeriesId,omitempty"`
	SeriesName        string     `json:"SeriesName,omitempty"`
	SeasonID          string     `json:"SeasonId,omitempty"`
	ParentIndexNumber int        `json:"ParentIndexNumber,omitempty"` // Season number
	IndexNumber       int        `json:"IndexNumber,omitempty"`       // Episode number
	ChildCount        int        `json:"ChildCount,omitempty"`
	Container         string     `json:"Container,omitempty"`
	UserData          *UserData  `json:"UserData,omitempty"`
	GenreItems        []NameItem `json:"GenreItems,omitempty"`
}

// ImageTags contains image tag IDs for various image types
type ImageTags struct {
	Primary string `json:"Primary,omitempty"`
	Thumb   string `json:"Thumb,omitempty"`
	Banner  string `json:"Banner,omitempty"`
	Logo    string `json:"Logo,omitempty"`
}

// UserData contains user-specific data for an item (watch status, progress)
type UserData struct {
	PlaybackPositionTicks int64  `json:"PlaybackPositionTicks"` // Progress in 100-nanosecond units
	PlayCount             int    `json:"PlayCount"`
	IsFavorite            bool   `json:"IsFavorite"`
	Played                bool   `json:"Played"`
	Key                   string `json:"Key"`
	UnplayedItemCount     int    `json:"UnplayedItemCount,omitempty"`
}

// NameItem is a minimal id/name pair used for genres and similar lookups
type NameItem struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}

// SearchHint represents a search result from Jellyfin
type SearchHint struct {
	ID                string `json:"Id"`
	ItemID            string `json:"ItemId"`
	Name              string `json:"Name"`
	Type              string `json:"Type"`
	RunTimeTicks      int64  `json:"RunTimeTicks,omitempty"`
	ProductionYear    int    `json:"ProductionYear,omitempty"`
	ParentIndexNumber int    `json:"ParentIndexNumber,omitempty"`
	IndexNumber       int    `json:"IndexNumber,omitempty"`
	SeriesName        string `json:"Series,omitempty"`
	PrimaryImageTag   string `json:"PrimaryImageTag,omitempty"`
	ThumbImageTag     string `json:"ThumbImageTag,omitempty"`
}

// SearchHintsResponse represents search results from Jellyfin
type SearchHintsResponse struct {
	SearchHints      []SearchHint `json:"SearchHints"`
	TotalRecordCount int          `json:"TotalRecordCount"`
}

// playbackStartRequest is the body for a playback-start report
type playbackStartRequest struct {
	ItemID        string `json:"ItemId"`
	PositionTicks int64  `json:"PositionTicks"`
	CanSeek       bool   `json:"CanSeek"`
	PlayMethod    string `json:"PlayMethod"`
}

// playbackProgressRequest is the body for a playback-progress report
type playbackProgressRequest struct {
	ItemID        string `json:"ItemId"`
	PositionTicks int64  `json:"PositionTicks"`
	IsPaused      bool   `json:"IsPaused"`
	PlayMethod    string `json:"PlayMethod"`
}

// playbackStoppedRequest is the body for a playback-stopped report
type playbackStoppedRequest struct {
	ItemID        string `json:"ItemId"`
	PositionTicks int64  `json:"PositionTicks"`
}
