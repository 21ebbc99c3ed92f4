package entities

// RecommendationRequest is the client input for a recommendation. It is
// never persisted; it exists only for the duration of one request.
type RecommendationRequest struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
}

// HeadphoneSpecs holds hardware facts reported by the analysis service.
// Every field is optional in the wire JSON.
type HeadphoneSpecs struct {
	FormFactor string `json:"form_factor"`
	Connection string `json:"connection"`
	Year       string `json:"year"`
	Price      string `json:"price"`
	Driver     string `json:"driver"`
}

// DetailedAnalysis holds the free-text frequency breakdown.
type DetailedAnalysis struct {
	Bass  string `json:"bass"`
	Mids  string `json:"mids"`
	Highs string `json:"highs"`
	Guide string `json:"guide"`
}

// AIAnalysis is the parsed output of the generative-AI analysis call.
// Missing fields are tolerated; defaults are substituted at assembly.
type AIAnalysis struct {
	Specs            HeadphoneSpecs   `json:"specs"`
	SoundFeatures    []string         `json:"sound_features"`
	DetailedAnalysis DetailedAnalysis `json:"detailed_analysis"`
	SongQuery        string           `json:"song_query"`
	Summary          string           `json:"summary"`
}

// TrackMatch is the best catalog hit for a song query.
type TrackMatch struct {
	Name       string  `json:"name"`
	Artist     string  `json:"artist"`
	CoverURL   string  `json:"cover_url"`
	SpotifyURL string  `json:"spotify_url"`
	ID         string  `json:"id"`
	PreviewURL *string `json:"preview_url"`
}

// TrackRecommendation is the assembled response entity. It is the unit
// stored in cache and returned to the client, with an identical shape
// regardless of whether it came from cache, a fresh pipeline run, or
// degraded fallback data.
type TrackRecommendation struct {
	FormFactor   string `json:"form_factor"`
	Connection   string `json:"connection"`
	ReleaseYear  string `json:"release_year"`
	PriceRange   string `json:"price_range"`
	DriverConfig string `json:"driver_config"`

	SoundFeatures []string `json:"sound_features"`

	AnalysisBass   string `json:"analysis_bass"`
	AnalysisMids   string `json:"analysis_mids"`
	AnalysisHighs  string `json:"analysis_highs"`
	ListeningGuide string `json:"listening_guide"`

	Title      string  `json:"title"`
	Artist     string  `json:"artist"`
	Comment    string  `json:"comment"`
	CoverURL   string  `json:"cover_url"`
	SpotifyURL string  `json:"spotify_url"`
	TrackID    string  `json:"track_id"`
	PreviewURL *string `json:"preview_url"`
}
