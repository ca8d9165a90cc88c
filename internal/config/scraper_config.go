package config

// ScraperConfig defines how the source site is crawled.
type ScraperConfig struct {
	BaseURL                string   `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"required,url"`
	ClubID                 string   `json:"club_id,omitempty" yaml:"club_id,omitempty" validate:"required"`
	StatsAPIBase           string   `json:"stats_api_base,omitempty" yaml:"stats_api_base,omitempty" validate:"required,url"`
	Season                 string   `json:"season,omitempty" yaml:"season,omitempty" validate:"required"`
	UserAgent              string   `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	ClubKeywords           []string `json:"club_keywords,omitempty" yaml:"club_keywords,omitempty" validate:"min=1"`
	RequestTimeoutSecs     int      `json:"request_timeout_secs,omitempty" yaml:"request_timeout_secs,omitempty" validate:"gt=0"`
	MinRequestIntervalMs   int      `json:"min_request_interval_ms,omitempty" yaml:"min_request_interval_ms,omitempty" validate:"gte=0"`
	TeamDelayMs            int      `json:"team_delay_ms,omitempty" yaml:"team_delay_ms,omitempty" validate:"gte=0"`
	CompetitionDelayMs     int      `json:"competition_delay_ms,omitempty" yaml:"competition_delay_ms,omitempty" validate:"gte=0"`
	MaxPagesPerCompetition int      `json:"max_pages_per_competition,omitempty" yaml:"max_pages_per_competition,omitempty" validate:"gt=0"`
}

// NewDefaultScraperConfig creates scraper configuration matching the
// tracked club's source site.
func NewDefaultScraperConfig() ScraperConfig {
	return ScraperConfig{
		BaseURL:                "https://www.basquetcatala.cat",
		ClubID:                 "150",
		StatsAPIBase:           "https://msstats.optimalwayconsulting.com/v1/fcbq/getJsonWithMatchStats/",
		Season:                 "2025",
		UserAgent:              "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		ClubKeywords:           []string{"badalones", "corbacho"},
		RequestTimeoutSecs:     10,
		MinRequestIntervalMs:   1000,
		TeamDelayMs:            2000,
		CompetitionDelayMs:     1500,
		MaxPagesPerCompetition: 10,
	}
}
