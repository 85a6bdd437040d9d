package feed

// Config holds configuration for the marketplace price feed.
type Config struct {
	// URL is the location of the XML price feed document.
	URL string `mapstructure:"url" default:""`
	// TimeoutSeconds is the HTTP fetch timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
