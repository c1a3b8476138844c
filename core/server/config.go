package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// RunHistory is the number of finished comparison runs kept in memory.
	RunHistory int `mapstructure:"run_history" default:"100"`
}

// HistorySize returns the configured run history, falling back to 100.
func (c Config) HistorySize() int {
	if c.RunHistory <= 0 {
		return 100
	}
	return c.RunHistory
}
