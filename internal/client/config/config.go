package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the EventHub CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - StoragePath: SQLite file holding the persisted session. Processes that
//     share the file share the session, like browser tabs of one origin.
//   - RequestTimeout: deadline applied to every backend call.
//   - PageSize: number of events per page in listings.
//   - Verbose: log at debug level instead of warn.
type Config struct {
	ServerEndpointAddr string
	StoragePath        string
	RequestTimeout     time.Duration
	PageSize           int
	Verbose            bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.StoragePath = defaultStoragePath()
	c.RequestTimeout = 10 * time.Second
	c.PageSize = 6
	c.Verbose = false
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "eventhub", "storage.db")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
