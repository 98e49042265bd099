// Package config reads server settings from flags, falling back to
// CHESS_* environment variables and then to defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Addr          string
	AllowOrigins  []string
	WSReadBuffer  int
	WSWriteBuffer int
	LogRequests   bool
}

// Load parses args (without the program name). Environment values become the
// flag defaults, so an explicit flag always wins.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	addr := fs.String("addr", getenv("CHESS_ADDR", ":3000"), "listen address")
	origins := fs.String("allow-origins", getenv("CHESS_ALLOW_ORIGINS", "http://localhost:5173"), "comma-separated CORS and websocket origins")
	readBuf := fs.Int("ws-read-buffer", getenvInt("CHESS_WS_READ_BUFFER", 1024), "websocket read buffer size")
	writeBuf := fs.Int("ws-write-buffer", getenvInt("CHESS_WS_WRITE_BUFFER", 1024), "websocket write buffer size")
	logRequests := fs.Bool("log-requests", getenb("CHESS_LOG_REQUESTS", true), "log every HTTP request")

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg := Config{
		Addr:          strings.TrimSpace(*addr),
		AllowOrigins:  splitList(*origins),
		WSReadBuffer:  *readBuf,
		WSWriteBuffer: *writeBuf,
		LogRequests:   *logRequests,
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	}
	if len(c.AllowOrigins) == 0 {
		return fmt.Errorf("%w: no allowed origins", ErrInvalidConfig)
	}
	if c.WSReadBuffer <= 0 || c.WSWriteBuffer <= 0 {
		return fmt.Errorf("%w: websocket buffers must be positive", ErrInvalidConfig)
	}
	return nil
}

// AllowOriginsHeader joins the origins the way fiber's cors middleware wants them.
func (c Config) AllowOriginsHeader() string {
	return strings.Join(c.AllowOrigins, ", ")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}
