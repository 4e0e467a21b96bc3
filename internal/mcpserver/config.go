package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
)

// serverConfig holds the configurable MCP server defaults, loaded once at
// startup from BUNDLER_* environment variables.
type serverConfig struct {
	// MaxInlineSize bounds the size of an inline "content" document, to
	// keep a misbehaving client from flooding the server over stdio.
	MaxInlineSize int64
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

func loadConfig() *serverConfig {
	return &serverConfig{
		MaxInlineSize: envInt64("BUNDLER_MAX_INLINE_SIZE", 10*1024*1024),
	}
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}
