package app

import (
	"fmt"
	"os"

	"fleet-scheduler/internal/config"
	"fleet-scheduler/internal/logx"
)

// NewLogger builds the process logger from the Log config section.
func NewLogger(cfg *config.Config) (logx.Logger, error) {
	level, err := logx.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	switch cfg.Log.Backend {
	case "", "slog":
		return logx.NewJSON(os.Stdout, level), nil
	case "zap":
		return logx.NewZapProduction(level)
	default:
		return nil, fmt.Errorf("unknown log backend %q", cfg.Log.Backend)
	}
}
