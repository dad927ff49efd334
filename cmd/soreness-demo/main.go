package main

import (
	"log/slog"
	"os"

	"github.com/claude/musclemap/internal/plan"
	"github.com/claude/musclemap/internal/status"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	s := plan.DemoStatus()
	if path := os.Getenv("MUSCLEMAP_STATUS_FILE"); path != "" {
		loaded, err := status.Load(path)
		if err != nil {
			log.Error("failed to load status file", "path", path, "error", err)
			os.Exit(1)
		}
		s = loaded
	}

	if err := plan.WriteReport(os.Stdout, s, plan.DemoCandidates(), plan.DefaultThreshold); err != nil {
		log.Error("failed to write report", "error", err)
		os.Exit(1)
	}
}
