package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/musclemap/internal/mcp"
	"github.com/claude/musclemap/internal/soreness"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", os.Getenv("MUSCLEMAP_URL"), "musclemap server URL (e.g. https://musclemap.tail1234.ts.net)")
	apiKey := flag.String("api-key", os.Getenv("MUSCLEMAP_API_KEY"), "API key for recording readings")
	threshold := flag.String("threshold", "DEAD_SORE", "first soreness level that forces rest")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("musclemap-mcp", Version)
		return
	}

	// stdout carries the MCP protocol, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: musclemap-mcp -server <URL> [-api-key KEY] [-threshold LEVEL]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	level, err := soreness.ParseLevel(*threshold)
	if err != nil {
		log.Error("invalid threshold", "error", err)
		os.Exit(1)
	}

	s := mcp.New(mcp.NewHTTPClient(*serverURL, *apiKey), level, Version, log)
	log.Info("musclemap-mcp serving on stdio", "server", *serverURL)
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}
