package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theimmortal68/MyFlix-sub006/internal/cache"
	"github.com/theimmortal68/MyFlix-sub006/internal/config"
	"github.com/theimmortal68/MyFlix-sub006/internal/jellyfin"
	"github.com/theimmortal68/MyFlix-sub006/internal/log"
	"github.com/theimmortal68/MyFlix-sub006/internal/service"
	"github.com/theimmortal68/MyFlix-sub006/internal/socket"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("myflix %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting myflix", "version", Version)

	if !cfg.IsConfigured() {
		fmt.Println("Server not configured.")
		fmt.Println("Set server.url, server.token and server.user_id in the config file,")
		fmt.Println("or export MYFLIX_SERVER_URL, MYFLIX_SERVER_TOKEN and MYFLIX_SERVER_USER_ID.")
		return nil
	}

	client := jellyfin.NewClient(logger)

	store := cache.NewStore()
	if cfg.Cache.Disabled {
		store.Disable()
	}

	catalog := service.NewCatalogService(client, client, store, logger)
	catalog.Configure(cfg.Server.URL, cfg.Server.Token, cfg.Server.UserID, cfg.Server.DeviceID)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	libraries, err := catalog.GetLibraries(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch libraries: %w", err)
	}

	fmt.Printf("Connected to %s\n\n", cfg.Server.URL)
	fmt.Println("Libraries:")
	for _, lib := range libraries {
		fmt.Printf("  %-24s %s (%d items)\n", lib.Title, lib.Type, lib.ItemCount)
	}

	resume, err := catalog.GetResumeItems(ctx, 10)
	if err != nil {
		logger.Warn("failed to fetch resume items", "error", err)
	} else if len(resume) > 0 {
		fmt.Println("\nContinue watching:")
		for _, item := range resume {
			fmt.Printf("  %s (%s)\n", item.Title, item.FormattedDuration())
		}
	}

	if !cfg.Socket.Enabled {
		return nil
	}

	// Stream server notifications until interrupted, reusing the client's
	// session parameters
	stream := socket.NewClient(logger)
	if err := stream.Connect(client.Session()); err != nil {
		logger.Warn("notification stream unavailable", "error", err)
	}
	defer stream.Disconnect()

	fmt.Println("\nListening for server events (Ctrl+C to quit)...")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case ev := <-stream.Events():
			handleEvent(catalog, ev, logger)
		case <-sigCh:
			logger.Info("shutting down")
			return nil
		}
	}
}

// handleEvent reacts to a server push: catalog and user-data changes drop
// the affected cache families so the next reads see fresh data.
func handleEvent(catalog *service.CatalogService, ev socket.Event, logger *slog.Logger) {
	switch e := ev.(type) {
	case socket.LibraryChanged:
		logger.Info("library changed",
			"added", len(e.ItemsAdded),
			"updated", len(e.ItemsUpdated),
			"removed", len(e.ItemsRemoved))
		catalog.Refresh()
		fmt.Printf("library changed: +%d ~%d -%d\n",
			len(e.ItemsAdded), len(e.ItemsUpdated), len(e.ItemsRemoved))

	case socket.UserDataChanged:
		logger.Info("user data changed", "items", len(e.ItemIDs))
		catalog.InvalidateItems(e.ItemIDs)
		fmt.Printf("user data changed for %d item(s)\n", len(e.ItemIDs))

	case socket.PlaystateCommand:
		logger.Info("playstate command", "command", e.Command)
		fmt.Printf("playstate command: %s\n", e.Command)

	case socket.PlayCommand:
		logger.Info("play command", "command", e.Command, "items", len(e.ItemIDs))
		fmt.Printf("play command: %s (%d items)\n", e.Command, len(e.ItemIDs))

	case socket.GeneralCommand:
		logger.Info("general command", "name", e.Name)
		fmt.Printf("command: %s\n", e.Name)
	}
}
