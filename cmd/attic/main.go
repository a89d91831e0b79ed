package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/alexflint/go-arg"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rockhound-GO/Attic-Inventory/internal/archive"
	"github.com/Rockhound-GO/Attic-Inventory/internal/capture"
	"github.com/Rockhound-GO/Attic-Inventory/internal/capture/dircam"
	"github.com/Rockhound-GO/Attic-Inventory/internal/capture/fakecam"
	"github.com/Rockhound-GO/Attic-Inventory/internal/config"
	"github.com/Rockhound-GO/Attic-Inventory/internal/db"
	"github.com/Rockhound-GO/Attic-Inventory/internal/domain"
	"github.com/Rockhound-GO/Attic-Inventory/internal/export"
	"github.com/Rockhound-GO/Attic-Inventory/internal/inventory"
	"github.com/Rockhound-GO/Attic-Inventory/internal/logging"
	"github.com/Rockhound-GO/Attic-Inventory/internal/tui"
	"github.com/Rockhound-GO/Attic-Inventory/internal/vision"
	claudevision "github.com/Rockhound-GO/Attic-Inventory/internal/vision/claude"
	ollamavision "github.com/Rockhound-GO/Attic-Inventory/internal/vision/ollama"
)

type args struct {
	Config  string `arg:"-c,--config" help:"path to a YAML config file"`
	Archive string `arg:"--archive" help:"sqlite file to load on start and save on exit"`
	Camera  string `arg:"--camera" help:"camera backend: fake or dir"`
	Seed    bool   `arg:"--seed" help:"start with a couple of demo items"`
}

func (args) Description() string {
	return "attic catalogs household items with photos, one keystroke at a time"
}

func main() {
	var a args
	arg.MustParse(&a)

	cfg, err := config.Load(a.Config)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if a.Archive != "" {
		cfg.ArchivePath = a.Archive
	}
	if a.Camera != "" {
		cfg.CameraBackend = a.Camera
	}
	if a.Seed {
		cfg.DemoSeed = true
	}

	// The TUI owns the terminal, so the console never gets log lines.
	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile, false)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	store := inventory.New()
	if cfg.DemoSeed {
		seed(store)
	}

	var arch *archive.Archive
	if cfg.ArchivePath != "" {
		database, err := db.Open(cfg.ArchivePath)
		if err != nil {
			logger.Error("failed to open archive database", "error", err)
			return
		}
		defer func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close archive database", "error", err)
			}
		}()

		arch = archive.New(database, logger)
		snap, err := arch.Load(context.Background())
		if err != nil {
			logger.Error("failed to load archived inventory", "error", err)
			return
		}
		if len(snap.Items) > 0 || len(snap.Categories) > 0 {
			store.Restore(snap.Items, snap.Categories)
		}
	}

	device, err := newCameraDevice(cfg)
	if err != nil {
		logger.Error("failed to initialize camera backend", "error", err)
		return
	}
	pipeline := capture.New(device, logger)

	exporter, err := export.NewPhotoExporter(cfg.ExportPath)
	if err != nil {
		logger.Error("failed to initialize photo exporter", "error", err)
		return
	}

	model := tui.New(store, pipeline, newSuggester(cfg, logger), exporter, logger)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		logger.Error("tui error", "error", err)
		return
	}

	if arch != nil {
		snap := archive.Snapshot{Items: store.Items(), Categories: store.Categories()}
		if err := arch.Save(context.Background(), snap); err != nil {
			logger.Error("failed to save inventory archive", "error", err)
		}
	}
}

func newCameraDevice(cfg *config.Config) (capture.Device, error) {
	switch cfg.CameraBackend {
	case "dir":
		return dircam.New(cfg.CameraPath)
	default:
		return fakecam.New(), nil
	}
}

func newSuggester(cfg *config.Config, logger *slog.Logger) vision.Suggester {
	switch cfg.VisionBackend {
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			logger.Error("CLAUDE_API_KEY is required when VISION_BACKEND=claude")
			return nil
		}
		logger.Info("using Claude vision backend")
		return claudevision.NewSuggester(cfg.ClaudeAPIKey, cfg.ClaudeModel)
	case "ollama":
		logger.Info("using Ollama vision backend", "model", cfg.OllamaModel)
		return ollamavision.NewSuggester(cfg.OllamaHost, cfg.OllamaModel)
	default:
		return nil
	}
}

func seed(store *inventory.Store) {
	store.AddItem(domain.Draft{
		Name:     "Old rocking chair",
		Category: "Furniture",
		Value:    75,
		History:  "From grandma's porch",
		Photo:    []byte{0xff, 0xd8, 0xff, 0xd9},
		Status:   domain.StatusToValue,
	})
	store.AddItem(domain.Draft{
		Name:     "Box of Vinyl Records",
		Category: "Keepsakes",
		Value:    200,
		History:  "Mostly 70s rock",
		Photo:    []byte{0xff, 0xd8, 0xff, 0xd9},
		Status:   domain.StatusDone,
	})
}
