package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	configfile "github.com/paperdock/paperdock-cli/internal/adapters/driven/config/file"
	"github.com/paperdock/paperdock-cli/internal/adapters/driven/gdrive"
	"github.com/paperdock/paperdock-cli/internal/adapters/driven/storage/badgerdb"
	"github.com/paperdock/paperdock-cli/internal/adapters/driven/storage/memory"
	"github.com/paperdock/paperdock-cli/internal/adapters/driven/storage/sqlite"
	"github.com/paperdock/paperdock-cli/internal/core/ports/driven"
	"github.com/paperdock/paperdock-cli/internal/core/ports/driving"
	"github.com/paperdock/paperdock-cli/internal/core/services"
	"github.com/paperdock/paperdock-cli/internal/extractors"
	"github.com/paperdock/paperdock-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// configKeyDriveToken holds the Drive OAuth access token.
const configKeyDriveToken = "sync.drive_token"

// Services wired by initServices. Tests inject fakes directly.
var (
	libraryService    driving.Library
	syncService       driving.DriveSync
	metadataExtractor driving.Extractor
	configStore       driven.ConfigStore
	blobStore         driven.BlobStore
)

// activeUser is the user whose collection commands operate on.
var activeUser string

// Persistent flags.
var (
	flagVerbose bool
	flagUser    string
	flagStorage string
)

var rootCmd = &cobra.Command{
	Use:   "paperdock",
	Short: "Manage a personal library of academic documents",
	Long: `Paperdock ingests academic documents from arXiv, DOI resolvers, PubMed
and the open web, keeps them in a searchable per-user library, and
synchronises folders from Google Drive.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "User whose library to operate on")
	rootCmd.PersistentFlags().StringVar(&flagStorage, "storage", "", "Storage backend: sqlite, badger or memory")
}

// Execute runs the root command.
func Execute() error {
	defer closeStores()
	return rootCmd.Execute()
}

// initServices wires the service graph. A pre-populated library service
// (set by tests) leaves the wiring untouched.
func initServices(_ *cobra.Command, _ []string) error {
	if flagVerbose {
		logger.SetVerbose(true)
	}

	if libraryService != nil {
		return nil
	}

	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	configStore = cfg

	activeUser = flagUser
	if activeUser == "" {
		activeUser = cfg.GetString(configfile.KeyUserID)
	}
	if activeUser == "" {
		activeUser = "default"
	}

	if !flagVerbose && cfg.GetBool(configfile.KeyVerbose) {
		logger.SetVerbose(true)
	}

	store, err := openBlobStore(cfg)
	if err != nil {
		return err
	}
	blobStore = store

	libraryService = services.NewLibraryService(store)
	metadataExtractor = extractors.NewRouter(nil)
	syncService = services.NewDriveSyncService(driveClient(cfg), libraryService)

	return nil
}

// openBlobStore selects the persistence backend: the --storage flag wins
// over the config file, and sqlite is the default.
func openBlobStore(cfg driven.ConfigStore) (driven.BlobStore, error) {
	backend := flagStorage
	if backend == "" {
		backend = cfg.GetString(configfile.KeyStorageBackend)
	}

	switch backend {
	case "", "sqlite":
		store, err := sqlite.NewBlobStore("")
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil
	case "badger":
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		store, err := badgerdb.NewBlobStore(filepath.Join(home, ".paperdock", "badger"))
		if err != nil {
			return nil, fmt.Errorf("open badger store: %w", err)
		}
		return store, nil
	case "memory":
		return memory.NewBlobStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// driveClient builds the Drive client when a token is configured. A nil
// client leaves sync commands reporting that Drive is not connected.
func driveClient(cfg driven.ConfigStore) driven.DriveClient {
	token := cfg.GetString(configKeyDriveToken)
	if token == "" {
		return nil
	}

	client, err := gdrive.NewClient(context.Background(), token)
	if err != nil {
		logger.Warn("Drive client unavailable: %v", err)
		return nil
	}
	return client
}

func closeStores() {
	if blobStore != nil {
		if err := blobStore.Close(); err != nil {
			logger.Warn("Failed to close storage: %v", err)
		}
	}
}
