package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	configfile "github.com/paperdock/paperdock-cli/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change configuration values.

Recognised keys:
  user_id               - default user for all commands
  storage_backend       - sqlite, badger or memory
  verbose               - enable verbose logging
  sync.auto_interval    - minutes between automatic syncs
  sync.drive_folder_id  - default Drive folder to sync
  sync.drive_token      - Drive OAuth access token`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	keys := []string{
		configfile.KeyUserID,
		configfile.KeyStorageBackend,
		configfile.KeyVerbose,
		configfile.KeyAutoSyncInterval,
		configfile.KeyDriveFolderID,
		configKeyDriveToken,
	}
	sort.Strings(keys)

	cmd.Printf("Configuration (%s)\n\n", configStore.Path())
	for _, key := range keys {
		val, ok := configStore.Get(key)
		if !ok {
			cmd.Printf("  %-22s (unset)\n", key)
			continue
		}
		if key == configKeyDriveToken {
			val = "(set)"
		}
		cmd.Printf("  %-22s %v\n", key, val)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	val, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}
	cmd.Printf("%v\n", val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]

	// Store integers and booleans typed so GetInt/GetBool work.
	var value any = raw
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		value = n
	} else if b, err := strconv.ParseBool(raw); err == nil {
		value = b
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	cmd.Printf("Set %s\n", key)
	return nil
}
