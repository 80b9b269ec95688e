package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/user/clipforge-cli/db"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage stored settings",
	Long: `Manage persistent settings stored in the local database.

Known keys:
  transcribe_url  base URL of the transcription service
  language        default transcription language code
  output_dir      directory for exported artifacts`,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open()
		if err != nil {
			return err
		}
		defer database.Close()

		settings, err := db.AllSettings(database)
		if err != nil {
			return err
		}

		for _, key := range db.KnownKeys {
			if value, ok := settings[key]; ok {
				fmt.Printf("%s = %s\n", key, value)
			} else {
				fmt.Printf("%s = (not set)\n", key)
			}
		}
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		if !db.IsKnownKey(key) {
			return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(db.KnownKeys, ", "))
		}

		database, err := db.Open()
		if err != nil {
			return err
		}
		defer database.Close()

		value, err := db.GetSetting(database, key, "")
		if err != nil {
			return err
		}
		fmt.Println(value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if !db.IsKnownKey(key) {
			return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(db.KnownKeys, ", "))
		}

		database, err := db.Open()
		if err != nil {
			return err
		}
		defer database.Close()

		if err := db.SetSetting(database, key, value); err != nil {
			return err
		}
		fmt.Printf("%s = %s\n", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
