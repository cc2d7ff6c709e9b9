package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/streetbotapp/streetbot/internal/credential"
	"github.com/streetbotapp/streetbot/internal/observe"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]
		value := args[1]

		s := getStore(observe.Nop())
		defer s.Close()

		// API keys are sealed before they touch the database.
		if credential.IsSecretKey(key) {
			vault, err := credential.NewVault()
			if err != nil {
				fmt.Printf("Failed to init credential vault: %v\n", err)
				os.Exit(1)
			}
			sealed, err := vault.Seal(value)
			if err != nil {
				fmt.Printf("Failed to encrypt value: %v\n", err)
				os.Exit(1)
			}
			value = sealed
		}

		if err := s.SetConfig(key, value); err != nil {
			fmt.Printf("Failed to set config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration saved: %s\n", key)
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]

		s := getStore(observe.Nop())
		defer s.Close()

		val, err := s.GetConfig(key)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		switch {
		case val == "":
			fmt.Println("(not set)")
		case credential.IsSecretKey(key):
			vault, err := credential.NewVault()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			opened, err := vault.Open(val)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(credential.Mask(opened))
		default:
			fmt.Println(val)
		}
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
}
