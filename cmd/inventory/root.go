package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"inventory-backend/internal/view"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	inv *view.Inventory

	// RootCmd is the inventory client. Every subcommand talks to the product
	// API given by --api-url or INVENTORY_API_URL.
	RootCmd = &cobra.Command{
		Use:               "inventory",
		Short:             "Inventory client for the product API",
		SilenceUsage:      true,
		PersistentPreRunE: setupInventory,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().String("api-url", "http://localhost:5001", "base URL of the product API")
	RootCmd.PersistentFlags().Duration("timeout", 10*time.Second, "timeout of each API call")

	RootCmd.AddCommand(listCmd, createCmd, updateCmd, deleteCmd, exportCmd, shellCmd)
}

func initConfig() {
	_ = godotenv.Load(".env")

	viper.SetEnvPrefix("inventory")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func setupInventory(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	apiURL := viper.GetString("api-url")
	if apiURL == "" {
		return fmt.Errorf("api-url must not be empty")
	}
	inv = view.NewInventory(view.NewClient(apiURL), log.New(os.Stderr, "", log.LstdFlags))
	return nil
}

// callContext bounds a single API call by --timeout.
func callContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), viper.GetDuration("timeout"))
}
