package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/spec-kit/pharmacy-pos/internal/client/authclient"
	"github.com/spec-kit/pharmacy-pos/internal/client/session"
	"github.com/spec-kit/pharmacy-pos/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	client := authclient.New(cfg.Client, session.DefaultStore(cfg.App.Name))

	rootCmd := &cobra.Command{
		Use:           "posctl",
		Short:         "Operator CLI for the pharmacy POS back office",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		loginCmd(client),
		logoutCmd(client),
		whoamiCmd(client),
		canCmd(client),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
