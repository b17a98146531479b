package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/pharmacy-pos/internal/client/authclient"
	"github.com/spec-kit/pharmacy-pos/internal/client/nav"
)

func whoamiCmd(client *authclient.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current principal",
		RunE: func(cmd *cobra.Command, args []string) error {
			principal, err := client.CurrentPrincipal(cmd.Context())
			if err != nil {
				return err
			}
			if principal == nil {
				fmt.Println("Not logged in")
				return nil
			}
			fmt.Printf("%s <%s> role=%s\n", principal.Username, principal.Email, principal.Role)
			return nil
		},
	}
}

func canCmd(client *authclient.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "can <path>",
		Short: "Check what the dashboard would do with a route",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			principal, err := client.CurrentPrincipal(cmd.Context())
			if err != nil {
				return err
			}

			decision := nav.Decide(principal, args[0])
			if decision.Action == nav.Allow {
				fmt.Printf("allow %s\n", args[0])
			} else {
				fmt.Printf("redirect %s -> %s\n", args[0], decision.Target)
			}
			return nil
		},
	}
}
