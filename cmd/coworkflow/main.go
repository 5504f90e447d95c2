package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "coworkflow",
		Short:   "CoworkFlow gateway and backend services",
		Version: Version,
	}

	rootCmd.AddCommand(gatewayCmd())
	rootCmd.AddCommand(usersCmd())
	rootCmd.AddCommand(spacesCmd())
	rootCmd.AddCommand(reservationsCmd())
	rootCmd.AddCommand(paymentsCmd())
	rootCmd.AddCommand(pricingCmd())
	rootCmd.AddCommand(checkinCmd())
	rootCmd.AddCommand(notificationsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
