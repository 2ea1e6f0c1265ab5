package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status and available procedures",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(cmd.OutOrStdout(), rend.Status(asst.Catalog(), asst.Threshold(), asst.Stats()))
		return nil
	},
}

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show general emergency guidance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(cmd.OutOrStdout(), rend.Guidance())
		return nil
	},
}
