package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var brandsCmd = &cobra.Command{
	Use:   "brands",
	Short: "List the distinct brands in the product table",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		brands, err := appInstance.ProductService.Brands(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list brands: %w", err)
		}
		if len(brands) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No brands found.")
			return nil
		}
		for _, b := range brands {
			fmt.Fprintln(cmd.OutOrStdout(), b)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(brandsCmd)
}
