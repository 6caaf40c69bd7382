package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"shopdesk/internal/category"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var categoriesJSON bool

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Print the category tree derived from product rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		res, err := appInstance.CategoryService.Tree(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to build category tree: %w", err)
		}

		out := cmd.OutOrStdout()
		if categoriesJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res.Nodes)
		}

		if res.Total == 0 {
			fmt.Fprintln(out, "No categories found.")
			return nil
		}
		for _, n := range res.Nodes {
			printNode(out, n, 0)
		}
		fmt.Fprintf(out, "\n%d top-level categories\n", res.Total)
		return nil
	},
}

func printNode(w io.Writer, n category.Node, depth int) {
	fmt.Fprintf(w, "%s%s %s\n", strings.Repeat("  ", depth), n.Data.Category, color.CyanString("(%s)", n.Key))
	for _, child := range n.Children {
		printNode(w, child, depth+1)
	}
}

func init() {
	categoriesCmd.Flags().BoolVar(&categoriesJSON, "json", false, "Print the tree as JSON")
	rootCmd.AddCommand(categoriesCmd)
}
