package cmd

import (
	"fmt"
	"sort"

	"shopdesk/internal/clix"
	"shopdesk/internal/fileingest"
	"shopdesk/internal/models"
	"shopdesk/internal/query"
	"shopdesk/internal/store/csvstore"
	"shopdesk/internal/util"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// listColumns are the logical fields shown by "products list".
var listColumns = []struct {
	field  string
	header string
}{
	{models.FieldID, "ID"},
	{models.FieldProduct, "Product"},
	{models.FieldBrand, "Brand"},
	{models.FieldCategory, "Category"},
	{models.FieldPrice, "Price"},
	{models.FieldCreatedBy, "Created By"},
}

var productsCmd = &cobra.Command{
	Use:     "products",
	Aliases: []string{"product"},
	Short:   "List and edit products",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products with filters, sorting and pagination",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		params, err := clix.ParseListParams(cmd.Flags(), appInstance.Processor.DefaultPageSize())
		if err != nil {
			return err
		}

		page, err := appInstance.ProductService.List(cmd.Context(), params)
		if err != nil {
			return fmt.Errorf("failed to list products: %w", err)
		}

		out := cmd.OutOrStdout()
		if page.Total == 0 {
			fmt.Fprintln(out, "No products found.")
			return nil
		}

		headers := make([]string, len(listColumns))
		for i, c := range listColumns {
			headers[i] = c.header
		}

		table := tablewriter.NewWriter(out)
		table.SetHeader(headers)
		table.SetBorder(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		for _, rec := range page.Data {
			row := make([]string, len(listColumns))
			for i, c := range listColumns {
				row[i] = appInstance.Schema.Resolve(rec, c.field)
			}
			table.Append(row)
		}
		table.Render()

		fmt.Fprintf(out, "\nPage %d, %d per page, %d matching\n", page.Page, page.Rows, page.Total)
		return nil
	},
}

var productsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show every column of one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		rec, err := appInstance.ProductService.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printRecord(cmd, rec)
		return nil
	},
}

var productsAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Add a product",
	Example: `  shopdesk products add --set "Product=Vitamin C" --set Brand=Acme --set "Category=Thuốc > Vitamin"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		payload, err := clix.ParseAssignments(cmd.Flags())
		if err != nil {
			return err
		}

		rec, err := appInstance.ProductService.Create(cmd.Context(), payload)
		if err != nil {
			return fmt.Errorf("failed to add product: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s product %s\n", color.GreenString("Added"), appInstance.Schema.Resolve(rec, models.FieldID))
		printRecord(cmd, rec)
		return nil
	},
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change columns of a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		patch, err := clix.ParseAssignments(cmd.Flags())
		if err != nil {
			return err
		}

		rec, err := appInstance.ProductService.Update(cmd.Context(), args[0], patch)
		if err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s product %s\n", color.GreenString("Updated"), args[0])
		printRecord(cmd, rec)
		return nil
	},
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		if err := appInstance.ProductService.Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s product %s\n", color.RedString("Deleted"), args[0])
		return nil
	},
}

var productsImportCmd = &cobra.Command{
	Use:   "import <file-or-dir>",
	Short: "Append rows from other CSV files",
	Long: `Reads a CSV file, or every *.csv file under a directory, and appends its
rows to the product table. Rows whose id already exists are skipped. Rows
without an id get new ids.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return err
		}

		files, err := fileingest.DiscoverCSVFiles(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to find CSV files: %w", err)
		}

		var rows []models.Record
		for _, f := range files {
			src, err := csvstore.New(f.Path)
			if err != nil {
				return err
			}
			if binary, _ := util.IsLikelyBinary(f.Path); binary {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s: %s\n", color.YellowString("SKIP"), f.Path)
				continue
			}
			records, err := src.LoadAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", f.Path, err)
			}
			rows = append(rows, records...)
		}

		res, err := appInstance.ProductService.Import(ctx, rows)
		if err != nil {
			return fmt.Errorf("failed to import products: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d rows from %d files (%d duplicates, %d invalid)\n",
			color.GreenString("Imported"), res.Added, len(files), res.Duplicates, res.Invalid)
		return nil
	},
}

func printRecord(cmd *cobra.Command, rec models.Record) {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, k := range keys {
		table.Append([]string{k, rec[k]})
	}
	table.Render()
}

func init() {
	f := productsListCmd.Flags()
	f.Int("page", query.DefaultPage, "Page number, starting at 1")
	f.Int("rows", 0, "Rows per page (default from config)")
	f.Bool("all", false, "Show every matching row")
	f.String("sort-field", "", "Logical field or column header to sort by")
	f.String("sort-order", query.OrderAsc, "Sort order: asc or desc")
	f.String(models.FieldCategory, "", "Filter by category substring")
	f.String(models.FieldBrand, "", "Filter by brand substring")
	f.String(models.FieldProduct, "", "Filter by product name substring")
	f.String(models.FieldCreatedBy, "", "Filter by creator substring")

	for _, c := range []*cobra.Command{productsAddCmd, productsUpdateCmd} {
		c.Flags().StringArray("set", nil, `Column assignment "Header=value" (repeatable)`)
		_ = c.MarkFlagRequired("set")
	}

	productsCmd.AddCommand(productsListCmd, productsGetCmd, productsAddCmd, productsUpdateCmd, productsDeleteCmd, productsImportCmd)
	rootCmd.AddCommand(productsCmd)
}
