package main

import (
	"fmt"
	"os"
	"strconv"

	"inventory-backend/internal/models"
	"inventory-backend/internal/view"

	"github.com/spf13/cobra"
)

var (
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Print the products, optionally filtered by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := callContext(cmd)
			defer cancel()
			if err := inv.Load(ctx); err != nil {
				return err
			}
			filter, _ := cmd.Flags().GetString("filter")
			inv.Filter(filter)
			return inv.Render(cmd.OutOrStdout())
		},
	}

	createCmd = &cobra.Command{
		Use:   "create",
		Short: "Create a product; the server assigns its id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := callContext(cmd)
			defer cancel()
			rec, err := inv.Save(ctx, applyProductFlags(cmd, &models.ProductInput{}))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d\n", rec.ID)
			return view.RenderTable(cmd.OutOrStdout(), []models.ProductRecord{rec})
		},
	}

	updateCmd = &cobra.Command{
		Use:   "update [id]",
		Short: "Change a record; fields without a flag keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("id must be a number: %w", err)
			}
			ctx, cancel := callContext(cmd)
			defer cancel()
			if err := inv.Load(ctx); err != nil {
				return err
			}
			current, ok := inv.State().Products[id]
			if !ok {
				return fmt.Errorf("product %d not found", id)
			}
			in := applyProductFlags(cmd, models.InputFromProduct(current.Product))
			rec, err := inv.Edit(ctx, id, in)
			if err != nil {
				return err
			}
			return view.RenderTable(cmd.OutOrStdout(), []models.ProductRecord{rec})
		},
	}

	deleteCmd = &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("id must be a number: %w", err)
			}
			ctx, cancel := callContext(cmd)
			defer cancel()
			if err := inv.Destroy(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d\n", id)
			return nil
		},
	}

	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Write the (filtered) products to an .xlsx file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := callContext(cmd)
			defer cancel()
			if err := inv.Load(ctx); err != nil {
				return err
			}
			filter, _ := cmd.Flags().GetString("filter")
			inv.Filter(filter)

			out, _ := cmd.Flags().GetString("out")
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			rows := inv.Visible()
			if err := view.ExportXLSX(f, rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d products written to %s\n", len(rows), out)
			return f.Close()
		},
	}

	shellCmd = &cobra.Command{
		Use:   "shell",
		Short: "Interactive session: load once, filter locally, create and delete",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return view.RunShell(cmd.Context(), inv, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
)

func init() {
	listCmd.Flags().String("filter", "", "show only names containing this text (case-sensitive)")
	exportCmd.Flags().String("filter", "", "export only names containing this text (case-sensitive)")
	exportCmd.Flags().String("out", "products.xlsx", "output file")

	for _, c := range []*cobra.Command{createCmd, updateCmd} {
		c.Flags().String("name", "", "product name")
		c.Flags().String("category", "", "product category")
		c.Flags().Float64("price", 0, "product price")
		c.Flags().Bool("instock", true, "whether the product is in stock")
		c.Flags().Int64("productid", 0, "product id, defaults to the record id")
	}
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("category")
	_ = createCmd.MarkFlagRequired("price")
}

// applyProductFlags sets the fields of in whose flags were given.
func applyProductFlags(cmd *cobra.Command, in *models.ProductInput) *models.ProductInput {
	flags := cmd.Flags()
	if flags.Changed("name") {
		v, _ := flags.GetString("name")
		in.Name = &v
	}
	if flags.Changed("category") {
		v, _ := flags.GetString("category")
		in.Category = &v
	}
	if flags.Changed("price") {
		v, _ := flags.GetFloat64("price")
		in.Price = &v
	}
	if flags.Changed("instock") {
		v, _ := flags.GetBool("instock")
		in.InStock = &v
	}
	if flags.Changed("productid") {
		v, _ := flags.GetInt64("productid")
		in.ProductID = &v
	}
	return in
}
