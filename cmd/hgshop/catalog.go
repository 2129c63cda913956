package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/nikolayk812/hgshop/internal/catalog"
	"github.com/nikolayk812/hgshop/internal/domain"
	"github.com/nikolayk812/hgshop/internal/port"
	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Validate and print the product catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog(cfg.Shop.CatalogPath)
			if err != nil {
				return err
			}

			tag, err := cfg.Shop.Tag()
			if err != nil {
				return err
			}
			formatter := domain.NewMoneyFormatter(tag)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPRICE\tIMAGE")
			for _, p := range c.ListProducts() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Title, formatter.Format(p.Price), p.ImageRef)
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("w.Flush: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\ncurrency: %s, sizes: %d, colors: %d\n",
				c.Currency(), len(c.Sizes()), len(c.Colors()))
			return nil
		},
	}
}

func loadCatalog(path string) (port.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}

	c, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog.LoadFile: %w", err)
	}
	return c, nil
}
