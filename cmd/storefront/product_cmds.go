package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-storefront-client/models"
	"github.com/jrsteele09/go-storefront-client/session"
)

var errNoSelectedProduct = errors.New("no product selected, use: products get <id> --select")

func newProductsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "Browse the catalog",
	}

	var (
		storeName, category string
		minPrice, maxPrice  float64
		page, limit         int
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List products, optionally filtered by store, category and price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.client.GetAllProducts(cmd.Context(), storeName, category, minPrice, maxPrice, page, limit)
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}
	list.Flags().StringVar(&storeName, "store", "", "store name")
	list.Flags().StringVar(&category, "category", "", "category")
	list.Flags().Float64Var(&minPrice, "min-price", 0, "minimum price")
	list.Flags().Float64Var(&maxPrice, "max-price", models.DefaultMaxPrice, "maximum price")
	addPaging(list, &page, &limit, models.DefaultProductLimit)

	byStore := &cobra.Command{
		Use:   "by-store <store-id>",
		Short: "List the products of one store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.client.GetProductsByStore(cmd.Context(), args[0], page, limit)
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}
	addPaging(byStore, &page, &limit, models.DefaultProductLimit)

	byCategory := &cobra.Command{
		Use:   "by-category <category>",
		Short: "List the products of one category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.client.GetProductsByCategory(cmd.Context(), args[0], page, limit)
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}
	addPaging(byCategory, &page, &limit, models.DefaultProductLimit)

	var selectIt bool
	get := &cobra.Command{
		Use:   "get <product-id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.client.GetProductByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out.ImageURL = a.client.ImageURL(out.ImageURL)
			if selectIt {
				if err := session.SaveSelectedProduct(a.store, out); err != nil {
					return err
				}
			}
			return a.print(out)
		},
	}
	get.Flags().BoolVar(&selectIt, "select", false, "remember the product for later commands")

	selected := &cobra.Command{
		Use:   "selected",
		Short: "Show the remembered product",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			var product models.Product
			found, err := session.LoadSelectedProduct(a.store, &product)
			if err != nil {
				return err
			}
			if !found {
				return errNoSelectedProduct
			}
			return a.print(product)
		},
	}

	cmd.AddCommand(list, byStore, byCategory, get, selected)
	return cmd
}

func addPaging(cmd *cobra.Command, page, limit *int, defaultLimit int) {
	cmd.Flags().IntVar(page, "page", 1, "page number")
	cmd.Flags().IntVar(limit, "limit", defaultLimit, "page size")
}
