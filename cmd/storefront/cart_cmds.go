package main

import (
	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-storefront-client/models"
	"github.com/jrsteele09/go-storefront-client/session"
)

func newCartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage your cart, signed in or as a guest",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.client.GetCart(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}

	var quantity int
	var size string
	add := &cobra.Command{
		Use:   "add [product-id]",
		Short: "Add a product to the cart, defaulting to the selected product",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := a.productArg(args)
			if err != nil {
				return err
			}
			out, err := a.client.AddItemToCart(cmd.Context(), productID, quantity, size)
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}
	add.Flags().IntVarP(&quantity, "quantity", "q", 1, "quantity")
	add.Flags().StringVar(&size, "size", "", "size")

	update := &cobra.Command{
		Use:   "update <item-id>",
		Short: "Change the quantity or size of a cart item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.client.UpdateCartItem(cmd.Context(), args[0], quantity, size)
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}
	update.Flags().IntVarP(&quantity, "quantity", "q", 1, "quantity")
	update.Flags().StringVar(&size, "size", "", "size")

	remove := &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove an item from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.client.RemoveItemFromCart(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}

	clearCart := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.client.ClearCart(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}

	cmd.AddCommand(show, add, update, remove, clearCart)
	return cmd
}

// productArg returns the explicit product id, else the selected product's.
func (a *app) productArg(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	var product models.Product
	found, err := session.LoadSelectedProduct(a.store, &product)
	if err != nil {
		return "", err
	}
	if !found || product.ID == "" {
		return "", errNoSelectedProduct
	}
	return product.ID, nil
}
