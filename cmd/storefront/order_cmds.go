package main

import (
	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-storefront-client/models"
)

func newOrdersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"order"},
		Short:   "Check out and track orders",
	}

	var page, limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List your orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.client.GetOrders(cmd.Context(), page, limit)
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}
	addPaging(list, &page, &limit, models.DefaultOrderLimit)

	get := &cobra.Command{
		Use:   "get <order-id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.client.GetOrder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}

	var email string
	var shipping models.Shipping
	create := &cobra.Command{
		Use:   "create",
		Short: "Turn the cart into an order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.client.CreateOrder(cmd.Context(), email, shipping)
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}
	create.Flags().StringVar(&email, "email", "", "contact email, required for guests")
	create.Flags().StringVar(&shipping.Name, "name", "", "recipient name")
	create.Flags().StringVar(&shipping.Phone, "phone", "", "recipient phone")
	create.Flags().StringVar(&shipping.Email, "shipping-email", "", "recipient email")
	create.Flags().StringVar(&shipping.City, "city", "", "city")
	create.Flags().StringVar(&shipping.Address, "address", "", "street address")
	create.Flags().StringVar(&shipping.Address2, "address2", "", "apartment, suite or unit")
	create.Flags().StringVar(&shipping.PostalCode, "postal-code", "", "postal code")
	create.Flags().StringVar(&shipping.Notes, "notes", "", "delivery notes")

	var payment models.PaymentRequest
	pay := &cobra.Command{
		Use:   "pay <order-id>",
		Short: "Pay for an order by card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.client.ProcessPayment(cmd.Context(), args[0], payment)
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}
	pay.Flags().StringVar(&payment.CardNumber, "card-number", "", "card number")
	pay.Flags().StringVar(&payment.CardHolder, "card-holder", "", "name on the card")
	pay.Flags().IntVar(&payment.ExpiryMonth, "expiry-month", 0, "expiry month (1-12)")
	pay.Flags().IntVar(&payment.ExpiryYear, "expiry-year", 0, "expiry year, e.g. 2030")
	pay.Flags().StringVar(&payment.CVV, "cvv", "", "card verification value")
	for _, name := range []string{"card-number", "card-holder", "expiry-month", "expiry-year", "cvv"} {
		_ = pay.MarkFlagRequired(name)
	}

	confirmation := &cobra.Command{
		Use:   "confirmation <order-id>",
		Short: "Show the confirmation of a paid order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.client.GetOrderConfirmation(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(out)
		},
	}

	cmd.AddCommand(list, get, create, pay, confirmation)
	return cmd
}
