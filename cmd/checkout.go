package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/order/pkg/request"
	orderService "github.com/Alturino/storefront/order/service"
)

func newCheckoutCommand() *cobra.Command {
	var form request.Checkout

	command := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the current cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			app, err := newApp(c)
			if err != nil {
				return err
			}
			defer app.close(c)

			checkout := orderService.NewCheckoutService(app.cart, app.users, app.notifier)
			if form.Email == "" {
				form.Email = checkout.PrefillEmail(c)
			}

			order, err := checkout.PlaceOrder(c, form)
			if err != nil {
				if errors.Is(err, inErrors.ErrEmptyCart) {
					fmt.Fprintln(cmd.OutOrStdout(), "cart is empty, nothing to order")
					return nil
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "order %s placed, total $%s\n",
				order.Id, order.Total.StringFixed(2))
			return nil
		},
	}
	command.Flags().StringVar(&form.Username, "name", "", "name on the order")
	command.Flags().StringVar(&form.Email, "email", "", "email, defaults to the logged in user's")
	command.Flags().StringVar(&form.Address, "address", "", "shipping address")
	command.Flags().StringVar(&form.CardNumber, "card", "", "card number")
	command.Flags().StringVar(&form.CardExpiry, "expiry", "", "card expiry as MM/YY")
	command.Flags().StringVar(&form.CardCvv, "cvv", "", "card cvv")
	_ = command.MarkFlagRequired("name")
	_ = command.MarkFlagRequired("address")
	_ = command.MarkFlagRequired("card")
	_ = command.MarkFlagRequired("expiry")
	_ = command.MarkFlagRequired("cvv")
	return command
}
