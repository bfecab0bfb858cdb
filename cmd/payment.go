package cmd

import (
	"github.com/joshnies/pocket/lib/console"
	"github.com/joshnies/pocket/lib/payments"
	"github.com/urfave/cli/v2"
)

// Save payment information.
func SavePaymentInfo(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	form := payments.Form{
		UPIID:          c.String("upi"),
		CardNumber:     c.String("card"),
		ExpiryDate:     c.String("expiry"),
		CVV:            c.String("cvv"),
		CardholderName: c.String("name"),
	}
	if form.CVV == "" {
		if form.CVV, err = promptSecret(c, "CVV"); err != nil {
			return err
		}
	}

	if err = payments.NewService(s.client, s.creds).SavePaymentInfo(c.Context, form); err != nil {
		return fail(err, "An error occurred while saving the payment information.")
	}

	console.Success("Payment information saved successfully.")
	return nil
}
