package cmd

import (
	"fmt"

	"github.com/TwiN/go-color"
	"github.com/joshnies/pocket/lib/console"
	"github.com/joshnies/pocket/lib/payments"
	"github.com/joshnies/pocket/lib/util"
	"github.com/urfave/cli/v2"
)

// List the user's transactions.
func ListTransactions(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	txs, err := payments.NewService(s.client, s.creds).Transactions(c.Context)
	if err != nil {
		return fail(err, "Failed to fetch transactions. Please try again.")
	}

	if len(txs) == 0 {
		console.Info("No transactions found.")
		return nil
	}

	for _, tx := range txs {
		fmt.Fprintf(console.Out, "%s  %s  %s  %s\n",
			color.Ize(color.Gray, payments.FormatDate(tx.Date)),
			color.Ize(color.Cyan, "To: "+tx.ToUser),
			color.Ize(color.Green, util.FormatAmount(tx.Amount)),
			color.Ize(color.Gray, fmt.Sprintf("%s (%s)", tx.PaymentMethod.Type, tx.PaymentMethod.ID)),
		)
	}

	return nil
}
