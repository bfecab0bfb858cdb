// Package payments saves payment details and lists past transactions.
package payments

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/joshnies/pocket/constants"
	"github.com/joshnies/pocket/lib/api"
	"github.com/joshnies/pocket/lib/credstore"
	"github.com/joshnies/pocket/lib/endpoints"
	"github.com/joshnies/pocket/lib/validate"
	"github.com/joshnies/pocket/models"
)

type Form struct {
	UPIID          string
	CardNumber     string
	ExpiryDate     string
	CVV            string
	CardholderName string
}

type Service struct {
	api   api.Dispatcher
	creds *credstore.Credentials
	// Clock used for expiry checks.
	now func() time.Time
}

func NewService(d api.Dispatcher, creds *credstore.Credentials) *Service {
	return &Service{api: d, creds: creds, now: time.Now}
}

// Validate checks every field of the form and reports all failures together.
func (s *Service) Validate(f Form) error {
	var errs validate.Errors

	checks := []error{
		validate.UPIID(f.UPIID),
		validate.CardNumber(f.CardNumber),
		validate.ExpiryDate(f.ExpiryDate, s.now()),
		validate.CVV(f.CVV),
		validate.Required("Cardholder name cannot be empty.", validate.Field{Name: "cardholderName", Value: f.CardholderName}),
	}
	for _, err := range checks {
		if vErr, ok := err.(*validate.ValidationError); ok {
			errs = append(errs, vErr)
		}
	}

	return errs.OrNil()
}

// SavePaymentInfo stores payment details for the logged in user.
func (s *Service) SavePaymentInfo(ctx context.Context, f Form) error {
	if err := s.Validate(f); err != nil {
		return err
	}

	req := models.PaymentInfoRequest{
		UserID: s.creds.UserID(ctx),
		UPIID:  f.UPIID,
		CardInfo: models.CardInfo{
			CardNumber:     f.CardNumber,
			ExpiryDate:     f.ExpiryDate,
			CVV:            f.CVV,
			CardholderName: f.CardholderName,
		},
	}

	res, err := s.api.Call(ctx, api.Request{Key: endpoints.PaymentInfo, Method: http.MethodPost, Body: req})
	if err != nil {
		return err
	}

	return res.ExpectOK()
}

func (s *Service) Transactions(ctx context.Context) ([]models.Transaction, error) {
	res, err := s.api.Call(ctx, api.Request{Key: endpoints.GetTransaction})
	if err != nil {
		return nil, err
	}

	var body models.TransactionsResponse
	if err = res.Decode(&body); err != nil {
		return nil, err
	}

	return body.Transactions, nil
}

// FormatDate renders a transaction date as dd/mm/yyyy.
// Dates that can't be parsed are returned unchanged.
func FormatDate(date string) string {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, strings.TrimSpace(date)); err == nil {
			return t.Format(constants.DateFormat)
		}
	}

	return date
}
