// Package contact sends messages through the contact form.
package contact

import (
	"context"
	"net/http"

	"github.com/joshnies/pocket/lib/api"
	"github.com/joshnies/pocket/lib/endpoints"
	"github.com/joshnies/pocket/lib/validate"
	"github.com/joshnies/pocket/models"
)

type Service struct {
	api api.Dispatcher
}

func NewService(d api.Dispatcher) *Service {
	return &Service{api: d}
}

func (s *Service) Send(ctx context.Context, msg models.ContactMessage) error {
	err := validate.Required("All fields are required.",
		validate.Field{Name: "name", Value: msg.Name},
		validate.Field{Name: "email", Value: msg.Email},
		validate.Field{Name: "message", Value: msg.Message},
	)
	if err != nil {
		return err
	}
	if err = validate.Email(msg.Email); err != nil {
		return err
	}

	res, err := s.api.Call(ctx, api.Request{Key: endpoints.ContactUs, Method: http.MethodPost, Body: msg})
	if err != nil {
		return err
	}

	return res.ExpectOK()
}
