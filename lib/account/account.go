// Package account handles registration, OTP sign-in and the user profile.
package account

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/joshnies/pocket/lib/api"
	"github.com/joshnies/pocket/lib/credstore"
	"github.com/joshnies/pocket/lib/endpoints"
	"github.com/joshnies/pocket/lib/validate"
	"github.com/joshnies/pocket/models"
)

var ErrNoSession = errors.New("no session token returned")

type Service struct {
	api   api.Dispatcher
	creds *credstore.Credentials
}

func NewService(d api.Dispatcher, creds *credstore.Credentials) *Service {
	return &Service{api: d, creds: creds}
}

// Register a new user, then request an OTP for their email.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) error {
	err := validate.Required("All fields are required.",
		validate.Field{Name: "email", Value: req.Email},
		validate.Field{Name: "firstName", Value: req.FirstName},
		validate.Field{Name: "lastName", Value: req.LastName},
		validate.Field{Name: "password", Value: req.Password},
	)
	if err != nil {
		return err
	}
	if err = validate.Email(req.Email); err != nil {
		return err
	}

	if err = s.postStatus(ctx, endpoints.AuthRegister, req, "Registration failed."); err != nil {
		return err
	}

	return s.RequestOTP(ctx, req.Email)
}

// Request a one-time passcode to be sent to email.
func (s *Service) RequestOTP(ctx context.Context, email string) error {
	if err := validate.Email(email); err != nil {
		return err
	}

	return s.postStatus(ctx, endpoints.AuthRequestOTP, models.RequestOTPRequest{Email: email}, "Failed to send OTP.")
}

// Verify an OTP and persist the returned session.
func (s *Service) VerifyOTP(ctx context.Context, email string, otp string) (models.Session, error) {
	if err := validate.Email(email); err != nil {
		return models.Session{}, err
	}
	if err := validate.OTP(otp); err != nil {
		return models.Session{}, err
	}

	res, err := s.api.Call(ctx, api.Request{
		Key:    endpoints.AuthVerifyOTP,
		Method: http.MethodPost,
		Body:   models.VerifyOTPRequest{Email: email, OTP: otp},
	})
	if err != nil {
		return models.Session{}, err
	}

	var body models.VerifyOTPResponse
	if err = res.Decode(&body); err != nil {
		return models.Session{}, err
	}
	if !body.Success {
		return models.Session{}, failure(body.Message, "Failed to verify OTP.")
	}
	if body.Data.Token == "" || body.Data.UserID == "" {
		return models.Session{}, ErrNoSession
	}

	if err = s.creds.SetToken(ctx, body.Data.Token); err != nil {
		return models.Session{}, fmt.Errorf("failed to save session: %w", err)
	}
	if err = s.creds.SetUserID(ctx, body.Data.UserID); err != nil {
		return models.Session{}, fmt.Errorf("failed to save session: %w", err)
	}

	return body.Data, nil
}

// POST body to an endpoint answering with {success, message}.
func (s *Service) postStatus(ctx context.Context, key endpoints.Key, body any, fallback string) error {
	res, err := s.api.Call(ctx, api.Request{Key: key, Method: http.MethodPost, Body: body})
	if err != nil {
		return err
	}

	var status models.StatusResponse
	if err = res.Decode(&status); err != nil {
		return err
	}
	if !status.Success {
		return failure(status.Message, fallback)
	}

	return nil
}

func failure(message string, fallback string) error {
	if message == "" {
		message = fallback
	}
	return errors.New(message)
}
