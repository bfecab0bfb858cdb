package cmd

import (
	"github.com/joshnies/pocket/lib/account"
	"github.com/joshnies/pocket/lib/console"
	"github.com/joshnies/pocket/models"
	"github.com/urfave/cli/v2"
)

// Register a new account, then verify the OTP sent to its email.
func Register(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	var req models.RegisterRequest
	if req.Email, err = flagOrPrompt(c, "email", "Email"); err != nil {
		return err
	}
	if req.FirstName, err = flagOrPrompt(c, "first-name", "First name"); err != nil {
		return err
	}
	if req.LastName, err = flagOrPrompt(c, "last-name", "Last name"); err != nil {
		return err
	}
	if req.Password, err = promptSecret(c, "Password"); err != nil {
		return err
	}

	svc := account.NewService(s.client, s.creds)
	if err = svc.Register(c.Context, req); err != nil {
		return fail(err, "Failed to register. Please try again.")
	}

	console.Info("OTP sent. Please check your email for the OTP.")
	return verifyOTP(c, svc, req.Email)
}

// Log in with a one-time passcode.
// Requests a new OTP unless one was given with `--otp`.
// With `--google`, signs in with Google instead.
func LogIn(c *cli.Context) error {
	if c.Bool("google") {
		return GoogleLogIn(c)
	}

	s, err := newSession(c)
	if err != nil {
		return err
	}

	email, err := flagOrPrompt(c, "email", "Email")
	if err != nil {
		return err
	}

	svc := account.NewService(s.client, s.creds)

	if c.String("otp") == "" {
		if err = svc.RequestOTP(c.Context, email); err != nil {
			return fail(err, "Failed to send OTP. Please try again.")
		}
		console.Info("OTP sent. Please check your email for the OTP.")
	}

	return verifyOTP(c, svc, email)
}

// Request a new OTP without verifying it.
func RequestOTP(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	email, err := flagOrPrompt(c, "email", "Email")
	if err != nil {
		return err
	}

	if err = account.NewService(s.client, s.creds).RequestOTP(c.Context, email); err != nil {
		return fail(err, "Failed to send OTP. Please try again.")
	}

	console.Info("OTP sent. Please check your email for the OTP.")
	return nil
}

func verifyOTP(c *cli.Context, svc *account.Service, email string) error {
	otp, err := flagOrPrompt(c, "otp", "OTP")
	if err != nil {
		return err
	}

	session, err := svc.VerifyOTP(c.Context, email, otp)
	if err != nil {
		return fail(err, "Failed to verify OTP. Please try again.")
	}

	console.Verbose("User ID: %s", session.UserID)
	console.Success("OTP verified. You are now logged in.")
	return nil
}
