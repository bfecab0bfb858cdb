package cmd

import (
	"fmt"
	"time"

	"github.com/TwiN/go-color"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joshnies/pocket/constants"
	"github.com/joshnies/pocket/lib/console"
	"github.com/urfave/cli/v2"
)

// Print authentication state.
func PrintAuthState(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	token := s.creds.Token(c.Context)
	if token == "" {
		return console.Error(constants.ErrMsgNotAuthenticated)
	}

	printField("Auth token", token)
	if userID := s.creds.UserID(c.Context); userID != "" {
		printField("User ID", userID)
	}

	// Tokens are opaque to the client, but JWT claims are worth showing when present
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		console.Verbose("Token is not a JWT: %v", err)
		return nil
	}

	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		printField("Subject", sub)
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		printField("Issued at", iat.Local().Format(constants.TimeFormat))
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expires := exp.Local().Format(constants.TimeFormat)
		if exp.Before(time.Now()) {
			expires += color.Ize(color.Red, " (expired)")
		}
		printField("Expires at", expires)
	}

	return nil
}

func printField(name string, value string) {
	fmt.Fprintln(console.Out, color.Ize(color.Cyan, name+": ")+color.Ize(color.Gray, value))
}
