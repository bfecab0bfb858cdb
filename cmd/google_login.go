package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/joshnies/pocket/config"
	"github.com/joshnies/pocket/constants"
	"github.com/joshnies/pocket/lib/console"
	"github.com/joshnies/pocket/lib/oauth"
	"github.com/joshnies/pocket/lib/system"
	"github.com/urfave/cli/v2"
)

// Replaced in tests.
var (
	openBrowser        = system.OpenBrowser
	googleLoginTimeout = 3 * time.Minute
)

var googleScopes = []string{"openid", "email", "profile"}

// Sign in with Google in the browser and print the resulting access token.
func GoogleLogIn(c *cli.Context) error {
	gc := config.I.Google

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", gc.CallbackPort))
	if err != nil {
		console.Verbose("Failed to start callback server: %v", err)
		return console.Error(constants.ErrMsgInternal)
	}

	redirectURI := fmt.Sprintf("http://%s%s", listener.Addr().String(), oauth.CallbackPath)
	flow, err := oauth.NewFlow(oauth.Config{
		ClientID:     gc.ClientID,
		ClientSecret: gc.ClientSecret,
		AuthURL:      gc.AuthURL,
		TokenURL:     gc.TokenURL,
		Scopes:       googleScopes,
	}, redirectURI)
	if err != nil {
		listener.Close()
		console.Verbose("%v", err)
		return console.Error(constants.ErrMsgInternal)
	}

	results := make(chan oauth.Result, 1)
	srv := &http.Server{Handler: flow.Handler(results), ReadHeaderTimeout: 10 * time.Second}
	go srv.Serve(listener)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	authURL := flow.AuthURL()
	console.Info("Opening browser to sign in with Google...")
	console.Info("You can also open this URL:")
	fmt.Fprintln(console.Out, authURL)
	if err = openBrowser(authURL); err != nil {
		console.Warning("Failed to open browser: %v", err)
	}

	timeout := time.NewTimer(googleLoginTimeout)
	defer timeout.Stop()

	select {
	case res := <-results:
		if errors.Is(res.Err, oauth.ErrDenied) {
			return console.Error(constants.ErrMsgAuthCancelled)
		}
		if res.Err != nil {
			console.Verbose("%v", res.Err)
			return console.Error(constants.ErrMsgAuthFailed)
		}

		console.Verbose("Refresh token: %s", res.Tokens.RefreshToken)
		console.Verbose("ID token: %s", res.Tokens.IDToken)
		console.Verbose("Expires in: %d seconds", res.Tokens.ExpiresIn)

		console.Success("Signed in with Google.")
		printField("Access token", res.Tokens.AccessToken)
		return nil
	case <-timeout.C:
		return console.Error("Ending authentication process after %s", googleLoginTimeout)
	case <-c.Context.Done():
		return c.Context.Err()
	}
}
