package cmd

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/joshnies/pocket/config"
	"github.com/joshnies/pocket/constants"
	"github.com/joshnies/pocket/lib/api"
	"github.com/joshnies/pocket/lib/console"
	"github.com/joshnies/pocket/lib/credstore"
	"github.com/joshnies/pocket/lib/validate"
	"github.com/urfave/cli/v2"
)

// Opens the credential store configured for this run.
// Replaced in tests.
var openStore = func(ctx context.Context) (credstore.Store, error) {
	return credstore.Open(ctx, config.I.Store)
}

// Dependencies shared by command actions.
type session struct {
	store  credstore.Store
	creds  *credstore.Credentials
	client *api.Client
}

func newSession(c *cli.Context) (*session, error) {
	store, err := openStore(c.Context)
	if err != nil {
		console.Verbose("Error while opening credential store: %v", err)
		return nil, console.Error(constants.ErrMsgInternal)
	}

	creds := credstore.NewCredentials(store)
	client := api.New(config.I.API.Host, creds, api.WithUploadProgress(config.I.UploadProgress))

	return &session{store: store, creds: creds, client: client}, nil
}

// Convert an error returned by a service into the error shown to the user.
// Input problems are shown as-is; everything else is logged verbosely and replaced by message.
// The server message of a 4xx response is shown below message.
func fail(err error, message string) error {
	var vErr *validate.ValidationError
	var vErrs validate.Errors

	switch {
	case errors.As(err, &vErr):
		return console.Error("Invalid input: %s", vErr.Message)
	case errors.As(err, &vErrs):
		msgs := make([]string, len(vErrs))
		for i, e := range vErrs {
			msgs[i] = "  " + e.Message
		}
		return console.Error("Validation failed:\n%s", strings.Join(msgs, "\n"))
	case errors.Is(err, api.ErrMissingCredential):
		return console.Error(constants.ErrMsgNotAuthenticated)
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Kind == api.ErrServer {
		console.Verbose("Error from %s (status %d): %s", apiErr.Endpoint, apiErr.Status, apiErr.Message)

		// Client errors carry a message meant for the user
		if apiErr.Status < http.StatusInternalServerError {
			return console.Error("%s\n%s", message, api.Message(err))
		}
		return console.Error(message)
	}

	console.Verbose("Error: %v", err)
	return console.Error(message)
}
