// Package oauth runs the OAuth 2.0 authorization-code flow with PKCE for
// command-line sign-in: the user signs in in their browser, which redirects
// back to a loopback server run by the CLI.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"github.com/grokify/go-pkce"
	"github.com/joshnies/pocket/lib/console"
	"github.com/lucsky/cuid"
)

// Path the browser is redirected to after signing in.
const CallbackPath = "/callback"

var (
	ErrStateMismatch = errors.New("state mismatch")
	ErrDenied        = errors.New("sign-in cancelled")
	ErrMissingCode   = errors.New("missing authorization code")
)

type Config struct {
	ClientID string
	// Only needed for clients registered with a secret.
	ClientSecret string
	AuthURL      string
	TokenURL     string
	Scopes       []string
}

// Tokens returned by the token endpoint.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	Scope        string `json:"scope,omitempty"`
	// Seconds until the access token expires.
	ExpiresIn int `json:"expires_in,omitempty"`
}

// Result of the browser callback.
type Result struct {
	Tokens Tokens
	Err    error
}

// Flow is a single sign-in attempt.
type Flow struct {
	cfg         Config
	redirectURI string
	verifier    string
	challenge   string
	state       string
	httpClient  *http.Client
}

// NewFlow creates a sign-in attempt with a fresh PKCE verifier and state.
func NewFlow(cfg Config, redirectURI string) (*Flow, error) {
	verifier, err := pkce.NewCodeVerifierWithLength(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate code verifier: %w", err)
	}

	return &Flow{
		cfg:         cfg,
		redirectURI: redirectURI,
		verifier:    verifier,
		challenge:   pkce.CodeChallengeS256(verifier),
		state:       cuid.New(),
		httpClient:  &http.Client{},
	}, nil
}

func (f *Flow) State() string {
	return f.state
}

// AuthURL returns the URL the user signs in at.
func (f *Flow) AuthURL() string {
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", f.cfg.ClientID)
	q.Set("redirect_uri", f.redirectURI)
	q.Set("scope", strings.Join(f.cfg.Scopes, " "))
	q.Set("state", f.state)
	q.Set("code_challenge", f.challenge)
	q.Set("code_challenge_method", "S256")
	q.Set("access_type", "offline")

	return f.cfg.AuthURL + "?" + q.Encode()
}

// CheckCallback validates the query of a redirect and returns its authorization code.
func (f *Flow) CheckCallback(q url.Values) (string, error) {
	if q.Get("state") != f.state {
		console.Verbose("Client state: %s", q.Get("state"))
		console.Verbose("Server state: %s", f.state)
		return "", ErrStateMismatch
	}

	if resErr := q.Get("error"); resErr != "" {
		console.Verbose("Received error from authentication callback: %s; %s", resErr, q.Get("error_description"))
		if resErr == "access_denied" {
			return "", ErrDenied
		}
		return "", fmt.Errorf("authorization failed: %s", resErr)
	}

	code := q.Get("code")
	if code == "" {
		return "", ErrMissingCode
	}

	return code, nil
}

// Exchange trades an authorization code for tokens.
func (f *Flow) Exchange(ctx context.Context, code string) (Tokens, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", f.cfg.ClientID)
	if f.cfg.ClientSecret != "" {
		form.Set("client_secret", f.cfg.ClientSecret)
	}
	form.Set("code", code)
	form.Set("code_verifier", f.verifier)
	form.Set("redirect_uri", f.redirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return Tokens{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := f.httpClient.Do(req)
	if err != nil {
		return Tokens{}, fmt.Errorf("error while retrieving access token: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var body struct {
			Error            string `json:"error"`
			ErrorDescription string `json:"error_description"`
		}
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			console.Verbose("Error while parsing response body: %v", err)
		}
		return Tokens{}, fmt.Errorf("error while retrieving access token: %s %s %s", res.Status, body.Error, body.ErrorDescription)
	}

	var tokens Tokens
	if err := json.NewDecoder(res.Body).Decode(&tokens); err != nil {
		return Tokens{}, fmt.Errorf("error while parsing access token response: %w", err)
	}
	if tokens.AccessToken == "" {
		return Tokens{}, errors.New("access token not found in response")
	}

	return tokens, nil
}

// Handler serves the redirect at CallbackPath.
// The outcome of the first callback is sent on results, which needs room for one value.
// Later callbacks are answered but not sent.
func (f *Flow) Handler(results chan<- Result) http.Handler {
	var once sync.Once

	r := mux.NewRouter()
	r.HandleFunc(CallbackPath, func(w http.ResponseWriter, r *http.Request) {
		console.Verbose("Received authentication callback request. Validating...")

		code, err := f.CheckCallback(r.URL.Query())

		var tokens Tokens
		if err == nil {
			tokens, err = f.Exchange(r.Context(), code)
		}

		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintln(w, "Sign-in failed. You can close this window.")
		} else {
			fmt.Fprintln(w, "Signed in. You can close this window.")
		}

		once.Do(func() {
			results <- Result{Tokens: tokens, Err: err}
		})
	}).Methods(http.MethodGet)

	return r
}
