// Package api dispatches requests to the Pocket API.
//
// Every request goes through the same steps: resolve the endpoint key, attach
// the bearer token when the endpoint requires one, send, parse the JSON
// response and normalize failures into a single *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/joshnies/pocket/constants"
	"github.com/joshnies/pocket/lib/console"
	"github.com/joshnies/pocket/lib/endpoints"
)

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource returns the current auth token, or an empty string if there is none.
type TokenSource interface {
	Token(ctx context.Context) string
}

// Dispatcher is implemented by *Client.
type Dispatcher interface {
	Call(ctx context.Context, req Request) (Response, error)
	Upload(ctx context.Context, key endpoints.Key, method string, body MultipartBody) (Response, error)
}

type Request struct {
	Key endpoints.Key
	// HTTP method. Defaults to GET.
	Method string
	// Serialized as JSON when non-nil.
	Body any
	// Extra headers. Content-Type and Authorization set by the client take precedence.
	Headers map[string]string
}

// Request body as sent on the wire.
type payload struct {
	body        io.Reader
	contentType string
	// Set when the length can't be inferred from body.
	length int64
}

type Client struct {
	baseURL        string
	tokens         TokenSource
	httpClient     Doer
	uploadProgress bool
}

type Option func(*Client)

// Use the given HTTP client instead of a default *http.Client.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		c.httpClient = d
	}
}

// Show a progress bar while sending multipart uploads.
func WithUploadProgress(enabled bool) Option {
	return func(c *Client) {
		c.uploadProgress = enabled
	}
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Call sends a JSON request to the endpoint registered under req.Key.
func (c *Client) Call(ctx context.Context, req Request) (Response, error) {
	t, err := c.resolve(ctx, req.Key)
	if err != nil {
		return Response{}, err
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return Response{}, &Error{Kind: ErrInvalidBody, Endpoint: req.Key, Err: err}
		}
		body = bytes.NewReader(b)
	}

	return c.send(ctx, t, req.Method, payload{body: body, contentType: "application/json"}, req.Headers)
}

// Resolved endpoint plus the token to send with it.
type target struct {
	endpoint endpoints.Endpoint
	token    string
}

// Resolve the endpoint and read the token it needs.
// Nothing is encoded or sent until both succeed.
func (c *Client) resolve(ctx context.Context, key endpoints.Key) (target, error) {
	e, err := endpoints.Resolve(key)
	if err != nil {
		return target{}, &Error{Kind: ErrUnknownEndpoint, Endpoint: key, Err: err}
	}

	t := target{endpoint: e}
	if e.RequiresAuth {
		t.token = c.tokens.Token(ctx)
		if t.token == "" {
			return target{}, &Error{Kind: ErrMissingCredential, Endpoint: key}
		}
	}

	return t, nil
}

func (c *Client) endpointURL(e endpoints.Endpoint) string {
	return c.baseURL + e.Path
}

func (c *Client) send(
	ctx context.Context,
	t target,
	method string,
	p payload,
	headers map[string]string,
) (Response, error) {
	e, key := t.endpoint, t.endpoint.Key

	if method == "" {
		method = http.MethodGet
	}

	url := c.endpointURL(e)
	console.Verbose("Request URL: %s %s", method, url)

	req, err := http.NewRequestWithContext(ctx, method, url, p.body)
	if err != nil {
		return Response{}, &Error{Kind: ErrTransport, Endpoint: key, Err: err}
	}
	if p.length > 0 {
		req.ContentLength = p.length
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", p.contentType)
	if e.RequiresAuth {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, &Error{Kind: ErrTransport, Endpoint: key, Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return Response{}, &Error{Kind: ErrTransport, Endpoint: key, Err: err}
	}

	ok := res.StatusCode >= 200 && res.StatusCode < 300

	data, err := parseBody(raw)
	if err != nil {
		if !ok {
			console.Verbose("Server response (status %d): %s", res.StatusCode, string(raw))
		}
		return Response{}, &Error{Kind: ErrMalformedResponse, Endpoint: key, Status: res.StatusCode, Err: err}
	}

	if !ok {
		console.Verbose("Server response (status %d): %s", res.StatusCode, string(data))
		return Response{}, &Error{
			Kind:     ErrServer,
			Endpoint: key,
			Status:   res.StatusCode,
			Message:  serverMessage(data),
		}
	}

	return Response{Status: res.StatusCode, Body: data}, nil
}

// Parse a response body as JSON. An empty body reads as null.
func parseBody(raw []byte) (json.RawMessage, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return json.RawMessage("null"), nil
	}

	var data json.RawMessage
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}

	return data, nil
}

// Returns the "message" field of an error response, or a generic message.
func serverMessage(data json.RawMessage) string {
	var body struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if msg, ok := body.Message.(string); ok && msg != "" {
			return msg
		}
	}

	return constants.ErrMsgServerFallback
}
