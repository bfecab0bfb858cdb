package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/gorilla/mux"
	"github.com/joshnies/pocket/lib/credstore"
	"github.com/joshnies/pocket/lib/endpoints"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Counts requests before handing them to the wrapped client.
type countingDoer struct {
	calls atomic.Int32
	next  Doer
}

func (d *countingDoer) Do(req *http.Request) (*http.Response, error) {
	d.calls.Add(1)
	return d.next.Do(req)
}

// Token source that records whether it was read.
type fakeTokens struct {
	token string
	reads atomic.Int32
}

func (f *fakeTokens) Token(context.Context) string {
	f.reads.Add(1)
	return f.token
}

func newTestClient(t *testing.T, router http.Handler, tokens TokenSource, opts ...Option) (*Client, *countingDoer) {
	t.Helper()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	doer := &countingDoer{next: srv.Client()}
	opts = append([]Option{WithHTTPClient(doer)}, opts...)
	return New(srv.URL+"/", tokens, opts...), doer
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

func TestCall_UnknownEndpoint(t *testing.T) {
	client, doer := newTestClient(t, mux.NewRouter(), &fakeTokens{token: "abc123"})

	_, err := client.Call(context.Background(), Request{Key: "launchRockets"})
	require.ErrorIs(t, err, ErrUnknownEndpoint)
	assert.ErrorIs(t, err, endpoints.ErrNotFound)
	assert.Contains(t, err.Error(), "launchRockets")
	assert.Equal(t, int32(0), doer.calls.Load())
}

func TestCall_EndpointCheckedBeforeBody(t *testing.T) {
	tokens := &fakeTokens{}
	client, doer := newTestClient(t, mux.NewRouter(), tokens)
	ctx := context.Background()

	_, err := client.Call(ctx, Request{Key: "launchRockets", Body: make(chan int)})
	require.ErrorIs(t, err, ErrUnknownEndpoint)

	_, err = client.Call(ctx, Request{Key: endpoints.GetProfile, Body: make(chan int)})
	require.ErrorIs(t, err, ErrMissingCredential)

	tokens.token = "abc123"
	_, err = client.Call(ctx, Request{Key: endpoints.GetProfile, Body: make(chan int)})
	require.ErrorIs(t, err, ErrInvalidBody)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, endpoints.GetProfile, apiErr.Endpoint)
	assert.Equal(t, int32(0), doer.calls.Load())
}

func TestCall_MissingCredential(t *testing.T) {
	authed := []endpoints.Key{}
	for _, key := range endpoints.Keys() {
		e, _ := endpoints.Resolve(key)
		if e.RequiresAuth {
			authed = append(authed, key)
		}
	}
	require.NotEmpty(t, authed)

	for _, key := range authed {
		client, doer := newTestClient(t, mux.NewRouter(), &fakeTokens{})

		_, err := client.Call(context.Background(), Request{Key: key})
		require.ErrorIs(t, err, ErrMissingCredential, key)
		assert.Equal(t, int32(0), doer.calls.Load(), key)
	}
}

func TestCall_PublicEndpointsSkipCredentialStore(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/auth/{action}", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, `{"success":true}`)
	}).Methods(http.MethodPost)

	tokens := &fakeTokens{}
	client, doer := newTestClient(t, r, tokens)

	for _, key := range []endpoints.Key{endpoints.AuthRegister, endpoints.AuthRequestOTP, endpoints.AuthVerifyOTP} {
		_, err := client.Call(context.Background(), Request{Key: key, Method: http.MethodPost, Body: map[string]string{"email": "a@b.co"}})
		require.NoError(t, err, key)
	}

	assert.Equal(t, int32(0), tokens.reads.Load())
	assert.Equal(t, int32(3), doer.calls.Load())
}

func TestCall_AttachesBearerToken(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/profile/get-profile", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		writeJSON(w, http.StatusOK, `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","phone":"0123456789"}`)
	}).Methods(http.MethodGet)

	client, _ := newTestClient(t, r, &fakeTokens{token: "abc123"})

	res, err := client.Call(context.Background(), Request{Key: endpoints.GetProfile})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)

	var profile map[string]string
	require.NoError(t, res.Decode(&profile))
	assert.Equal(t, "Ada", profile["firstName"])
}

func TestCall_HeaderPrecedence(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/favourites", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "en-GB", r.Header.Get("Accept-Language"))
		writeJSON(w, http.StatusOK, `{"favourites":[]}`)
	})

	client, _ := newTestClient(t, r, &fakeTokens{token: "abc123"})

	_, err := client.Call(context.Background(), Request{
		Key: endpoints.GetFavourites,
		Headers: map[string]string{
			"Authorization":   "Bearer forged",
			"Content-Type":    "text/plain",
			"Accept-Language": "en-GB",
		},
	})
	require.NoError(t, err)
}

func TestCall_NoBodyWhenNil(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/items/search", func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		assert.Empty(t, b)
		writeJSON(w, http.StatusOK, `[]`)
	})

	client, _ := newTestClient(t, r, &fakeTokens{token: "abc123"})

	res, err := client.Call(context.Background(), Request{Key: endpoints.ItemsSearch})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(res.Body))
}

func TestCall_ServerErrorMessage(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/profile/get-profile", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"message":"bad token"}`)
	})

	client, _ := newTestClient(t, r, &fakeTokens{token: "abc123"})

	_, err := client.Call(context.Background(), Request{Key: endpoints.GetProfile})
	require.ErrorIs(t, err, ErrServer)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "bad token", apiErr.Message)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "bad token", Message(err))
	assert.Equal(t, "bad token", err.Error())
}

func TestCall_ServerErrorFallbackMessage(t *testing.T) {
	tests := map[string]string{
		"no message":    `{"success":false}`,
		"empty message": `{"message":""}`,
		"array":         `[1,2]`,
		"empty body":    ``,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			r := mux.NewRouter()
			r.HandleFunc("/contact-us", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusInternalServerError, body)
			})

			client, _ := newTestClient(t, r, &fakeTokens{token: "abc123"})

			_, err := client.Call(context.Background(), Request{Key: endpoints.ContactUs, Method: http.MethodPost})
			require.ErrorIs(t, err, ErrServer)
			assert.Equal(t, "Something went wrong", Message(err))
		})
	}
}

func TestCall_MalformedResponse(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/favourites", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "<html>oops</html>")
	})

	client, _ := newTestClient(t, r, &fakeTokens{token: "abc123"})

	_, err := client.Call(context.Background(), Request{Key: endpoints.GetFavourites})
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestCall_TransportError(t *testing.T) {
	srv := httptest.NewServer(mux.NewRouter())
	url := srv.URL
	srv.Close()

	client := New(url, &fakeTokens{token: "abc123"})

	_, err := client.Call(context.Background(), Request{Key: endpoints.GetProfile})
	require.ErrorIs(t, err, ErrTransport)
}

func TestCall_BodyRoundTrip(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/payment/payment-info", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.Copy(w, r.Body)
	}).Methods(http.MethodPost)

	client, _ := newTestClient(t, r, &fakeTokens{token: "abc123"})

	body := map[string]any{
		"userId": "u1",
		"upiId":  "ada@upi",
		"cardInfo": map[string]any{
			"cardNumber":     "4111111111111111",
			"expiryDate":     "12/30",
			"cvv":            "123",
			"cardholderName": "Ada Lovelace",
		},
	}

	res, err := client.Call(context.Background(), Request{Key: endpoints.PaymentInfo, Method: http.MethodPost, Body: body})
	require.NoError(t, err)

	var echoed map[string]any
	require.NoError(t, json.Unmarshal(res.Body, &echoed))
	assert.Equal(t, body, echoed)
}

func TestCall_LoginThenAuthenticatedCall(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/auth/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"token":"t1","_id":"u1"}}`)
	}).Methods(http.MethodPost)
	r.HandleFunc("/profile/get-profile", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer t1", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, `{"firstName":"Ada"}`)
	})

	ctx := context.Background()
	creds := credstore.NewCredentials(credstore.NewMemoryStore())
	client, doer := newTestClient(t, r, creds)

	res, err := client.Call(ctx, Request{
		Key:    endpoints.AuthVerifyOTP,
		Method: http.MethodPost,
		Body:   map[string]string{"email": "ada@example.com", "otp": "123456"},
	})
	require.NoError(t, err)

	var verified struct {
		Data struct {
			Token string `json:"token"`
			ID    string `json:"_id"`
		} `json:"data"`
	}
	require.NoError(t, res.Decode(&verified))
	require.NoError(t, creds.SetToken(ctx, verified.Data.Token))
	require.NoError(t, creds.SetUserID(ctx, verified.Data.ID))
	assert.Equal(t, "u1", creds.UserID(ctx))

	_, err = client.Call(ctx, Request{Key: endpoints.GetProfile})
	require.NoError(t, err)
	assert.Equal(t, int32(2), doer.calls.Load())
}

func TestUpload(t *testing.T) {
	img := filepath.Join(t.TempDir(), "me.jpg")
	require.NoError(t, os.WriteFile(img, []byte("jpeg bytes"), 0644))

	r := mux.NewRouter()
	r.HandleFunc("/profile/update-profile", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc123", r.Header.Get("Authorization"))
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "Ada", r.FormValue("firstName"))

		f, h, err := r.FormFile("image")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		assert.Equal(t, "profile_image.jpg", h.Filename)
		assert.Equal(t, "image/jpeg", h.Header.Get("Content-Type"))
		b, _ := io.ReadAll(f)
		assert.Equal(t, "jpeg bytes", string(b))

		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodPut)

	for _, progress := range []bool{false, true} {
		client, _ := newTestClient(t, r, &fakeTokens{token: "abc123"}, WithUploadProgress(progress))

		res, err := client.Upload(context.Background(), endpoints.UpdateProfile, http.MethodPut, MultipartBody{
			Fields: []Field{{Name: "firstName", Value: "Ada"}},
			Files:  []FilePart{{Field: "image", Path: img, FileName: "profile_image.jpg", ContentType: "image/jpeg"}},
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.Status)
		assert.JSONEq(t, `null`, string(res.Body))
	}
}

func TestUpload_MissingFile(t *testing.T) {
	client, doer := newTestClient(t, mux.NewRouter(), &fakeTokens{token: "abc123"})

	_, err := client.Upload(context.Background(), endpoints.UploadProfile, http.MethodPost, MultipartBody{
		Files: []FilePart{{Field: "image", Path: filepath.Join(t.TempDir(), "missing.jpg")}},
	})
	require.ErrorIs(t, err, ErrInvalidBody)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, int32(0), doer.calls.Load())
}

func TestUpload_CredentialCheckedBeforeFiles(t *testing.T) {
	client, doer := newTestClient(t, mux.NewRouter(), &fakeTokens{})

	_, err := client.Upload(context.Background(), endpoints.UploadProfile, http.MethodPost, MultipartBody{
		Files: []FilePart{{Field: "image", Path: filepath.Join(t.TempDir(), "missing.jpg")}},
	})
	require.ErrorIs(t, err, ErrMissingCredential)
	assert.Equal(t, int32(0), doer.calls.Load())

	_, err = client.Upload(context.Background(), "uploadEverything", http.MethodPost, MultipartBody{
		Files: []FilePart{{Field: "image", Path: filepath.Join(t.TempDir(), "missing.jpg")}},
	})
	require.ErrorIs(t, err, ErrUnknownEndpoint)
}

func TestUpload_MissingCredential(t *testing.T) {
	client, doer := newTestClient(t, mux.NewRouter(), &fakeTokens{})

	_, err := client.Upload(context.Background(), endpoints.UploadProfile, http.MethodPost, MultipartBody{})
	require.ErrorIs(t, err, ErrMissingCredential)
	assert.Equal(t, int32(0), doer.calls.Load())
}
