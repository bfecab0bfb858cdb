// Package endpoints holds the fixed registry of Pocket API routes.
package endpoints

import (
	"errors"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Symbolic name of a server route, decoupled from its path.
type Key string

const (
	AuthRegister   Key = "authRegister"
	AuthRequestOTP Key = "authRequestOtp"
	AuthVerifyOTP  Key = "authVerifyOtp"
	GetProfile     Key = "getProfile"
	UploadProfile  Key = "uploadProfile"
	UpdateProfile  Key = "updateProfile"
	GetTransaction Key = "getTransaction"
	GetFavourites  Key = "getFavourites"
	ItemsSearch    Key = "itemsSearch"
	ContactUs      Key = "contactUs"
	PaymentInfo    Key = "paymentInfo"
)

type Endpoint struct {
	Key Key
	// Path relative to the API base URL.
	Path string
	// Whether a bearer token must be attached.
	RequiresAuth bool
}

var ErrNotFound = errors.New("endpoint not found")

var registry = map[Key]Endpoint{
	AuthRegister:   {Key: AuthRegister, Path: "/auth/register"},
	AuthRequestOTP: {Key: AuthRequestOTP, Path: "/auth/request-otp"},
	AuthVerifyOTP:  {Key: AuthVerifyOTP, Path: "/auth/verify-otp"},
	GetProfile:     {Key: GetProfile, Path: "/profile/get-profile", RequiresAuth: true},
	UploadProfile:  {Key: UploadProfile, Path: "/profile/upload-profile", RequiresAuth: true},
	UpdateProfile:  {Key: UpdateProfile, Path: "/profile/update-profile", RequiresAuth: true},
	GetTransaction: {Key: GetTransaction, Path: "/transaction/get-transaction", RequiresAuth: true},
	GetFavourites:  {Key: GetFavourites, Path: "/favourites", RequiresAuth: true},
	ItemsSearch:    {Key: ItemsSearch, Path: "/items/search", RequiresAuth: true},
	ContactUs:      {Key: ContactUs, Path: "/contact-us", RequiresAuth: true},
	PaymentInfo:    {Key: PaymentInfo, Path: "/payment/payment-info", RequiresAuth: true},
}

// Resolve returns the endpoint registered under key.
func Resolve(key Key) (Endpoint, error) {
	e, ok := registry[key]
	if !ok {
		return Endpoint{}, fmt.Errorf("%w: \"%s\"", ErrNotFound, key)
	}

	return e, nil
}

// Keys returns every registered key in lexical order.
func Keys() []Key {
	keys := maps.Keys(registry)
	slices.Sort(keys)
	return keys
}
