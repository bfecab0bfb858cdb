package models

type CardInfo struct {
	CardNumber     string `json:"cardNumber"`
	ExpiryDate     string `json:"expiryDate"`
	CVV            string `json:"cvv"`
	CardholderName string `json:"cardholderName"`
}

// Request body for `/payment/payment-info`
type PaymentInfoRequest struct {
	UserID   string   `json:"userId"`
	UPIID    string   `json:"upiId"`
	CardInfo CardInfo `json:"cardInfo"`
}
