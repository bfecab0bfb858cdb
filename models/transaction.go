package models

type PaymentMethod struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type Transaction struct {
	ID            string        `json:"_id"`
	ToUser        string        `json:"toUser"`
	Amount        float64       `json:"amount"`
	Date          string        `json:"date"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

// Response body for `/transaction/get-transaction`
type TransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}
