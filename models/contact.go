package models

// Request body for `/contact-us`
type ContactMessage struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Message string `json:"message"`
}
