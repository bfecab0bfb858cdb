package models

type Item struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
}

// Response body for `/favourites`
type FavouritesResponse struct {
	Favourites []Item `json:"favourites"`
}
