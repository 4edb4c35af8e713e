package request

type UpsertProfile struct {
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Phone      string `json:"phone"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}
