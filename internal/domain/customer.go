package domain

import "time"

// Customer is a registered buyer. NationalID is the unique business key.
type Customer struct {
	ID         string    `json:"id"`
	FullName   string    `json:"fullName"`
	NationalID string    `json:"nationalId"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Address    string    `json:"address"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
