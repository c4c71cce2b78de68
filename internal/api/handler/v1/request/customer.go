package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateCustomerRequest struct {
	FullName   string `json:"fullName"`
	NationalID string `json:"nationalId"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
}

func (req *CreateCustomerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FullName, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.NationalID, validation.Required, validation.Length(4, 20)),
		validation.Field(&req.Phone, validation.Length(0, 20)),
		validation.Field(&req.Email, validation.Length(0, 100)),
		validation.Field(&req.Address, validation.Length(0, 200)),
	)
}

// UpdateCustomerRequest carries the editable fields; the national id is a
// business key and does not change.
type UpdateCustomerRequest struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
}

func (req *UpdateCustomerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FullName, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Phone, validation.Length(0, 20)),
		validation.Field(&req.Email, validation.Length(0, 100)),
		validation.Field(&req.Address, validation.Length(0, 200)),
	)
}
