package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type SellTicketRequest struct {
	OwnerID string `json:"ownerId"`
}

func (req *SellTicketRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.OwnerID, validation.Required),
	)
}

// ReserveTicketRequest optionally binds the reservation to a customer.
type ReserveTicketRequest struct {
	OwnerID string `json:"ownerId"`
}

type SellBatchRequest struct {
	Numbers []string `json:"numbers"`
	OwnerID string   `json:"ownerId"`
}

func (req *SellBatchRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Numbers, validation.Required, validation.Length(1, 0)),
		validation.Field(&req.OwnerID, validation.Required),
	)
}
