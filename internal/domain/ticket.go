package domain

import "time"

type TicketStatus string

const (
	TicketAvailable TicketStatus = "available"
	TicketReserved  TicketStatus = "reserved"
	TicketSold      TicketStatus = "sold"
)

// Ticket is a single numbered raffle entry. Number is unique and immutable
// after provisioning; OwnerID is set iff the ticket is reserved or sold;
// SoldAt is set iff the ticket is sold.
type Ticket struct {
	ID        string       `json:"id"`
	Number    string       `json:"number"`
	Barcode   string       `json:"barcode"`
	Status    TicketStatus `json:"status"`
	OwnerID   string       `json:"ownerId,omitempty"`
	SoldAt    *time.Time   `json:"soldAt,omitempty"`
	Notes     string       `json:"notes"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// TicketCounts holds the per-status totals of the ticket collection.
type TicketCounts struct {
	Total     int `json:"total"`
	Sold      int `json:"sold"`
	Available int `json:"available"`
	Reserved  int `json:"reserved"`
}
