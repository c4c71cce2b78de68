package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rifasoft/raffle-admin/internal/domain"
	"github.com/rifasoft/raffle-admin/internal/repository/dao"
)

const ticketCollection = "tickets"

var ErrTicketNotFound = errors.New("ticket not found")

// TicketRepository queries and mutates the ticket collection. Every lookup
// is a linear scan over the memory-resident records, an explicit complexity
// choice at the target scale of ~10,000 tickets.
type TicketRepository struct {
	store *dao.Store
}

func NewTicketRepository(store *dao.Store) *TicketRepository {
	return &TicketRepository{
		store: store,
	}
}

func (r *TicketRepository) All() ([]domain.Ticket, error) {
	tickets, err := dao.Load[domain.Ticket](r.store, ticketCollection)
	if err != nil {
		return nil, fmt.Errorf("dao.Load -> %w", err)
	}

	return tickets, nil
}

func (r *TicketRepository) FindByNumber(number string) (domain.Ticket, error) {
	tickets, err := r.All()
	if err != nil {
		return domain.Ticket{}, err
	}

	for _, t := range tickets {
		if t.Number == number {
			return t, nil
		}
	}

	return domain.Ticket{}, ErrTicketNotFound
}

func (r *TicketRepository) FindByID(id string) (domain.Ticket, error) {
	tickets, err := r.All()
	if err != nil {
		return domain.Ticket{}, err
	}

	for _, t := range tickets {
		if t.ID == id {
			return t, nil
		}
	}

	return domain.Ticket{}, ErrTicketNotFound
}

func (r *TicketRepository) FindByStatus(status domain.TicketStatus) ([]domain.Ticket, error) {
	tickets, err := r.All()
	if err != nil {
		return nil, err
	}

	matched := make([]domain.Ticket, 0)
	for _, t := range tickets {
		if t.Status == status {
			matched = append(matched, t)
		}
	}

	return matched, nil
}

func (r *TicketRepository) FindByOwner(ownerID string) ([]domain.Ticket, error) {
	tickets, err := r.All()
	if err != nil {
		return nil, err
	}

	matched := make([]domain.Ticket, 0)
	for _, t := range tickets {
		if t.OwnerID != "" && t.OwnerID == ownerID {
			matched = append(matched, t)
		}
	}

	return matched, nil
}

// UpdateByNumber applies the mutator to the ticket with the given number,
// stamps UpdatedAt and persists the collection. Number and ID are fixed at
// provisioning time; the mutator must not touch them.
func (r *TicketRepository) UpdateByNumber(number string, apply func(*domain.Ticket)) (domain.Ticket, error) {
	tickets, err := r.All()
	if err != nil {
		return domain.Ticket{}, err
	}

	for i := range tickets {
		if tickets[i].Number != number {
			continue
		}

		apply(&tickets[i])
		tickets[i].UpdatedAt = time.Now().UTC()

		if err := dao.Save(r.store, ticketCollection, tickets); err != nil {
			return domain.Ticket{}, fmt.Errorf("dao.Save -> %w", err)
		}

		return tickets[i], nil
	}

	return domain.Ticket{}, ErrTicketNotFound
}

func (r *TicketRepository) CountByStatus() (domain.TicketCounts, error) {
	tickets, err := r.All()
	if err != nil {
		return domain.TicketCounts{}, err
	}

	counts := domain.TicketCounts{Total: len(tickets)}
	for _, t := range tickets {
		switch t.Status {
		case domain.TicketSold:
			counts.Sold++
		case domain.TicketAvailable:
			counts.Available++
		case domain.TicketReserved:
			counts.Reserved++
		}
	}

	return counts, nil
}

// Provision creates the full numbered ticket range in one save. It refuses
// to run over an existing collection; tickets are created once and never
// deleted.
func (r *TicketRepository) Provision(total int) ([]domain.Ticket, error) {
	existing, err := r.All()
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("ticket collection already holds %d tickets", len(existing))
	}

	width := numberWidth(total)
	now := time.Now().UTC()

	tickets := make([]domain.Ticket, 0, total)
	for i := 0; i < total; i++ {
		number := fmt.Sprintf("%0*d", width, i)
		tickets = append(tickets, domain.Ticket{
			ID:        uuid.NewString(),
			Number:    number,
			Barcode:   "RIFA-" + number,
			Status:    domain.TicketAvailable,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if err := dao.Save(r.store, ticketCollection, tickets); err != nil {
		return nil, fmt.Errorf("dao.Save -> %w", err)
	}

	return tickets, nil
}

// SearchByNumber returns the tickets whose number contains the query.
func (r *TicketRepository) SearchByNumber(query string) ([]domain.Ticket, error) {
	tickets, err := r.All()
	if err != nil {
		return nil, err
	}

	matched := make([]domain.Ticket, 0)
	for _, t := range tickets {
		if strings.Contains(t.Number, query) {
			matched = append(matched, t)
		}
	}

	return matched, nil
}

// numberWidth keeps the original 4-digit padding up to 10,000 tickets and
// widens for anything bigger.
func numberWidth(total int) int {
	width := len(fmt.Sprintf("%d", total-1))
	if width < 4 {
		width = 4
	}
	return width
}
