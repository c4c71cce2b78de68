package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rifasoft/raffle-admin/internal/domain"
	"github.com/rifasoft/raffle-admin/internal/repository"
)

var (
	ErrTicketNotFound   = repository.ErrTicketNotFound
	ErrCustomerNotFound = repository.ErrCustomerNotFound
	ErrTicketSold       = errors.New("ticket already sold")
)

type SalesTicketRepository interface {
	FindByNumber(number string) (domain.Ticket, error)
	FindByOwner(ownerID string) ([]domain.Ticket, error)
	UpdateByNumber(number string, apply func(*domain.Ticket)) (domain.Ticket, error)
}

type SalesCustomerRepository interface {
	FindByID(id string) (domain.Customer, error)
}

// Notifier delivers purchase confirmations. Implementations report the
// outcome as data and must not block beyond their own deadline; a failed
// send never rolls back the sale it follows.
type Notifier interface {
	SendTicket(ctx context.Context, ticket domain.Ticket, customer domain.Customer) domain.NotificationResult
	SendTicketBatch(ctx context.Context, tickets []domain.Ticket, customer domain.Customer) domain.NotificationResult
}

// BatchError is one per-number failure of a batch sale.
type BatchError struct {
	Number string `json:"numero"`
	Reason string `json:"error"`
}

// BatchResult reports a batch sale; partial success is a normal outcome.
// The JSON keys are the original wire contract.
type BatchResult struct {
	Sold   []domain.Ticket `json:"vendidas"`
	Errors []BatchError    `json:"errores"`
}

// SalesService runs the ticket state machine: available -> reserved ->
// sold, with release back to available from any state. Each transition
// holds a per-ticket-number mutex across its check and write, so two
// concurrent sales of one number serialize and the loser fails cleanly.
type SalesService struct {
	tickets   SalesTicketRepository
	customers SalesCustomerRepository
	notifier  Notifier
	locks     *keyedMutex
}

func NewSalesService(tickets SalesTicketRepository, customers SalesCustomerRepository, notifier Notifier) *SalesService {
	return &SalesService{
		tickets:   tickets,
		customers: customers,
		notifier:  notifier,
		locks:     newKeyedMutex(),
	}
}

// Reserve marks a ticket reserved, optionally bound to a customer.
// Reserving an already-reserved ticket just overwrites the owner; a sold
// ticket cannot be reserved.
func (s *SalesService) Reserve(ctx context.Context, number, ownerID string) (domain.Ticket, error) {
	unlock := s.locks.Lock(number)
	defer unlock()

	ticket, err := s.tickets.FindByNumber(number)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.tickets.FindByNumber -> %w", err)
	}
	if ticket.Status == domain.TicketSold {
		return domain.Ticket{}, ErrTicketSold
	}

	updated, err := s.tickets.UpdateByNumber(number, func(t *domain.Ticket) {
		t.Status = domain.TicketReserved
		t.OwnerID = ownerID
	})
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.tickets.UpdateByNumber -> %w", err)
	}

	return updated, nil
}

// Sell completes a purchase: the transition commits first, then the
// confirmation email is attempted and its outcome returned as metadata.
func (s *SalesService) Sell(ctx context.Context, number, ownerID string) (domain.Ticket, domain.Customer, domain.NotificationResult, error) {
	customer, err := s.customers.FindByID(ownerID)
	if err != nil {
		return domain.Ticket{}, domain.Customer{}, domain.NotificationResult{}, fmt.Errorf("s.customers.FindByID -> %w", err)
	}

	ticket, err := s.sellOne(number, ownerID)
	if err != nil {
		return domain.Ticket{}, domain.Customer{}, domain.NotificationResult{}, err
	}

	notification := s.notifier.SendTicket(ctx, ticket, customer)

	return ticket, customer, notification, nil
}

// SellBatch sells each number independently, collecting per-number failures
// instead of aborting. A single confirmation covering the sold tickets is
// sent when at least one sale succeeded.
func (s *SalesService) SellBatch(ctx context.Context, numbers []string, ownerID string) (BatchResult, domain.NotificationResult, error) {
	customer, err := s.customers.FindByID(ownerID)
	if err != nil {
		return BatchResult{}, domain.NotificationResult{}, fmt.Errorf("s.customers.FindByID -> %w", err)
	}

	result := BatchResult{
		Sold:   make([]domain.Ticket, 0, len(numbers)),
		Errors: make([]BatchError, 0),
	}

	for _, number := range numbers {
		ticket, err := s.sellOne(number, ownerID)
		switch {
		case errors.Is(err, ErrTicketNotFound):
			result.Errors = append(result.Errors, BatchError{Number: number, Reason: "ticket not found"})
		case errors.Is(err, ErrTicketSold):
			result.Errors = append(result.Errors, BatchError{Number: number, Reason: "already sold"})
		case err != nil:
			return BatchResult{}, domain.NotificationResult{}, err
		default:
			result.Sold = append(result.Sold, ticket)
		}
	}

	notification := domain.NotificationResult{Message: "not sent"}
	if len(result.Sold) > 0 {
		notification = s.notifier.SendTicketBatch(ctx, result.Sold, customer)
	}

	return result, notification, nil
}

// Release returns a ticket to available, clearing owner and sale timestamp
// regardless of its prior state. Releasing an available ticket is a no-op
// apart from the refreshed UpdatedAt.
func (s *SalesService) Release(ctx context.Context, number string) (domain.Ticket, error) {
	unlock := s.locks.Lock(number)
	defer unlock()

	updated, err := s.tickets.UpdateByNumber(number, func(t *domain.Ticket) {
		t.Status = domain.TicketAvailable
		t.OwnerID = ""
		t.SoldAt = nil
	})
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.tickets.UpdateByNumber -> %w", err)
	}

	return updated, nil
}

// ReleaseByOwner releases every ticket owned by the customer and returns
// the freed numbers. Customer deletion runs this first to keep the
// ownership invariant.
func (s *SalesService) ReleaseByOwner(ctx context.Context, ownerID string) ([]string, error) {
	owned, err := s.tickets.FindByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("s.tickets.FindByOwner -> %w", err)
	}

	released := make([]string, 0, len(owned))
	for _, ticket := range owned {
		if _, err := s.Release(ctx, ticket.Number); err != nil {
			return released, fmt.Errorf("s.Release(%s) -> %w", ticket.Number, err)
		}
		released = append(released, ticket.Number)
	}

	return released, nil
}

func (s *SalesService) sellOne(number, ownerID string) (domain.Ticket, error) {
	unlock := s.locks.Lock(number)
	defer unlock()

	ticket, err := s.tickets.FindByNumber(number)
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			return domain.Ticket{}, ErrTicketNotFound
		}
		return domain.Ticket{}, fmt.Errorf("s.tickets.FindByNumber -> %w", err)
	}
	if ticket.Status == domain.TicketSold {
		return domain.Ticket{}, ErrTicketSold
	}

	soldAt := time.Now().UTC()
	updated, err := s.tickets.UpdateByNumber(number, func(t *domain.Ticket) {
		t.Status = domain.TicketSold
		t.OwnerID = ownerID
		t.SoldAt = &soldAt
	})
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.tickets.UpdateByNumber -> %w", err)
	}

	zap.L().Info("ticket sold",
		zap.String("number", updated.Number),
		zap.String("ownerId", ownerID))

	return updated, nil
}
