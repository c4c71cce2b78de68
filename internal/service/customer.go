package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rifasoft/raffle-admin/internal/domain"
	"github.com/rifasoft/raffle-admin/internal/repository"
)

var ErrNationalIDExists = repository.ErrNationalIDExists

type CustomerRepository interface {
	All() ([]domain.Customer, error)
	FindByID(id string) (domain.Customer, error)
	Create(customer domain.Customer) (domain.Customer, error)
	Update(id string, apply func(*domain.Customer)) (domain.Customer, error)
	Delete(id string) error
	Search(query string) ([]domain.Customer, error)
}

type CustomerTicketRepository interface {
	FindByOwner(ownerID string) ([]domain.Ticket, error)
}

type TicketReleaser interface {
	ReleaseByOwner(ctx context.Context, ownerID string) ([]string, error)
}

// CustomerWithTickets is a customer embellished with the tickets it owns,
// the shape the admin list and detail endpoints return.
type CustomerWithTickets struct {
	domain.Customer
	Tickets       []domain.Ticket `json:"tickets,omitempty"`
	TotalTickets  int             `json:"totalTickets"`
	TicketNumbers []string        `json:"ticketNumbers"`
}

type CustomerService struct {
	repo    CustomerRepository
	tickets CustomerTicketRepository
	sales   TicketReleaser
}

func NewCustomerService(repo CustomerRepository, tickets CustomerTicketRepository, sales TicketReleaser) *CustomerService {
	return &CustomerService{
		repo:    repo,
		tickets: tickets,
		sales:   sales,
	}
}

// List returns customers (optionally filtered by a free-text search), each
// annotated with its owned ticket numbers.
func (s *CustomerService) List(query string) ([]CustomerWithTickets, error) {
	var customers []domain.Customer
	var err error
	if query != "" {
		customers, err = s.repo.Search(query)
	} else {
		customers, err = s.repo.All()
	}
	if err != nil {
		return nil, fmt.Errorf("s.repo list -> %w", err)
	}

	annotated := make([]CustomerWithTickets, 0, len(customers))
	for _, c := range customers {
		owned, err := s.tickets.FindByOwner(c.ID)
		if err != nil {
			return nil, fmt.Errorf("s.tickets.FindByOwner -> %w", err)
		}

		numbers := make([]string, 0, len(owned))
		for _, t := range owned {
			numbers = append(numbers, t.Number)
		}

		annotated = append(annotated, CustomerWithTickets{
			Customer:      c,
			TotalTickets:  len(owned),
			TicketNumbers: numbers,
		})
	}

	return annotated, nil
}

func (s *CustomerService) Get(id string) (CustomerWithTickets, error) {
	customer, err := s.repo.FindByID(id)
	if err != nil {
		return CustomerWithTickets{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	owned, err := s.tickets.FindByOwner(customer.ID)
	if err != nil {
		return CustomerWithTickets{}, fmt.Errorf("s.tickets.FindByOwner -> %w", err)
	}

	numbers := make([]string, 0, len(owned))
	for _, t := range owned {
		numbers = append(numbers, t.Number)
	}

	return CustomerWithTickets{
		Customer:      customer,
		Tickets:       owned,
		TotalTickets:  len(owned),
		TicketNumbers: numbers,
	}, nil
}

func (s *CustomerService) Create(customer domain.Customer) (domain.Customer, error) {
	created, err := s.repo.Create(customer)
	if err != nil {
		var dup *repository.DuplicateCustomerError
		if errors.As(err, &dup) {
			return domain.Customer{}, dup
		}
		return domain.Customer{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *CustomerService) Update(id string, apply func(*domain.Customer)) (domain.Customer, error) {
	updated, err := s.repo.Update(id, apply)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// Delete releases every ticket the customer owns before removing the
// record, so no ticket is left referencing a missing customer. Returns the
// number of tickets released.
func (s *CustomerService) Delete(ctx context.Context, id string) (int, error) {
	if _, err := s.repo.FindByID(id); err != nil {
		return 0, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	released, err := s.sales.ReleaseByOwner(ctx, id)
	if err != nil {
		return len(released), fmt.Errorf("s.sales.ReleaseByOwner -> %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return len(released), fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return len(released), nil
}
