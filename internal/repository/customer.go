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

const customerCollection = "customers"

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrNationalIDExists = errors.New("a customer with that national id already exists")
)

// DuplicateCustomerError carries the existing record alongside the
// duplicate-key failure so the API can return it like the original did.
type DuplicateCustomerError struct {
	Existing domain.Customer
}

func (e *DuplicateCustomerError) Error() string {
	return ErrNationalIDExists.Error()
}

func (e *DuplicateCustomerError) Unwrap() error {
	return ErrNationalIDExists
}

type CustomerRepository struct {
	store *dao.Store
}

func NewCustomerRepository(store *dao.Store) *CustomerRepository {
	return &CustomerRepository{
		store: store,
	}
}

func (r *CustomerRepository) All() ([]domain.Customer, error) {
	customers, err := dao.Load[domain.Customer](r.store, customerCollection)
	if err != nil {
		return nil, fmt.Errorf("dao.Load -> %w", err)
	}

	return customers, nil
}

func (r *CustomerRepository) FindByID(id string) (domain.Customer, error) {
	customers, err := r.All()
	if err != nil {
		return domain.Customer{}, err
	}

	for _, c := range customers {
		if c.ID == id {
			return c, nil
		}
	}

	return domain.Customer{}, ErrCustomerNotFound
}

func (r *CustomerRepository) FindByNationalID(nationalID string) (domain.Customer, error) {
	customers, err := r.All()
	if err != nil {
		return domain.Customer{}, err
	}

	for _, c := range customers {
		if c.NationalID == nationalID {
			return c, nil
		}
	}

	return domain.Customer{}, ErrCustomerNotFound
}

// Create registers a customer, generating the id and rejecting a duplicate
// national id with the existing record attached. The store enforces no
// constraints, so uniqueness is checked here.
func (r *CustomerRepository) Create(customer domain.Customer) (domain.Customer, error) {
	customers, err := r.All()
	if err != nil {
		return domain.Customer{}, err
	}

	for _, c := range customers {
		if c.NationalID == customer.NationalID {
			return domain.Customer{}, &DuplicateCustomerError{Existing: c}
		}
	}

	now := time.Now().UTC()
	customer.ID = uuid.NewString()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	customers = append(customers, customer)
	if err := dao.Save(r.store, customerCollection, customers); err != nil {
		return domain.Customer{}, fmt.Errorf("dao.Save -> %w", err)
	}

	return customer, nil
}

// Update applies the mutator to the customer with the given id and stamps
// UpdatedAt. ID and NationalID are not meant to change.
func (r *CustomerRepository) Update(id string, apply func(*domain.Customer)) (domain.Customer, error) {
	customers, err := r.All()
	if err != nil {
		return domain.Customer{}, err
	}

	for i := range customers {
		if customers[i].ID != id {
			continue
		}

		apply(&customers[i])
		customers[i].UpdatedAt = time.Now().UTC()

		if err := dao.Save(r.store, customerCollection, customers); err != nil {
			return domain.Customer{}, fmt.Errorf("dao.Save -> %w", err)
		}

		return customers[i], nil
	}

	return domain.Customer{}, ErrCustomerNotFound
}

func (r *CustomerRepository) Delete(id string) error {
	customers, err := r.All()
	if err != nil {
		return err
	}

	for i := range customers {
		if customers[i].ID != id {
			continue
		}

		customers = append(customers[:i], customers[i+1:]...)
		if err := dao.Save(r.store, customerCollection, customers); err != nil {
			return fmt.Errorf("dao.Save -> %w", err)
		}

		return nil
	}

	return ErrCustomerNotFound
}

// Search matches the query case-insensitively against name, national id,
// phone and email.
func (r *CustomerRepository) Search(query string) ([]domain.Customer, error) {
	customers, err := r.All()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matched := make([]domain.Customer, 0)
	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.FullName), q) ||
			strings.Contains(c.NationalID, query) ||
			(c.Phone != "" && strings.Contains(c.Phone, query)) ||
			(c.Email != "" && strings.Contains(strings.ToLower(c.Email), q)) {
			matched = append(matched, c)
		}
	}

	return matched, nil
}
