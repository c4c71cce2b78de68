package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rifasoft/raffle-admin/internal/domain"
)

func TestCreateCustomer_GeneratesIDAndTimestamps(t *testing.T) {
	repo := NewCustomerRepository(newTestStore(t))

	created, err := repo.Create(domain.Customer{
		FullName:   "María Pérez",
		NationalID: "1023456789",
		Phone:      "3001234567",
		Email:      "maria@example.com",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	found, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)
}

func TestCreateCustomer_DuplicateNationalID(t *testing.T) {
	repo := NewCustomerRepository(newTestStore(t))

	first, err := repo.Create(domain.Customer{FullName: "María Pérez", NationalID: "1023456789"})
	require.NoError(t, err)

	_, err = repo.Create(domain.Customer{FullName: "Otra Persona", NationalID: "1023456789"})

	require.ErrorIs(t, err, ErrNationalIDExists)

	var dup *DuplicateCustomerError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, first, dup.Existing)
}

func TestDeleteCustomer_DoesNotDisturbEarlierReads(t *testing.T) {
	repo := NewCustomerRepository(newTestStore(t))

	for _, nid := range []string{"100", "200", "300"} {
		_, err := repo.Create(domain.Customer{FullName: "Cliente " + nid, NationalID: nid})
		require.NoError(t, err)
	}

	before, err := repo.All()
	require.NoError(t, err)
	require.Len(t, before, 3)

	require.NoError(t, repo.Delete(before[1].ID))

	// The snapshot handed out earlier keeps all three records.
	assert.Equal(t, "200", before[1].NationalID)
	assert.Equal(t, "300", before[2].NationalID)

	after, err := repo.All()
	require.NoError(t, err)
	require.Len(t, after, 2)
}

func TestFindCustomerByNationalID(t *testing.T) {
	repo := NewCustomerRepository(newTestStore(t))

	created, err := repo.Create(domain.Customer{FullName: "María Pérez", NationalID: "1023456789"})
	require.NoError(t, err)

	found, err := repo.FindByNationalID("1023456789")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.FindByNationalID("0000000000")
	require.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestUpdateCustomer(t *testing.T) {
	repo := NewCustomerRepository(newTestStore(t))

	created, err := repo.Create(domain.Customer{FullName: "María Pérez", NationalID: "1023456789"})
	require.NoError(t, err)

	updated, err := repo.Update(created.ID, func(c *domain.Customer) {
		c.Phone = "3109876543"
	})
	require.NoError(t, err)

	assert.Equal(t, "3109876543", updated.Phone)
	assert.Equal(t, created.NationalID, updated.NationalID)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestUpdateCustomer_NotFound(t *testing.T) {
	repo := NewCustomerRepository(newTestStore(t))

	_, err := repo.Update("missing", func(*domain.Customer) {})

	require.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestDeleteCustomer(t *testing.T) {
	repo := NewCustomerRepository(newTestStore(t))

	created, err := repo.Create(domain.Customer{FullName: "María Pérez", NationalID: "1023456789"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(created.ID))

	_, err = repo.FindByID(created.ID)
	require.ErrorIs(t, err, ErrCustomerNotFound)

	require.ErrorIs(t, repo.Delete(created.ID), ErrCustomerNotFound)
}

func TestSearchCustomers(t *testing.T) {
	repo := NewCustomerRepository(newTestStore(t))

	_, err := repo.Create(domain.Customer{FullName: "María Pérez", NationalID: "1023456789", Email: "maria@example.com"})
	require.NoError(t, err)
	_, err = repo.Create(domain.Customer{FullName: "Juan Castaño", NationalID: "80123456", Phone: "3157654321"})
	require.NoError(t, err)

	byName, err := repo.Search("maría")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "María Pérez", byName[0].FullName)

	byNationalID, err := repo.Search("8012")
	require.NoError(t, err)
	require.Len(t, byNationalID, 1)
	assert.Equal(t, "Juan Castaño", byNationalID[0].FullName)

	byPhone, err := repo.Search("315765")
	require.NoError(t, err)
	require.Len(t, byPhone, 1)

	byEmail, err := repo.Search("MARIA@EXAMPLE")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)

	none, err := repo.Search("nadie")
	require.NoError(t, err)
	assert.Empty(t, none)
}
