package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rifasoft/raffle-admin/internal/domain"
	"github.com/rifasoft/raffle-admin/internal/repository"
)

type fakeTicketRepo struct {
	tickets map[string]domain.Ticket
}

func newFakeTicketRepo(numbers ...string) *fakeTicketRepo {
	repo := &fakeTicketRepo{tickets: make(map[string]domain.Ticket)}
	for _, number := range numbers {
		repo.tickets[number] = domain.Ticket{
			ID:     "id-" + number,
			Number: number,
			Status: domain.TicketAvailable,
		}
	}
	return repo
}

func (r *fakeTicketRepo) FindByNumber(number string) (domain.Ticket, error) {
	ticket, ok := r.tickets[number]
	if !ok {
		return domain.Ticket{}, repository.ErrTicketNotFound
	}
	return ticket, nil
}

func (r *fakeTicketRepo) FindByOwner(ownerID string) ([]domain.Ticket, error) {
	owned := make([]domain.Ticket, 0)
	for _, ticket := range r.tickets {
		if ticket.OwnerID != "" && ticket.OwnerID == ownerID {
			owned = append(owned, ticket)
		}
	}
	return owned, nil
}

func (r *fakeTicketRepo) UpdateByNumber(number string, apply func(*domain.Ticket)) (domain.Ticket, error) {
	ticket, ok := r.tickets[number]
	if !ok {
		return domain.Ticket{}, repository.ErrTicketNotFound
	}
	apply(&ticket)
	ticket.UpdatedAt = time.Now().UTC()
	r.tickets[number] = ticket
	return ticket, nil
}

type fakeCustomerRepo struct {
	customers map[string]domain.Customer
}

func (r *fakeCustomerRepo) FindByID(id string) (domain.Customer, error) {
	customer, ok := r.customers[id]
	if !ok {
		return domain.Customer{}, repository.ErrCustomerNotFound
	}
	return customer, nil
}

type recordingNotifier struct {
	singles int
	batches int
	sent    []domain.Ticket
	result  domain.NotificationResult
}

func (n *recordingNotifier) SendTicket(_ context.Context, ticket domain.Ticket, _ domain.Customer) domain.NotificationResult {
	n.singles++
	n.sent = append(n.sent, ticket)
	return n.result
}

func (n *recordingNotifier) SendTicketBatch(_ context.Context, tickets []domain.Ticket, _ domain.Customer) domain.NotificationResult {
	n.batches++
	n.sent = append(n.sent, tickets...)
	return n.result
}

func newSalesFixture(numbers ...string) (*SalesService, *fakeTicketRepo, *recordingNotifier) {
	tickets := newFakeTicketRepo(numbers...)
	customers := &fakeCustomerRepo{customers: map[string]domain.Customer{
		"c1": {ID: "c1", FullName: "María Pérez", Email: "maria@example.com"},
	}}
	notifier := &recordingNotifier{result: domain.NotificationResult{Success: true, Message: "sent"}}

	return NewSalesService(tickets, customers, notifier), tickets, notifier
}

func TestSell_MarksSoldAndNotifies(t *testing.T) {
	svc, tickets, notifier := newSalesFixture("0001")

	ticket, customer, notification, err := svc.Sell(context.Background(), "0001", "c1")
	require.NoError(t, err)

	assert.Equal(t, domain.TicketSold, ticket.Status)
	assert.Equal(t, "c1", ticket.OwnerID)
	require.NotNil(t, ticket.SoldAt)
	assert.WithinDuration(t, time.Now().UTC(), *ticket.SoldAt, time.Minute)

	assert.Equal(t, "María Pérez", customer.FullName)
	assert.True(t, notification.Success)
	assert.Equal(t, 1, notifier.singles)

	persisted, err := tickets.FindByNumber("0001")
	require.NoError(t, err)
	assert.Equal(t, ticket, persisted)
}

func TestSell_AlreadySold(t *testing.T) {
	svc, _, notifier := newSalesFixture("0001")

	_, _, _, err := svc.Sell(context.Background(), "0001", "c1")
	require.NoError(t, err)

	_, _, _, err = svc.Sell(context.Background(), "0001", "c1")

	require.ErrorIs(t, err, ErrTicketSold)
	assert.Equal(t, 1, notifier.singles)
}

func TestSell_UnknownCustomer(t *testing.T) {
	svc, tickets, notifier := newSalesFixture("0001")

	_, _, _, err := svc.Sell(context.Background(), "0001", "nope")

	require.ErrorIs(t, err, ErrCustomerNotFound)
	assert.Zero(t, notifier.singles)

	untouched, err := tickets.FindByNumber("0001")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketAvailable, untouched.Status)
}

func TestSell_UnknownTicket(t *testing.T) {
	svc, _, _ := newSalesFixture("0001")

	_, _, _, err := svc.Sell(context.Background(), "9999", "c1")

	require.ErrorIs(t, err, ErrTicketNotFound)
}

func TestSellBatch_PartialFailure(t *testing.T) {
	svc, _, notifier := newSalesFixture("0001", "0002", "0003")

	// 0001 is sold up front so the batch hits an already-sold number.
	_, _, _, err := svc.Sell(context.Background(), "0001", "c1")
	require.NoError(t, err)

	result, notification, err := svc.SellBatch(context.Background(), []string{"0001", "0002", "9999", "0003"}, "c1")
	require.NoError(t, err)

	require.Len(t, result.Sold, 2)
	assert.Equal(t, "0002", result.Sold[0].Number)
	assert.Equal(t, "0003", result.Sold[1].Number)

	require.Len(t, result.Errors, 2)
	assert.Equal(t, BatchError{Number: "0001", Reason: "already sold"}, result.Errors[0])
	assert.Equal(t, BatchError{Number: "9999", Reason: "ticket not found"}, result.Errors[1])

	assert.True(t, notification.Success)
	assert.Equal(t, 1, notifier.batches)
}

func TestSellBatch_NothingSoldSkipsNotification(t *testing.T) {
	svc, _, notifier := newSalesFixture()

	result, notification, err := svc.SellBatch(context.Background(), []string{"9999"}, "c1")
	require.NoError(t, err)

	assert.Empty(t, result.Sold)
	require.Len(t, result.Errors, 1)
	assert.False(t, notification.Success)
	assert.Equal(t, "not sent", notification.Message)
	assert.Zero(t, notifier.batches)
}

func TestSellBatch_UnknownCustomerFailsFast(t *testing.T) {
	svc, tickets, _ := newSalesFixture("0001")

	_, _, err := svc.SellBatch(context.Background(), []string{"0001"}, "nope")

	require.ErrorIs(t, err, ErrCustomerNotFound)

	untouched, err := tickets.FindByNumber("0001")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketAvailable, untouched.Status)
}

func TestReserve_ThenRelease(t *testing.T) {
	svc, _, _ := newSalesFixture("0001")

	reserved, err := svc.Reserve(context.Background(), "0001", "c1")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketReserved, reserved.Status)
	assert.Equal(t, "c1", reserved.OwnerID)

	released, err := svc.Release(context.Background(), "0001")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketAvailable, released.Status)
	assert.Empty(t, released.OwnerID)
	assert.Nil(t, released.SoldAt)
}

func TestReserve_SoldTicket(t *testing.T) {
	svc, _, _ := newSalesFixture("0001")

	_, _, _, err := svc.Sell(context.Background(), "0001", "c1")
	require.NoError(t, err)

	_, err = svc.Reserve(context.Background(), "0001", "c1")

	require.ErrorIs(t, err, ErrTicketSold)
}

func TestReserve_OverwritesHolder(t *testing.T) {
	svc, _, _ := newSalesFixture("0001")

	_, err := svc.Reserve(context.Background(), "0001", "c1")
	require.NoError(t, err)

	reserved, err := svc.Reserve(context.Background(), "0001", "c2")
	require.NoError(t, err)

	assert.Equal(t, "c2", reserved.OwnerID)
}

func TestRelease_SoldTicketClearsSale(t *testing.T) {
	svc, tickets, _ := newSalesFixture("0001")

	_, _, _, err := svc.Sell(context.Background(), "0001", "c1")
	require.NoError(t, err)

	released, err := svc.Release(context.Background(), "0001")
	require.NoError(t, err)

	assert.Equal(t, domain.TicketAvailable, released.Status)
	assert.Empty(t, released.OwnerID)
	assert.Nil(t, released.SoldAt)

	persisted, err := tickets.FindByNumber("0001")
	require.NoError(t, err)
	assert.Equal(t, released, persisted)
}

func TestReleaseByOwner(t *testing.T) {
	svc, tickets, _ := newSalesFixture("0001", "0002", "0003")

	_, _, _, err := svc.Sell(context.Background(), "0001", "c1")
	require.NoError(t, err)
	_, err = svc.Reserve(context.Background(), "0002", "c1")
	require.NoError(t, err)

	released, err := svc.ReleaseByOwner(context.Background(), "c1")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"0001", "0002"}, released)

	owned, err := tickets.FindByOwner("c1")
	require.NoError(t, err)
	assert.Empty(t, owned)
}
