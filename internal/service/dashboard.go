package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/rifasoft/raffle-admin/internal/domain"
)

type DashboardTicketRepository interface {
	All() ([]domain.Ticket, error)
}

type DashboardCustomerRepository interface {
	All() ([]domain.Customer, error)
}

type RaffleConfigRepository interface {
	Get() (domain.RaffleConfig, error)
	Update(fields map[string]any) (domain.RaffleConfig, error)
}

// DashboardService derives aggregate sales metrics from the two
// collections on every call; it keeps no state of its own.
type DashboardService struct {
	tickets   DashboardTicketRepository
	customers DashboardCustomerRepository
	config    RaffleConfigRepository
}

func NewDashboardService(tickets DashboardTicketRepository, customers DashboardCustomerRepository, config RaffleConfigRepository) *DashboardService {
	return &DashboardService{
		tickets:   tickets,
		customers: customers,
		config:    config,
	}
}

func (s *DashboardService) Metrics() (domain.DashboardMetrics, error) {
	tickets, err := s.tickets.All()
	if err != nil {
		return domain.DashboardMetrics{}, fmt.Errorf("s.tickets.All -> %w", err)
	}

	customers, err := s.customers.All()
	if err != nil {
		return domain.DashboardMetrics{}, fmt.Errorf("s.customers.All -> %w", err)
	}

	conf, err := s.config.Get()
	if err != nil {
		return domain.DashboardMetrics{}, fmt.Errorf("s.config.Get -> %w", err)
	}

	metrics := domain.DashboardMetrics{
		TotalTickets:   len(tickets),
		TotalCustomers: len(customers),
		SalesByDate:    make(map[string]int),
		TicketPrice:    conf.TicketPrice,
	}

	// Ranking preserves first-seen owner order so ties stay stable.
	countByOwner := make(map[string]int)
	ownerOrder := make([]string, 0)

	for _, t := range tickets {
		switch t.Status {
		case domain.TicketSold:
			metrics.Sold++
		case domain.TicketAvailable:
			metrics.Available++
		case domain.TicketReserved:
			metrics.Reserved++
		}

		if t.OwnerID != "" {
			if _, seen := countByOwner[t.OwnerID]; !seen {
				ownerOrder = append(ownerOrder, t.OwnerID)
			}
			countByOwner[t.OwnerID]++
		}

		if t.Status == domain.TicketSold && t.SoldAt != nil {
			metrics.SalesByDate[t.SoldAt.Format("2006-01-02")]++
		}
	}

	if metrics.TotalTickets > 0 {
		percent := float64(metrics.Sold) / float64(metrics.TotalTickets) * 100
		metrics.PercentSold = math.Round(percent*100) / 100
	}

	customerByID := make(map[string]domain.Customer, len(customers))
	for _, c := range customers {
		customerByID[c.ID] = c
	}

	buyers := make([]domain.TopBuyer, 0, len(ownerOrder))
	for _, ownerID := range ownerOrder {
		buyer := domain.TopBuyer{
			CustomerID: ownerID,
			FullName:   "Desconocido",
			Count:      countByOwner[ownerID],
		}
		if c, ok := customerByID[ownerID]; ok {
			buyer.FullName = c.FullName
			buyer.NationalID = c.NationalID
		}
		buyers = append(buyers, buyer)
	}

	sort.SliceStable(buyers, func(i, j int) bool {
		return buyers[i].Count > buyers[j].Count
	})
	if len(buyers) > 10 {
		buyers = buyers[:10]
	}
	metrics.TopBuyers = buyers

	// Snapshot estimate at the current price; historical sale prices are
	// not tracked.
	metrics.EstimatedRevenue = int64(metrics.Sold) * conf.TicketPrice

	return metrics, nil
}

func (s *DashboardService) GetConfig() (domain.RaffleConfig, error) {
	conf, err := s.config.Get()
	if err != nil {
		return domain.RaffleConfig{}, fmt.Errorf("s.config.Get -> %w", err)
	}

	return conf, nil
}

func (s *DashboardService) UpdateConfig(fields map[string]any) (domain.RaffleConfig, error) {
	conf, err := s.config.Update(fields)
	if err != nil {
		return domain.RaffleConfig{}, fmt.Errorf("s.config.Update -> %w", err)
	}

	return conf, nil
}
