package domain

// TopBuyer is one entry of the dashboard's top-buyers ranking.
type TopBuyer struct {
	CustomerID string `json:"customerId"`
	FullName   string `json:"fullName"`
	NationalID string `json:"nationalId"`
	Count      int    `json:"count"`
}

// DashboardMetrics is derived on every request, nothing stored.
type DashboardMetrics struct {
	TotalTickets     int            `json:"totalTickets"`
	Sold             int            `json:"sold"`
	Available        int            `json:"available"`
	Reserved         int            `json:"reserved"`
	PercentSold      float64        `json:"percentSold"`
	TotalCustomers   int            `json:"totalCustomers"`
	TopBuyers        []TopBuyer     `json:"topBuyers"`
	SalesByDate      map[string]int `json:"salesByDate"`
	EstimatedRevenue int64          `json:"estimatedRevenue"`
	TicketPrice      int64          `json:"ticketPrice"`
}

// NotificationResult reports the outcome of a best-effort email send. It is
// response metadata only and never fails the operation that triggered it.
type NotificationResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	MessageID string `json:"messageId,omitempty"`
}
