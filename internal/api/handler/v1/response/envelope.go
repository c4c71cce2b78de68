package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rifasoft/raffle-admin/internal/domain"
)

type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type Paginated struct {
	Success    bool       `json:"success"`
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// TicketWithOwner is a ticket with its owner record embedded, nil when the
// ticket is unassigned.
type TicketWithOwner struct {
	domain.Ticket
	Owner *domain.Customer `json:"owner"`
}

// Notified wraps a successful mutation together with the outcome of its
// best-effort email side effect.
type Notified struct {
	Success bool                      `json:"success"`
	Data    any                       `json:"data"`
	Email   domain.NotificationResult `json:"email"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func OK(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

func OKPage(ctx *gin.Context, data any, page, limit, total int) {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	ctx.JSON(http.StatusOK, Paginated{
		Success: true,
		Data:    data,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

func OKNotified(ctx *gin.Context, data any, email domain.NotificationResult) {
	ctx.JSON(http.StatusOK, Notified{Success: true, Data: data, Email: email})
}
