package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rifasoft/raffle-admin/internal/api/handler/v1/request"
	"github.com/rifasoft/raffle-admin/internal/api/handler/v1/response"
	"github.com/rifasoft/raffle-admin/internal/domain"
	"github.com/rifasoft/raffle-admin/internal/service"
)

type TicketRepository interface {
	All() ([]domain.Ticket, error)
	FindByNumber(number string) (domain.Ticket, error)
	CountByStatus() (domain.TicketCounts, error)
}

type SalesService interface {
	Reserve(ctx context.Context, number, ownerID string) (domain.Ticket, error)
	Sell(ctx context.Context, number, ownerID string) (domain.Ticket, domain.Customer, domain.NotificationResult, error)
	SellBatch(ctx context.Context, numbers []string, ownerID string) (service.BatchResult, domain.NotificationResult, error)
	Release(ctx context.Context, number string) (domain.Ticket, error)
}

type OwnerLookup interface {
	FindByID(id string) (domain.Customer, error)
}

type TicketHandler struct {
	tickets TicketRepository
	sales   SalesService
	owners  OwnerLookup
}

func NewTicketHandler(tickets TicketRepository, sales SalesService, owners OwnerLookup) *TicketHandler {
	return &TicketHandler{
		tickets: tickets,
		sales:   sales,
		owners:  owners,
	}
}

// HandleListTickets godoc
// @Summary      List tickets
// @Description  Lists tickets with optional status, owner and number-substring filters, paginated.
// @Tags         tickets
// @Produce      json
// @Param        status   query  string  false  "available | reserved | sold"
// @Param        search   query  string  false  "number substring"
// @Param        ownerId  query  string  false  "customer id"
// @Param        page     query  int     false  "page (default 1)"
// @Param        limit    query  int     false  "page size (default 50)"
// @Success      200  {object}  response.Paginated
// @Failure      500  {object}  response.Err
// @Router       /tickets [get]
func (h *TicketHandler) HandleListTickets(ctx *gin.Context) {
	tickets, err := h.tickets.All()
	if err != nil {
		err = fmt.Errorf("HandleListTickets -> h.tickets.All -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if status := ctx.Query("status"); status != "" {
		tickets = filterTickets(tickets, func(t domain.Ticket) bool {
			return t.Status == domain.TicketStatus(status)
		})
	}
	if ownerID := ctx.Query("ownerId"); ownerID != "" {
		tickets = filterTickets(tickets, func(t domain.Ticket) bool {
			return t.OwnerID == ownerID
		})
	}
	if search := ctx.Query("search"); search != "" {
		tickets = filterTickets(tickets, func(t domain.Ticket) bool {
			return strings.Contains(t.Number, search)
		})
	}

	page, limit := parsePagination(ctx)
	response.OKPage(ctx, paginate(tickets, page, limit), page, limit, len(tickets))
}

// HandleGetStats godoc
// @Summary      Ticket counts by status
// @Tags         tickets
// @Produce      json
// @Success      200  {object}  response.Envelope
// @Failure      500  {object}  response.Err
// @Router       /tickets/stats [get]
func (h *TicketHandler) HandleGetStats(ctx *gin.Context) {
	counts, err := h.tickets.CountByStatus()
	if err != nil {
		err = fmt.Errorf("HandleGetStats -> h.tickets.CountByStatus -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.OK(ctx, counts)
}

// HandleGetTicket godoc
// @Summary      Get a ticket by number with its owner embedded
// @Tags         tickets
// @Produce      json
// @Param        number  path  string  true  "ticket number"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tickets/{number} [get]
func (h *TicketHandler) HandleGetTicket(ctx *gin.Context) {
	number := ctx.Param("number")

	ticket, err := h.tickets.FindByNumber(number)
	if err != nil {
		if errors.Is(err, service.ErrTicketNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("ticket", "number", number))
			return
		}

		err = fmt.Errorf("HandleGetTicket -> h.tickets.FindByNumber -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.OK(ctx, h.withOwner(ticket))
}

// HandleSellTicket godoc
// @Summary      Sell a ticket to a customer
// @Description  Marks the ticket sold and sends the confirmation email; the email result is metadata and never fails the sale.
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        number  path  string                     true  "ticket number"
// @Param        input   body  request.SellTicketRequest  true  "owner"
// @Success      200  {object}  response.Notified
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tickets/{number}/sell [put]
// @Security     BearerAuth
func (h *TicketHandler) HandleSellTicket(ctx *gin.Context) {
	number := ctx.Param("number")

	var req request.SellTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	ticket, owner, notification, err := h.sales.Sell(ctx.Request.Context(), number, req.OwnerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTicketNotFound):
			response.RenderErr(ctx, response.ErrNotFound("ticket", "number", number))
		case errors.Is(err, service.ErrCustomerNotFound):
			response.RenderErr(ctx, response.ErrNotFound("customer", "id", req.OwnerID))
		case errors.Is(err, service.ErrTicketSold):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrTicketSold))
		default:
			err = fmt.Errorf("HandleSellTicket -> h.sales.Sell -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	response.OKNotified(ctx, response.TicketWithOwner{Ticket: ticket, Owner: &owner}, notification)
}

// HandleReserveTicket godoc
// @Summary      Reserve a ticket, optionally for a customer
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        number  path  string                        true   "ticket number"
// @Param        input   body  request.ReserveTicketRequest  false  "optional owner"
// @Success      200  {object}  response.Envelope
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tickets/{number}/reserve [put]
// @Security     BearerAuth
func (h *TicketHandler) HandleReserveTicket(ctx *gin.Context) {
	number := ctx.Param("number")

	// The body is optional; a missing one surfaces as io.EOF regardless of
	// whether the request advertises a Content-Length.
	var req request.ReserveTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	ticket, err := h.sales.Reserve(ctx.Request.Context(), number, req.OwnerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTicketNotFound):
			response.RenderErr(ctx, response.ErrNotFound("ticket", "number", number))
		case errors.Is(err, service.ErrTicketSold):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrTicketSold))
		default:
			err = fmt.Errorf("HandleReserveTicket -> h.sales.Reserve -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	response.OK(ctx, ticket)
}

// HandleReleaseTicket godoc
// @Summary      Return a ticket to available
// @Tags         tickets
// @Produce      json
// @Param        number  path  string  true  "ticket number"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tickets/{number}/release [put]
// @Security     BearerAuth
func (h *TicketHandler) HandleReleaseTicket(ctx *gin.Context) {
	number := ctx.Param("number")

	ticket, err := h.sales.Release(ctx.Request.Context(), number)
	if err != nil {
		if errors.Is(err, service.ErrTicketNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("ticket", "number", number))
			return
		}

		err = fmt.Errorf("HandleReleaseTicket -> h.sales.Release -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.OK(ctx, ticket)
}

// HandleSellBatch godoc
// @Summary      Sell several tickets to one customer
// @Description  Per-number failures are collected and returned; partial success is a normal outcome.
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        input  body  request.SellBatchRequest  true  "numbers and owner"
// @Success      200  {object}  response.Notified
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tickets/sell-batch [post]
// @Security     BearerAuth
func (h *TicketHandler) HandleSellBatch(ctx *gin.Context) {
	var req request.SellBatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, notification, err := h.sales.SellBatch(ctx.Request.Context(), req.Numbers, req.OwnerID)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("customer", "id", req.OwnerID))
			return
		}

		err = fmt.Errorf("HandleSellBatch -> h.sales.SellBatch -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.OKNotified(ctx, result, notification)
}

func (h *TicketHandler) withOwner(ticket domain.Ticket) response.TicketWithOwner {
	result := response.TicketWithOwner{Ticket: ticket}
	if ticket.OwnerID == "" {
		return result
	}

	if owner, err := h.owners.FindByID(ticket.OwnerID); err == nil {
		result.Owner = &owner
	}

	return result
}

func filterTickets(tickets []domain.Ticket, keep func(domain.Ticket) bool) []domain.Ticket {
	filtered := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if keep(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
