package v1

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/rifasoft/raffle-admin/internal/api/handler/v1/request"
	"github.com/rifasoft/raffle-admin/internal/api/handler/v1/response"
	"github.com/rifasoft/raffle-admin/internal/domain"
	"github.com/rifasoft/raffle-admin/internal/repository"
	"github.com/rifasoft/raffle-admin/internal/service"
)

type CustomerService interface {
	List(query string) ([]service.CustomerWithTickets, error)
	Get(id string) (service.CustomerWithTickets, error)
	Create(customer domain.Customer) (domain.Customer, error)
	Update(id string, apply func(*domain.Customer)) (domain.Customer, error)
	Delete(ctx context.Context, id string) (int, error)
}

type CustomerHandler struct {
	svc CustomerService
}

func NewCustomerHandler(svc CustomerService) *CustomerHandler {
	return &CustomerHandler{
		svc: svc,
	}
}

// HandleListCustomers godoc
// @Summary      List customers with their owned ticket numbers
// @Tags         customers
// @Produce      json
// @Param        search  query  string  false  "free text over name, national id, phone, email"
// @Param        page    query  int     false  "page (default 1)"
// @Param        limit   query  int     false  "page size (default 50)"
// @Success      200  {object}  response.Paginated
// @Failure      500  {object}  response.Err
// @Router       /customers [get]
// @Security     BearerAuth
func (h *CustomerHandler) HandleListCustomers(ctx *gin.Context) {
	customers, err := h.svc.List(ctx.Query("search"))
	if err != nil {
		err = fmt.Errorf("HandleListCustomers -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	page, limit := parsePagination(ctx)
	response.OKPage(ctx, paginate(customers, page, limit), page, limit, len(customers))
}

// HandleGetCustomer godoc
// @Summary      Get a customer with its tickets
// @Tags         customers
// @Produce      json
// @Param        id  path  string  true  "customer id"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /customers/{id} [get]
// @Security     BearerAuth
func (h *CustomerHandler) HandleGetCustomer(ctx *gin.Context) {
	id := ctx.Param("id")

	customer, err := h.svc.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("customer", "id", id))
			return
		}

		err = fmt.Errorf("HandleGetCustomer -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.OK(ctx, customer)
}

// HandleCreateCustomer godoc
// @Summary      Register a customer
// @Description  Rejects a duplicate national id with the existing record attached.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        input  body  request.CreateCustomerRequest  true  "customer"
// @Success      201  {object}  response.Envelope
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /customers [post]
// @Security     BearerAuth
func (h *CustomerHandler) HandleCreateCustomer(ctx *gin.Context) {
	var req request.CreateCustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.Create(domain.Customer{
		FullName:   req.FullName,
		NationalID: req.NationalID,
		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
	})
	if err != nil {
		var dup *repository.DuplicateCustomerError
		if errors.As(err, &dup) {
			response.RenderErr(ctx, response.ErrDuplicate(service.ErrNationalIDExists, dup.Existing))
			return
		}

		err = fmt.Errorf("HandleCreateCustomer -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.Created(ctx, created)
}

// HandleUpdateCustomer godoc
// @Summary      Update a customer's contact fields
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id     path  string                         true  "customer id"
// @Param        input  body  request.UpdateCustomerRequest  true  "fields"
// @Success      200  {object}  response.Envelope
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /customers/{id} [put]
// @Security     BearerAuth
func (h *CustomerHandler) HandleUpdateCustomer(ctx *gin.Context) {
	id := ctx.Param("id")

	var req request.UpdateCustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.Update(id, func(c *domain.Customer) {
		c.FullName = req.FullName
		c.Phone = req.Phone
		c.Email = req.Email
		c.Address = req.Address
	})
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("customer", "id", id))
			return
		}

		err = fmt.Errorf("HandleUpdateCustomer -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.OK(ctx, updated)
}

// HandleDeleteCustomer godoc
// @Summary      Delete a customer
// @Description  Releases every ticket the customer owns before removing the record.
// @Tags         customers
// @Produce      json
// @Param        id  path  string  true  "customer id"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /customers/{id} [delete]
// @Security     BearerAuth
func (h *CustomerHandler) HandleDeleteCustomer(ctx *gin.Context) {
	id := ctx.Param("id")

	released, err := h.svc.Delete(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("customer", "id", id))
			return
		}

		err = fmt.Errorf("HandleDeleteCustomer -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.OK(ctx, gin.H{"deleted": true, "releasedTickets": released})
}
