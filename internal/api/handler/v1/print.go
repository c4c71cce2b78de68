package v1

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rifasoft/raffle-admin/internal/api/handler/v1/response"
	"github.com/rifasoft/raffle-admin/internal/domain"
	"github.com/rifasoft/raffle-admin/internal/qr"
	"github.com/rifasoft/raffle-admin/internal/repository"
)

type PrintConfigSource interface {
	Get() (domain.RaffleConfig, error)
}

// PrintHandler assembles everything a printable ticket needs in one
// response so the client renders it without further calls.
type PrintHandler struct {
	tickets TicketRepository
	owners  OwnerLookup
	config  PrintConfigSource
	baseURL string
}

func NewPrintHandler(tickets TicketRepository, owners OwnerLookup, config PrintConfigSource, baseURL string) *PrintHandler {
	return &PrintHandler{
		tickets: tickets,
		owners:  owners,
		config:  config,
		baseURL: baseURL,
	}
}

type printPayload struct {
	Ticket    domain.Ticket    `json:"ticket"`
	Owner     *domain.Customer `json:"owner"`
	Raffle    printRaffle      `json:"raffle"`
	QRURL     string           `json:"qrUrl"`
	QRDataURL string           `json:"qrDataUrl"`
	Barcode   string           `json:"barcode"`
}

type printRaffle struct {
	Name      string `json:"nombreRifa"`
	Price     int64  `json:"precioBoleta"`
	DrawDate  string `json:"fechaSorteo"`
	Prize     string `json:"premio"`
	Organizer string `json:"organizador"`
	Phone     string `json:"telefono"`
	Logo      string `json:"logo"`
}

// HandlePrintTicket godoc
// @Summary      Printable view of a ticket
// @Description  Returns the ticket with its owner, the raffle details and a QR code as a data URL.
// @Tags         tickets
// @Produce      json
// @Param        number  path  string  true  "ticket number"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /print/{number} [get]
func (h *PrintHandler) HandlePrintTicket(ctx *gin.Context) {
	number := ctx.Param("number")

	ticket, err := h.tickets.FindByNumber(number)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("ticket", "number", number))
			return
		}

		err = fmt.Errorf("HandlePrintTicket -> h.tickets.FindByNumber -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	conf, err := h.config.Get()
	if err != nil {
		err = fmt.Errorf("HandlePrintTicket -> h.config.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	payload := printPayload{
		Ticket: ticket,
		Raffle: printRaffle{
			Name:      conf.RaffleName,
			Price:     conf.TicketPrice,
			DrawDate:  conf.DrawDate,
			Prize:     conf.Prize,
			Organizer: conf.Organizer,
			Phone:     conf.Phone,
			Logo:      conf.Logo,
		},
		QRURL:   h.baseURL + "/boleta/" + ticket.Number,
		Barcode: ticket.Barcode,
	}

	if ticket.OwnerID != "" {
		owner, err := h.owners.FindByID(ticket.OwnerID)
		if err == nil {
			payload.Owner = &owner
		} else if !errors.Is(err, repository.ErrCustomerNotFound) {
			err = fmt.Errorf("HandlePrintTicket -> h.owners.FindByID -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}
	}

	dataURL, err := qr.DataURL(payload.QRURL, 256)
	if err != nil {
		// The ticket still prints without the QR image.
		zap.L().Warn("qr encode failed", zap.String("number", ticket.Number), zap.Error(err))
	} else {
		payload.QRDataURL = dataURL
	}

	response.OK(ctx, payload)
}
