package v1

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rifasoft/raffle-admin/internal/domain"
)

type stubPrintConfig struct {
	conf domain.RaffleConfig
}

func (s *stubPrintConfig) Get() (domain.RaffleConfig, error) {
	return s.conf, nil
}

func newPrintRouter(tickets *stubTickets, owners *stubOwners, conf domain.RaffleConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewPrintHandler(tickets, owners, &stubPrintConfig{conf: conf}, "https://rifas.example.com")

	router := gin.New()
	router.GET("/print/:number", handler.HandlePrintTicket)

	return router
}

func TestHandlePrintTicket(t *testing.T) {
	tickets := &stubTickets{tickets: map[string]domain.Ticket{
		"0042": {Number: "0042", Barcode: "RIFA-0042", Status: domain.TicketSold, OwnerID: "c1"},
	}}
	owners := &stubOwners{customers: map[string]domain.Customer{
		"c1": {ID: "c1", FullName: "María Pérez"},
	}}
	router := newPrintRouter(tickets, owners, domain.DefaultRaffleConfig())

	resp := doRequest(t, router, http.MethodGet, "/print/0042", "")

	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Data struct {
			Ticket struct {
				Number string `json:"number"`
			} `json:"ticket"`
			Owner *struct {
				FullName string `json:"fullName"`
			} `json:"owner"`
			Raffle struct {
				Name  string `json:"nombreRifa"`
				Price int64  `json:"precioBoleta"`
			} `json:"raffle"`
			QRURL     string `json:"qrUrl"`
			QRDataURL string `json:"qrDataUrl"`
			Barcode   string `json:"barcode"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.Equal(t, "0042", body.Data.Ticket.Number)
	require.NotNil(t, body.Data.Owner)
	assert.Equal(t, "María Pérez", body.Data.Owner.FullName)
	assert.Equal(t, domain.DefaultRaffleConfig().RaffleName, body.Data.Raffle.Name)
	assert.Equal(t, int64(120000), body.Data.Raffle.Price)
	assert.Equal(t, "https://rifas.example.com/boleta/0042", body.Data.QRURL)
	assert.True(t, strings.HasPrefix(body.Data.QRDataURL, "data:image/png;base64,"))
	assert.Equal(t, "RIFA-0042", body.Data.Barcode)
}

func TestHandlePrintTicket_UnownedTicketHasNilOwner(t *testing.T) {
	tickets := &stubTickets{tickets: map[string]domain.Ticket{
		"0001": {Number: "0001", Barcode: "RIFA-0001", Status: domain.TicketAvailable},
	}}
	router := newPrintRouter(tickets, &stubOwners{}, domain.DefaultRaffleConfig())

	resp := doRequest(t, router, http.MethodGet, "/print/0001", "")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"owner":null`)
}

func TestHandlePrintTicket_NotFound(t *testing.T) {
	router := newPrintRouter(&stubTickets{}, &stubOwners{}, domain.DefaultRaffleConfig())

	resp := doRequest(t, router, http.MethodGet, "/print/9999", "")

	require.Equal(t, http.StatusNotFound, resp.Code)
}
