package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rifasoft/raffle-admin/internal/domain"
)

func TestRaffleConfig_GetReturnsDefaults(t *testing.T) {
	repo := NewRaffleConfigRepository(newTestStore(t))

	conf, err := repo.Get()
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultRaffleConfig(), conf)
}

func TestRaffleConfig_UpdateMergesOnlySuppliedFields(t *testing.T) {
	repo := NewRaffleConfigRepository(newTestStore(t))

	defaults := domain.DefaultRaffleConfig()

	updated, err := repo.Update(map[string]any{
		"nombreRifa":   "Rifa de Prueba",
		"precioBoleta": 50000,
	})
	require.NoError(t, err)

	assert.Equal(t, "Rifa de Prueba", updated.RaffleName)
	assert.Equal(t, int64(50000), updated.TicketPrice)
	assert.Equal(t, defaults.Prize, updated.Prize)
	assert.Equal(t, defaults.TotalTickets, updated.TotalTickets)
	assert.Equal(t, defaults.DrawDate, updated.DrawDate)
}

func TestRaffleConfig_UpdatePersistsAcrossReload(t *testing.T) {
	store := newTestStore(t)
	repo := NewRaffleConfigRepository(store)

	_, err := repo.Update(map[string]any{"smtpHost": "smtp.example.com", "smtpUser": "rifas"})
	require.NoError(t, err)

	store.ClearCache()

	conf, err := repo.Get()
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com", conf.SMTPHost)
	assert.Equal(t, "rifas", conf.SMTPUser)
	// Defaults still merged under the stored overrides.
	assert.Equal(t, domain.DefaultRaffleConfig().TicketPrice, conf.TicketPrice)
}

func TestRaffleConfig_UpdateIgnoresUnknownKeys(t *testing.T) {
	repo := NewRaffleConfigRepository(newTestStore(t))

	updated, err := repo.Update(map[string]any{"noExiste": "x"})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultRaffleConfig(), updated)
}
