package repository

import (
	"encoding/json"
	"fmt"

	"github.com/rifasoft/raffle-admin/internal/domain"
	"github.com/rifasoft/raffle-admin/internal/repository/dao"
)

const configDocument = "config"

// RaffleConfigRepository holds the singleton raffle configuration. Reads
// merge the persisted overrides over the defaults; updates merge only the
// supplied keys over the current value.
type RaffleConfigRepository struct {
	store *dao.Store
}

func NewRaffleConfigRepository(store *dao.Store) *RaffleConfigRepository {
	return &RaffleConfigRepository{
		store: store,
	}
}

func (r *RaffleConfigRepository) Get() (domain.RaffleConfig, error) {
	conf, err := dao.LoadDocument(r.store, configDocument, domain.DefaultRaffleConfig())
	if err != nil {
		return domain.RaffleConfig{}, fmt.Errorf("dao.LoadDocument -> %w", err)
	}

	return conf, nil
}

// Update overlays the supplied fields onto the current configuration and
// persists the result. Unknown keys are ignored.
func (r *RaffleConfigRepository) Update(fields map[string]any) (domain.RaffleConfig, error) {
	current, err := r.Get()
	if err != nil {
		return domain.RaffleConfig{}, err
	}

	patch, err := json.Marshal(fields)
	if err != nil {
		return domain.RaffleConfig{}, fmt.Errorf("encode config patch -> %w", err)
	}

	merged := current
	if err := json.Unmarshal(patch, &merged); err != nil {
		return domain.RaffleConfig{}, fmt.Errorf("apply config patch -> %w", err)
	}

	if err := dao.SaveDocument(r.store, configDocument, merged); err != nil {
		return domain.RaffleConfig{}, fmt.Errorf("dao.SaveDocument -> %w", err)
	}

	return merged, nil
}
