package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rifasoft/raffle-admin/internal/api"
	"github.com/rifasoft/raffle-admin/internal/config"
	"github.com/rifasoft/raffle-admin/internal/db"
	"github.com/rifasoft/raffle-admin/internal/logger"
	"github.com/rifasoft/raffle-admin/internal/repository"
	"github.com/rifasoft/raffle-admin/internal/repository/dao"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var gormDB *gorm.DB
	if dbURL != "" {
		gormDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		gormDB, err = db.OpenSQLite(conf.Store.SQLitePath)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	store, err := dao.NewStore(gormDB)
	if err != nil {
		return fmt.Errorf("failed to initialize store -> %w", err)
	}

	if err = provisionTickets(store); err != nil {
		return fmt.Errorf("failed to provision tickets -> %w", err)
	}

	s, err := api.NewServer(conf, store)
	if err != nil {
		return fmt.Errorf("failed to initialize server -> %w", err)
	}

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

// provisionTickets fills an empty inventory with the full numbered range
// from the raffle configuration. A non-empty inventory is left untouched.
func provisionTickets(store *dao.Store) error {
	tickets := repository.NewTicketRepository(store)
	raffle := repository.NewRaffleConfigRepository(store)

	existing, err := tickets.All()
	if err != nil {
		return fmt.Errorf("tickets.All -> %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	conf, err := raffle.Get()
	if err != nil {
		return fmt.Errorf("raffle.Get -> %w", err)
	}

	created, err := tickets.Provision(conf.TotalTickets)
	if err != nil {
		return fmt.Errorf("tickets.Provision -> %w", err)
	}

	zap.L().Info("ticket inventory provisioned", zap.Int("total", len(created)))

	return nil
}
