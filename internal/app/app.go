// Package app wires configuration, storage, hosting and the HTTP surface
// into one runnable service.
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/tokamak-network/reportgen/internal/archive"
	"github.com/tokamak-network/reportgen/internal/config"
	"github.com/tokamak-network/reportgen/internal/hosting"
	"github.com/tokamak-network/reportgen/internal/render"
	"github.com/tokamak-network/reportgen/internal/server"
)

type App struct {
	server *server.Server
	store  *archive.Store
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Dependencies
	members, err := render.LoadMembers(cfg.MembersPath)
	if err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}
	logo := render.LoadLogoDataURI(cfg.LogoDir)

	var uploader *hosting.Uploader
	if cfg.Hosting.Enabled {
		uploader, err = hosting.New(cfg.Hosting)
		if err != nil {
			log.Printf("report hosting disabled: %v", err)
			uploader = nil
		}
	}

	store := archive.NewFromConfig(cfg.Archive)
	hub := server.NewHub()

	// Routing & Server
	handler := server.NewHandler(cfg, members, logo, uploader, store, hub)
	mux := server.NewMux(handler, hub)
	srv := server.New(cfg.Port, mux)

	return &App{
		server: srv,
		store:  store,
	}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if cerr := a.store.Close(); err == nil {
		err = cerr
	}
	return err
}
