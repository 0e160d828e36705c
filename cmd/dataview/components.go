package main

import (
	"dataview/adapters/analyzer"
	"dataview/app"
	"dataview/internal"
	"dataview/internal/config"
	"dataview/internal/session"
)

// components wires the client stack the way every subcommand needs it.
type components struct {
	cfg      *config.Config
	client   *analyzer.Client
	store    *session.Store
	pipeline *app.UploadPipeline
	history  *app.HistoryCache
}

func newComponents() (*components, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := internal.DefaultLogger
	client := analyzer.NewClient(cfg.Service.BaseURL, cfg.Service.Timeout)
	store := session.NewStore(cfg.Session.FilePath, client, logger)
	store.Restore()

	pipeline := app.NewUploadPipeline(client, logger)
	history := app.NewHistoryCache(client, logger)
	pipeline.AttachHistory(history)

	return &components{
		cfg:      cfg,
		client:   client,
		store:    store,
		pipeline: pipeline,
		history:  history,
	}, nil
}
