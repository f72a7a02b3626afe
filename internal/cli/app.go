package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"docuquery/internal/api"
	"docuquery/internal/cloudsync"
	"docuquery/internal/common"
	"docuquery/internal/config"
	"docuquery/internal/localdb"
	"docuquery/internal/logging"
	"docuquery/internal/store"
)

// App wires the stores, the API client and the local cache behind the
// interactive shell. One App instance serves one user session.
type App struct {
	config *config.Config
	log    logging.Logger
	db     *localdb.Repositories

	api   *api.HTTPClient
	auth  *store.AuthStore
	docs  *store.DocumentStore
	prefs *store.PrefStore

	uploader cloudsync.Uploader
	reader   *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.New(cfg.LogLevel)

	db, err := localdb.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open local cache: %w", err)
	}

	apiClient := api.NewHTTPClient(cfg.ServerBaseURL)
	apiClient.SetTimeout(cfg.RequestTimeout)

	auth := store.NewAuthStore(apiClient, db.LocalData, log)
	apiClient.SetTokenSource(auth.Token)
	apiClient.SetOnUnauthorized(auth.HandleUnauthorized)

	docs := store.NewDocumentStore(apiClient, db.Documents, db.Messages, log)
	prefs := store.NewPrefStore(db.LocalData)

	uploader, err := cloudsync.NewUploaderFromConfig(ctx, cfg.Sync)
	if err != nil && !errors.Is(err, common.ErrSyncDisabled) {
		db.Close()
		return nil, fmt.Errorf("configure cloud sync: %w", err)
	}

	if err := auth.Init(ctx); err != nil {
		log.Warn(ctx, "could not restore saved session", "err", err)
	}

	return &App{
		config:   cfg,
		log:      log,
		db:       db,
		api:      apiClient,
		auth:     auth,
		docs:     docs,
		prefs:    prefs,
		uploader: uploader,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}
