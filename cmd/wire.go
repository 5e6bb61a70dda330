package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/bnema/container-portal-cli/internal/adapters/gateway/appsscript"
	"github.com/bnema/container-portal-cli/internal/adapters/render/dashboard"
	boltrepo "github.com/bnema/container-portal-cli/internal/adapters/repo/bolt"
	tomlrepo "github.com/bnema/container-portal-cli/internal/adapters/repo/toml"
	"github.com/bnema/container-portal-cli/internal/application"
	"github.com/bnema/container-portal-cli/internal/config"
	"github.com/bnema/container-portal-cli/internal/domain"
	"github.com/bnema/container-portal-cli/internal/logging"
	"github.com/bnema/container-portal-cli/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type app struct {
	config     config.Config
	httpClient *http.Client
	flags      rootFlags
}

type rootFlags struct {
	clientID string
	logLevel string
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg, err := config.Load(viper.New(), homeDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return &app{config: cfg, httpClient: http.DefaultClient}, nil
}

func (a *app) logLevel() string {
	if level := strings.TrimSpace(a.flags.logLevel); level != "" {
		return level
	}
	return a.config.Log.Level
}

// requestedClientID is the id given on the command line, else PORTAL_CLIENT_ID.
func (a *app) requestedClientID(args ...string) string {
	candidates := append(append([]string{}, args...), a.flags.clientID, a.config.ClientID)
	for _, candidate := range candidates {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// portal is everything one command run needs, bound to that command's streams.
type portal struct {
	logger     zerolog.Logger
	registry   *prometheus.Registry
	store      *application.Store
	session    *application.Session
	dispatcher *application.Dispatcher
	dashboard  *application.Dashboard
	board      *dashboard.Board
}

type portalOptions struct {
	// spinner shows a loading spinner on stderr while the session loads.
	spinner bool
}

func (a *app) newPortal(cmd *cobra.Command, opts portalOptions) (*portal, error) {
	logger, err := logging.New(cmd.ErrOrStderr(), a.logLevel(), a.config.Log.Format)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	metrics, err := appsscript.NewMetrics(registry)
	if err != nil {
		return nil, err
	}

	gateway, err := appsscript.NewClient(appsscript.Config{
		Endpoint:  a.config.API.Endpoint,
		Timeout:   a.config.API.Timeout,
		RateLimit: a.config.API.RateLimit,
	},
		appsscript.WithHTTPClient(a.httpClient),
		appsscript.WithMetrics(metrics),
		appsscript.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("wire portal gateway: %w", err)
	}

	identity, err := a.identityStore()
	if err != nil {
		return nil, err
	}

	var progress ports.Progress = ports.NoProgress{}
	if opts.spinner {
		progress = spinnerProgress{output: cmd.ErrOrStderr()}
	}

	store := application.NewStore(gateway, ports.SystemClock{}, logger)
	board := dashboard.NewBoard()
	dash := application.NewDashboard(store, dashboard.NewRenderer(), board)
	mutations := application.NewMutations(gateway, store, a.config.API.OrderAction, logger)

	session := application.NewSession(store, identity, newLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout()),
		application.WithProgress(progress),
		application.WithSessionLogger(logger),
		application.WithReadyHook(func(_ context.Context, _ domain.Snapshot) error {
			return dash.RenderAll()
		}),
	)

	return &portal{
		logger:     logger,
		registry:   registry,
		store:      store,
		session:    session,
		dispatcher: application.NewDispatcher(mutations, store, logger),
		dashboard:  dash,
		board:      board,
	}, nil
}

func (a *app) identityStore() (ports.IdentityStore, error) {
	switch a.config.Session.Backend {
	case config.BackendBolt:
		store, err := boltrepo.NewIdentityStore(a.config.Session.Path)
		if err != nil {
			return nil, fmt.Errorf("wire bolt session store: %w", err)
		}
		return store, nil
	default:
		store, err := tomlrepo.NewIdentityStore(a.config.Session.Path, ports.SystemClock{})
		if err != nil {
			return nil, fmt.Errorf("wire toml session store: %w", err)
		}
		return store, nil
	}
}
