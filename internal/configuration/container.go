package configuration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bolt162/buzzlink-app/internal/api"
	"github.com/bolt162/buzzlink-app/internal/session"
	"github.com/bolt162/buzzlink-app/internal/ws"
)

var ErrMissingIdentity = errors.New("missing identity: set identity.clerkId or BUZZLINK_CLERK_ID")

const syncTimeout = 10 * time.Second

type Container struct {
	Config  *Config
	Logger  *zap.Logger
	API     *api.Client
	Session *session.Session
}

// BuildContainer loads config, syncs the user profile with the backend to
// resolve the internal numeric id, and wires logger, REST client, connection,
// and session.
func BuildContainer(configPath string) (*Container, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if config.Identity.ClerkID == "" {
		return nil, ErrMissingIdentity
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	apiClient, err := api.NewClient(config.API.BaseURL, config.Identity.ClerkID, logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()
	self, err := apiClient.SyncUser(ctx, config.Identity.DisplayName, config.Identity.Email, "")
	if err != nil {
		return nil, fmt.Errorf("failed to sync user: %w", err)
	}

	conn, err := ws.NewConn(config.Socket.URL, self.ClerkID, logger)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:  config,
		Logger:  logger,
		API:     apiClient,
		Session: session.New(self, apiClient, conn, logger),
	}, nil
}

// Close gracefully shuts the session down and flushes the logger.
func (c *Container) Close() error {
	if c.Session != nil {
		c.Session.Close()
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	return nil
}
