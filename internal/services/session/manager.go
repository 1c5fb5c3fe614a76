// Package session manages one document database connection and the selected
// database/collection pair, with idempotent provisioning and single-field CRUD.
//
// The manager moves through three states: Disconnected, Connected (after
// Connect) and Targeted (after SelectTarget). Operations invoked in an earlier
// state fail with a precondition error and never reach the server.
//
// The selected target is guarded by a lock and snapshotted at the start of
// every call, so concurrent SelectTarget calls are last-write-wins between
// operations. Delete and update perform a find followed by a write without a
// transaction; the document may change or disappear in between.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/unifiedui/docsession/internal/core/cache"
	"github.com/unifiedui/docsession/internal/core/docdb"
	domainerrors "github.com/unifiedui/docsession/internal/domain/errors"
)

// State is the lifecycle state of a Manager.
type State int

const (
	// StateDisconnected means there is no usable connection.
	StateDisconnected State = iota
	// StateConnected means a connection exists but no target is selected.
	StateConnected
	// StateTargeted means a connection exists and a target is selected.
	StateTargeted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateTargeted:
		return "targeted"
	default:
		return "disconnected"
	}
}

// Dialer opens a document database connection for an address.
type Dialer func(ctx context.Context, address string) (docdb.Client, error)

// Config holds the configuration for a session manager.
type Config struct {
	// Address is the connection string, e.g. mongodb://localhost:27017.
	Address string `validate:"required,uri"`
	// Database and Collection, when both set, select the target on connect.
	Database   string
	Collection string

	// Cache enables read-through caching of FindOneByField. Optional.
	Cache    cache.Client
	CacheTTL time.Duration

	Logger *zerolog.Logger
}

var (
	validate = validator.New()

	errConfigRequired = errors.New("config is required")
	errDialerRequired = errors.New("dialer is required")
)

// Manager implements Store on top of a docdb.Client.
type Manager struct {
	client docdb.Client
	cache  *documentCache
	logger zerolog.Logger

	mu         sync.RWMutex
	database   string
	collection string
	closed     bool
}

// target is a snapshot of the selected database and collection.
type target struct {
	database   string
	collection string
}

// Connect dials the configured address and returns a connected manager.
// Any dial or address failure is returned as a connection error.
func Connect(ctx context.Context, cfg *Config, dial Dialer) (*Manager, error) {
	if cfg == nil {
		return nil, domainerrors.NewConnectionError("", errConfigRequired)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, domainerrors.NewConnectionError(cfg.Address, err)
	}
	if dial == nil {
		return nil, domainerrors.NewConnectionError(cfg.Address, errDialerRequired)
	}

	client, err := dial(ctx, cfg.Address)
	if err != nil {
		return nil, domainerrors.NewConnectionError(cfg.Address, err)
	}

	m := NewManager(client, cfg)
	m.logger.Info().Str("address", cfg.Address).Msg("connected to document database")
	return m, nil
}

// NewManager wraps an existing client. cfg may be nil.
func NewManager(client docdb.Client, cfg *Config) *Manager {
	if cfg == nil {
		cfg = &Config{}
	}

	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	logger = logger.With().Str("component", "session").Logger()

	m := &Manager{
		client: client,
		logger: logger,
	}
	if cfg.Cache != nil {
		m.cache = newDocumentCache(cfg.Cache, cfg.CacheTTL, logger)
	}
	if cfg.Database != "" && cfg.Collection != "" {
		m.SelectTarget(cfg.Database, cfg.Collection)
	}
	return m
}

// SelectTarget sets the database and collection. No I/O, no existence check.
func (m *Manager) SelectTarget(database, collection string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.database = database
	m.collection = collection
}

// Target returns the selected database and collection.
func (m *Manager) Target() (string, string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.database, m.collection
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stateLocked()
}

func (m *Manager) stateLocked() State {
	switch {
	case m.client == nil || m.closed:
		return StateDisconnected
	case m.database == "" || m.collection == "":
		return StateConnected
	default:
		return StateTargeted
	}
}

// requireConnected fails fast unless the manager has a usable connection.
func (m *Manager) requireConnected(operation string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.stateLocked() == StateDisconnected {
		return domainerrors.NewPreconditionError(operation, StateConnected.String())
	}
	return nil
}

// requireTarget fails fast unless a target is selected and returns a snapshot of it.
func (m *Manager) requireTarget(operation string) (target, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.stateLocked() != StateTargeted {
		return target{}, domainerrors.NewPreconditionError(operation, StateTargeted.String())
	}
	return target{database: m.database, collection: m.collection}, nil
}

func (m *Manager) collectionFor(t target) docdb.Collection {
	return m.client.Database(t.database).Collection(t.collection)
}

// Ping checks the underlying connection.
func (m *Manager) Ping(ctx context.Context) error {
	if err := m.requireConnected("Ping"); err != nil {
		return err
	}
	return m.client.Ping(ctx)
}

// Close releases the connection. Later operations fail with a precondition error.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	if m.client == nil || m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	if err := m.client.Close(ctx); err != nil {
		return domainerrors.NewConnectionError("", err)
	}
	m.logger.Info().Msg("disconnected from document database")
	return nil
}
