// Package progression holds the wizard's authoritative state: the catalog
// with its completion flags, the collected field data and the cursor. Every
// mutation goes through a Store command and is persisted immediately.
package progression

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/formwiz/internal/catalog"
	"github.com/abhisek/formwiz/internal/navigation"
	"github.com/abhisek/formwiz/internal/store"
)

// Options configures a Store. Only Catalog is required.
type Options struct {
	// Catalog is the static wizard definition. It is copied.
	Catalog catalog.Catalog

	Storage  Storage
	Router   Router
	Notifier Notifier
	Events   store.EventRepo
	Logger   *zap.Logger

	// SavedMessage returns the "Form Saved" description for a form id.
	SavedMessage func(formID string) string
}

// Store is the progression state machine for one wizard session. It is not
// safe for concurrent use.
type Store struct {
	static  catalog.Catalog
	catalog catalog.Catalog
	data    catalog.FieldMap
	cursor  navigation.Cursor

	storage      Storage
	router       Router
	notifier     Notifier
	events       store.EventRepo
	logger       *zap.Logger
	savedMessage func(string) string

	sessionID string
	closed    bool
}

// New creates a Store from the static catalog and restores any persisted
// snapshots. Missing or unreadable snapshots fall back to defaults.
func New(ctx context.Context, opts Options) (*Store, error) {
	if len(opts.Catalog) == 0 {
		return nil, errors.New("progression: empty catalog")
	}
	if err := opts.Catalog.Validate(); err != nil {
		return nil, fmt.Errorf("progression: %w", err)
	}

	s := &Store{
		static:       opts.Catalog.Clone(),
		storage:      opts.Storage,
		router:       opts.Router,
		notifier:     opts.Notifier,
		events:       opts.Events,
		logger:       opts.Logger,
		savedMessage: opts.SavedMessage,
		sessionID:    uuid.New().String(),
	}
	if s.router == nil {
		s.router = nopRouter{}
	}
	if s.notifier == nil {
		s.notifier = nopNotifier{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	s.logger = s.logger.With(zap.String("session_id", s.sessionID))

	s.catalog = s.static.Clone()
	s.data = catalog.FieldMap{}
	s.load(ctx)

	s.logger.Debug("progression store ready",
		zap.Float64("overall_progress", s.catalog.OverallProgress()),
		zap.Int("fields", len(s.data)),
	)
	return s, nil
}

// load restores both snapshots independently.
func (s *Store) load(ctx context.Context) {
	if s.storage == nil {
		return
	}

	if raw, ok := s.read(ctx, KeyFormCategories); ok {
		stored, err := DecodeCatalog(raw)
		if err != nil {
			s.logger.Warn("discarding stored catalog", zap.Error(err))
		} else {
			s.catalog = Reconcile(s.static, stored)
		}
	}

	if raw, ok := s.read(ctx, KeyFormData); ok {
		data, err := DecodeData(raw)
		if err != nil {
			s.logger.Warn("discarding stored form data", zap.Error(err))
		} else {
			s.data = data
		}
	}
}

func (s *Store) read(ctx context.Context, key string) ([]byte, bool) {
	raw, ok, err := s.storage.Load(ctx, key)
	if err != nil {
		s.logger.Warn("load snapshot failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return raw, ok
}

// persist writes both snapshots. Failures are logged; the in-memory state
// stays authoritative.
func (s *Store) persist(ctx context.Context) {
	if s.storage == nil {
		return
	}

	if raw, err := EncodeData(s.data); err != nil {
		s.logger.Error("encode form data", zap.Error(err))
	} else if err := s.storage.Save(ctx, KeyFormData, raw); err != nil {
		s.logger.Error("save snapshot failed", zap.String("key", KeyFormData), zap.Error(err))
	}

	if raw, err := EncodeCatalog(s.catalog); err != nil {
		s.logger.Error("encode catalog", zap.Error(err))
	} else if err := s.storage.Save(ctx, KeyFormCategories, raw); err != nil {
		s.logger.Error("save snapshot failed", zap.String("key", KeyFormCategories), zap.Error(err))
	}
}

// record appends a form event. Failures are logged only.
func (s *Store) record(ctx context.Context, data store.FormEventData) {
	if s.events == nil {
		return
	}
	data.SessionID = s.sessionID
	if err := s.events.AppendFormEvent(ctx, data); err != nil {
		s.logger.Warn("record form event failed", zap.String("action", data.Action), zap.Error(err))
	}
}

// guard reports whether the store still accepts commands.
func (s *Store) guard(op string) bool {
	if s.closed {
		s.logger.Warn("command on closed store ignored", zap.String("op", op))
		return false
	}
	return true
}

// Close disposes the store. Later commands are ignored.
func (s *Store) Close() {
	if !s.closed {
		s.closed = true
		s.logger.Debug("progression store closed")
	}
}

// SessionID returns the id stamped on this session's events.
func (s *Store) SessionID() string { return s.sessionID }
