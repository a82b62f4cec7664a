package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fekuna/omnipos-register-service/internal/storage"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Options struct {
	SeedDemoData bool
	BootstrapPIN string
	// PINHashCost is the bcrypt cost for seeded accounts. Zero means
	// bcrypt.DefaultCost.
	PINHashCost int
	Location    *time.Location
	Clock       func() time.Time
	// OnPersistError receives every failed save. Failures are never retried.
	OnPersistError func(key string, err error)
}

// Store owns the register state. All writes go through Update, which works
// on a private copy and swaps it in only when the update succeeds.
type Store struct {
	mu   sync.RWMutex
	data *Data

	// persistMu keeps saves in commit order without holding mu during I/O.
	persistMu sync.Mutex
	kv        storage.KV
	logger    logger.ZapLogger
	opts      Options

	obsMu     sync.Mutex
	observers map[int]func(keys []string)
	nextObs   int
}

func New(kv storage.KV, log logger.ZapLogger, opts Options) *Store {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.PINHashCost == 0 {
		opts.PINHashCost = bcrypt.DefaultCost
	}
	d := &Data{Settings: DefaultSettings()}
	d.normalize()
	return &Store{
		data:      d,
		kv:        kv,
		logger:    log,
		opts:      opts,
		observers: make(map[int]func(keys []string)),
	}
}

// Now is the store clock in the store timezone.
func (s *Store) Now() time.Time {
	return s.opts.Clock().In(s.opts.Location)
}

func (s *Store) Location() *time.Location {
	return s.opts.Location
}

// Load reads every document. Keys that were never saved take their built-in
// defaults; read or decode failures abort the load.
func (s *Store) Load(ctx context.Context) error {
	now := s.Now()
	var defaults *Data
	var err error
	if s.opts.SeedDemoData {
		defaults, err = demoData(now, s.opts.PINHashCost)
	} else {
		defaults, err = emptyData(now, s.opts.BootstrapPIN, s.opts.PINHashCost)
	}
	if err != nil {
		return fmt.Errorf("build defaults: %w", err)
	}

	loaded := defaults.Clone()
	for _, key := range AllKeys {
		raw, err := s.kv.Load(ctx, key)
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug("document absent, using default", zap.String("key", key))
			continue
		}
		if err != nil {
			return fmt.Errorf("load %s: %w", key, err)
		}
		if key == KeyProductIngredients {
			// decoding into a non-nil map would merge with the defaults
			loaded.Recipes = nil
		}
		if err := json.Unmarshal(raw, loaded.doc(key)); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
	}
	loaded.normalize()
	if len(loaded.Users) == 0 {
		loaded.Users = defaults.Users
	}

	s.mu.Lock()
	s.data = loaded
	s.mu.Unlock()

	s.logger.Info("register state loaded",
		zap.Int("products", len(loaded.Products)),
		zap.Int("transactions", len(loaded.Transactions)),
	)
	s.notify(AllKeys)
	return nil
}

// View runs fn against the live state under the read lock. fn must not
// modify or retain d.
func (s *Store) View(fn func(d *Data)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

// Tx is the working copy handed to an Update function.
type Tx struct {
	*Data
	now   time.Time
	dirty map[string]struct{}
}

// Touch marks documents that must be persisted when the update commits.
func (t *Tx) Touch(keys ...string) {
	for _, k := range keys {
		t.dirty[k] = struct{}{}
	}
}

// Now is the update timestamp, fixed for the whole update.
func (t *Tx) Now() time.Time { return t.now }

// Update applies fn atomically. If fn returns an error nothing changes.
// Otherwise the new state becomes visible, touched documents are saved
// best-effort, and observers are notified.
func (s *Store) Update(ctx context.Context, fn func(tx *Tx) error) error {
	s.mu.Lock()
	tx := &Tx{Data: s.data.Clone(), now: s.Now(), dirty: make(map[string]struct{})}
	if err := fn(tx); err != nil {
		s.mu.Unlock()
		return err
	}
	s.data = tx.Data

	keys := make([]string, 0, len(tx.dirty))
	for _, k := range AllKeys {
		if _, ok := tx.dirty[k]; ok {
			keys = append(keys, k)
		}
	}

	s.persistMu.Lock()
	s.mu.Unlock()
	s.persist(context.WithoutCancel(ctx), tx.Data, keys)
	s.persistMu.Unlock()

	if len(keys) > 0 {
		s.notify(keys)
	}
	return nil
}

// persist saves snapshot documents. snapshot is no longer written to once it
// has been swapped in, so it is safe to read without mu.
func (s *Store) persist(ctx context.Context, snapshot *Data, keys []string) {
	for _, key := range keys {
		raw, err := json.Marshal(snapshot.doc(key))
		if err == nil {
			err = s.kv.Save(ctx, key, raw)
		}
		if err != nil {
			s.logger.Error("failed to persist document", zap.String("key", key), zap.Error(err))
			if s.opts.OnPersistError != nil {
				s.opts.OnPersistError(key, err)
			}
		}
	}
}

// Subscribe registers fn to be called with the changed keys after every
// committed update. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(keys []string)) func() {
	s.obsMu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.obsMu.Unlock()

	return func() {
		s.obsMu.Lock()
		delete(s.observers, id)
		s.obsMu.Unlock()
	}
}

func (s *Store) notify(keys []string) {
	s.obsMu.Lock()
	fns := make([]func([]string), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.obsMu.Unlock()

	for _, fn := range fns {
		fn(keys)
	}
}
