package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/somnolab/hypnogram-backend/internal/platform/logger"
	"github.com/somnolab/hypnogram-backend/internal/sim"
)

// Slot names one of the two side-by-side comparison profiles.
type Slot string

const (
	SlotA Slot = "a"
	SlotB Slot = "b"
)

var (
	ErrNotFound    = errors.New("session: not found")
	ErrUnknownSlot = errors.New("session: unknown profile slot")
)

// Profile is one comparison column: its configuration and the cached result
// of the last generation. Only the most recent result is kept; there is no
// history.
type Profile struct {
	Config    sim.Configuration     `json:"config"`
	Seed      int64                 `json:"seed"`
	Result    *sim.SimulationResult `json:"result"`
	UpdatedAt time.Time             `json:"updated_at"`
}

type Session struct {
	ID        uuid.UUID         `json:"id"`
	Profiles  map[Slot]*Profile `json:"profiles"`
	CreatedAt time.Time         `json:"created_at"`
}

// clone copies the session so callers can read it after the store lock is
// released. Profile values are replaced wholesale and never mutated in place,
// so copying the map is enough.
func (s *Session) clone() *Session {
	cp := &Session{
		ID:        s.ID,
		Profiles:  make(map[Slot]*Profile, len(s.Profiles)),
		CreatedAt: s.CreatedAt,
	}
	for slot, p := range s.Profiles {
		cp.Profiles[slot] = p
	}
	return cp
}

// Store keeps comparison sessions in memory. Regenerating one slot never
// touches the other slot's cached result.
type Store struct {
	mu       sync.RWMutex
	log      *logger.Logger
	engine   *sim.Engine
	sessions map[uuid.UUID]*Session
}

func NewStore(log *logger.Logger, engine *sim.Engine) *Store {
	return &Store{
		log:      log.With("component", "session-store"),
		engine:   engine,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Create opens a session with both slots generated from the same starting
// configuration, each under its own seed.
func (s *Store) Create(cfg sim.Configuration) (*Session, error) {
	sess := &Session{
		ID:        uuid.New(),
		Profiles:  make(map[Slot]*Profile, 2),
		CreatedAt: time.Now().UTC(),
	}
	for _, slot := range []Slot{SlotA, SlotB} {
		p, err := s.generate(cfg, 0)
		if err != nil {
			return nil, err
		}
		sess.Profiles[slot] = p
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	cp := sess.clone()
	s.mu.Unlock()

	s.log.Info("session created", "session_id", sess.ID.String())
	return cp, nil
}

// Get returns a snapshot of the session. Handing out the live pointer would
// let the caller read the profile map while a concurrent update writes it.
func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess.clone(), nil
}

// UpdateProfile replaces one slot's configuration and regenerates only that
// slot. Seed 0 means "fresh random night"; any other value is reproducible.
func (s *Store) UpdateProfile(id uuid.UUID, slot Slot, cfg sim.Configuration, seed int64) (*Profile, error) {
	if slot != SlotA && slot != SlotB {
		return nil, ErrUnknownSlot
	}

	p, err := s.generate(cfg, seed)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	sess.Profiles[slot] = p

	s.log.Debug("profile regenerated", "session_id", id.String(), "slot", string(slot))
	return p, nil
}

func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *Store) generate(cfg sim.Configuration, seed int64) (*Profile, error) {
	var (
		res *sim.SimulationResult
		err error
	)
	if seed != 0 {
		res, err = s.engine.GenerateSeeded(cfg, seed)
	} else {
		res, err = s.engine.Generate(cfg)
	}
	if err != nil {
		return nil, err
	}
	return &Profile{
		Config:    cfg,
		Seed:      seed,
		Result:    res,
		UpdatedAt: time.Now().UTC(),
	}, nil
}
