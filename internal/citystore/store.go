package citystore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexivanou/worldwise/internal/model"
	"go.uber.org/zap"
)

// Remote is the backing city store the Store talks to
type Remote interface {
	ListCities(ctx context.Context) ([]model.City, error)
	GetCity(ctx context.Context, id int) (*model.City, error)
	CreateCity(ctx context.Context, draft model.Draft) (*model.City, error)
	DeleteCity(ctx context.Context, id int) error
}

var (
	errEmptyResponse = errors.New("empty response")
	errIDMismatch    = errors.New("response id does not match request")
)

type subscriber struct {
	id int
	fn func(State)
}

// Store owns the canonical city collection. All mutation goes through
// Reduce; the Store is the only writer of its State.
//
// Operations never return errors: a failed remote call ends in a Rejected
// transition carrying a per-operation message. Concurrent operations are
// not ordered against each other, the last transition to land wins.
type Store struct {
	remote Remote
	logger *zap.Logger

	// notifyMu orders whole transitions, so subscribers see snapshots in
	// the order they were produced. It is held while subscribers run.
	notifyMu sync.Mutex

	mu     sync.RWMutex
	state  State
	subs   []subscriber
	nextID int

	startOnce sync.Once
}

// New creates a store in its initial state. Call Start to run the bulk load.
func New(remote Remote, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		remote: remote,
		logger: logger.Named("citystore"),
		state:  InitialState(),
	}
}

// Start performs the initial LoadAll. Only the first call has any effect.
func (s *Store) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		s.LoadAll(ctx)
	})
}

// State returns the current snapshot
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers fn to be called with every new snapshot.
// fn runs on the goroutine that issued the operation. It may read State but
// must not start store operations synchronously.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// dispatch applies a to the state and notifies subscribers
func (s *Store) dispatch(a Action) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(next)
	}
}

// LoadAll fetches the full city collection
func (s *Store) LoadAll(ctx context.Context) {
	s.run(ctx, "load_all", MsgLoadAllFailed, ErrLoadAllFailed, func(ctx context.Context) (Action, error) {
		cities, err := s.remote.ListCities(ctx)
		if err != nil {
			return nil, err
		}
		if cities == nil {
			cities = []model.City{}
		}
		return CitiesLoaded{Cities: cities}, nil
	})
}

// GetCity makes the city with id current. Selecting the city that is
// already current issues no request and no transition.
func (s *Store) GetCity(ctx context.Context, id int) {
	current := s.State().CurrentCity
	if !current.IsEmpty() && current.ID == id {
		skippedTotal.Inc()
		return
	}

	s.run(ctx, "get_city", MsgLoadFailed, ErrSingleCityLoadFailed, func(ctx context.Context) (Action, error) {
		city, err := s.remote.GetCity(ctx, id)
		if err != nil {
			return nil, err
		}
		if city == nil || city.IsEmpty() {
			return nil, errEmptyResponse
		}
		if city.ID != id {
			return nil, fmt.Errorf("%w: got %d, want %d", errIDMismatch, city.ID, id)
		}
		return CityLoaded{City: *city}, nil
	})
}

// CreateCity persists draft and appends the stored record
func (s *Store) CreateCity(ctx context.Context, draft model.Draft) {
	s.run(ctx, "create_city", MsgCreateFailed, ErrCreateFailed, func(ctx context.Context) (Action, error) {
		if err := draft.Validate(); err != nil {
			return nil, err
		}
		city, err := s.remote.CreateCity(ctx, draft)
		if err != nil {
			return nil, err
		}
		if city == nil || city.IsEmpty() {
			return nil, errEmptyResponse
		}
		return CityCreated{City: *city}, nil
	})
}

// DeleteCity removes the city with id. A zero id is ignored.
func (s *Store) DeleteCity(ctx context.Context, id int) {
	if id == 0 {
		return
	}

	s.run(ctx, "delete_city", MsgDeleteFailed, ErrDeleteFailed, func(ctx context.Context) (Action, error) {
		if err := s.remote.DeleteCity(ctx, id); err != nil {
			return nil, err
		}
		return CityDeleted{ID: id}, nil
	})
}

func (s *Store) run(ctx context.Context, op, msg string, kind error, call func(context.Context) (Action, error)) {
	s.dispatch(Loading{})

	start := time.Now()
	next, err := call(ctx)
	observe(op, start, err)

	if err != nil {
		s.logger.Warn("Operation rejected",
			zap.String("operation", op),
			zap.Error(fmt.Errorf("%w: %w", kind, err)),
		)
		s.dispatch(Rejected{Message: msg})
		return
	}

	s.dispatch(next)
}
