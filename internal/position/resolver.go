package position

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/alexivanou/worldwise/internal/model"
	"go.uber.org/zap"
)

// Fallback is the world view shown before any coordinate is known
var Fallback = model.Position{Lat: 40, Lng: 0}

// DefaultZoom is the zoom level used with every resolved coordinate
const DefaultZoom = 6

var (
	ErrGeolocationFailed = errors.New("geolocation failed")
	ErrNoLocator         = errors.New("geolocation is not available")
)

// Locator asks the device for its current position
type Locator interface {
	Locate(ctx context.Context) (model.Position, error)
}

// LocatorFunc adapts a function to Locator
type LocatorFunc func(ctx context.Context) (model.Position, error)

func (f LocatorFunc) Locate(ctx context.Context) (model.Position, error) {
	return f(ctx)
}

// Option configures a Resolver
type Option func(*Resolver)

// WithTimeout bounds every geolocation request
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		r.timeout = d
	}
}

type subscriber struct {
	id int
	fn func(model.Position)
}

// Resolver derives the map's focal coordinate. An external coordinate
// (navigation parameters) takes precedence over a device fix, which takes
// precedence over Fallback.
type Resolver struct {
	locator Locator
	timeout time.Duration
	logger  *zap.Logger

	mu       sync.Mutex
	external *model.Position
	device   *model.Position
	loading  bool
	err      error
	subs     []subscriber
	nextID   int
}

// NewResolver creates a resolver. locator may be nil when the device has no
// geolocation capability.
func NewResolver(locator Locator, logger *zap.Logger, opts ...Option) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Resolver{
		locator: locator,
		logger:  logger.Named("position"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetExternal applies the lat/lng navigation parameters. Missing parameters
// clear the external override; malformed ones are rejected and change nothing.
func (r *Resolver) SetExternal(values url.Values) error {
	pos, ok, err := ParseQuery(values)
	if err != nil {
		return err
	}
	if !ok {
		r.SetExternalPosition(nil)
		return nil
	}
	r.SetExternalPosition(&pos)
	return nil
}

// SetExternalPosition sets or, with nil, clears the external override
func (r *Resolver) SetExternalPosition(p *model.Position) {
	r.update(func() {
		if p == nil {
			r.external = nil
			return
		}
		pos := *p
		r.external = &pos
	})
}

// RequestGeolocation asks the Locator for a fix. While the request is in
// flight IsLoading reports true. On failure the resolved coordinate is kept.
func (r *Resolver) RequestGeolocation(ctx context.Context) error {
	if r.locator == nil {
		r.mu.Lock()
		r.err = fmt.Errorf("%w: %w", ErrGeolocationFailed, ErrNoLocator)
		err := r.err
		r.mu.Unlock()
		return err
	}

	r.mu.Lock()
	r.loading = true
	r.err = nil
	r.mu.Unlock()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	pos, err := r.locator.Locate(ctx)
	if err != nil {
		r.logger.Warn("Geolocation failed", zap.Error(err))
		failure := fmt.Errorf("%w: %w", ErrGeolocationFailed, err)
		r.update(func() {
			r.loading = false
			r.err = failure
		})
		return failure
	}

	r.logger.Debug("Geolocation fix", zap.Float64("lat", pos.Lat), zap.Float64("lng", pos.Lng))
	r.update(func() {
		r.loading = false
		r.device = &pos
	})
	return nil
}

// Resolved returns the current focal coordinate
func (r *Resolver) Resolved() model.Position {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolvedLocked()
}

// IsLoading reports whether a geolocation request is in flight
func (r *Resolver) IsLoading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// Err returns the error of the last geolocation request
func (r *Resolver) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// DevicePosition returns the last device fix, if any
func (r *Resolver) DevicePosition() (model.Position, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.device == nil {
		return model.Position{}, false
	}
	return *r.device, true
}

// Subscribe registers fn to be called whenever the resolved coordinate changes
func (r *Resolver) Subscribe(fn func(model.Position)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID
	r.subs = append(r.subs, subscriber{id: id, fn: fn})

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, sub := range r.subs {
			if sub.id == id {
				r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
				return
			}
		}
	}
}

func (r *Resolver) update(mutate func()) {
	r.mu.Lock()
	before := r.resolvedLocked()
	mutate()
	after := r.resolvedLocked()
	subs := make([]subscriber, len(r.subs))
	copy(subs, r.subs)
	r.mu.Unlock()

	if before == after {
		return
	}
	for _, sub := range subs {
		sub.fn(after)
	}
}

func (r *Resolver) resolvedLocked() model.Position {
	switch {
	case r.external != nil:
		return *r.external
	case r.device != nil:
		return *r.device
	default:
		return Fallback
	}
}
