// ABOUTME: Fitness service wiring the document store, cache and logger.
// ABOUTME: Shared read-through and invalidation helpers used by every resolver.
package fitness

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/harperreed/fittrack/internal/cache"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/store"
)

// Service implements every fitness operation. It is safe for concurrent use.
type Service struct {
	users     *store.Collection[models.User]
	workouts  *store.Collection[models.Workout]
	exercises *store.Collection[models.Exercise]
	calories  *store.Collection[models.CalorieEntry]
	weights   *store.Collection[models.BodyWeightEntry]
	templates *store.Collection[models.WorkoutTemplate]
	goals     *store.Collection[models.UserGoals]
	routines  *store.Collection[models.WorkoutRoutine]

	cache cache.Cache
	log   *zap.SugaredLogger
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for default and future dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service over the given backend and cache.
func NewService(b store.Backend, c cache.Cache, log *zap.SugaredLogger, opts ...Option) *Service {
	if c == nil {
		c = cache.Nop{}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := &Service{
		users:     store.NewCollection[models.User](b, store.Users),
		workouts:  store.NewCollection[models.Workout](b, store.Workouts),
		exercises: store.NewCollection[models.Exercise](b, store.Exercises),
		calories:  store.NewCollection[models.CalorieEntry](b, store.CalorieEntries),
		weights:   store.NewCollection[models.BodyWeightEntry](b, store.BodyWeightEntries),
		templates: store.NewCollection[models.WorkoutTemplate](b, store.WorkoutTemplates),
		goals:     store.NewCollection[models.UserGoals](b, store.UserGoals),
		routines:  store.NewCollection[models.WorkoutRoutine](b, store.WorkoutRoutines),
		cache:     c,
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) today() string {
	return models.FormatDate(s.now())
}

// cacheGet reports a hit only when the value was decoded. Failures count as misses.
func (s *Service) cacheGet(ctx context.Context, key string, out any) bool {
	found, err := s.cache.Get(ctx, key, out)
	if err != nil {
		s.log.Warnw("cache get failed", "key", key, "error", err)
		return false
	}
	return found
}

func (s *Service) cacheSet(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.log.Warnw("cache set failed", "key", key, "error", err)
	}
}

func (s *Service) cacheDel(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.log.Warnw("cache delete failed", "keys", keys, "error", err)
	}
}

// getCached loads one document by id, reading through the per-entity key.
func getCached[T any](ctx context.Context, s *Service, col *store.Collection[T], kind, rawID string, key func(string) string) (*T, error) {
	id, err := requireID(kind, rawID)
	if err != nil {
		return nil, err
	}

	var cached T
	if s.cacheGet(ctx, key(id), &cached) {
		return &cached, nil
	}

	doc, err := col.Get(ctx, id)
	if err != nil {
		return nil, storeErr(err, kind, "load "+kind)
	}
	s.cacheSet(ctx, key(id), doc)
	return doc, nil
}

// load reads the current document straight from the store, bypassing the cache.
func load[T any](ctx context.Context, col *store.Collection[T], kind, id string) (*T, error) {
	doc, err := col.Get(ctx, id)
	if err != nil {
		return nil, storeErr(err, kind, "load "+kind)
	}
	return doc, nil
}

// listCached returns the documents matching filter, reading through an aggregate key.
func listCached[T any](ctx context.Context, s *Service, col *store.Collection[T], key string, filter store.Filter, sortFn func([]*T)) ([]*T, error) {
	var cached []*T
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	docs, err := col.Find(ctx, filter)
	if err != nil {
		return nil, internal("list "+col.Name(), err)
	}
	if sortFn != nil {
		sortFn(docs)
	}
	s.cacheSet(ctx, key, docs)
	return docs, nil
}

// replace writes doc back, re-reads it and refreshes its entity key.
func replace[T any](ctx context.Context, s *Service, col *store.Collection[T], kind, id string, doc *T, entityKey string) (*T, error) {
	if err := col.Update(ctx, id, doc); err != nil {
		return nil, storeErr(err, kind, "update "+kind)
	}
	updated, err := load(ctx, col, kind, id)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, entityKey, updated)
	return updated, nil
}

// remove deletes the document and returns the last stored state.
func remove[T any](ctx context.Context, col *store.Collection[T], kind, id string) (*T, error) {
	doc, err := load(ctx, col, kind, id)
	if err != nil {
		return nil, err
	}
	if err := col.Delete(ctx, id); err != nil {
		return nil, storeErr(err, kind, "remove "+kind)
	}
	return doc, nil
}
