package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/cache"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/validation"
)

// contentUsecase implements CRUD for one content entity. PT is *T, which
// carries the shared id and timestamps.
type contentUsecase[T any, PT interface {
	*T
	domain.Document
}] struct {
	name     string
	repo     domain.Repository[T]
	validate *validator.Validate
	cache    cache.Cache
	cacheTTL time.Duration
	now      func() time.Time

	// version counts invalidations. A list read that overlapped a write
	// must not be cached.
	mu      sync.Mutex
	version uint64
}

// ListCache configures caching of the default list. A nil Store disables it.
type ListCache struct {
	Store cache.Cache
	TTL   time.Duration
}

func newContentUsecase[T any, PT interface {
	*T
	domain.Document
}](name string, repo domain.Repository[T], validate *validator.Validate, lc ListCache) *contentUsecase[T, PT] {
	return &contentUsecase[T, PT]{
		name:     name,
		repo:     repo,
		validate: validate,
		cache:    lc.Store,
		cacheTTL: lc.TTL,
		now:      nowUTC,
	}
}

func NewAboutUsecase(repo domain.AboutRepository, validate *validator.Validate, lc ListCache) domain.AboutUsecase {
	return newContentUsecase[domain.About]("about", repo, validate, lc)
}

func NewProjectUsecase(repo domain.ProjectRepository, validate *validator.Validate, lc ListCache) domain.ProjectUsecase {
	return newContentUsecase[domain.Project]("projects", repo, validate, lc)
}

func NewSkillUsecase(repo domain.SkillRepository, validate *validator.Validate, lc ListCache) domain.SkillUsecase {
	return newContentUsecase[domain.Skill]("skills", repo, validate, lc)
}

func NewExperienceUsecase(repo domain.ExperienceRepository, validate *validator.Validate, lc ListCache) domain.ExperienceUsecase {
	return newContentUsecase[domain.Experience]("experience", repo, validate, lc)
}

func NewEducationUsecase(repo domain.EducationRepository, validate *validator.Validate, lc ListCache) domain.EducationUsecase {
	return newContentUsecase[domain.Education]("education", repo, validate, lc)
}

func (u *contentUsecase[T, PT]) listKey() string {
	return "list:" + u.name
}

func (u *contentUsecase[T, PT]) List(ctx context.Context, q domain.ListQuery) ([]T, error) {
	cacheable := u.cache != nil && q.IsDefault()
	var version uint64
	if cacheable {
		version = u.currentVersion()
		var cached []T
		found, err := u.cache.Get(ctx, u.listKey(), &cached)
		if err != nil {
			logger.Log.Warn("list cache read failed", "entity", u.name, "error", err)
		} else if found {
			return cached, nil
		}
	}

	items, err := u.repo.List(ctx, q)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if items == nil {
		items = []T{}
	}

	if cacheable {
		u.store(ctx, version, items)
	}
	return items, nil
}

func (u *contentUsecase[T, PT]) currentVersion() uint64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.version
}

// store caches items read at version unless a write happened since.
func (u *contentUsecase[T, PT]) store(ctx context.Context, version uint64, items []T) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.version != version {
		return
	}
	if err := u.cache.Set(ctx, u.listKey(), items, u.cacheTTL); err != nil {
		logger.Log.Warn("list cache write failed", "entity", u.name, "error", err)
	}
}

func (u *contentUsecase[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	if !domain.ValidID(id) {
		return nil, apperror.InvalidID()
	}
	item, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return item, nil
}

func (u *contentUsecase[T, PT]) Create(ctx context.Context, req domain.CreateRequest[T]) (*T, error) {
	req.Normalize()
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.Validation(validation.FormatValidationErrors(err))
	}

	item := req.Entity()
	meta := PT(item).Meta()
	meta.ID = domain.NewID()
	meta.CreatedAt = u.now()
	meta.UpdatedAt = meta.CreatedAt

	if err := u.repo.Create(ctx, item); err != nil {
		return nil, mapRepoError(err)
	}
	u.invalidate(ctx)
	return item, nil
}

// Update merges the sent fields into the stored document.
func (u *contentUsecase[T, PT]) Update(ctx context.Context, id string, req domain.UpdateRequest[T]) (*T, error) {
	if !domain.ValidID(id) {
		return nil, apperror.InvalidID()
	}
	req.Normalize()
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.Validation(validation.FormatValidationErrors(err))
	}

	item, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	req.ApplyTo(item)
	meta := PT(item).Meta()
	meta.ID = id
	meta.UpdatedAt = u.now()

	if err := u.repo.Update(ctx, item); err != nil {
		return nil, mapRepoError(err)
	}
	u.invalidate(ctx)
	return item, nil
}

func (u *contentUsecase[T, PT]) Delete(ctx context.Context, id string) error {
	if !domain.ValidID(id) {
		return apperror.InvalidID()
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}
	u.invalidate(ctx)
	return nil
}

func (u *contentUsecase[T, PT]) invalidate(ctx context.Context) {
	if u.cache == nil {
		return
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.version++
	if err := u.cache.Delete(ctx, u.listKey()); err != nil {
		logger.Log.Warn("list cache invalidation failed", "entity", u.name, "error", err)
	}
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

func mapRepoError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound("Resource not found")
	case errors.Is(err, domain.ErrDuplicate):
		return apperror.Conflict("A record with the same unique value already exists", err)
	default:
		return apperror.From(err)
	}
}
