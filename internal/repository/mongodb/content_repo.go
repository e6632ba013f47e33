package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"portfolio-backend/internal/domain"
)

// contentRepo stores one content entity per document, keyed by its UUID.
type contentRepo[T any] struct {
	db         Database
	collection string
	sortFields []string
	id         func(*T) string
}

func newContentRepo[T any](db Database, collection string, sortFields []string, id func(*T) string) *contentRepo[T] {
	return &contentRepo[T]{db: db, collection: collection, sortFields: sortFields, id: id}
}

func (r *contentRepo[T]) List(ctx context.Context, q domain.ListQuery) ([]T, error) {
	coll, err := collection(ctx, r.db, r.collection)
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, bson.D{}, findOptions(r.sortFields, q))
	if err != nil {
		return nil, err
	}
	items := []T{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *contentRepo[T]) GetByID(ctx context.Context, id string) (*T, error) {
	coll, err := collection(ctx, r.db, r.collection)
	if err != nil {
		return nil, err
	}

	var e T
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return nil, translateError(err)
	}
	return &e, nil
}

func (r *contentRepo[T]) Create(ctx context.Context, e *T) error {
	coll, err := collection(ctx, r.db, r.collection)
	if err != nil {
		return err
	}
	_, err = coll.InsertOne(ctx, e)
	return translateError(err)
}

func (r *contentRepo[T]) Update(ctx context.Context, e *T) error {
	coll, err := collection(ctx, r.db, r.collection)
	if err != nil {
		return err
	}

	res, err := coll.ReplaceOne(ctx, bson.M{"_id": r.id(e)}, e)
	if err != nil {
		return translateError(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *contentRepo[T]) Delete(ctx context.Context, id string) error {
	coll, err := collection(ctx, r.db, r.collection)
	if err != nil {
		return err
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func NewAboutRepository(db Database) domain.AboutRepository {
	return newContentRepo(db, aboutCollection, domain.AboutSortFields,
		func(a *domain.About) string { return a.ID })
}

func NewProjectRepository(db Database) domain.ProjectRepository {
	return newContentRepo(db, projectCollection, domain.ProjectSortFields,
		func(p *domain.Project) string { return p.ID })
}

func NewSkillRepository(db Database) domain.SkillRepository {
	return newContentRepo(db, skillCollection, domain.SkillSortFields,
		func(s *domain.Skill) string { return s.ID })
}

func NewExperienceRepository(db Database) domain.ExperienceRepository {
	return newContentRepo(db, experienceCollection, domain.ExperienceSortFields,
		func(e *domain.Experience) string { return e.ID })
}

func NewEducationRepository(db Database) domain.EducationRepository {
	return newContentRepo(db, educationCollection, domain.EducationSortFields,
		func(e *domain.Education) string { return e.ID })
}
