package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common domain errors
var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("resource already exists")
)

// Base carries the identity and timestamps shared by the content entities.
type Base struct {
	ID        string    `json:"id" bson:"_id" example:"6f1c2e8a-3b7d-4c1e-9a55-0d2f4b8e7c11"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (b *Base) Meta() *Base { return b }

// Document is implemented by pointers to the content entities.
type Document interface {
	Meta() *Base
}

// NewID returns a fresh entity id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id is a canonical UUID string. Ids are stored in
// lowercase, so any other form is rejected.
func ValidID(id string) bool {
	if len(id) != 36 || id != strings.ToLower(id) {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// CreateRequest is a create schema for T. Normalize trims input before
// validation; Entity builds the document to store.
type CreateRequest[T any] interface {
	Normalize()
	Entity() *T
}

// UpdateRequest is the all-optional variant of a create schema. ApplyTo
// copies only the fields that were sent.
type UpdateRequest[T any] interface {
	Normalize()
	ApplyTo(*T)
}

// Repository is the storage contract shared by the content entities.
type Repository[T any] interface {
	List(ctx context.Context, q ListQuery) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, e *T) error
	Update(ctx context.Context, e *T) error
	Delete(ctx context.Context, id string) error
}

// ContentUsecase is the CRUD surface of one content entity.
type ContentUsecase[T any] interface {
	List(ctx context.Context, q ListQuery) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, req CreateRequest[T]) (*T, error)
	Update(ctx context.Context, id string, req UpdateRequest[T]) (*T, error)
	Delete(ctx context.Context, id string) error
}

func trim(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

func lower(s *string) {
	if s != nil {
		*s = strings.ToLower(strings.TrimSpace(*s))
	}
}

func trimAll(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

func trimAllPtr(items *[]string) {
	if items != nil {
		*items = trimAll(*items)
	}
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
