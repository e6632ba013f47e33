package postgres

import (
	"github.com/lib/pq"

	"portfolio-backend/internal/domain"
)

func NewProjectRepository(db Pool) domain.ProjectRepository {
	return newContentRepo(db, table[domain.Project]{
		name:    "projects",
		columns: []string{"title", "description", "tech", "image", "code_url", "live_url"},
		sort: map[string]string{
			"createdAt": "created_at",
			"updatedAt": "updated_at",
			"title":     "title",
		},
		base: func(p *domain.Project) *domain.Base { return &p.Base },
		values: func(p *domain.Project) []interface{} {
			return []interface{}{p.Title, p.Description, textArray(p.Tech), p.Image, p.CodeURL, p.LiveURL}
		},
		dest: func(p *domain.Project) []interface{} {
			return []interface{}{&p.Title, &p.Description, pq.Array(&p.Tech), &p.Image, &p.CodeURL, &p.LiveURL}
		},
	})
}
