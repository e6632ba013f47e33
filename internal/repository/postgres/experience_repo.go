package postgres

import (
	"github.com/lib/pq"

	"portfolio-backend/internal/domain"
)

func NewExperienceRepository(db Pool) domain.ExperienceRepository {
	return newContentRepo(db, table[domain.Experience]{
		name:    "experience",
		columns: []string{"company", "position", "start_date", "end_date", "description", "tags"},
		sort: map[string]string{
			"createdAt": "created_at",
			"updatedAt": "updated_at",
			"startDate": "start_date",
			"company":   "company",
		},
		base: func(e *domain.Experience) *domain.Base { return &e.Base },
		values: func(e *domain.Experience) []interface{} {
			return []interface{}{e.Company, e.Position, e.StartDate, e.EndDate, e.Description, textArray(e.Tags)}
		},
		dest: func(e *domain.Experience) []interface{} {
			return []interface{}{&e.Company, &e.Position, &e.StartDate, &e.EndDate, &e.Description, pq.Array(&e.Tags)}
		},
	})
}
