package postgres

import "portfolio-backend/internal/domain"

func NewEducationRepository(db Pool) domain.EducationRepository {
	return newContentRepo(db, table[domain.Education]{
		name:    "education",
		columns: []string{"school", "degree", "field", "start_date", "end_date", "description"},
		sort: map[string]string{
			"createdAt": "created_at",
			"updatedAt": "updated_at",
			"startDate": "start_date",
			"school":    "school",
		},
		base: func(e *domain.Education) *domain.Base { return &e.Base },
		values: func(e *domain.Education) []interface{} {
			return []interface{}{e.School, e.Degree, e.Field, e.StartDate, e.EndDate, e.Description}
		},
		dest: func(e *domain.Education) []interface{} {
			return []interface{}{&e.School, &e.Degree, &e.Field, &e.StartDate, &e.EndDate, &e.Description}
		},
	})
}
