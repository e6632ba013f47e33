package postgres

import "portfolio-backend/internal/domain"

// NewSkillRepository stores skills; the unique name constraint surfaces as
// domain.ErrDuplicate.
func NewSkillRepository(db Pool) domain.SkillRepository {
	return newContentRepo(db, table[domain.Skill]{
		name:    "skills",
		columns: []string{"name", "level"},
		sort: map[string]string{
			"createdAt": "created_at",
			"updatedAt": "updated_at",
			"name":      "name",
			"level":     "level",
		},
		base: func(s *domain.Skill) *domain.Base { return &s.Base },
		values: func(s *domain.Skill) []interface{} {
			return []interface{}{s.Name, s.Level}
		},
		dest: func(s *domain.Skill) []interface{} {
			return []interface{}{&s.Name, &s.Level}
		},
	})
}
