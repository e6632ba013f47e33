package postgres

import "portfolio-backend/internal/domain"

func NewAboutRepository(db Pool) domain.AboutRepository {
	return newContentRepo(db, table[domain.About]{
		name: "about",
		columns: []string{
			"name", "bio", "avatar", "location", "email", "phone",
			"experience_years", "projects_completed",
		},
		sort: map[string]string{
			"createdAt": "created_at",
			"updatedAt": "updated_at",
			"name":      "name",
		},
		base: func(a *domain.About) *domain.Base { return &a.Base },
		values: func(a *domain.About) []interface{} {
			return []interface{}{
				a.Name, a.Bio, a.Avatar, a.Location, a.Email, a.Phone,
				a.ExperienceYears, a.ProjectsCompleted,
			}
		},
		dest: func(a *domain.About) []interface{} {
			return []interface{}{
				&a.Name, &a.Bio, &a.Avatar, &a.Location, &a.Email, &a.Phone,
				&a.ExperienceYears, &a.ProjectsCompleted,
			}
		},
	})
}
