package domain

// About is the owner's profile card.
type About struct {
	Base              `bson:",inline"`
	Name              string `json:"name" bson:"name"`
	Bio               string `json:"bio" bson:"bio"`
	Avatar            string `json:"avatar" bson:"avatar"`
	Location          string `json:"location" bson:"location"`
	Email             string `json:"email" bson:"email"`
	Phone             string `json:"phone" bson:"phone"`
	ExperienceYears   int    `json:"experienceYears" bson:"experienceYears"`
	ProjectsCompleted int    `json:"projectsCompleted" bson:"projectsCompleted"`
}

type CreateAboutRequest struct {
	Name              string `json:"name" validate:"required,max=100"`
	Bio               string `json:"bio" validate:"required,max=1000"`
	Avatar            string `json:"avatar" validate:"optional_url"`
	Location          string `json:"location" validate:"required,max=100"`
	Email             string `json:"email" validate:"required,email"`
	Phone             string `json:"phone" validate:"required,max=20"`
	ExperienceYears   *int   `json:"experienceYears" validate:"required,min=0,max=50"`
	ProjectsCompleted *int   `json:"projectsCompleted" validate:"required,min=0,max=10000"`
}

func (r *CreateAboutRequest) Normalize() {
	trim(&r.Name)
	trim(&r.Bio)
	trim(&r.Avatar)
	trim(&r.Location)
	lower(&r.Email)
	trim(&r.Phone)
}

func (r *CreateAboutRequest) Entity() *About {
	a := &About{
		Name:     r.Name,
		Bio:      r.Bio,
		Avatar:   r.Avatar,
		Location: r.Location,
		Email:    r.Email,
		Phone:    r.Phone,
	}
	if r.ExperienceYears != nil {
		a.ExperienceYears = *r.ExperienceYears
	}
	if r.ProjectsCompleted != nil {
		a.ProjectsCompleted = *r.ProjectsCompleted
	}
	return a
}

type UpdateAboutRequest struct {
	Name              *string `json:"name" validate:"omitempty,min=1,max=100"`
	Bio               *string `json:"bio" validate:"omitempty,min=1,max=1000"`
	Avatar            *string `json:"avatar" validate:"omitempty,optional_url"`
	Location          *string `json:"location" validate:"omitempty,min=1,max=100"`
	Email             *string `json:"email" validate:"omitempty,email"`
	Phone             *string `json:"phone" validate:"omitempty,min=1,max=20"`
	ExperienceYears   *int    `json:"experienceYears" validate:"omitempty,min=0,max=50"`
	ProjectsCompleted *int    `json:"projectsCompleted" validate:"omitempty,min=0,max=10000"`
}

func (r *UpdateAboutRequest) Normalize() {
	trim(r.Name)
	trim(r.Bio)
	trim(r.Avatar)
	trim(r.Location)
	lower(r.Email)
	trim(r.Phone)
}

func (r *UpdateAboutRequest) ApplyTo(a *About) {
	if r.Name != nil {
		a.Name = *r.Name
	}
	if r.Bio != nil {
		a.Bio = *r.Bio
	}
	if r.Avatar != nil {
		a.Avatar = *r.Avatar
	}
	if r.Location != nil {
		a.Location = *r.Location
	}
	if r.Email != nil {
		a.Email = *r.Email
	}
	if r.Phone != nil {
		a.Phone = *r.Phone
	}
	if r.ExperienceYears != nil {
		a.ExperienceYears = *r.ExperienceYears
	}
	if r.ProjectsCompleted != nil {
		a.ProjectsCompleted = *r.ProjectsCompleted
	}
}

type AboutRepository = Repository[About]

type AboutUsecase = ContentUsecase[About]
