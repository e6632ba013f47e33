package domain

// Experience is one employment period. EndDate is a date or "Present".
type Experience struct {
	Base        `bson:",inline"`
	Company     string   `json:"company" bson:"company"`
	Position    string   `json:"position" bson:"position"`
	StartDate   string   `json:"startDate" bson:"startDate"`
	EndDate     string   `json:"endDate" bson:"endDate"`
	Description string   `json:"description" bson:"description"`
	Tags        []string `json:"tags" bson:"tags"`
}

type CreateExperienceRequest struct {
	Company     string   `json:"company" validate:"required,max=100"`
	Position    string   `json:"position" validate:"required,max=100"`
	StartDate   string   `json:"startDate" validate:"required,ym_date"`
	EndDate     string   `json:"endDate" validate:"required,end_date"`
	Description string   `json:"description" validate:"max=2000"`
	Tags        []string `json:"tags" validate:"max=10,dive,notblank"`
}

func (r *CreateExperienceRequest) Normalize() {
	trim(&r.Company)
	trim(&r.Position)
	trim(&r.StartDate)
	trim(&r.EndDate)
	trim(&r.Description)
	r.Tags = trimAll(r.Tags)
}

func (r *CreateExperienceRequest) Entity() *Experience {
	return &Experience{
		Company:     r.Company,
		Position:    r.Position,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Description: r.Description,
		Tags:        orEmpty(r.Tags),
	}
}

type UpdateExperienceRequest struct {
	Company     *string   `json:"company" validate:"omitempty,min=1,max=100"`
	Position    *string   `json:"position" validate:"omitempty,min=1,max=100"`
	StartDate   *string   `json:"startDate" validate:"omitempty,ym_date"`
	EndDate     *string   `json:"endDate" validate:"omitempty,end_date"`
	Description *string   `json:"description" validate:"omitempty,max=2000"`
	Tags        *[]string `json:"tags" validate:"omitempty,max=10,dive,notblank"`
}

func (r *UpdateExperienceRequest) Normalize() {
	trim(r.Company)
	trim(r.Position)
	trim(r.StartDate)
	trim(r.EndDate)
	trim(r.Description)
	trimAllPtr(r.Tags)
}

func (r *UpdateExperienceRequest) ApplyTo(e *Experience) {
	if r.Company != nil {
		e.Company = *r.Company
	}
	if r.Position != nil {
		e.Position = *r.Position
	}
	if r.StartDate != nil {
		e.StartDate = *r.StartDate
	}
	if r.EndDate != nil {
		e.EndDate = *r.EndDate
	}
	if r.Description != nil {
		e.Description = *r.Description
	}
	if r.Tags != nil {
		e.Tags = orEmpty(*r.Tags)
	}
}

type ExperienceRepository = Repository[Experience]

type ExperienceUsecase = ContentUsecase[Experience]
