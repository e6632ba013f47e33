package domain

type Education struct {
	Base        `bson:",inline"`
	School      string `json:"school" bson:"school"`
	Degree      string `json:"degree" bson:"degree"`
	Field       string `json:"field" bson:"field"`
	StartDate   string `json:"startDate" bson:"startDate"`
	EndDate     string `json:"endDate" bson:"endDate"`
	Description string `json:"description" bson:"description"`
}

type CreateEducationRequest struct {
	School      string `json:"school" validate:"required,max=200"`
	Degree      string `json:"degree" validate:"required,max=100"`
	Field       string `json:"field" validate:"required,max=100"`
	StartDate   string `json:"startDate" validate:"required,ym_date"`
	EndDate     string `json:"endDate" validate:"required,end_date"`
	Description string `json:"description" validate:"max=1000"`
}

func (r *CreateEducationRequest) Normalize() {
	trim(&r.School)
	trim(&r.Degree)
	trim(&r.Field)
	trim(&r.StartDate)
	trim(&r.EndDate)
	trim(&r.Description)
}

func (r *CreateEducationRequest) Entity() *Education {
	return &Education{
		School:      r.School,
		Degree:      r.Degree,
		Field:       r.Field,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Description: r.Description,
	}
}

type UpdateEducationRequest struct {
	School      *string `json:"school" validate:"omitempty,min=1,max=200"`
	Degree      *string `json:"degree" validate:"omitempty,min=1,max=100"`
	Field       *string `json:"field" validate:"omitempty,min=1,max=100"`
	StartDate   *string `json:"startDate" validate:"omitempty,ym_date"`
	EndDate     *string `json:"endDate" validate:"omitempty,end_date"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

func (r *UpdateEducationRequest) Normalize() {
	trim(r.School)
	trim(r.Degree)
	trim(r.Field)
	trim(r.StartDate)
	trim(r.EndDate)
	trim(r.Description)
}

func (r *UpdateEducationRequest) ApplyTo(e *Education) {
	if r.School != nil {
		e.School = *r.School
	}
	if r.Degree != nil {
		e.Degree = *r.Degree
	}
	if r.Field != nil {
		e.Field = *r.Field
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
}

type EducationRepository = Repository[Education]

type EducationUsecase = ContentUsecase[Education]
