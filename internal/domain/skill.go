package domain

// Skill names are unique; a second skill with the same name is a conflict.
type Skill struct {
	Base  `bson:",inline"`
	Name  string `json:"name" bson:"name"`
	Level int    `json:"level" bson:"level"`
}

type CreateSkillRequest struct {
	Name  string `json:"name" validate:"required,max=50"`
	Level *int   `json:"level" validate:"required,min=0,max=100"`
}

func (r *CreateSkillRequest) Normalize() {
	trim(&r.Name)
}

func (r *CreateSkillRequest) Entity() *Skill {
	s := &Skill{Name: r.Name}
	if r.Level != nil {
		s.Level = *r.Level
	}
	return s
}

type UpdateSkillRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=50"`
	Level *int    `json:"level" validate:"omitempty,min=0,max=100"`
}

func (r *UpdateSkillRequest) Normalize() {
	trim(r.Name)
}

func (r *UpdateSkillRequest) ApplyTo(s *Skill) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Level != nil {
		s.Level = *r.Level
	}
}

type SkillRepository = Repository[Skill]

type SkillUsecase = ContentUsecase[Skill]
