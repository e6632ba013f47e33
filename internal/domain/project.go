package domain

type Project struct {
	Base        `bson:",inline"`
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description" bson:"description"`
	Tech        []string `json:"tech" bson:"tech"`
	Image       string   `json:"image" bson:"image"`
	CodeURL     string   `json:"codeUrl" bson:"codeUrl"`
	LiveURL     string   `json:"liveUrl" bson:"liveUrl"`
}

type CreateProjectRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"required,max=2000"`
	Tech        []string `json:"tech" validate:"required,min=1,max=20,dive,notblank"`
	Image       string   `json:"image"`
	CodeURL     string   `json:"codeUrl" validate:"optional_url"`
	LiveURL     string   `json:"liveUrl" validate:"optional_url"`
}

func (r *CreateProjectRequest) Normalize() {
	trim(&r.Title)
	trim(&r.Description)
	r.Tech = trimAll(r.Tech)
	trim(&r.Image)
	trim(&r.CodeURL)
	trim(&r.LiveURL)
}

func (r *CreateProjectRequest) Entity() *Project {
	return &Project{
		Title:       r.Title,
		Description: r.Description,
		Tech:        orEmpty(r.Tech),
		Image:       r.Image,
		CodeURL:     r.CodeURL,
		LiveURL:     r.LiveURL,
	}
}

type UpdateProjectRequest struct {
	Title       *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string   `json:"description" validate:"omitempty,min=1,max=2000"`
	Tech        *[]string `json:"tech" validate:"omitempty,min=1,max=20,dive,notblank"`
	Image       *string   `json:"image"`
	CodeURL     *string   `json:"codeUrl" validate:"omitempty,optional_url"`
	LiveURL     *string   `json:"liveUrl" validate:"omitempty,optional_url"`
}

func (r *UpdateProjectRequest) Normalize() {
	trim(r.Title)
	trim(r.Description)
	trimAllPtr(r.Tech)
	trim(r.Image)
	trim(r.CodeURL)
	trim(r.LiveURL)
}

func (r *UpdateProjectRequest) ApplyTo(p *Project) {
	if r.Title != nil {
		p.Title = *r.Title
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Tech != nil {
		p.Tech = orEmpty(*r.Tech)
	}
	if r.Image != nil {
		p.Image = *r.Image
	}
	if r.CodeURL != nil {
		p.CodeURL = *r.CodeURL
	}
	if r.LiveURL != nil {
		p.LiveURL = *r.LiveURL
	}
}

type ProjectRepository = Repository[Project]

type ProjectUsecase = ContentUsecase[Project]
