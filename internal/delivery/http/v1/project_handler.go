package v1

import (
	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/domain"
)

type ProjectHandler struct {
	crud crudHandler
}

func NewProjectHandler(public, admin *gin.RouterGroup, uc domain.ProjectUsecase) {
	handler := &ProjectHandler{
		crud: newResource[domain.Project, domain.CreateProjectRequest, domain.UpdateProjectRequest](uc, domain.ProjectSortFields),
	}
	registerCRUD(public, admin, "/projects", handler)
}

// List godoc
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Param        sort   query     string  false  "createdAt|updatedAt|title"
// @Param        order  query     string  false  "asc|desc"
// @Param        limit  query     int     false  "1-100"
// @Param        page   query     int     false  "page number, requires limit"
// @Success      200    {object}  response.Response{data=[]domain.Project}
// @Failure      400    {object}  response.Response
// @Router       /projects [get]
func (h *ProjectHandler) List(c *gin.Context) { h.crud.List(c) }

// Get godoc
// @Summary      Get one project
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  response.Response{data=domain.Project}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) { h.crud.Get(c) }

// Create godoc
// @Summary      Create project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        project  body      domain.CreateProjectRequest  true  "Project data"
// @Success      201      {object}  response.Response{data=domain.Project}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) { h.crud.Create(c) }

// Update godoc
// @Summary      Update project
// @Description  Partial update; omitted fields keep their stored values.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "Project ID"
// @Param        project  body      domain.UpdateProjectRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=domain.Project}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /projects/{id} [put]
// @Router       /projects/{id} [patch]
func (h *ProjectHandler) Update(c *gin.Context) { h.crud.Update(c) }

// Delete godoc
// @Summary      Delete project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) { h.crud.Delete(c) }
