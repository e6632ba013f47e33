package v1

import (
	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/domain"
)

type ExperienceHandler struct {
	crud crudHandler
}

func NewExperienceHandler(public, admin *gin.RouterGroup, uc domain.ExperienceUsecase) {
	handler := &ExperienceHandler{
		crud: newResource[domain.Experience, domain.CreateExperienceRequest, domain.UpdateExperienceRequest](uc, domain.ExperienceSortFields),
	}
	registerCRUD(public, admin, "/experience", handler)
}

// List godoc
// @Summary      List experience entries
// @Tags         experience
// @Produce      json
// @Param        sort   query     string  false  "createdAt|updatedAt|startDate|company"
// @Param        order  query     string  false  "asc|desc"
// @Param        limit  query     int     false  "1-100"
// @Param        page   query     int     false  "page number, requires limit"
// @Success      200    {object}  response.Response{data=[]domain.Experience}
// @Failure      400    {object}  response.Response
// @Router       /experience [get]
func (h *ExperienceHandler) List(c *gin.Context) { h.crud.List(c) }

// Get godoc
// @Summary      Get one experience entry
// @Tags         experience
// @Produce      json
// @Param        id   path      string  true  "Experience ID"
// @Success      200  {object}  response.Response{data=domain.Experience}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /experience/{id} [get]
func (h *ExperienceHandler) Get(c *gin.Context) { h.crud.Get(c) }

// Create godoc
// @Summary      Create experience entry
// @Tags         experience
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        experience  body      domain.CreateExperienceRequest  true  "Experience data"
// @Success      201      {object}  response.Response{data=domain.Experience}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /experience [post]
func (h *ExperienceHandler) Create(c *gin.Context) { h.crud.Create(c) }

// Update godoc
// @Summary      Update experience entry
// @Description  Partial update; omitted fields keep their stored values.
// @Tags         experience
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "Experience ID"
// @Param        experience  body      domain.UpdateExperienceRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=domain.Experience}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /experience/{id} [put]
// @Router       /experience/{id} [patch]
func (h *ExperienceHandler) Update(c *gin.Context) { h.crud.Update(c) }

// Delete godoc
// @Summary      Delete experience entry
// @Tags         experience
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Experience ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /experience/{id} [delete]
func (h *ExperienceHandler) Delete(c *gin.Context) { h.crud.Delete(c) }
