package v1

import (
	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/domain"
)

type SkillHandler struct {
	crud crudHandler
}

func NewSkillHandler(public, admin *gin.RouterGroup, uc domain.SkillUsecase) {
	handler := &SkillHandler{
		crud: newResource[domain.Skill, domain.CreateSkillRequest, domain.UpdateSkillRequest](uc, domain.SkillSortFields),
	}
	registerCRUD(public, admin, "/skills", handler)
}

// List godoc
// @Summary      List skills
// @Tags         skills
// @Produce      json
// @Param        sort   query     string  false  "createdAt|updatedAt|name|level"
// @Param        order  query     string  false  "asc|desc"
// @Param        limit  query     int     false  "1-100"
// @Param        page   query     int     false  "page number, requires limit"
// @Success      200    {object}  response.Response{data=[]domain.Skill}
// @Failure      400    {object}  response.Response
// @Router       /skills [get]
func (h *SkillHandler) List(c *gin.Context) { h.crud.List(c) }

// Get godoc
// @Summary      Get one skill
// @Tags         skills
// @Produce      json
// @Param        id   path      string  true  "Skill ID"
// @Success      200  {object}  response.Response{data=domain.Skill}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /skills/{id} [get]
func (h *SkillHandler) Get(c *gin.Context) { h.crud.Get(c) }

// Create godoc
// @Summary      Create skill
// @Tags         skills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        skill  body      domain.CreateSkillRequest  true  "Skill data"
// @Success      201      {object}  response.Response{data=domain.Skill}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /skills [post]
func (h *SkillHandler) Create(c *gin.Context) { h.crud.Create(c) }

// Update godoc
// @Summary      Update skill
// @Description  Partial update; omitted fields keep their stored values.
// @Tags         skills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "Skill ID"
// @Param        skill  body      domain.UpdateSkillRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=domain.Skill}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /skills/{id} [put]
// @Router       /skills/{id} [patch]
func (h *SkillHandler) Update(c *gin.Context) { h.crud.Update(c) }

// Delete godoc
// @Summary      Delete skill
// @Tags         skills
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Skill ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /skills/{id} [delete]
func (h *SkillHandler) Delete(c *gin.Context) { h.crud.Delete(c) }
