package v1

import (
	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/domain"
)

type EducationHandler struct {
	crud crudHandler
}

func NewEducationHandler(public, admin *gin.RouterGroup, uc domain.EducationUsecase) {
	handler := &EducationHandler{
		crud: newResource[domain.Education, domain.CreateEducationRequest, domain.UpdateEducationRequest](uc, domain.EducationSortFields),
	}
	registerCRUD(public, admin, "/education", handler)
}

// List godoc
// @Summary      List education entries
// @Tags         education
// @Produce      json
// @Param        sort   query     string  false  "createdAt|updatedAt|startDate|school"
// @Param        order  query     string  false  "asc|desc"
// @Param        limit  query     int     false  "1-100"
// @Param        page   query     int     false  "page number, requires limit"
// @Success      200    {object}  response.Response{data=[]domain.Education}
// @Failure      400    {object}  response.Response
// @Router       /education [get]
func (h *EducationHandler) List(c *gin.Context) { h.crud.List(c) }

// Get godoc
// @Summary      Get one education entry
// @Tags         education
// @Produce      json
// @Param        id   path      string  true  "Education ID"
// @Success      200  {object}  response.Response{data=domain.Education}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /education/{id} [get]
func (h *EducationHandler) Get(c *gin.Context) { h.crud.Get(c) }

// Create godoc
// @Summary      Create education entry
// @Tags         education
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        education  body      domain.CreateEducationRequest  true  "Education data"
// @Success      201      {object}  response.Response{data=domain.Education}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /education [post]
func (h *EducationHandler) Create(c *gin.Context) { h.crud.Create(c) }

// Update godoc
// @Summary      Update education entry
// @Description  Partial update; omitted fields keep their stored values.
// @Tags         education
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "Education ID"
// @Param        education  body      domain.UpdateEducationRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=domain.Education}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /education/{id} [put]
// @Router       /education/{id} [patch]
func (h *EducationHandler) Update(c *gin.Context) { h.crud.Update(c) }

// Delete godoc
// @Summary      Delete education entry
// @Tags         education
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Education ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /education/{id} [delete]
func (h *EducationHandler) Delete(c *gin.Context) { h.crud.Delete(c) }
