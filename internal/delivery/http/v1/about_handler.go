package v1

import (
	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/domain"
)

type AboutHandler struct {
	crud crudHandler
}

func NewAboutHandler(public, admin *gin.RouterGroup, uc domain.AboutUsecase) {
	handler := &AboutHandler{
		crud: newResource[domain.About, domain.CreateAboutRequest, domain.UpdateAboutRequest](uc, domain.AboutSortFields),
	}
	registerCRUD(public, admin, "/about", handler)
}

// List godoc
// @Summary      List about entries
// @Tags         about
// @Produce      json
// @Param        sort   query     string  false  "createdAt|updatedAt|name"
// @Param        order  query     string  false  "asc|desc"
// @Param        limit  query     int     false  "1-100"
// @Param        page   query     int     false  "page number, requires limit"
// @Success      200    {object}  response.Response{data=[]domain.About}
// @Failure      400    {object}  response.Response
// @Router       /about [get]
func (h *AboutHandler) List(c *gin.Context) { h.crud.List(c) }

// Get godoc
// @Summary      Get one about entry
// @Tags         about
// @Produce      json
// @Param        id   path      string  true  "About ID"
// @Success      200  {object}  response.Response{data=domain.About}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /about/{id} [get]
func (h *AboutHandler) Get(c *gin.Context) { h.crud.Get(c) }

// Create godoc
// @Summary      Create about entry
// @Tags         about
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        about  body      domain.CreateAboutRequest  true  "About data"
// @Success      201      {object}  response.Response{data=domain.About}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /about [post]
func (h *AboutHandler) Create(c *gin.Context) { h.crud.Create(c) }

// Update godoc
// @Summary      Update about entry
// @Description  Partial update; omitted fields keep their stored values.
// @Tags         about
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "About ID"
// @Param        about  body      domain.UpdateAboutRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=domain.About}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /about/{id} [put]
// @Router       /about/{id} [patch]
func (h *AboutHandler) Update(c *gin.Context) { h.crud.Update(c) }

// Delete godoc
// @Summary      Delete about entry
// @Tags         about
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "About ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /about/{id} [delete]
func (h *AboutHandler) Delete(c *gin.Context) { h.crud.Delete(c) }
