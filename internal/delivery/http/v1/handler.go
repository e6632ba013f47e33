package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/validation"
)

var errEmptyBody = errors.New("empty body")

// bindJSON decodes the request body into dst. Type mismatches are reported
// per field like validation failures.
func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		if fields := validation.FromDecodeError(err); len(fields) > 0 {
			return apperror.Validation(fields)
		}
		return apperror.BadRequest("Invalid JSON body")
	}
	return nil
}

func requireBody(err error) error {
	if errors.Is(err, errEmptyBody) {
		return apperror.BadRequest("Request body is required")
	}
	return err
}

// parseListQuery reads sort, order, limit and page. sortFields whitelists
// the sort keys.
func parseListQuery(c *gin.Context, sortFields []string) (domain.ListQuery, error) {
	q := domain.DefaultListQuery()
	var fields []validation.FieldError

	if v := c.Query("sort"); v != "" {
		if slices.Contains(sortFields, v) {
			q.Sort = v
		} else {
			fields = append(fields, validation.FieldError{
				Field:   "sort",
				Message: fmt.Sprintf("sort must be one of [%s]", strings.Join(sortFields, " ")),
			})
		}
	}
	if v := c.Query("order"); v != "" {
		switch strings.ToLower(v) {
		case domain.OrderAsc, domain.OrderDesc:
			q.Order = strings.ToLower(v)
		default:
			fields = append(fields, validation.FieldError{Field: "order", Message: "order must be one of [asc desc]"})
		}
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > domain.MaxLimit {
			fields = append(fields, validation.FieldError{
				Field:   "limit",
				Message: fmt.Sprintf("limit must be an integer between 1 and %d", domain.MaxLimit),
			})
		} else {
			q.Limit = n
		}
	}
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			fields = append(fields, validation.FieldError{Field: "page", Message: "page must be a positive integer"})
		} else {
			q.Page = n
		}
	}

	if len(fields) > 0 {
		return q, apperror.Validation(fields)
	}
	return q, nil
}

// crudHandler serves the five REST operations of one content entity.
type crudHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type resource[T any, C any, U any, PC interface {
	*C
	domain.CreateRequest[T]
}, PU interface {
	*U
	domain.UpdateRequest[T]
}] struct {
	uc         domain.ContentUsecase[T]
	sortFields []string
}

func newResource[T any, C any, U any, PC interface {
	*C
	domain.CreateRequest[T]
}, PU interface {
	*U
	domain.UpdateRequest[T]
}](uc domain.ContentUsecase[T], sortFields []string) crudHandler {
	return &resource[T, C, U, PC, PU]{uc: uc, sortFields: sortFields}
}

func (h *resource[T, C, U, PC, PU]) List(c *gin.Context) {
	q, err := parseListQuery(c, h.sortFields)
	if err != nil {
		c.Error(err)
		return
	}
	items, err := h.uc.List(c.Request.Context(), q)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", items)
}

func (h *resource[T, C, U, PC, PU]) Get(c *gin.Context) {
	item, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", item)
}

func (h *resource[T, C, U, PC, PU]) Create(c *gin.Context) {
	var req C
	if err := bindJSON(c, &req); err != nil {
		c.Error(requireBody(err))
		return
	}
	item, err := h.uc.Create(c.Request.Context(), PC(&req))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Created", item)
}

func (h *resource[T, C, U, PC, PU]) Update(c *gin.Context) {
	if !domain.ValidID(c.Param("id")) {
		c.Error(apperror.InvalidID())
		return
	}
	var req U
	if err := bindJSON(c, &req); err != nil {
		c.Error(requireBody(err))
		return
	}
	item, err := h.uc.Update(c.Request.Context(), c.Param("id"), PU(&req))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Updated", item)
}

func (h *resource[T, C, U, PC, PU]) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Deleted", gin.H{"id": id})
}

// registerCRUD mounts reads on public and writes on admin.
func registerCRUD(public, admin *gin.RouterGroup, path string, h crudHandler) {
	public.GET(path, h.List)
	public.GET(path+"/:id", h.Get)
	admin.POST(path, h.Create)
	admin.PUT(path+"/:id", h.Update)
	admin.PATCH(path+"/:id", h.Update)
	admin.DELETE(path+"/:id", h.Delete)
}
