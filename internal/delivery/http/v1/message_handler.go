package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/validation"
)

type MessageHandler struct {
	messageUC domain.MessageUsecase
}

// NewMessageHandler registers the inbox routes. submit guards the public
// contact endpoint, usually with a rate limiter.
func NewMessageHandler(public, admin *gin.RouterGroup, messageUC domain.MessageUsecase, submit ...gin.HandlerFunc) {
	handler := &MessageHandler{
		messageUC: messageUC,
	}

	public.POST("/messages", append(submit, handler.Submit)...)

	messages := admin.Group("/messages")
	{
		messages.GET("", handler.List)
		messages.GET("/unread-summary", handler.UnreadSummary)
		messages.GET("/export", handler.Export)
		messages.PATCH("", handler.MarkManyRead)
		messages.PATCH("/mark-as-read", handler.MarkManyRead)
		messages.GET("/:id", handler.Get)
		messages.PATCH("/:id", handler.MarkRead)
		messages.DELETE("/:id", handler.Delete)
	}
}

// Submit godoc
// @Summary      Send a message
// @Description  Public contact form. The message is stored unread and the owner is notified by email.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        message  body      domain.CreateMessageRequest  true  "Message"
// @Success      201      {object}  response.Response{data=domain.Message}
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Router       /messages [post]
func (h *MessageHandler) Submit(c *gin.Context) {
	var req domain.CreateMessageRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(requireBody(err))
		return
	}

	msg, err := h.messageUC.Submit(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Your message has been sent successfully!", msg)
}

// List godoc
// @Summary      List messages
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        unread   query     bool    false  "only unread messages"
// @Param        search   query     string  false  "matches name, email, subject or content"
// @Param        summary  query     bool    false  "return only the unread count"
// @Param        sort     query     string  false  "createdAt|name|email|subject"
// @Param        order    query     string  false  "asc|desc"
// @Param        limit    query     int     false  "1-100"
// @Param        page     query     int     false  "page number, requires limit"
// @Success      200      {object}  response.Response{data=domain.MessageList}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /messages [get]
func (h *MessageHandler) List(c *gin.Context) {
	summary, err := queryBool(c, "summary")
	if err != nil {
		c.Error(err)
		return
	}
	if summary {
		n, err := h.messageUC.CountUnread(c.Request.Context())
		if err != nil {
			c.Error(err)
			return
		}
		response.Success(c, http.StatusOK, "", domain.UnreadCount{UnreadCount: n})
		return
	}

	lq, err := parseListQuery(c, domain.MessageSortFields)
	if err != nil {
		c.Error(err)
		return
	}
	unread, err := queryBool(c, "unread")
	if err != nil {
		c.Error(err)
		return
	}

	list, err := h.messageUC.List(c.Request.Context(), domain.MessageQuery{
		ListQuery: lq,
		Unread:    unread,
		Search:    c.Query("search"),
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", list)
}

// UnreadSummary godoc
// @Summary      Unread summary
// @Description  Unread count and the five newest unread messages, for the notification bell.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=domain.UnreadSummary}
// @Failure      401  {object}  response.Response
// @Router       /messages/unread-summary [get]
func (h *MessageHandler) UnreadSummary(c *gin.Context) {
	summary, err := h.messageUC.UnreadSummary(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", summary)
}

// Export godoc
// @Summary      Export messages
// @Tags         messages
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Security     BearerAuth
// @Param        format  query  string  false  "xlsx (default) or csv"
// @Success      200
// @Failure      400  {object}  response.Response
// @Router       /messages/export [get]
func (h *MessageHandler) Export(c *gin.Context) {
	file, err := h.messageUC.Export(c.Request.Context(), strings.ToLower(c.Query("format")))
	if err != nil {
		c.Error(err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// Get godoc
// @Summary      Get one message
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Message ID"
// @Success      200  {object}  response.Response{data=domain.Message}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /messages/{id} [get]
func (h *MessageHandler) Get(c *gin.Context) {
	msg, err := h.messageUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", msg)
}

// MarkRead godoc
// @Summary      Mark a message as read
// @Description  Messages only move from unread to read; {"read": false} is rejected.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true   "Message ID"
// @Param        body  body      domain.MarkReadRequest  false  "Optional, defaults to read=true"
// @Success      200   {object}  response.Response{data=domain.Message}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /messages/{id} [patch]
func (h *MessageHandler) MarkRead(c *gin.Context) {
	var req domain.MarkReadRequest
	if err := bindJSON(c, &req); err != nil && !errors.Is(err, errEmptyBody) {
		c.Error(err)
		return
	}

	msg, err := h.messageUC.MarkRead(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Message marked as read", msg)
}

// MarkManyRead godoc
// @Summary      Mark messages as read
// @Description  Marks the listed ids, ignoring malformed ones. Without ids every unread message is marked.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.MarkManyReadRequest  false  "Message ids"
// @Success      200   {object}  response.Response{data=domain.MarkReadResult}
// @Failure      400   {object}  response.Response
// @Router       /messages/mark-as-read [patch]
// @Router       /messages [patch]
func (h *MessageHandler) MarkManyRead(c *gin.Context) {
	var req domain.MarkManyReadRequest
	if err := bindJSON(c, &req); err != nil && !errors.Is(err, errEmptyBody) {
		c.Error(err)
		return
	}

	result, err := h.messageUC.MarkManyRead(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, fmt.Sprintf("%d message(s) marked as read", result.Updated), result)
}

// Delete godoc
// @Summary      Delete a message
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Message ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /messages/{id} [delete]
func (h *MessageHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.messageUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Deleted", gin.H{"id": id})
}

func queryBool(c *gin.Context, name string) (bool, error) {
	v := c.Query(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, apperror.Validation([]validation.FieldError{{
			Field:   name,
			Message: name + " must be true or false",
		}})
	}
	return b, nil
}
