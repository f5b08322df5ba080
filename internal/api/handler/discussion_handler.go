package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusworks/campus-api/internal/api/middleware"
	"github.com/campusworks/campus-api/internal/core/ports"
)

type DiscussionHandler struct {
	discussions ports.DiscussionService
}

func NewDiscussionHandler(discussions ports.DiscussionService) *DiscussionHandler {
	return &DiscussionHandler{discussions: discussions}
}

type discussionRequest struct {
	CourseID    string `json:"course_id"   validate:"required"`
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=4000"`
}

// List returns the discussions visible to the caller, optionally
// filtered by course. Admins see everything, ordinary users only the
// threads of their enrolled courses, and anonymous callers get an
// empty list rather than a rejection.
//
// @Summary      List discussions
// @Tags         discussions
// @Produce      json
// @Param        course_id  query    string  false  "Filter by course"
// @Success      200        {array}  domain.Discussion
// @Router       /discussions [get]
func (h *DiscussionHandler) List(c echo.Context) error {
	identity, _ := middleware.IdentityFrom(c)
	discussions, err := h.discussions.List(c.Request().Context(), c.QueryParam("course_id"), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, discussions)
}

// Get returns a single discussion by id.
//
// @Summary      Get a discussion
// @Tags         discussions
// @Produce      json
// @Param        id   path      string  true  "Discussion id"
// @Success      200  {object}  domain.Discussion
// @Failure      404  {object}  errorResponse
// @Router       /discussions/{id} [get]
func (h *DiscussionHandler) Get(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}
	d, err := h.discussions.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

// Create opens a new discussion owned by the caller. Non-admins must
// be enrolled in the course they post to.
//
// @Summary      Create a discussion
// @Tags         discussions
// @Accept       json
// @Produce      json
// @Param        body  body      discussionRequest  true  "Discussion"
// @Success      201   {object}  domain.Discussion
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /discussions [post]
func (h *DiscussionHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req discussionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	d, err := h.discussions.Create(c.Request().Context(), ports.DiscussionInput{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
	}, identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, d)
}

// Update rewrites a discussion the caller owns.
//
// @Summary      Update a discussion
// @Tags         discussions
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Discussion id"
// @Param        body  body      discussionRequest  true  "Discussion"
// @Success      200   {object}  domain.Discussion
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /discussions/{id} [put]
func (h *DiscussionHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req discussionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	d, err := h.discussions.Update(c.Request().Context(), c.Param("id"), ports.DiscussionInput{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
	}, identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

// Delete removes a discussion the caller owns.
//
// @Summary      Delete a discussion
// @Tags         discussions
// @Param        id  path  string  true  "Discussion id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /discussions/{id} [delete]
func (h *DiscussionHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.discussions.Delete(c.Request().Context(), c.Param("id"), identity); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
