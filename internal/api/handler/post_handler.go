package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusworks/campus-api/internal/core/ports"
)

type PostHandler struct {
	posts ports.PostService
}

func NewPostHandler(posts ports.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

type postRequest struct {
	Content string `json:"content" validate:"required,max=8000"`
}

// ListByDiscussion returns the posts of a discussion, oldest first.
//
// @Summary      List posts of a discussion
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Discussion id"
// @Success      200  {array}   domain.Post
// @Failure      404  {object}  errorResponse
// @Router       /discussions/{id}/posts [get]
func (h *PostHandler) ListByDiscussion(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}
	posts, err := h.posts.ListByDiscussion(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Create adds a post by the caller to a discussion.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Discussion id"
// @Param        body  body      postRequest  true  "Post"
// @Success      201   {object}  domain.Post
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /discussions/{id}/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.posts.Create(c.Request().Context(), c.Param("id"), req.Content, identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// Update rewrites a post the caller owns.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Post id"
// @Param        body  body      postRequest  true  "Post"
// @Success      200   {object}  domain.Post
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.posts.Update(c.Request().Context(), c.Param("id"), req.Content, identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Delete removes a post the caller owns.
//
// @Summary      Delete a post
// @Tags         posts
// @Param        id  path  string  true  "Post id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.posts.Delete(c.Request().Context(), c.Param("id"), identity); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
