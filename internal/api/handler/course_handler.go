package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusworks/campus-api/internal/core/ports"
)

type CourseHandler struct {
	courses ports.CourseService
}

func NewCourseHandler(courses ports.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

type courseRequest struct {
	Name        string `json:"name"        validate:"required,max=200"`
	Description string `json:"description" validate:"max=4000"`
}

// List returns the full course catalog. The catalog itself is public;
// enrollments control access to the content behind each course.
//
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Success      200  {array}  domain.Course
// @Router       /courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	courses, err := h.courses.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courses)
}

// Get returns a single course by id.
//
// @Summary      Get a course
// @Tags         courses
// @Produce      json
// @Param        id   path      string  true  "Course id"
// @Success      200  {object}  domain.Course
// @Failure      404  {object}  errorResponse
// @Router       /courses/{id} [get]
func (h *CourseHandler) Get(c echo.Context) error {
	course, err := h.courses.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, course)
}

// Create adds a course to the catalog.
//
// @Summary      Create a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        body  body      courseRequest  true  "Course"
// @Success      201   {object}  domain.Course
// @Failure      401   {object}  errorResponse
// @Router       /courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req courseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.courses.Create(c.Request().Context(), ports.CourseInput{
		Name:        req.Name,
		Description: req.Description,
	}, identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, course)
}

// Update rewrites a course.
//
// @Summary      Update a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Course id"
// @Param        body  body      courseRequest  true  "Course"
// @Success      200   {object}  domain.Course
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /courses/{id} [put]
func (h *CourseHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req courseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.courses.Update(c.Request().Context(), c.Param("id"), ports.CourseInput{
		Name:        req.Name,
		Description: req.Description,
	}, identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, course)
}

// Delete removes a course.
//
// @Summary      Delete a course
// @Tags         courses
// @Param        id  path  string  true  "Course id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /courses/{id} [delete]
func (h *CourseHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.courses.Delete(c.Request().Context(), c.Param("id"), identity); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
