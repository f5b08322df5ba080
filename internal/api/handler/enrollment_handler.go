package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusworks/campus-api/internal/core/ports"
)

type EnrollmentHandler struct {
	enrollments ports.EnrollmentService
}

func NewEnrollmentHandler(enrollments ports.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

type enrollRequest struct {
	CourseID string   `json:"course_id" validate:"required"`
	UserIDs  []string `json:"user_ids"  validate:"required,min=1,dive,required"`
}

// Enroll grants course access to one or more users. Admin only; the
// route carries the role gate.
//
// @Summary      Enroll users in a course
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Param        body  body      enrollRequest  true  "Grant"
// @Success      201   {array}   domain.Enrollment
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /enrollments [post]
func (h *EnrollmentHandler) Enroll(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req enrollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	granted, err := h.enrollments.Enroll(c.Request().Context(), req.CourseID, req.UserIDs, identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, granted)
}

// EnrolledUsers returns the roster of a course. Admin only.
//
// @Summary      List enrolled users of a course
// @Tags         enrollments
// @Produce      json
// @Param        courseID  path      string  true  "Course id"
// @Success      200       {array}   ports.EnrolledUser
// @Failure      401       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /enrollments/course/{courseID} [get]
func (h *EnrollmentHandler) EnrolledUsers(c echo.Context) error {
	roster, err := h.enrollments.EnrolledUsers(c.Request().Context(), c.Param("courseID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roster)
}

// MyCourses returns the courses the caller is enrolled in.
//
// @Summary      List the caller's enrolled courses
// @Tags         enrollments
// @Produce      json
// @Success      200  {array}   domain.Course
// @Failure      401  {object}  errorResponse
// @Router       /enrollments/my-courses [get]
func (h *EnrollmentHandler) MyCourses(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	courses, err := h.enrollments.EnrolledCourses(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courses)
}
