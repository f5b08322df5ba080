package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campusworks/campus-api/internal/api/handler"
	"github.com/campusworks/campus-api/internal/api/middleware"
	"github.com/campusworks/campus-api/internal/core/domain"
	"github.com/campusworks/campus-api/internal/core/ports"
	"github.com/campusworks/campus-api/internal/pkg/token"
)

// Deps carries everything the routers need. Redis and the message and
// discussion services are optional; each router wires only the routes
// whose services are present.
type Deps struct {
	Logger zerolog.Logger
	Codec  *token.Codec

	Mongo *mongo.Database
	Redis *redis.Client

	// Metrics defaults to the process-wide Prometheus registry. Tests
	// inject a fresh registry per router to avoid double registration.
	Metrics *prometheus.Registry

	Auth        ports.AuthService
	Users       ports.UserService
	Courses     ports.CourseService
	Enrollments ports.EnrollmentService
	Discussions ports.DiscussionService
	Posts       ports.PostService
	Messages    ports.MessageService
}

// NewClassroomRouter builds the course/discussion API: a course catalog
// with admin-granted enrollments, discussions and posts guarded by
// ownership, plus an admin-only user listing.
func NewClassroomRouter(d Deps) *echo.Echo {
	e := newEcho(d)

	authHandler := handler.NewAuthHandler(d.Auth)
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/signup-admin", authHandler.SignupAdmin)
	e.POST("/auth/signin", authHandler.Signin)

	courseHandler := handler.NewCourseHandler(d.Courses)
	e.GET("/courses", courseHandler.List)
	e.POST("/courses", courseHandler.Create)
	e.GET("/courses/:id", courseHandler.Get)
	e.PUT("/courses/:id", courseHandler.Update)
	e.DELETE("/courses/:id", courseHandler.Delete)

	enrollmentHandler := handler.NewEnrollmentHandler(d.Enrollments)
	e.POST("/enrollments", enrollmentHandler.Enroll, middleware.RequireRole(domain.RoleAdmin))
	e.GET("/enrollments/course/:courseID", enrollmentHandler.EnrolledUsers, middleware.RequireRole(domain.RoleAdmin))
	e.GET("/enrollments/my-courses", enrollmentHandler.MyCourses)

	discussionHandler := handler.NewDiscussionHandler(d.Discussions)
	e.GET("/discussions", discussionHandler.List)
	e.POST("/discussions", discussionHandler.Create)
	e.GET("/discussions/:id", discussionHandler.Get)
	e.PUT("/discussions/:id", discussionHandler.Update)
	e.DELETE("/discussions/:id", discussionHandler.Delete)

	postHandler := handler.NewPostHandler(d.Posts)
	e.GET("/discussions/:id/posts", postHandler.ListByDiscussion)
	e.POST("/discussions/:id/posts", postHandler.Create)
	e.PUT("/posts/:id", postHandler.Update)
	e.DELETE("/posts/:id", postHandler.Delete)

	userHandler := handler.NewUserHandler(d.Users)
	e.GET("/users", userHandler.List, middleware.RequireRole(domain.RoleAdmin))

	return e
}

// NewChatRouter builds the messaging API: register/login aliases for
// the credential endpoints, direct messages with per-recipient read
// state, a conversation listing and a presence-decorated user listing
// open to any authenticated caller.
func NewChatRouter(d Deps) *echo.Echo {
	e := newEcho(d)

	authHandler := handler.NewAuthHandler(d.Auth)
	e.POST("/auth/register", authHandler.Signup)
	e.POST("/auth/login", authHandler.Signin)

	messageHandler := handler.NewMessageHandler(d.Messages)
	e.POST("/messages", messageHandler.Send)
	e.GET("/messages/:userID", messageHandler.Conversation)
	e.POST("/messages/:userID/read", messageHandler.MarkRead)
	e.DELETE("/messages/:id", messageHandler.Delete)
	e.GET("/conversations", messageHandler.Conversations)

	userHandler := handler.NewUserHandler(d.Users)
	e.GET("/users", userHandler.List)

	return e
}

func newEcho(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	registerer := prometheus.Registerer(prometheus.DefaultRegisterer)
	gatherer := prometheus.Gatherer(prometheus.DefaultGatherer)
	if d.Metrics != nil {
		registerer = d.Metrics
		gatherer = d.Metrics
	}

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "campus",
		Registerer: registerer,
	}))
	e.Use(middleware.Auth(d.Codec, middleware.DefaultSkipPrefixes))

	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	readiness := handler.NewReadinessHandler(d.Mongo, d.Redis)
	e.GET("/health/ready", readiness.Readiness)

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: gatherer,
	}))
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
