// Package httpapi exposes the attendance service over HTTP. Every request
// and response payload travels inside the sealed envelope; handlers decode,
// validate, call a service, and seal the reply.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dgitonga/qrollcall/internal/logging"
	"github.com/dgitonga/qrollcall/internal/sealx"
	"github.com/dgitonga/qrollcall/internal/server/models"
	"github.com/dgitonga/qrollcall/internal/server/services"
	"github.com/gin-gonic/gin"
)

type Server struct {
	address    string
	logger     logging.Logger
	box        *sealx.Box
	jwtSecret  []byte
	access     *services.AccessService
	catalog    *services.CatalogService
	users      *services.UserService
	schedules  *services.ScheduleService
	attendance *services.AttendanceService
}

func NewServer(
	address string,
	logger logging.Logger,
	box *sealx.Box,
	secretKey string,
	access *services.AccessService,
	catalog *services.CatalogService,
	users *services.UserService,
	schedules *services.ScheduleService,
	attendance *services.AttendanceService,
) *Server {
	return &Server{
		address:    address,
		logger:     logger.With("module", "http_server"),
		box:        box,
		jwtSecret:  []byte(secretKey),
		access:     access,
		catalog:    catalog,
		users:      users,
		schedules:  schedules,
		attendance: attendance,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	api := router.Group("/api")

	access := api.Group("/access")
	access.POST("/register", s.handleRegister)
	access.POST("/login", s.handleLogin)
	access.POST("/refresh", s.handleRefresh)

	courses := api.Group("/courses")
	courses.POST("", s.handleCreateCourse)
	courses.GET("", s.handleListCourses)
	courses.DELETE("", s.handleDeleteCourse)

	units := api.Group("/units")
	units.POST("/new", s.handleCreateUnit)
	units.POST("", s.handleListUnits)
	units.DELETE("", s.handleDeleteUnit)

	users := api.Group("/users")
	users.Use(s.requireRole(models.RoleAdmin))
	users.POST("", s.handleListUsers)
	users.PUT("/block", s.handleBlockUser)
	users.DELETE("", s.handleDeleteUser)

	schedules := api.Group("/schedules")
	schedules.POST("", s.handleAddSchedule)
	schedules.PUT("", s.handleListSchedules)
	schedules.DELETE("", s.handleDeleteSchedule)

	qr := api.Group("/qr")
	qr.POST("", s.handleIssueQR)
	qr.PUT("", s.handleRedeemQR)
	qr.PUT("/attendance", s.handleAttendanceList)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API is running...")
	})

	return router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
