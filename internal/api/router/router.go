package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/JesusCruzCelis/Sistema-Citas2/config"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/api/handler"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/api/middleware"
	"github.com/JesusCruzCelis/Sistema-Citas2/internal/model"
	"github.com/JesusCruzCelis/Sistema-Citas2/pkg/jwt"
	"github.com/JesusCruzCelis/Sistema-Citas2/pkg/redis"
)

// Setup builds the gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// authentication (no token required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// everything below requires a valid access token
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// staff accounts, system admins only
			users := authorized.Group("/users", middleware.RequireOp(model.OpManageUsers))
			{
				users.POST("", h.User.Create)
				users.GET("", h.User.List)
				users.GET("/by-name", h.User.GetByName)
				users.GET("/:id", h.User.Get)
				users.PUT("/:id", h.User.Update)
				users.DELETE("/:id", h.User.Delete)
			}

			// visitor registry
			visitors := authorized.Group("/visitors")
			{
				visitors.POST("", middleware.RequireOp(model.OpRegisterVisitor), h.Visitor.Create)
				visitors.GET("", middleware.RequireOp(model.OpReadAppointments), h.Visitor.List)
				visitors.GET("/:id", middleware.RequireOp(model.OpReadAppointments), h.Visitor.Get)
				visitors.PUT("/:id", middleware.RequireOp(model.OpRegisterVisitor), h.Visitor.Update)
				visitors.DELETE("/:id", middleware.RequireOp(model.OpRegisterVisitor), h.Visitor.Delete)
			}

			// vehicle registry
			vehicles := authorized.Group("/vehicles")
			{
				vehicles.POST("", middleware.RequireOp(model.OpRegisterVehicle), h.Vehicle.Create)
				vehicles.GET("", middleware.RequireOp(model.OpReadAppointments), h.Vehicle.List)
				vehicles.GET("/:id", middleware.RequireOp(model.OpReadAppointments), h.Vehicle.Get)
				vehicles.DELETE("/:id", middleware.RequireOp(model.OpRegisterVehicle), h.Vehicle.Delete)
			}

			// bookings; ownership checks for coordinators live in the service
			appointments := authorized.Group("/appointments")
			{
				appointments.POST("", middleware.RequireOp(model.OpCreateAppointment), h.Appointment.Create)
				appointments.GET("", middleware.RequireOp(model.OpReadAppointments), h.Appointment.List)
				appointments.GET("/by-visitor", middleware.RequireOp(model.OpReadAppointments), h.Appointment.ListByVisitor)
				appointments.GET("/:id", middleware.RequireOp(model.OpReadAppointments), h.Appointment.Get)
				appointments.PUT("/:id", middleware.RequireOp(model.OpMutateAppointment), h.Appointment.Update)
				appointments.DELETE("/:id", middleware.RequireOp(model.OpMutateAppointment), h.Appointment.Delete)
			}

			// weekly calendars and availability
			schedules := authorized.Group("/schedules")
			{
				schedules.GET("/availability", middleware.RequireOp(model.OpQueryAvailability), h.Schedule.Availability)

				manage := schedules.Group("", middleware.RequireOp(model.OpManageSchedules))
				{
					manage.POST("/coordinators", h.Schedule.CreateCoordinatorBlock)
					manage.GET("/coordinators/:user_id", h.Schedule.ListCoordinatorBlocks)
					manage.PUT("/coordinators/blocks/:id", h.Schedule.UpdateCoordinatorBlock)
					manage.DELETE("/coordinators/blocks/:id", h.Schedule.DeleteCoordinatorBlock)

					manage.POST("/areas", h.Schedule.CreateAreaBlock)
					manage.GET("/areas/:area", h.Schedule.ListAreaBlocks)
					manage.PUT("/areas/blocks/:id", h.Schedule.UpdateAreaBlock)
					manage.DELETE("/areas/blocks/:id", h.Schedule.DeleteAreaBlock)
				}
			}

			// file exports
			export := authorized.Group("/export", middleware.RequireOp(model.OpExportAppointments))
			{
				export.GET("/gate-list", h.Export.GateList)
				export.GET("/calendar/:user_id", h.Export.CoordinatorCalendar)
			}
		}
	}

	return r
}
