package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/EnesCagri/kaankutuphane/config"
	"github.com/EnesCagri/kaankutuphane/internal/api/handler"
	"github.com/EnesCagri/kaankutuphane/internal/api/middleware"
	"github.com/EnesCagri/kaankutuphane/internal/model"
	"github.com/EnesCagri/kaankutuphane/pkg/jwt"
	"github.com/EnesCagri/kaankutuphane/pkg/metrics"
	"github.com/EnesCagri/kaankutuphane/pkg/redis"
)

// maxBodyBytes leaves room for a base64 data-URL avatar.
const maxBodyBytes = 2 << 20

// Setup builds the Gin engine with all routes wired.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))
	if m != nil {
		r.Use(middleware.Metrics(m))
	}

	// ── operational endpoints ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// auth endpoints, no token required
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register/student", h.Auth.RegisterStudent)
			auth.POST("/register/teacher", h.Auth.RegisterTeacher)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// the student registration form needs the classroom list before a
		// token exists
		v1.GET("/classrooms/public", h.Classroom.ListClassrooms)

		// everything else requires a valid access token
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			users := authorized.Group("/users")
			{
				users.GET("", h.User.ListUsers)
				users.GET("/:id", h.User.GetUser)
				users.PUT("/me", h.User.UpdateProfile)
				users.DELETE("/:id", middleware.RoleAuth(model.RoleTeacher), h.User.DeleteUser)
			}

			classrooms := authorized.Group("/classrooms")
			{
				classrooms.GET("", h.Classroom.ListClassrooms)
				classrooms.GET("/:id", h.Classroom.GetClassroom)
				classrooms.GET("/:id/students", h.Classroom.ListClassroomStudents)
				classrooms.POST("", middleware.RoleAuth(model.RoleTeacher), h.Classroom.CreateClassroom)
				classrooms.DELETE("/:id", middleware.RoleAuth(model.RoleTeacher), h.Classroom.DeleteClassroom)
				classrooms.GET("/:id/export", middleware.RoleAuth(model.RoleTeacher), h.Export.ExportClassroomActivity)
			}

			books := authorized.Group("/books")
			{
				books.GET("", h.Book.ListBooks)
				books.GET("/:id", h.Book.GetBook)
				books.POST("", middleware.RoleAuth(model.RoleStudent), h.Book.CreateBook)
				books.DELETE("/:id", middleware.RoleAuth(model.RoleTeacher), h.Book.DeleteBook)

				books.GET("/:id/comments", h.Comment.ListComments)
				books.POST("/:id/comments", middleware.RoleAuth(model.RoleStudent), h.Comment.CreateComment)

				books.POST("/:id/read", middleware.RoleAuth(model.RoleStudent), h.Reading.MarkAsRead)
				books.GET("/:id/readers", h.Reading.ListBookReaders)
			}

			authorized.DELETE("/comments/:id", middleware.RoleAuth(model.RoleTeacher), h.Comment.DeleteComment)

			trades := authorized.Group("/trades")
			trades.Use(middleware.RoleAuth(model.RoleStudent))
			{
				trades.POST("", h.Trade.ProposeTrade)
				trades.PUT("/:id", h.Trade.ResolveTrade)
				trades.GET("/incoming", h.Trade.ListIncomingTrades)
				trades.GET("/outgoing", h.Trade.ListOutgoingTrades)
			}

			authorized.GET("/reading/me", h.Reading.ListMyReads)
			authorized.GET("/leaderboard", h.Reading.Leaderboard)
		}
	}

	return r
}
