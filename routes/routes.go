package routes

import (
	"log/slog"
	"net/http"

	"fittrack/controllers"
	"fittrack/middlewares"

	"github.com/gin-gonic/gin"
)

// Controllers are the handlers the router mounts.
type Controllers struct {
	Users     *controllers.UserController
	Metrics   *controllers.MetricsController
	Meals     *controllers.MealController
	Workouts  *controllers.WorkoutController
	Goals     *controllers.DailyGoalController
	Dashboard *controllers.DashboardController
	Realtime  *controllers.RealtimeController
}

// SetupRouter mounts every route. An empty jwtSecret leaves the API open.
func SetupRouter(h Controllers, log *slog.Logger, jwtSecret []byte) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestID(), middlewares.RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// registration stays public so a client can obtain its first token
	api.POST("/users", h.Users.Create)

	authed := api.Group("", middlewares.AuthMiddleware(jwtSecret))
	{
		authed.GET("/meal-options", h.Meals.ListOptions)
		authed.POST("/meal-options", h.Meals.CreateOption)
		authed.POST("/meal-options/recognize", h.Meals.Recognize)

		authed.GET("/exercises", h.Workouts.ListExercises)
		authed.POST("/exercises", h.Workouts.CreateExercise)

		authed.GET("/workouts/:workoutId/sets", h.Workouts.ListSets)
		authed.POST("/workouts/:workoutId/sets", h.Workouts.AddSet)
	}

	user := authed.Group("/users/:userId", middlewares.RequireOwner())
	{
		user.GET("", h.Users.Get)
		user.PATCH("/streak", h.Users.UpdateStreak)
		user.PUT("/profile-picture", h.Users.SetProfilePicture)

		user.GET("/metrics", h.Metrics.List)
		user.POST("/metrics", h.Metrics.Create)
		user.GET("/metrics/latest", h.Metrics.Latest)

		user.GET("/logged-meals", h.Meals.List)
		user.GET("/logged-meals/today", h.Meals.Today)
		user.POST("/logged-meals", h.Meals.Log)

		user.GET("/workouts", h.Workouts.List)
		user.POST("/workouts", h.Workouts.Create)

		user.GET("/personal-records", h.Workouts.Records)
		user.POST("/personal-records", h.Workouts.SetRecord)

		user.GET("/daily-goals", h.Goals.Get)
		user.POST("/daily-goals", h.Goals.Replace)
		user.PATCH("/daily-goals", h.Goals.Patch)

		user.GET("/dashboard", h.Dashboard.Get)
		user.GET("/live", h.Realtime.Live)
	}

	return r
}
