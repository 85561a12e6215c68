package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/calorie-tracker-api/internal/auth"
	"github.com/yukikurage/calorie-tracker-api/internal/dto"
	"github.com/yukikurage/calorie-tracker-api/internal/middleware"
	"github.com/yukikurage/calorie-tracker-api/internal/services"
)

// Services groups what the handlers need.
type Services struct {
	Auth     *services.AuthService
	Accounts *services.AccountService
	Meals    *services.MealService
	Reports  *services.ReportService
	AI       *services.AIService
	Provider auth.AuthProvider
	// FormLimiter throttles login and registration posts when set.
	FormLimiter *middleware.RateLimiter
}

// RegisterRoutes mounts every page and API route on r. Session middleware
// must already be installed.
func RegisterRoutes(r *gin.Engine, svc Services) {
	authHandler := NewAuthHandler(svc.Auth, svc.Provider)
	accountHandler := NewAccountHandler(svc.Auth, svc.Accounts, svc.Provider)
	mealHandler := NewMealHandler(svc.Meals, svc.AI)
	reportHandler := NewReportHandler(svc.Reports)

	throttle := func(c *gin.Context) { c.Next() }
	if svc.FormLimiter != nil {
		throttle = svc.FormLimiter.Handler()
	}
	requireAuth := middleware.RequireAuth(svc.Provider)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Calorie Tracker API is running",
		})
	})
	r.GET("/metrics", middleware.MetricsHandler())

	// Public pages
	r.GET("/", StaticPage(dto.PageIndex))
	r.GET("/register/", authHandler.RegisterPage)
	r.POST("/register/", throttle, authHandler.Register)
	r.GET("/login/", authHandler.LoginPage)
	r.POST("/login/", throttle, authHandler.Login)
	r.GET("/logout_complete/", StaticPage(dto.PageLogoutComplete))
	r.GET("/delete_completed/", accountHandler.DeleteCompleted)
	r.GET("/selected_date/", mealHandler.SelectedDatePage)

	// Pages that need a logged in user
	pages := r.Group("/")
	pages.Use(requireAuth)
	{
		pages.GET("/registration_complete/", StaticPage(dto.PageRegistrationComplete))
		pages.POST("/logout/", authHandler.Logout)
		pages.GET("/home/", mealHandler.Home)

		pages.GET("/add_meal/", mealHandler.AddMealPage)
		pages.POST("/add_meal/", mealHandler.AddMeal)
		pages.GET("/calorie_warning/", StaticPage(dto.PageCalorieWarning))
		pages.GET("/success/", StaticPage(dto.PageSuccess))
		pages.GET("/enter_meal_data/", mealHandler.EnterMealDataPage)
		pages.POST("/enter_meal_data/", mealHandler.EnterMealData)
		pages.GET("/edit-meal/:meal_id/", mealHandler.EditMealPage)
		pages.POST("/edit-meal/:meal_id/", mealHandler.EditMeal)
		pages.GET("/meal/confirm-delete/:meal_id/", mealHandler.ConfirmDeletePage)
		pages.GET("/meal/delete/:meal_id/", mealHandler.DeleteMealPage)
		pages.POST("/meal/delete/:meal_id/", mealHandler.DeleteMeal)
		pages.GET("/meal/delete/complete/", StaticPage(dto.PageDeleteComplete))
		pages.GET("/meals/", mealHandler.ListMeals)

		pages.GET("/edit_profile/", accountHandler.EditProfilePage)
		pages.POST("/edit_profile/", accountHandler.EditProfile)
		pages.GET("/update_profile/", accountHandler.UpdateProfilePage)
		pages.POST("/update_profile/", accountHandler.UpdateProfile)
		pages.GET("/update-complete/", StaticPage(dto.PageUpdateComplete))
		pages.GET("/change-password/", accountHandler.ChangePasswordPage)
		pages.POST("/change-password/", accountHandler.ChangePassword)
		pages.GET("/password_changed/", StaticPage(dto.PagePasswordChanged))

		pages.GET("/delete_confirmation/", accountHandler.DeleteConfirmationPage)
		pages.POST("/delete_confirmation/", accountHandler.DeleteConfirmation)
		pages.GET("/delete_account/", accountHandler.DeleteAccountPage)
		pages.POST("/delete_account/", accountHandler.DeleteAccount)
		pages.GET("/delete_in_progress/", accountHandler.DeleteInProgress)
	}

	// API routes
	api := r.Group("/api")
	api.Use(requireAuth)
	{
		api.GET("/calories/:year/", reportHandler.CaloriesByYear)
		api.POST("/calories/estimate/", mealHandler.EstimateCalories)
	}
}
