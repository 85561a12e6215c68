package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/calorie-tracker-api/internal/auth"
	"github.com/yukikurage/calorie-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/calorie-tracker-api/internal/errors"
	"github.com/yukikurage/calorie-tracker-api/internal/middleware"
	"github.com/yukikurage/calorie-tracker-api/internal/models"
	"github.com/yukikurage/calorie-tracker-api/internal/services"
)

// AuthHandler coordinates registration, login and logout.
type AuthHandler struct {
	authService *services.AuthService
	provider    auth.AuthProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, provider auth.AuthProvider) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		provider:    provider,
	}
}

// RegisterPage shows the empty registration form.
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	c.JSON(http.StatusOK, dto.PageResponse{Page: dto.PageRegister})
}

// Register creates an account, logs the new user in and redirects to the
// registration complete page.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Username  string `form:"username" json:"username" binding:"required,max=150"`
		Email     string `form:"email" json:"email" binding:"required,email"`
		Gender    string `form:"gender" json:"gender" binding:"required,oneof=M F"`
		Age       *int   `form:"age" json:"age" binding:"required"`
		Password1 string `form:"password1" json:"password1" binding:"required"`
		Password2 string `form:"password2" json:"password2" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, dto.PageRegister, err)
		return
	}

	user, err := h.authService.Signup(services.SignupInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password1,
		PasswordConfirm: req.Password2,
		Age:             *req.Age,
		Gender:          models.Gender(req.Gender),
	})
	if err != nil {
		respondFormError(c, dto.PageRegister, err)
		return
	}
	middleware.RecordRegistration()

	if err := h.provider.StartSession(c, user); err != nil {
		respondInternalError(c, err)
		return
	}

	redirect(c, "/registration_complete/")
}

// LoginPage shows the login form.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, dto.PageResponse{Page: dto.PageLogin, Messages: popFlashes(c)})
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `form:"username" json:"username" binding:"required"`
		Password string `form:"password" json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, dto.PageLogin, err)
		return
	}

	user, err := h.provider.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.InvalidCredentials(c, dto.PageLogin, "Please enter a correct username and password.")
			return
		}
		respondInternalError(c, err)
		return
	}

	if err := h.provider.StartSession(c, user); err != nil {
		respondInternalError(c, err)
		return
	}

	redirect(c, "/home/")
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.provider.EndSession(c); err != nil {
		respondInternalError(c, err)
		return
	}

	redirect(c, "/logout_complete/")
}

// StaticPage answers with a page that carries no data besides pending messages.
func StaticPage(page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.PageResponse{Page: page, Messages: popFlashes(c)})
	}
}
