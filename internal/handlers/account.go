package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/calorie-tracker-api/internal/auth"
	"github.com/yukikurage/calorie-tracker-api/internal/constants"
	"github.com/yukikurage/calorie-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/calorie-tracker-api/internal/errors"
	"github.com/yukikurage/calorie-tracker-api/internal/middleware"
	"github.com/yukikurage/calorie-tracker-api/internal/models"
	"github.com/yukikurage/calorie-tracker-api/internal/services"
)

// AccountHandler serves profile maintenance, password change and the
// account deletion flow.
type AccountHandler struct {
	authService    *services.AuthService
	accountService *services.AccountService
	provider       auth.AuthProvider
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(authService *services.AuthService, accountService *services.AccountService, provider auth.AuthProvider) *AccountHandler {
	return &AccountHandler{
		authService:    authService,
		accountService: accountService,
		provider:       provider,
	}
}

func (h *AccountHandler) profilePage(c *gin.Context, page string) {
	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	profile, err := h.accountService.GetProfile(user.ID)
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProfilePageResponse{
		Page:    page,
		User:    dto.ToUserDTO(*user),
		Profile: dto.ToProfileDTO(*profile, services.ProfileTarget(profile)),
	})
}

// EditProfilePage shows the profile form.
func (h *AccountHandler) EditProfilePage(c *gin.Context) {
	h.profilePage(c, dto.PageEditProfile)
}

// EditProfile saves age and gender.
func (h *AccountHandler) EditProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ProfileRequest struct {
		Age    *int   `form:"age" json:"age" binding:"required"`
		Gender string `form:"gender" json:"gender" binding:"required,oneof=M F"`
	}

	var req ProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, dto.PageEditProfile, err)
		return
	}

	if _, err := h.accountService.UpdateProfile(userID, services.ProfileInput{
		Age:    *req.Age,
		Gender: models.Gender(req.Gender),
	}); err != nil {
		respondFormError(c, dto.PageEditProfile, err)
		return
	}

	redirect(c, "/update_profile/")
}

// UpdateProfilePage shows the combined account and profile form.
func (h *AccountHandler) UpdateProfilePage(c *gin.Context) {
	h.profilePage(c, dto.PageUpdateProfile)
}

// UpdateProfile saves username, email, age and gender.
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type AccountRequest struct {
		Username string `form:"username" json:"username" binding:"required,max=150"`
		Email    string `form:"email" json:"email" binding:"required,email"`
		Age      *int   `form:"age" json:"age" binding:"required"`
		Gender   string `form:"gender" json:"gender" binding:"required,oneof=M F"`
	}

	var req AccountRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, dto.PageUpdateProfile, err)
		return
	}

	user, err := h.accountService.UpdateAccount(userID, services.AccountInput{
		Username: req.Username,
		Email:    req.Email,
		ProfileInput: services.ProfileInput{
			Age:    *req.Age,
			Gender: models.Gender(req.Gender),
		},
	})
	if err != nil {
		respondFormError(c, dto.PageUpdateProfile, err)
		return
	}

	if err := h.provider.StartSession(c, user); err != nil {
		respondInternalError(c, err)
		return
	}

	redirect(c, "/update-complete/")
}

// ChangePasswordPage shows the password form.
func (h *AccountHandler) ChangePasswordPage(c *gin.Context) {
	c.JSON(http.StatusOK, dto.PageResponse{Page: dto.PageChangePassword, Messages: popFlashes(c)})
}

// ChangePassword replaces the password and rebinds the current session to
// it. Other sessions of the user stop validating.
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ChangePasswordRequest struct {
		OldPassword  string `form:"old_password" json:"old_password" binding:"required"`
		NewPassword1 string `form:"new_password1" json:"new_password1" binding:"required"`
		NewPassword2 string `form:"new_password2" json:"new_password2" binding:"required"`
	}

	var req ChangePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, dto.PageChangePassword, err)
		return
	}

	user, err := h.authService.ChangePassword(userID, services.ChangePasswordInput{
		OldPassword:  req.OldPassword,
		NewPassword1: req.NewPassword1,
		NewPassword2: req.NewPassword2,
	})
	if err != nil {
		respondFormError(c, dto.PageChangePassword, err)
		return
	}

	if err := h.provider.StartSession(c, user); err != nil {
		respondInternalError(c, err)
		return
	}

	addFlash(c, "パスワードが正常に更新されました。")
	redirect(c, "/password_changed/")
}

// DeleteConfirmationPage is the first state of the deletion flow.
func (h *AccountHandler) DeleteConfirmationPage(c *gin.Context) {
	c.JSON(http.StatusOK, dto.PageResponse{Page: dto.PageDeleteConfirmation})
}

// DeleteConfirmation forwards the confirmed POST to the delete account step.
func (h *AccountHandler) DeleteConfirmation(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, "/delete_account/")
}

// DeleteAccountPage sends plain navigation back to the confirmation page.
func (h *AccountHandler) DeleteAccountPage(c *gin.Context) {
	redirect(c, "/delete_confirmation/")
}

// DeleteAccount arms the one-shot deletion token.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	session := sessions.Default(c)
	session.Set(constants.SessionKeyDeleteArmed, true)
	if err := session.Save(); err != nil {
		respondInternalError(c, err)
		return
	}

	redirect(c, "/delete_in_progress/")
}

// DeleteInProgress consumes the deletion token, removes the account and
// ends the session. Without a token it goes back to the confirmation page.
func (h *AccountHandler) DeleteInProgress(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	session := sessions.Default(c)
	if armed, _ := session.Get(constants.SessionKeyDeleteArmed).(bool); !armed {
		redirect(c, "/delete_confirmation/")
		return
	}
	session.Delete(constants.SessionKeyDeleteArmed)
	if err := session.Save(); err != nil {
		respondInternalError(c, err)
		return
	}

	if err := h.accountService.DeleteAccount(userID); err != nil {
		respondInternalError(c, err)
		return
	}
	middleware.RecordAccountDeletion()
	logrus.WithField("user_id", userID).Info("account deleted")

	if err := h.provider.EndSession(c); err != nil {
		respondInternalError(c, err)
		return
	}
	session.Set(constants.SessionKeyAccountDeleted, true)
	if err := session.Save(); err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RedirectPageResponse{
		Page:        dto.PageDeleteInProgress,
		RedirectURL: "/delete_completed/",
	})
}

// DeleteCompleted shows the completion page once; replays go home.
func (h *AccountHandler) DeleteCompleted(c *gin.Context) {
	session := sessions.Default(c)
	if deleted, _ := session.Get(constants.SessionKeyAccountDeleted).(bool); !deleted {
		redirect(c, "/home/")
		return
	}

	session.Delete(constants.SessionKeyAccountDeleted)
	if err := session.Save(); err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PageResponse{Page: dto.PageDeleteCompleted})
}
