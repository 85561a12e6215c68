package handlers

import (
	"net/http"
	"net/url"

	"github.com/yukikurage/calorie-tracker-api/internal/dto"
	"github.com/yukikurage/calorie-tracker-api/internal/models"
)

func (suite *HandlerTestSuite) TestEditProfile() {
	b := suite.register("alice", "25", "F")

	w := b.post("/edit_profile/", url.Values{"age": {"45"}, "gender": {"F"}})
	suite.Equal(http.StatusSeeOther, w.Code, w.Body.String())
	suite.Equal("/update_profile/", w.Header().Get("Location"))

	w = b.get("/update_profile/")
	suite.Equal(http.StatusOK, w.Code)
	var page dto.ProfilePageResponse
	suite.decode(w, &page)
	suite.Equal(45, page.Profile.Age)
	suite.Equal(1800, page.Profile.TargetCalories)

	w = b.post("/edit_profile/", url.Values{"age": {"-5"}, "gender": {"F"}})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateProfile_KeepsSession() {
	b := suite.register("alice", "25", "F")

	w := b.post("/update_profile/", url.Values{
		"username": {"alice2"},
		"email":    {"alice2@example.com"},
		"age":      {"26"},
		"gender":   {"F"},
	})
	suite.Equal(http.StatusSeeOther, w.Code, w.Body.String())
	suite.Equal("/update-complete/", w.Header().Get("Location"))

	var home dto.HomePageResponse
	suite.decode(b.get("/home/"), &home)
	suite.Equal("alice2", home.User.Username)
}

func (suite *HandlerTestSuite) TestChangePassword_InvalidatesOtherSessions() {
	first := suite.register("alice", "25", "F")

	second := suite.newBrowser()
	w := second.post("/login/", url.Values{"username": {"alice"}, "password": {"password123"}})
	suite.Require().Equal(http.StatusSeeOther, w.Code)

	w = first.post("/change-password/", url.Values{
		"old_password":  {"wrong"},
		"new_password1": {"newpassword1"},
		"new_password2": {"newpassword1"},
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = first.post("/change-password/", url.Values{
		"old_password":  {"password123"},
		"new_password1": {"newpassword1"},
		"new_password2": {"newpassword1"},
	})
	suite.Equal(http.StatusSeeOther, w.Code, w.Body.String())
	suite.Equal("/password_changed/", w.Header().Get("Location"))

	var page dto.PageResponse
	suite.decode(first.get("/password_changed/"), &page)
	suite.Equal([]string{"パスワードが正常に更新されました。"}, page.Messages)

	suite.Equal(http.StatusOK, first.get("/home/").Code)
	suite.Equal(http.StatusUnauthorized, second.get("/home/").Code)
}

func (suite *HandlerTestSuite) TestDeleteAccount_StateMachine() {
	b := suite.register("alice", "25", "F")
	suite.Require().Equal(http.StatusSeeOther, b.post("/add_meal/", mealForm("2024-05-01", "500")).Code)

	// nothing happens without going through the confirmation
	w := b.get("/delete_in_progress/")
	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal("/delete_confirmation/", w.Header().Get("Location"))

	w = b.get("/delete_account/")
	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal("/delete_confirmation/", w.Header().Get("Location"))

	suite.Equal(http.StatusOK, b.get("/delete_confirmation/").Code)

	w = b.post("/delete_confirmation/", nil)
	suite.Equal(http.StatusTemporaryRedirect, w.Code)
	suite.Equal("/delete_account/", w.Header().Get("Location"))

	w = b.post("/delete_account/", nil)
	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal("/delete_in_progress/", w.Header().Get("Location"))

	w = b.get("/delete_in_progress/")
	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var progress dto.RedirectPageResponse
	suite.decode(w, &progress)
	suite.Equal("/delete_completed/", progress.RedirectURL)

	w = b.get("/delete_completed/")
	suite.Equal(http.StatusOK, w.Code)

	// the completion page is shown once
	w = b.get("/delete_completed/")
	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal("/home/", w.Header().Get("Location"))

	suite.Equal(http.StatusUnauthorized, b.get("/home/").Code)

	for _, model := range []interface{}{&models.User{}, &models.Profile{}, &models.Meal{}} {
		var count int64
		suite.Require().NoError(suite.db.Model(model).Count(&count).Error)
		suite.Zero(count)
	}

	w = suite.newBrowser().post("/login/", url.Values{"username": {"alice"}, "password": {"password123"}})
	suite.Equal(http.StatusUnauthorized, w.Code)
}
