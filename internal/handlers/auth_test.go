package handlers

import (
	"net/http"
	"net/url"

	"github.com/yukikurage/calorie-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/calorie-tracker-api/internal/errors"
	"github.com/yukikurage/calorie-tracker-api/internal/models"
)

func (suite *HandlerTestSuite) TestRegister_StartsSession() {
	b := suite.register("alice", "30", "F")

	w := b.get("/home/")
	suite.Equal(http.StatusOK, w.Code)

	var page dto.HomePageResponse
	suite.decode(w, &page)
	suite.Equal(dto.PageHome, page.Page)
	suite.Equal("alice", page.User.Username)
	suite.Empty(page.Meals)

	var profiles []models.Profile
	suite.Require().NoError(suite.db.Find(&profiles).Error)
	suite.Require().Len(profiles, 1)
	suite.Equal(30, profiles[0].Age)
}

func (suite *HandlerTestSuite) TestRegister_DuplicateUsername() {
	suite.register("alice", "30", "F")

	w := suite.newBrowser().post("/register/", url.Values{
		"username":  {"alice"},
		"email":     {"other@example.com"},
		"gender":    {"M"},
		"age":       {"40"},
		"password1": {"password123"},
		"password2": {"password123"},
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	var apiErr apierrors.APIError
	suite.decode(w, &apiErr)
	suite.Equal(dto.PageRegister, apiErr.Page)
	suite.Contains(apiErr.Details, "username")

	var count int64
	suite.Require().NoError(suite.db.Model(&models.User{}).Count(&count).Error)
	suite.EqualValues(1, count)
}

func (suite *HandlerTestSuite) TestRegister_FieldErrors() {
	w := suite.newBrowser().post("/register/", url.Values{
		"username":  {"bob"},
		"email":     {"bob@example.com"},
		"gender":    {"M"},
		"age":       {"-1"},
		"password1": {"password123"},
		"password2": {"password123"},
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	var apiErr apierrors.APIError
	suite.decode(w, &apiErr)
	suite.Contains(apiErr.Details, "age")

	w = suite.newBrowser().post("/register/", url.Values{
		"username": {"bob"},
		"gender":   {"X"},
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	apiErr = apierrors.APIError{}
	suite.decode(w, &apiErr)
	details, ok := apiErr.Details.(map[string]interface{})
	suite.Require().True(ok)
	suite.Contains(details, "email")
	suite.Contains(details, "gender")
	suite.Contains(details, "password1")
}

func (suite *HandlerTestSuite) TestLogin() {
	suite.register("alice", "30", "F")

	b := suite.newBrowser()
	w := b.post("/login/", url.Values{"username": {"alice"}, "password": {"wrong-password"}})
	suite.Equal(http.StatusUnauthorized, w.Code)
	var apiErr apierrors.APIError
	suite.decode(w, &apiErr)
	suite.Equal(apierrors.ErrCodeInvalidCredentials, apiErr.Code)
	suite.Equal(dto.PageLogin, apiErr.Page)

	w = b.post("/login/", url.Values{"username": {"alice"}, "password": {"password123"}})
	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal("/home/", w.Header().Get("Location"))

	suite.Equal(http.StatusOK, b.get("/home/").Code)
}

func (suite *HandlerTestSuite) TestLogout() {
	b := suite.register("alice", "30", "F")

	w := b.post("/logout/", nil)
	suite.Equal(http.StatusSeeOther, w.Code)
	suite.Equal("/logout_complete/", w.Header().Get("Location"))

	suite.Equal(http.StatusOK, b.get("/logout_complete/").Code)
	suite.Equal(http.StatusUnauthorized, b.get("/home/").Code)
}

func (suite *HandlerTestSuite) TestPublicPages() {
	b := suite.newBrowser()
	suite.Equal(http.StatusOK, b.get("/").Code)
	suite.Equal(http.StatusOK, b.get("/register/").Code)
	suite.Equal(http.StatusOK, b.get("/login/").Code)
	suite.Equal(http.StatusOK, b.get("/health").Code)
	suite.Equal(http.StatusUnauthorized, b.get("/home/").Code)
	suite.Equal(http.StatusUnauthorized, b.get("/api/calories/2024/").Code)
}
