package handlers

import (
	"encoding/gob"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/calorie-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/calorie-tracker-api/internal/errors"
	"github.com/yukikurage/calorie-tracker-api/internal/services"
)

func init() {
	// session flashes are stored as []interface{}, which gob does not know by default
	gob.Register([]interface{}{})

	// report form field names instead of Go field names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	}
}

// fieldErrors translates binding failures into per-field messages.
func fieldErrors(err error) map[string]string {
	fields := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["non_field_errors"] = "invalid form data"
		return fields
	}

	for _, fe := range verrs {
		if _, exists := fields[fe.Field()]; exists {
			continue
		}
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = "this field is required"
		case "min":
			fields[fe.Field()] = fmt.Sprintf("must be at least %s", fe.Param())
		case "max":
			fields[fe.Field()] = fmt.Sprintf("must be at most %s", fe.Param())
		case "oneof":
			fields[fe.Field()] = fmt.Sprintf("must be one of: %s", fe.Param())
		case "email":
			fields[fe.Field()] = "enter a valid email address"
		default:
			fields[fe.Field()] = fmt.Sprintf("failed on %s", fe.Tag())
		}
	}
	return fields
}

// respondBindError re-displays page with the binding errors of err.
func respondBindError(c *gin.Context, page string, err error) {
	apierrors.FormErrors(c, page, fieldErrors(err))
}

// respondFormError maps service errors of a form submission to a response
// that re-displays page.
func respondFormError(c *gin.Context, page string, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.FormErrors(c, page, verr.Fields)
	case errors.Is(err, services.ErrInvalidAge):
		apierrors.FormErrors(c, page, map[string]string{"age": err.Error()})
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.FormErrors(c, page, map[string]string{
			"password": fmt.Sprintf("password must be at least %d characters", constants.MinPasswordLength),
		})
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.FormErrors(c, page, map[string]string{"username": "a user with that username already exists"})
	case errors.Is(err, services.ErrInvalidDate):
		apierrors.FormErrors(c, page, map[string]string{"date": err.Error()})
	default:
		respondInternalError(c, err)
	}
}

// respondInternalError logs err and answers with a generic message.
func respondInternalError(c *gin.Context, err error) {
	_ = c.Error(err)
	logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	if errors.Is(err, services.ErrPersistence) {
		apierrors.InternalError(c, "Failed to save your data, please try again")
		return
	}
	apierrors.InternalError(c, "")
}

// redirect answers a form POST with 303 See Other.
func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// addFlash queues a message for the next page view.
func addFlash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	if err := session.Save(); err != nil {
		logrus.WithError(err).Warn("failed to save flash message")
	}
}

// popFlashes returns and clears the queued messages.
func popFlashes(c *gin.Context) []string {
	session := sessions.Default(c)
	flashes := session.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		logrus.WithError(err).Warn("failed to clear flash messages")
	}

	messages := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if s, ok := f.(string); ok {
			messages = append(messages, s)
		}
	}
	return messages
}

func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
