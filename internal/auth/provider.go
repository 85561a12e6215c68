package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/calorie-tracker-api/internal/constants"
	"github.com/yukikurage/calorie-tracker-api/internal/models"
	"github.com/yukikurage/calorie-tracker-api/internal/services"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// AuthProvider is the authentication capability the handlers depend on.
type AuthProvider interface {
	// Authenticate checks credentials without touching the session.
	Authenticate(username, password string) (*models.User, error)
	// StartSession binds the session to user. Calling it again for the same
	// user refreshes the binding after a credential change.
	StartSession(c *gin.Context, user *models.User) error
	// EndSession drops everything stored in the session.
	EndSession(c *gin.Context) error
	// CurrentUser returns the user of a valid session or ErrNotAuthenticated.
	CurrentUser(c *gin.Context) (*models.User, error)
}

// SessionProvider implements AuthProvider on top of gin-contrib sessions.
// Besides the user id the session keeps a keyed hash of the user's password
// hash, so a password change invalidates every other session of the user.
type SessionProvider struct {
	authService *services.AuthService
	secret      []byte
}

// NewSessionProvider creates a new SessionProvider.
func NewSessionProvider(authService *services.AuthService, secret string) *SessionProvider {
	return &SessionProvider{
		authService: authService,
		secret:      []byte(secret),
	}
}

func (p *SessionProvider) Authenticate(username, password string) (*models.User, error) {
	return p.authService.Login(services.LoginInput{
		Username: username,
		Password: password,
	})
}

func (p *SessionProvider) StartSession(c *gin.Context, user *models.User) error {
	session := sessions.Default(c)
	session.Delete(constants.SessionKeyDeleteArmed)
	session.Set(constants.ContextKeyUserID, user.ID)
	session.Set(constants.SessionKeyAuthHash, p.authHash(user))
	return session.Save()
}

func (p *SessionProvider) EndSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}

func (p *SessionProvider) CurrentUser(c *gin.Context) (*models.User, error) {
	session := sessions.Default(c)

	userID, ok := session.Get(constants.ContextKeyUserID).(uint64)
	if !ok {
		return nil, ErrNotAuthenticated
	}
	hash, ok := session.Get(constants.SessionKeyAuthHash).(string)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	user, err := p.authService.GetUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}

	if !hmac.Equal([]byte(hash), []byte(p.authHash(user))) {
		return nil, ErrNotAuthenticated
	}
	return user, nil
}

func (p *SessionProvider) authHash(user *models.User) string {
	mac := hmac.New(sha256.New, p.secret)
	mac.Write([]byte(user.PasswordHash))
	return hex.EncodeToString(mac.Sum(nil))
}
