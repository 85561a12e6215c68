package constants

const (
	// ContextKeyUserID is the key used for the authenticated user ID in both
	// the session and the gin context.
	ContextKeyUserID = "user_id"

	// ContextKeyUser holds the authenticated *models.User in the gin context.
	ContextKeyUser = "current_user"

	// ContextKeyRequestID holds the id assigned to each request by the logger.
	ContextKeyRequestID = "request_id"

	// SessionKeyAuthHash binds a session to the password the user logged in with.
	SessionKeyAuthHash = "auth_hash"

	// SessionKeyDeleteArmed is set when the user confirmed account deletion.
	SessionKeyDeleteArmed = "account_delete_armed"

	// SessionKeyAccountDeleted is the one-shot token read by the deletion completed page.
	SessionKeyAccountDeleted = "account_deleted"

	SessionCookieName = "calorie_session"
)

const (
	MinPasswordLength = 8
	MaxUsernameLength = 150

	// HomeMealLimit is the number of meals shown on the home page.
	HomeMealLimit = 5

	// RelatedDataPlaceholder overwrites meal annotations whenever the meal is edited.
	RelatedDataPlaceholder = "更新された情報"

	DateLayout = "2006-01-02"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
