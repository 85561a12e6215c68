package dto

// Page names returned in the "page" field of page responses.
const (
	PageIndex                = "index"
	PageRegister             = "register"
	PageRegistrationComplete = "registration_complete"
	PageLogin                = "login"
	PageLogoutComplete       = "logout_complete"
	PageHome                 = "home"
	PageAddMeal              = "add_meal"
	PageSuccess              = "success"
	PageCalorieWarning       = "calorie_warning"
	PageEnterMealData        = "enter_meal_data"
	PageSelectedDate         = "selected_date"
	PageEditMeal             = "edit_meal"
	PageEditComplete         = "edit_complete"
	PageConfirmDelete        = "confirm_delete"
	PageDeleteComplete       = "delete_complete"
	PageEditProfile          = "edit_profile"
	PageUpdateProfile        = "update_profile"
	PageUpdateComplete       = "update_complete"
	PageChangePassword       = "change_password"
	PagePasswordChanged      = "password_changed"
	PageDeleteConfirmation   = "delete_confirmation"
	PageDeleteAccount        = "delete_account"
	PageDeleteInProgress     = "delete_in_progress"
	PageDeleteCompleted      = "delete_completed"
)

// PageResponse is the state of a page without further content
type PageResponse struct {
	Page     string   `json:"page"`
	Messages []string `json:"messages,omitempty"`
}

// RedirectPageResponse is a page that tells the client where to go next
type RedirectPageResponse struct {
	Page        string `json:"page"`
	RedirectURL string `json:"redirect_url"`
}

// HomePageResponse lists the latest meals of the user
type HomePageResponse struct {
	Page     string    `json:"page"`
	User     UserDTO   `json:"user"`
	Meals    []MealDTO `json:"meals"`
	Messages []string  `json:"messages,omitempty"`
}

// AddMealPageResponse carries the target and total of the selected date
type AddMealPageResponse struct {
	Page           string `json:"page"`
	SelectedDate   string `json:"selected_date"`
	TargetCalories int    `json:"target_calories"`
	TotalCalories  int    `json:"total_calories"`
}

// DayMealsPageResponse lists the meals of one date
type DayMealsPageResponse struct {
	Page          string    `json:"page"`
	SelectedDate  string    `json:"selected_date"`
	Meals         []MealDTO `json:"meals"`
	TotalCalories int       `json:"total_calories"`
}

// MealPageResponse shows a single meal
type MealPageResponse struct {
	Page string  `json:"page"`
	Meal MealDTO `json:"meal"`
}

// EditCompletePageResponse is returned after a meal was edited
type EditCompletePageResponse struct {
	Page        string  `json:"page"`
	NewData     MealDTO `json:"new_data"`
	RedirectURL string  `json:"redirect_url"`
}

// ProfilePageResponse shows the account and profile forms
type ProfilePageResponse struct {
	Page    string     `json:"page"`
	User    UserDTO    `json:"user"`
	Profile ProfileDTO `json:"profile"`
}
