package api

import "github.com/hearthplan/backend/internal/service"

// RegisterRequest is the auth registration payload.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the auth login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// BulkMealUpdate is the week-plan push from the automation layer.
// Dates travel as YYYY-MM-DD strings.
type BulkMealUpdate struct {
	WeekStart string                  `json:"week_start" binding:"required"`
	Meals     []service.MealSelection `json:"meals" binding:"required"`
}

// SnackToggle is one snack-log state in a bulk push.
type SnackToggle struct {
	Date      string `json:"date" binding:"required"`
	Person    string `json:"person" binding:"required"`
	SnackName string `json:"snack_name" binding:"required"`
	Consumed  bool   `json:"consumed"`
}

// BulkSnackUpdate is the snack-log push from the automation layer.
type BulkSnackUpdate struct {
	Snacks []SnackToggle `json:"snacks" binding:"required"`
}
