package handlers

import (
	"finance-tracker/internal/service"

	"github.com/shopspring/decimal"
)

// Request and response bodies that differ from the domain models. Expenses,
// incomes, payments and savings are bound straight onto internal/models.

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// userRequest is the write side of a user. Password and CurrentPassword are
// never echoed back; responses use models.User.
type userRequest struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Password        string           `json:"password"`
	CurrentPassword string           `json:"currentPassword"`
	Balance         *decimal.Decimal `json:"balance"`
}

func (r registerRequest) toNewUser() service.NewUser {
	return service.NewUser{Name: r.Name, Email: r.Email, Password: r.Password}
}

func (r userRequest) toNewUser() service.NewUser {
	return service.NewUser{Name: r.Name, Email: r.Email, Password: r.Password, Balance: r.Balance}
}

func (r userRequest) toUserUpdate(id int64) service.UserUpdate {
	return service.UserUpdate{
		ID:              id,
		Name:            r.Name,
		Email:           r.Email,
		Password:        r.Password,
		CurrentPassword: r.CurrentPassword,
		Balance:         r.Balance,
	}
}
