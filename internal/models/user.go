package models

import "time"

// User зарегистрированный пользователь.
type User struct {
	ID           int64
	UserName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// DummySignUp тело запроса регистрации.
type DummySignUp struct {
	UserName string `json:"user_name" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// DummySignIn тело запроса входа.
type DummySignIn struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
