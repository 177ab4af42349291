package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Credentials is the body of both signup and login.
type Credentials struct {
	Username string `json:"username" form:"username" binding:"required,notblank"`
	Password string `json:"password" form:"password" binding:"required,notblank"`
}

type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type User struct {
	ID           int    `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"` // "-" means this field won't be included in JSON
}
