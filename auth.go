package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"depenses/models"
)

// bcryptCost matches what the account passwords were originally hashed with.
const bcryptCost = 12

const sessionCookie = "auth_token"

const tokenTTL = 7 * 24 * time.Hour

// CreateUser validates and inserts a new account. Uniqueness is pre-checked
// optimistically and the insert still handles the constraint race.
func CreateUser(db *gorm.DB, email, username, fullName, password string, isAdmin bool) (models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	username = strings.TrimSpace(username)
	fullName = strings.TrimSpace(fullName)
	if email == "" || !strings.Contains(email, "@") {
		return models.User{}, fmt.Errorf("valid email required")
	}
	if username == "" {
		return models.User{}, fmt.Errorf("username required")
	}
	if fullName == "" {
		return models.User{}, fmt.Errorf("full name required")
	}
	if len(password) < 6 {
		return models.User{}, fmt.Errorf("password too short (min 6)")
	}
	var existing models.User
	if err := db.Where("email = ? OR username = ?", email, username).First(&existing).Error; err == nil {
		return models.User{}, fmt.Errorf("user already exists")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return models.User{}, err
	}
	user := models.User{
		Email:        email,
		Username:     username,
		FullName:     fullName,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
	}
	if err := db.Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) { // race after the initial check
			return models.User{}, fmt.Errorf("user already exists")
		}
		return models.User{}, err
	}
	return user, nil
}

// Authenticate looks the account up by email or username and verifies the
// password. Failures are deliberately indistinguishable.
func Authenticate(db *gorm.DB, emailOrUsername, password string) (models.User, error) {
	id := strings.TrimSpace(emailOrUsername)
	var user models.User
	if err := db.Where("email = ? OR username = ?", strings.ToLower(id), id).First(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("invalid credentials")
	}
	return user, nil
}

// SignToken issues the session JWT carried by the auth cookie.
func SignToken(secret []byte, user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   fmt.Sprintf("%d", user.ID),
		"email": user.Email,
		"admin": user.IsAdmin,
		"exp":   time.Now().Add(tokenTTL).Unix(),
	})
	return token.SignedString(secret)
}

// ParseToken validates the session JWT and returns the user id it names.
func ParseToken(secret []byte, tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid claims")
	}
	sub, _ := claims["sub"].(string)
	var id uint
	if _, err := fmt.Sscanf(sub, "%d", &id); err != nil || id == 0 {
		return 0, fmt.Errorf("invalid subject")
	}
	return id, nil
}
