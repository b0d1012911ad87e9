package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"depenses/models"
)

func main() {
	email := flag.String("email", "", "email address (required)")
	username := flag.String("username", "", "username (required)")
	fullName := flag.String("name", "", "full name (required)")
	password := flag.String("password", "", "password (required, min 6 chars)")
	admin := flag.Bool("admin", false, "grant admin rights")
	flag.Parse()

	if *email == "" || *username == "" || *fullName == "" || len(*password) < 6 {
		fmt.Println("usage: create_user -email a@b.c -username jean -name \"Jean Dupont\" -password secret [-admin]")
		os.Exit(2)
	}

	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	var existing models.User
	if err := db.Where("email = ? OR username = ?", strings.ToLower(*email), *username).First(&existing).Error; err == nil {
		fmt.Printf("user %s already exists (id=%d)\n", existing.Username, existing.ID)
		os.Exit(0)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), 12)
	if err != nil {
		log.Fatalf("bcrypt failed: %v", err)
	}
	user := models.User{
		Email:        strings.ToLower(*email),
		Username:     *username,
		FullName:     *fullName,
		PasswordHash: hash,
		IsAdmin:      *admin,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	fmt.Printf("created user %s id=%d admin=%v\n", user.Username, user.ID, user.IsAdmin)
}
