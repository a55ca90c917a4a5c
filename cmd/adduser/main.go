package main

import (
	"flag"
	"log/slog"
	"os"

	"meridian-schools/app/config"
	"meridian-schools/app/database"
	"meridian-schools/app/logging"
	"meridian-schools/app/models"
	"meridian-schools/app/routes/auth"
)

// Creates a staff account that can sign in and pull fee reports.
func main() {
	logging.Setup()

	schoolID := flag.String("school", "", "school id (uuid)")
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "initial password")
	firstName := flag.String("first-name", "", "first name")
	lastName := flag.String("last-name", "", "last name")
	role := flag.String("role", "accountant", "user role")
	flag.Parse()

	if *schoolID == "" || *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		os.Exit(1)
	}

	user := &models.User{
		SchoolID:  *schoolID,
		Email:     *email,
		Password:  hashed,
		FirstName: *firstName,
		LastName:  *lastName,
		Role:      *role,
	}
	if err := database.CreateUser(db, user); err != nil {
		slog.Error("failed to create user", "email", *email, "error", err)
		os.Exit(1)
	}

	slog.Info("user created", "id", user.ID, "email", user.Email, "role", user.Role)
}
