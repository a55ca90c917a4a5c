package database

import (
	"database/sql"

	"meridian-schools/app/models"
)

// CreateUser inserts a staff account. The password must already be hashed.
func CreateUser(db *sql.DB, user *models.User) error {
	query := `INSERT INTO users (school_id, email, password, first_name, last_name, role)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at`

	return db.QueryRow(query,
		user.SchoolID, user.Email, user.Password,
		user.FirstName, user.LastName, user.Role,
	).Scan(&user.ID, &user.CreatedAt)
}

// GetUserByEmail fetches an active user for login.
func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	query := `SELECT id, school_id, email, password, first_name, last_name, role
	          FROM users
	          WHERE email = $1 AND is_active = true AND deleted_at IS NULL`

	user := &models.User{}
	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.SchoolID, &user.Email, &user.Password,
		&user.FirstName, &user.LastName, &user.Role,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
