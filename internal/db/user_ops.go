package db

import (
	"database/sql"
	"log"

	"paytrack/internal/models"
)

const userColumns = `id, username, email, password_hash, role, telegram_username, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&u.TelegramUsername, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// CreateUser inserts a new web account. Uniqueness of username and email is
// enforced by the table constraints.
func CreateUser(u models.User) (models.User, error) {
	err := DB.QueryRow(`
        INSERT INTO users (username, email, password_hash, role, created_at, updated_at)
        VALUES ($1, $2, $3, $4, NOW(), NOW())
        RETURNING id, created_at, updated_at`,
		u.Username, u.Email, u.PasswordHash, u.Role).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		log.Printf("CreateUser: failed to insert user '%s': %v", u.Username, err)
		return u, err
	}
	log.Printf("CreateUser: user '%s' created with id %d", u.Username, u.ID)
	return u, nil
}

// GetUserByID retrieves one user.
func GetUserByID(id int64) (models.User, error) {
	u, err := scanUser(DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil && err != sql.ErrNoRows {
		log.Printf("GetUserByID: failed to get user %d: %v", id, err)
	}
	return u, err
}

// GetUserByUsername retrieves a user by username or email (login accepts
// either).
func GetUserByUsername(usernameOrEmail string) (models.User, error) {
	u, err := scanUser(DB.QueryRow(`
        SELECT `+userColumns+` FROM users WHERE username = $1 OR email = $1`, usernameOrEmail))
	if err != nil && err != sql.ErrNoRows {
		log.Printf("GetUserByUsername: failed to get user '%s': %v", usernameOrEmail, err)
	}
	return u, err
}

// GetUserByTelegramUsername resolves a chat sender to a web account. This is
// the bot's entire authentication check.
func GetUserByTelegramUsername(telegramUsername string) (models.User, error) {
	u, err := scanUser(DB.QueryRow(`
        SELECT `+userColumns+` FROM users WHERE LOWER(telegram_username) = LOWER($1)`, telegramUsername))
	if err != nil && err != sql.ErrNoRows {
		log.Printf("GetUserByTelegramUsername: failed to get user '%s': %v", telegramUsername, err)
	}
	return u, err
}

// SetUserTelegramUsername links (or clears, when empty) a Telegram username
// to the account. The partial unique index rejects a username already linked
// to a different account.
func SetUserTelegramUsername(userID int64, telegramUsername string) error {
	_, err := DB.Exec(`
        UPDATE users SET telegram_username = NULLIF($1, ''), updated_at = NOW() WHERE id = $2`,
		telegramUsername, userID)
	if err != nil {
		log.Printf("SetUserTelegramUsername: failed for user %d: %v", userID, err)
		return err
	}
	log.Printf("SetUserTelegramUsername: user %d linked to telegram username '%s'", userID, telegramUsername)
	return nil
}
