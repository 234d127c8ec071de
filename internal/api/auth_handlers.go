package api

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"time"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"paytrack/internal/constants"
	"paytrack/internal/db"
	"paytrack/internal/models"
	"paytrack/internal/utils"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type requestOTPRequest struct {
	Mobile string `json:"mobile" validate:"required"`
}

type verifyOTPRequest struct {
	Mobile string `json:"mobile" validate:"required"`
	Code   string `json:"code" validate:"required,len=6"`
}

type linkTelegramRequest struct {
	TelegramUsername string `json:"telegramUsername" validate:"max=64"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register creates a new staff account.
func Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Register: hashing failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	user, err := db.CreateUser(models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         constants.ROLE_STAFF,
	})
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			writeJSONError(w, http.StatusBadRequest, "Username or email is already taken")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	writeJSONCreated(w, "Account created", user)
}

// Login authenticates by username or email plus password and issues a JWT.
func Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := db.GetUserByUsername(req.Username)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("Login: lookup failed for '%s': %v", req.Username, err)
		}
		writeJSONError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeJSONError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := CreateToken(user, deps.SecretKey)
	if err != nil {
		log.Printf("Login: token signing failed for user %d: %v", user.ID, err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	writeJSONSuccess(w, "Logged in", authResponse{Token: token, User: user})
}

// RequestOTP issues a fresh 6-digit code for a mobile number. Delivery is out
// of band; outside production the code is echoed back for testing.
func RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req requestOTPRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	mobile, err := utils.ValidatePhoneNumber(req.Mobile)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	code, err := generateOTPCode()
	if err != nil {
		log.Printf("RequestOTP: code generation failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to generate code")
		return
	}

	otp, err := db.CreateOTP(models.OTP{
		MobileNumber: mobile,
		Code:         code,
		ExpiresAt:    time.Now().Add(deps.Config.OTPLifetime),
	})
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to store code")
		return
	}

	log.Printf("RequestOTP: code issued for %s (expires %s)", mobile, otp.ExpiresAt.Format(time.RFC3339))

	data := map[string]interface{}{"expiresAt": otp.ExpiresAt}
	if deps.Config.AppEnv != "production" {
		data["code"] = code
	}
	writeJSONSuccess(w, "Verification code sent", data)
}

// VerifyOTP consumes a code and issues a JWT, creating the mobile-keyed staff
// account on first login.
func VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	mobile, err := utils.ValidatePhoneNumber(req.Mobile)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := db.ConsumeOTP(mobile, req.Code); err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusUnauthorized, "Invalid or expired code")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to verify code")
		return
	}

	user, err := db.GetUserByUsername(mobile)
	if err == sql.ErrNoRows {
		user, err = db.CreateUser(models.User{
			Username:     mobile,
			Email:        mobile + "@mobile.paytrack.local",
			PasswordHash: "",
			Role:         constants.ROLE_STAFF,
		})
	}
	if err != nil {
		log.Printf("VerifyOTP: account resolution failed for %s: %v", mobile, err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to resolve account")
		return
	}

	token, err := CreateToken(user, deps.SecretKey)
	if err != nil {
		log.Printf("VerifyOTP: token signing failed for user %d: %v", user.ID, err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	writeJSONSuccess(w, "Logged in", authResponse{Token: token, User: user})
}

// LinkTelegram sets (or clears, with an empty value) the Telegram username on
// the authenticated account, granting that chat identity bot access.
func LinkTelegram(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	var req linkTelegramRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := db.SetUserTelegramUsername(user.ID, req.TelegramUsername); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			writeJSONError(w, http.StatusBadRequest, "That Telegram username is already linked to another account")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to link Telegram username")
		return
	}

	updated, err := db.GetUserByID(user.ID)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load account")
		return
	}
	writeJSONSuccess(w, "Telegram username updated", updated)
}

func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
