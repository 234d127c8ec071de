package db

import (
	"database/sql"
	"log"
	"time"

	"paytrack/internal/models"
)

// CreateOTP stores a fresh verification code, invalidating any earlier
// unused codes for the same number.
func CreateOTP(o models.OTP) (models.OTP, error) {
	_, err := DB.Exec(`UPDATE otps SET is_used = TRUE WHERE mobile_number = $1 AND is_used = FALSE`,
		o.MobileNumber)
	if err != nil {
		log.Printf("CreateOTP: failed to invalidate earlier codes for %s: %v", o.MobileNumber, err)
		return o, err
	}

	err = DB.QueryRow(`
        INSERT INTO otps (mobile_number, code, expires_at, is_used, created_at)
        VALUES ($1, $2, $3, FALSE, NOW())
        RETURNING id, created_at`,
		o.MobileNumber, o.Code, o.ExpiresAt).
		Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		log.Printf("CreateOTP: failed to insert code for %s: %v", o.MobileNumber, err)
		return o, err
	}
	return o, nil
}

// ConsumeOTP validates a code for a mobile number and marks it used. Returns
// sql.ErrNoRows when no live matching code exists.
func ConsumeOTP(mobileNumber, code string) error {
	result, err := DB.Exec(`
        UPDATE otps SET is_used = TRUE
        WHERE mobile_number = $1 AND code = $2 AND is_used = FALSE AND expires_at > NOW()`,
		mobileNumber, code)
	if err != nil {
		log.Printf("ConsumeOTP: update failed for %s: %v", mobileNumber, err)
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	log.Printf("ConsumeOTP: code consumed for %s", mobileNumber)
	return nil
}

// PurgeExpiredOTPs deletes codes past their expiry. The original relied on a
// store-level TTL index; here the session janitor calls this periodically.
func PurgeExpiredOTPs(now time.Time) (int64, error) {
	result, err := DB.Exec(`DELETE FROM otps WHERE expires_at <= $1`, now)
	if err != nil {
		log.Printf("PurgeExpiredOTPs: delete failed: %v", err)
		return 0, err
	}
	purged, _ := result.RowsAffected()
	if purged > 0 {
		log.Printf("PurgeExpiredOTPs: %d expired codes removed", purged)
	}
	return purged, nil
}
