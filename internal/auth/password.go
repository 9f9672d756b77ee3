package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/vs-portfolio/portfolio/internal/model"
)

// ErrPasswordMismatch is returned when a password does not match.
var ErrPasswordMismatch = errors.New("auth: password mismatch")

const defaultCost = 12

// PasswordService hashes admin passwords and verifies login attempts.
type PasswordService struct {
	cost int
}

func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceWithCost is for tests, which use bcrypt.MinCost.
func NewPasswordServiceWithCost(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash returns a bcrypt hash. bcrypt ignores input past 72 bytes, so longer
// passwords are refused rather than silently truncated.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", errors.New("auth: password must be 72 bytes or fewer")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}
	return string(hashed), nil
}

// Verify checks plaintext against the stored admin password. Stored bcrypt
// hashes are compared with bcrypt. Anything else is a legacy plaintext value
// and is compared in constant time.
func (p *PasswordService) Verify(admin *model.Admin, plaintext string) error {
	if admin.PasswordIsHashed() {
		err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(plaintext))
		if err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				return ErrPasswordMismatch
			}
			return fmt.Errorf("auth: comparing password hash: %w", err)
		}
		return nil
	}

	if subtle.ConstantTimeCompare([]byte(admin.Password), []byte(plaintext)) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}
