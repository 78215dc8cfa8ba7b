package auth

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"
	"unicode/utf8"

	"github.com/dmitrijs2005/studymate/internal/common"
	"github.com/google/uuid"
)

// PasswordReset simulates the forgot-password flow: RequestCode issues a
// six-digit code that would have been mailed, Confirm checks it and resets
// the password. Codes live only in memory.
type PasswordReset struct {
	gw        *Gateway
	email     string
	code      string
	requestID string
	newCode   func() (string, error)
}

func NewPasswordReset(gw *Gateway) *PasswordReset {
	return &PasswordReset{gw: gw, newCode: randomCode}
}

// randomCode returns a decimal code in [100000, 999999].
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(100000+n.Int64(), 10), nil
}

// RequestCode starts a reset for email and returns the code for display.
// A new request replaces any pending one.
func (r *PasswordReset) RequestCode(ctx context.Context, email string) (string, error) {
	if !r.gw.CheckEmailExists(ctx, email) {
		return "", common.ErrEmailNotFound
	}

	code, err := r.newCode()
	if err != nil {
		return "", err
	}

	r.email, r.code, r.requestID = email, code, uuid.NewString()
	r.gw.log.Info(ctx, "reset code issued", "email", email, "request_id", r.requestID)
	return code, nil
}

// Email is the address of the pending reset, if any.
func (r *PasswordReset) Email() string {
	return r.email
}

// Confirm validates code, password length and confirmation, in that order,
// and resets the password. No password changes on failure.
func (r *PasswordReset) Confirm(ctx context.Context, code string, newPassword, confirmation []byte) error {
	if r.code == "" || code != r.code {
		return common.ErrCodeMismatch
	}
	if utf8.RuneCount(newPassword) < common.MinPasswordLength {
		return common.ErrPasswordTooShort
	}
	if string(newPassword) != string(confirmation) {
		return common.ErrPasswordMismatch
	}

	if err := r.gw.ResetPassword(ctx, r.email, newPassword); err != nil {
		return err
	}
	r.gw.log.Info(ctx, "reset completed", "request_id", r.requestID)
	r.code, r.requestID = "", ""
	return nil
}
