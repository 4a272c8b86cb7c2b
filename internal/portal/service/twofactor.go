package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/stuccorite/fieldforms/internal/portal/store"
	"github.com/stuccorite/fieldforms/pkg/cryptox"
	"github.com/stuccorite/fieldforms/pkg/jwtx"
)

const backupCodeCount = 8

var (
	ErrInvalidCode       = errors.New("invalid two-factor code")
	ErrTwoFactorDisabled = errors.New("two-factor authentication not enabled")
	ErrNotPending        = errors.New("two-factor setup not initiated")
)

// TwoFactorService drives the enrolment state machine: disabled,
// pending setup (secret stored, not yet active), enabled, disabled
// again. Disable requires the account password, not a code.
type TwoFactorService struct {
	Store  store.Store
	Tokens *jwtx.HS256
	Issuer string

	SessionTTL time.Duration

	// Now is injectable for tests; nil means time.Now.
	Now func() time.Time
}

func (s *TwoFactorService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type SetupResult struct {
	Secret     string
	OTPAuthURL string
	QRCode     string // PNG data URI for the enrolment screen
}

// Setup generates a fresh TOTP secret and provisioning QR code. The
// secret is persisted immediately but 2FA stays off until the user
// proves their authenticator works; re-running setup overwrites the
// previous secret and leaves the enabled flag as it was, so an active
// second factor can only be turned off through Disable.
func (s *TwoFactorService) Setup(ctx context.Context, userID string) (SetupResult, error) {
	user, err := s.Store.Users().GetByID(ctx, userID)
	if err != nil {
		return SetupResult{}, fmt.Errorf("lookup user: %w", err)
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: user.Email,
		SecretSize:  20,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return SetupResult{}, fmt.Errorf("generate TOTP key: %w", err)
	}

	secret := key.Secret()
	if err := s.Store.Users().SetTwoFactor(ctx, userID, user.TwoFactorEnabled, &secret); err != nil {
		return SetupResult{}, fmt.Errorf("store secret: %w", err)
	}

	qr, err := renderQR(key)
	if err != nil {
		return SetupResult{}, fmt.Errorf("render QR code: %w", err)
	}

	return SetupResult{
		Secret:     secret,
		OTPAuthURL: key.URL(),
		QRCode:     qr,
	}, nil
}

// VerifySetup validates the first code from the authenticator and, on
// success, activates 2FA and mints the backup codes. The plaintext
// codes are returned exactly once; only fingerprints are stored.
func (s *TwoFactorService) VerifySetup(ctx context.Context, userID, code string) ([]string, error) {
	user, err := s.Store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user.TwoFactorSecret == nil || *user.TwoFactorSecret == "" {
		return nil, ErrNotPending
	}

	if !s.validateTOTP(code, *user.TwoFactorSecret) {
		return nil, ErrInvalidCode
	}

	codes := make([]string, backupCodeCount)
	hashes := make([]string, backupCodeCount)
	for i := range codes {
		c, err := cryptox.GenerateBackupCode()
		if err != nil {
			return nil, fmt.Errorf("generate backup code: %w", err)
		}
		codes[i] = c
		hashes[i] = cryptox.FingerprintToken(c)
	}

	err = s.Store.WithTx(ctx, func(tx store.Store) error {
		if err := tx.BackupCodes().Replace(ctx, userID, hashes); err != nil {
			return fmt.Errorf("store backup codes: %w", err)
		}
		if err := tx.Users().SetTwoFactor(ctx, userID, true, user.TwoFactorSecret); err != nil {
			return fmt.Errorf("enable two-factor: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return codes, nil
}

// VerifyLogin exchanges a pending-login token's second factor for a
// full session token. Backup codes match case-insensitively and are
// consumed atomically, so the same code presented twice concurrently
// succeeds at most once; anything else is validated as a TOTP code.
func (s *TwoFactorService) VerifyLogin(ctx context.Context, userID, code string) (string, error) {
	user, err := s.Store.Users().GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if !user.TwoFactorEnabled || user.TwoFactorSecret == nil {
		return "", ErrTwoFactorDisabled
	}

	hash := cryptox.FingerprintToken(strings.ToUpper(strings.TrimSpace(code)))
	consumed, err := s.Store.BackupCodes().Consume(ctx, userID, hash)
	if err != nil {
		return "", fmt.Errorf("consume backup code: %w", err)
	}
	if !consumed && !s.validateTOTP(code, *user.TwoFactorSecret) {
		return "", ErrInvalidCode
	}

	now := s.now()
	token, err := s.Tokens.Sign(jwtx.NewSessionClaims(userID, s.Tokens.Issuer(), s.SessionTTL, now))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	if err := s.Store.Users().UpdateLastLogin(ctx, userID, now.UTC()); err != nil {
		return "", fmt.Errorf("record login: %w", err)
	}
	return token, nil
}

// Disable turns 2FA off after re-confirming the account password. The
// secret and all backup codes are cleared together.
func (s *TwoFactorService) Disable(ctx context.Context, userID, password string) error {
	user, err := s.Store.Users().GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if !user.TwoFactorEnabled {
		return ErrTwoFactorDisabled
	}
	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}

	return s.Store.WithTx(ctx, func(tx store.Store) error {
		if err := tx.BackupCodes().DeleteAll(ctx, userID); err != nil {
			return fmt.Errorf("clear backup codes: %w", err)
		}
		if err := tx.Users().SetTwoFactor(ctx, userID, false, nil); err != nil {
			return fmt.Errorf("disable two-factor: %w", err)
		}
		return nil
	})
}

// validateTOTP accepts the current 30s step and one step either side to
// absorb clock drift between the server and the authenticator.
func (s *TwoFactorService) validateTOTP(code, secret string) bool {
	ok, err := totp.ValidateCustom(code, secret, s.now(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}

func renderQR(key *otp.Key) (string, error) {
	img, err := key.Image(200, 200)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
