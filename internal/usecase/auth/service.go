package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"riya-portal/internal/domain/user"
	"riya-portal/internal/infrastructure/mailer"
	"riya-portal/internal/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUserNotFound       = errors.New("user does not exist")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrWeakPassword       = errors.New("password too short")
	ErrSessionInvalid     = errors.New("session invalid")
	ErrMailDelivery       = errors.New("mail delivery failed")
	ErrInternal           = errors.New("internal error")
)

const (
	resetTokenBytes = 32
	resetTokenTTL   = time.Hour
	resetHashCost   = 12
	minPasswordLen  = 8

	revokedKeyPrefix = "session:revoked:"
)

// Revocations is the deny-list for logged-out sessions.
type Revocations interface {
	Mark(ctx context.Context, key string, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
}

type LoginInput struct {
	Email    string
	Password string
}

type Session struct {
	Token  string
	Claims jwt.Claims
	User   user.User
}

type Service struct {
	users   user.Repository
	tokens  jwt.Service
	revoked Revocations
	mail    mailer.Sender
	baseURL string
	logger  *log.Logger

	now func() time.Time
}

func NewService(users user.Repository, tokens jwt.Service, revoked Revocations, mail mailer.Sender, baseURL string, logger *log.Logger) *Service {
	return &Service{
		users:   users,
		tokens:  tokens,
		revoked: revoked,
		mail:    mail,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
		now:     time.Now,
	}
}

func (s *Service) Login(ctx context.Context, in LoginInput) (Session, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return Session{}, ErrInvalidInput
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		s.logf("[Auth] login lookup failed email=%s err=%v", email, err)
		return Session{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	token, claims, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		s.logf("[Auth] issue token failed user_id=%s err=%v", u.ID, err)
		return Session{}, ErrInternal
	}

	return Session{Token: token, Claims: claims, User: sanitizeUser(u)}, nil
}

// VerifySession validates the token and rejects sessions revoked by logout.
// A deny-list outage is logged and does not lock administrators out; the
// token's own expiry still applies.
func (s *Service) VerifySession(ctx context.Context, token string) (jwt.Claims, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return jwt.Claims{}, fmt.Errorf("%w: %w", ErrSessionInvalid, err)
	}
	if s.revoked == nil {
		return claims, nil
	}

	revoked, err := s.revoked.Exists(ctx, revokedKeyPrefix+claims.ID)
	if err != nil {
		s.logf("[Auth] deny-list lookup failed jti=%s err=%v", claims.ID, err)
		return claims, nil
	}
	if revoked {
		return jwt.Claims{}, ErrSessionInvalid
	}
	return claims, nil
}

// Logout revokes token until it would have expired anyway. Invalid tokens
// are ignored; the caller clears the cookie either way.
func (s *Service) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil
	}
	if s.revoked == nil {
		return nil
	}

	ttl := claims.Expiry().Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.revoked.Mark(ctx, revokedKeyPrefix+claims.ID, ttl); err != nil {
		s.logf("[Auth] revoke session failed jti=%s err=%v", claims.ID, err)
		return ErrInternal
	}
	return nil
}

func (s *Service) CurrentUser(ctx context.Context, id uuid.UUID) (user.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, ErrInternal
	}
	return sanitizeUser(u), nil
}

// ForgotPassword stores a hashed single-use token and mails the plaintext
// link to the account owner.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return ErrInvalidInput
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUserNotFound
		}
		return ErrInternal
	}

	token, err := newResetToken()
	if err != nil {
		return ErrInternal
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), resetHashCost)
	if err != nil {
		return ErrInternal
	}

	expiry := s.now().UTC().Add(resetTokenTTL)
	if err := s.users.SetResetToken(ctx, u.ID, string(hash), expiry); err != nil {
		s.logf("[Auth] store reset token failed user_id=%s err=%v", u.ID, err)
		return ErrInternal
	}

	link := s.baseURL + "/resetpassword?token=" + url.QueryEscape(token)
	if err := s.mail.Send(ctx, mailer.PasswordReset(u.Email, u.Username, link)); err != nil {
		s.logf("[Auth] reset mail failed user_id=%s err=%v", u.ID, err)
		return ErrMailDelivery
	}

	s.logf("[Auth] reset requested user_id=%s", u.ID)
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	token = strings.TrimSpace(token)
	if token == "" || newPassword == "" {
		return ErrInvalidInput
	}
	if len(newPassword) < minPasswordLen {
		return ErrWeakPassword
	}

	now := s.now().UTC()
	candidates, err := s.users.ListWithActiveResetToken(ctx, now)
	if err != nil {
		return ErrInternal
	}

	var match *user.User
	for i := range candidates {
		if !candidates[i].HasActiveResetToken(now) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(candidates[i].ResetTokenHash), []byte(token)) == nil {
			match = &candidates[i]
			break
		}
	}
	if match == nil {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), resetHashCost)
	if err != nil {
		return ErrInternal
	}
	if err := s.users.UpdatePassword(ctx, match.ID, string(hash)); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return ErrInternal
	}

	if err := s.mail.Send(ctx, mailer.PasswordResetSuccess(match.Email, match.Username)); err != nil {
		s.logf("[Auth] reset confirmation mail failed user_id=%s err=%v", match.ID, err)
	}
	s.logf("[Auth] password reset user_id=%s", match.ID)
	return nil
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

func newResetToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	u.ResetTokenHash = ""
	u.ResetTokenExpiry = nil
	return u
}
