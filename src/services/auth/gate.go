// Package auth resolves bearer credentials to identities and decides who may
// touch which form.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"sgformer-backend/src/apperror"
	"sgformer-backend/src/lib/sl"
	"sgformer-backend/src/models"
	"sgformer-backend/src/repository"
)

const (
	MsgMissingToken = "Missing or invalid Authorization header"
	MsgInvalidToken = "Invalid or expired token"
	MsgRevoked      = "Token has been revoked"
	MsgUserNotFound = "User not found"
	MsgDeactivated  = "User account is deactivated"
	MsgBadLogin     = "Invalid email or password"
	MsgUnverified   = "Google account email is not verified"
	MsgLinkedElse   = "This email is linked to another Google account"
)

type Gate struct {
	users     repository.UserStore
	tokens    *TokenMaker
	google    GoogleVerifier
	blacklist Blacklist
	log       *slog.Logger
	now       func() time.Time
}

// NewGate wires the gate. google may be nil when Google sign-in is not configured.
func NewGate(users repository.UserStore, tokens *TokenMaker, google GoogleVerifier, blacklist Blacklist, log *slog.Logger) *Gate {
	if blacklist == nil {
		blacklist = NoopBlacklist{}
	}
	return &Gate{users: users, tokens: tokens, google: google, blacklist: blacklist, log: log, now: time.Now}
}

func bearerToken(credential string) string {
	fields := strings.Fields(credential)
	switch {
	case len(fields) == 2 && strings.EqualFold(fields[0], "bearer"):
		return fields[1]
	case len(fields) == 1 && !strings.EqualFold(fields[0], "bearer"):
		return fields[0]
	}
	return ""
}

// Resolve accepts our own session JWT first and falls back to a Google ID
// token when the credential is not one of ours.
func (g *Gate) Resolve(ctx context.Context, credential string) (*models.Identity, error) {
	token := bearerToken(credential)
	if token == "" {
		return nil, apperror.Authentication(MsgMissingToken)
	}

	claims, err := g.tokens.Parse(token)
	switch {
	case err == nil:
		return g.resolveClaims(ctx, claims)
	case errors.Is(err, ErrForeignToken) && g.google != nil:
		profile, gerr := g.google.Verify(ctx, token)
		if gerr != nil {
			g.log.Debug("google token rejected", sl.Err(gerr))
			return nil, apperror.Authentication(MsgInvalidToken)
		}
		user, gerr := g.upsertGoogleUser(ctx, profile)
		if gerr != nil {
			return nil, gerr
		}
		return models.IdentityOf(user), nil
	default:
		return nil, apperror.Authentication(MsgInvalidToken)
	}
}

func (g *Gate) resolveClaims(ctx context.Context, claims *Claims) (*models.Identity, error) {
	if claims.ID != "" {
		revoked, err := g.blacklist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, apperror.Upstream("failed to check token", err)
		}
		if revoked {
			return nil, apperror.Authentication(MsgRevoked)
		}
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, apperror.Authentication(MsgInvalidToken)
	}
	user, err := g.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Authentication(MsgUserNotFound)
	}
	if err != nil {
		return nil, apperror.Upstream("failed to load user", err)
	}
	if !user.IsActive {
		return nil, apperror.Authentication(MsgDeactivated)
	}
	return models.IdentityOf(user), nil
}

// upsertGoogleUser finds the account by Google subject, links an existing
// account with the same email, or creates a new one. Linking and creating
// both need an email Google has verified.
func (g *Gate) upsertGoogleUser(ctx context.Context, p *GoogleProfile) (*models.User, error) {
	now := g.now()
	email := strings.ToLower(strings.TrimSpace(p.Email))

	user, err := g.users.FindByGoogleID(ctx, p.Subject)
	if errors.Is(err, repository.ErrNotFound) {
		if !p.EmailVerified {
			g.log.Info("google sign-in with unverified email rejected", slog.String("subject", p.Subject))
			return nil, apperror.Authentication(MsgUnverified)
		}
		user, err = g.users.FindByEmail(ctx, email)
		if err == nil && user.GoogleID != "" && user.GoogleID != p.Subject {
			return nil, apperror.Authentication(MsgLinkedElse)
		}
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		user = &models.User{
			GoogleID:    p.Subject,
			Email:       email,
			Name:        p.Name,
			Picture:     p.Picture,
			Role:        models.RoleUser,
			IsActive:    true,
			LastLoginAt: &now,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := g.users.Create(ctx, user); err != nil {
			return nil, apperror.Upstream("failed to create user", err)
		}
		g.log.Info("created user from google sign-in", slog.String("user_id", user.ID.Hex()))
		return user, nil
	case err != nil:
		return nil, apperror.Upstream("failed to load user", err)
	}

	if !user.IsActive {
		return nil, apperror.Authentication(MsgDeactivated)
	}
	user.GoogleID = p.Subject
	if p.Name != "" {
		user.Name = p.Name
	}
	if p.Picture != "" {
		user.Picture = p.Picture
	}
	user.LastLoginAt = &now
	user.UpdatedAt = now
	if err := g.users.Update(ctx, user); err != nil {
		return nil, apperror.Upstream("failed to update user", err)
	}
	return user, nil
}

func (g *Gate) session(user *models.User) (*models.AuthResponse, error) {
	token, expiresAt, err := g.tokens.Generate(user)
	if err != nil {
		return nil, apperror.Upstream("failed to issue token", err)
	}
	return &models.AuthResponse{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// SignInWithGoogle exchanges a Google ID token for a session token.
func (g *Gate) SignInWithGoogle(ctx context.Context, idToken string) (*models.AuthResponse, error) {
	if g.google == nil {
		return nil, apperror.Authentication("Google sign-in is not configured")
	}
	profile, err := g.google.Verify(ctx, idToken)
	if err != nil {
		g.log.Info("google sign-in rejected", sl.Err(err))
		return nil, apperror.Authentication("Invalid Google token")
	}
	return g.SignInWithProfile(ctx, profile)
}

// SignInWithProfile is the tail of both Google flows.
func (g *Gate) SignInWithProfile(ctx context.Context, profile *GoogleProfile) (*models.AuthResponse, error) {
	user, err := g.upsertGoogleUser(ctx, profile)
	if err != nil {
		return nil, err
	}
	return g.session(user)
}

func (g *Gate) SignInWithPassword(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	user, err := g.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Authentication(MsgBadLogin)
	}
	if err != nil {
		return nil, apperror.Upstream("failed to load user", err)
	}
	if user.PasswordHash == "" || !CheckPassword(user.PasswordHash, password) {
		return nil, apperror.Authentication(MsgBadLogin)
	}
	if !user.IsActive {
		return nil, apperror.Authentication(MsgDeactivated)
	}

	now := g.now()
	user.LastLoginAt = &now
	user.UpdatedAt = now
	if err := g.users.Update(ctx, user); err != nil {
		return nil, apperror.Upstream("failed to update user", err)
	}
	return g.session(user)
}

// Logout revokes a session token for the rest of its lifetime.
func (g *Gate) Logout(ctx context.Context, credential string) error {
	claims, err := g.tokens.Parse(bearerToken(credential))
	if err != nil {
		return apperror.Authentication(MsgInvalidToken)
	}
	if claims.ExpiresAt == nil || claims.ID == "" {
		return nil
	}
	ttl := claims.ExpiresAt.Time.Sub(g.now())
	if err := g.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
		return apperror.Upstream("failed to revoke token", err)
	}
	return nil
}

func (g *Gate) User(ctx context.Context, id *models.Identity) (*models.User, error) {
	user, err := g.users.FindByID(ctx, id.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound(MsgUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}
