package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/NotFromFatec/Carometro-V2/internal/directory/auth"
	"github.com/NotFromFatec/Carometro-V2/internal/directory/domain"
	"github.com/NotFromFatec/Carometro-V2/internal/directory/store"
	"github.com/NotFromFatec/Carometro-V2/pkg/idx"
	"github.com/NotFromFatec/Carometro-V2/pkg/slogx"
)

var ErrAdminUsernameTaken = errors.New("admin username already taken")

type AdminService struct {
	Store    store.Store
	Hasher   PasswordHasher
	Verifier PasswordVerifier

	// Session token settings.
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
}

// ProvisionAdmin creates a new administrator account.
func (s *AdminService) ProvisionAdmin(ctx context.Context, name, username, password, role string) (domain.Admin, error) {
	log := slogx.FromContext(ctx)

	if username == "" || password == "" {
		return domain.Admin{}, ErrInvalidRequest
	}
	if role == "" {
		role = auth.RoleAdmin
	}

	passwordHash, err := s.Hasher(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.Admin{}, err
	}

	now := time.Now().UTC()
	admin := domain.Admin{
		ID:           idx.New().String(),
		Name:         name,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The unique username constraint is the authority; no pre-read.
	if err := s.Store.Admins().CreateAdmin(ctx, admin); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("admin provisioning with taken username",
				slog.String("username", username),
			)
			return domain.Admin{}, ErrAdminUsernameTaken
		}
		log.Error("failed to create admin", slog.Any("error", err))
		return domain.Admin{}, err
	}

	log.Info("admin provisioned",
		slog.String("admin_id", admin.ID),
		slog.String("username", username),
	)
	return admin, nil
}

// Login authenticates an admin and issues a session token.
func (s *AdminService) Login(ctx context.Context, username, password string) (domain.Admin, string, error) {
	log := slogx.FromContext(ctx)

	admin, err := s.Store.Admins().GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("admin login attempted with unknown username",
				slog.String("username", username),
			)
			return domain.Admin{}, "", ErrAdminNotFound
		}
		log.Error("failed to fetch admin", slog.Any("error", err))
		return domain.Admin{}, "", err
	}

	if err := s.Verifier(password, admin.PasswordHash); err != nil {
		log.Warn("admin login failed password check",
			slog.String("username", username),
		)
		return domain.Admin{}, "", ErrInvalidCredentials
	}

	token, err := auth.NewAccessToken(s.JWTSecret, s.Issuer, s.TokenTTL, auth.Claims{
		SubjectID: admin.ID,
		Role:      auth.RoleAdmin,
	})
	if err != nil {
		log.Error("failed to sign session token", slog.Any("error", err))
		return domain.Admin{}, "", err
	}

	log.Debug("admin login", slog.String("admin_id", admin.ID))
	return admin, token, nil
}

// VerifyToken checks an admin session token, returning the admin id and role.
// It is the TokenVerifier the HTTP authn middleware is wired with.
func (s *AdminService) VerifyToken(token string) (string, string, error) {
	claims, err := auth.ParseToken(s.JWTSecret, token)
	if err != nil {
		return "", "", err
	}
	if claims.Role != auth.RoleAdmin {
		return "", "", ErrInvalidCredentials
	}
	return claims.SubjectID, claims.Role, nil
}

func (s *AdminService) GetAdmin(ctx context.Context, id string) (domain.Admin, error) {
	admin, err := s.Store.Admins().GetAdminByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Admin{}, ErrAdminNotFound
		}
		return domain.Admin{}, err
	}
	return admin, nil
}

func (s *AdminService) GetAdminByUsername(ctx context.Context, username string) (domain.Admin, error) {
	admin, err := s.Store.Admins().GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Admin{}, ErrAdminNotFound
		}
		return domain.Admin{}, err
	}
	return admin, nil
}
