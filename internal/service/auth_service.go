package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gainmaster/internal/model"
	"gainmaster/internal/repository"
	"gainmaster/internal/util"
)

var (
	ErrBadDeviceID        = errors.New("device id must be a UUID")
	ErrSessionUnavailable = errors.New("could not establish session")
)

// AuthService provisions per-device pseudo-accounts. A device never holds
// real credentials: email and password are both derived from its id.
type AuthService struct {
	userRepo  *repository.UserRepository
	profiles  *repository.ProfileRepository
	jwtSecret string
	logger    *zap.Logger
}

func NewAuthService(userRepo *repository.UserRepository, profiles *repository.ProfileRepository, jwtSecret string, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		profiles:  profiles,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// SessionForDevice signs the device's account in, creating it on first
// contact, and returns a session token. A zero-valued profile row is
// ensured so the progress store always finds one.
func (s *AuthService) SessionForDevice(ctx context.Context, deviceID string) (string, *model.User, error) {
	if _, err := uuid.Parse(deviceID); err != nil {
		return "", nil, ErrBadDeviceID
	}

	email := util.DeviceEmail(deviceID)
	password := util.DevicePassword(deviceID)

	u, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if !util.CheckPassword(password, u.PasswordHash) {
			s.logger.Warn("Device credential mismatch", zap.String("email", email))
			return "", nil, ErrSessionUnavailable
		}
	case errors.Is(err, pgx.ErrNoRows):
		u, err = s.register(ctx, email, password, util.DeviceUsername(deviceID))
		if err != nil {
			s.logger.Error("Auto-signup failed", zap.String("email", email), zap.Error(err))
			return "", nil, ErrSessionUnavailable
		}
		s.logger.Info("Auto-signup success", zap.Int("user_id", u.ID))
	default:
		s.logger.Error("Auto-login failed", zap.String("email", email), zap.Error(err))
		return "", nil, ErrSessionUnavailable
	}

	if err := s.profiles.EnsureExists(ctx, u.ID); err != nil {
		return "", nil, ErrSessionUnavailable
	}

	token, err := util.GenerateJWT(u.ID, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *AuthService) register(ctx context.Context, email, password, username string) (*model.User, error) {
	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.userRepo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
