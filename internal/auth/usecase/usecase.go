package usecase

import (
	"context"
	"crypto/subtle"

	"github.com/amankumarsingh77/video-splitter/internal/auth"
	"github.com/amankumarsingh77/video-splitter/internal/config"
	"github.com/amankumarsingh77/video-splitter/internal/models"
	"github.com/amankumarsingh77/video-splitter/pkg/httpErrors"
	"github.com/amankumarsingh77/video-splitter/pkg/logger"
	"github.com/amankumarsingh77/video-splitter/pkg/utils"
	"github.com/pkg/errors"
)

const tokenType = "Bearer"

type authUC struct {
	cfg    *config.Config
	logger logger.Logger
}

// NewAuthUseCase authenticates against the single operator account from the config.
func NewAuthUseCase(cfg *config.Config, log logger.Logger) auth.UseCase {
	return &authUC{
		cfg:    cfg,
		logger: log,
	}
}

func (u *authUC) IssueToken(ctx context.Context, credentials *models.Credentials) (*models.Token, error) {
	if err := utils.ValidateStruct(ctx, credentials); err != nil {
		return nil, err
	}

	usernameMatch := subtle.ConstantTimeCompare([]byte(credentials.Username), []byte(u.cfg.Auth.Username)) == 1
	if err := models.ComparePassword(u.cfg.Auth.PasswordHash, credentials.Password); err != nil || !usernameMatch {
		u.logger.Warnf("IssueToken - rejected credentials for %q", credentials.Username)
		return nil, httpErrors.ErrUnauthorized
	}

	token, err := utils.GenerateJWTToken(credentials.Username, u.cfg.Auth.JwtSecretKey, u.cfg.Auth.TokenTTL)
	if err != nil {
		return nil, errors.Wrap(err, "authUC.IssueToken.GenerateJWTToken")
	}
	return &models.Token{
		AccessToken: token,
		TokenType:   tokenType,
		ExpiresIn:   int64(u.cfg.Auth.TokenTTL.Seconds()),
	}, nil
}

func (u *authUC) CurrentCaller(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, httpErrors.ErrUnauthorized
	}
	claims, err := utils.ValidateToken(token, u.cfg.Auth.JwtSecretKey)
	if err != nil {
		u.logger.Debugf("CurrentCaller - ValidateToken error: %v", err)
		return nil, httpErrors.ErrUnauthorized
	}
	if claims.Subject != u.cfg.Auth.Username {
		return nil, httpErrors.ErrUnauthorized
	}
	return &models.Identity{Username: claims.Subject}, nil
}
