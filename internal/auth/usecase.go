package auth

import (
	"context"

	"github.com/amankumarsingh77/video-splitter/internal/models"
)

type UseCase interface {
	IssueToken(ctx context.Context, credentials *models.Credentials) (*models.Token, error)
	CurrentCaller(ctx context.Context, token string) (*models.Identity, error)
}
