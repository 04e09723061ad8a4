package repository

import (
	"context"

	"github.com/lumatch/lumatch-backend/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Upsert(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}
