package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"

	"spacebook/infras/otel"
	"spacebook/infras/postgres"
	"spacebook/internal/domains/user/model"
	"spacebook/shared/constant"
	gDto "spacebook/shared/dto"
	gRepo "spacebook/shared/repository"

	"github.com/lib/pq"
)

// ErrEmailTaken is returned by Insert when the unique email index rejects the row.
var ErrEmailTaken = errors.New("email already registered")

type User interface {
	Insert(ctx context.Context, model model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) Insert(ctx context.Context, user model.User) error {
	err := r.Repository.Insert(ctx, user)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeUniqueViolation {
		return ErrEmailTaken
	}

	return err //nolint:wrapcheck
}
