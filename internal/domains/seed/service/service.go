package service

import (
	"context"
	"errors"
	"fmt"

	"spacebook/infras/otel"
	"spacebook/internal/domains/seed/model/dto"
	spaceModel "spacebook/internal/domains/space/model"
	spaceRepo "spacebook/internal/domains/space/repository"
	userModel "spacebook/internal/domains/user/model"
	userDto "spacebook/internal/domains/user/model/dto"
	userRepo "spacebook/internal/domains/user/repository"
	"spacebook/shared"
	"spacebook/shared/cache"
	"spacebook/shared/constant"
	"spacebook/shared/identity"
	"spacebook/shared/password"

	"github.com/rs/zerolog/log"
)

// Seed loads the demo catalog and the two demo accounts. Running it again
// only adds what is missing.
type Seed interface {
	Run(ctx context.Context) (dto.SeedResponse, error)
}

type serviceImpl struct {
	spaceRepo spaceRepo.Space
	userRepo  userRepo.User
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(spaceRepo spaceRepo.Space, userRepo userRepo.User, cache cache.RedisCache, otel otel.Otel) Seed {
	return &serviceImpl{
		spaceRepo: spaceRepo,
		userRepo:  userRepo,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Run(ctx context.Context) (res dto.SeedResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Seed")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.seedSpaces(ctx, &res); err != nil {
		return res, err
	}

	if err = s.seedUsers(ctx, &res); err != nil {
		return res, err
	}

	scope.SetAttribute("spaces_created", res.SpacesCreated)

	log.Info().Int("spaces_created", res.SpacesCreated).Msg("catalog seeded")

	return res, nil
}

func (s *serviceImpl) seedSpaces(ctx context.Context, res *dto.SeedResponse) error {
	actor := identity.Actor(ctx)
	missing := make([]spaceModel.Space, 0, len(catalog))

	for _, req := range catalog {
		filter := shared.FilterByID(req.Name, spaceModel.FieldName, spaceModel.TableName)

		existing, err := s.spaceRepo.Get(ctx, filter, spaceModel.FieldID, spaceModel.FieldName)
		if err != nil {
			log.Error().Err(err).Str("name", req.Name).Msg("failed to look up seed space")

			return fmt.Errorf("failed to look up seed space: %w", err)
		}

		if existing.ID != constant.Empty {
			res.Spaces = append(res.Spaces, dto.SeededSpace{ID: existing.ID, Name: existing.Name})

			continue
		}

		space := req.ToModel(actor)
		missing = append(missing, space)
		res.Spaces = append(res.Spaces, dto.SeededSpace{ID: space.ID, Name: space.Name})
	}

	if len(missing) == 0 {
		return nil
	}

	if err := s.spaceRepo.InsertBulk(ctx, missing); err != nil {
		log.Error().Err(err).Msg("failed to insert seed spaces")

		return fmt.Errorf("failed to insert seed spaces: %w", err)
	}

	res.SpacesCreated = len(missing)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, spaceModel.CacheGetAll)
		shared.InvalidateCaches(c, s.cache, spaceModel.CacheCount)
	}()

	return nil
}

func (s *serviceImpl) seedUsers(ctx context.Context, res *dto.SeedResponse) error {
	actor := identity.Actor(ctx)

	for _, acc := range accounts {
		seeded := dto.SeededUser{Email: acc.email, Password: acc.password, Role: acc.role}

		exists, err := s.userRepo.Exist(ctx, shared.FilterByID(acc.email, userModel.FieldEmail, userModel.TableName))
		if err != nil {
			log.Error().Err(err).Str("email", acc.email).Msg("failed to check seed user")

			return fmt.Errorf("failed to check seed user: %w", err)
		}

		if !exists {
			hashed, err := password.Hash(acc.password)
			if err != nil {
				return fmt.Errorf("failed to hash seed password: %w", err)
			}

			fullName := acc.fullName

			err = s.userRepo.Insert(ctx, userDto.NewUser(acc.email, hashed, acc.role, &fullName, actor))

			switch {
			case errors.Is(err, userRepo.ErrEmailTaken):
			case err != nil:
				log.Error().Err(err).Str("email", acc.email).Msg("failed to insert seed user")

				return fmt.Errorf("failed to insert seed user: %w", err)
			default:
				seeded.Created = true
			}
		}

		res.Users = append(res.Users, seeded)
	}

	return nil
}
