package service

import (
	"context"
	"fmt"
	"path"
	"slices"

	"spacebook/config"
	"spacebook/infras/otel"
	"spacebook/infras/s3"
	bookingModel "spacebook/internal/domains/booking/model"
	"spacebook/internal/domains/space/model"
	"spacebook/internal/domains/space/model/dto"
	"spacebook/internal/domains/space/repository"
	"spacebook/shared"
	"spacebook/shared/cache"
	"spacebook/shared/constant"
	gDto "spacebook/shared/dto"
	"spacebook/shared/failure"
	"spacebook/shared/identity"
	"spacebook/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetSpace    = "space:get"
	cacheGetAllSpace = model.CacheGetAll
	cacheCountSpace  = model.CacheCount

	msgSpaceNotFound = "space not found"
)

type Space interface {
	Create(ctx context.Context, req dto.CreateSpaceRequest) (dto.SpaceResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSpacesResponse, error)
	Count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.SpaceResponse, error)
	Update(ctx context.Context, req dto.UpdateSpaceRequest, id string) error
	Delete(ctx context.Context, id string) error
	AddImage(ctx context.Context, id string, req dto.UploadImageRequest) (dto.SpaceResponse, error)
}

type serviceImpl struct {
	repo  repository.Space
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Space, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Space {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateSpaceRequest) (res dto.SpaceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	space := req.ToModel(identity.Actor(ctx))

	if err = s.repo.Insert(ctx, space); err != nil {
		log.Error().Err(err).Msg("failed to create space")

		return res, fmt.Errorf("failed to create space: %w", err)
	}

	res.FromModel(space)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllSpace)
		shared.InvalidateCaches(c, s.cache, cacheCountSpace)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSpacesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.RestrictSortBy(model.TableName, model.SortableFields...)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllSpace, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for spaces")

		return res, nil
	}

	total, err := s.Count(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count spaces")

		return res, fmt.Errorf("failed to count spaces: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get spaces")

		return res, fmt.Errorf("failed to get spaces: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save spaces to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountSpace, gDto.QueryParams{}, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for space count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count spaces")

		return res, fmt.Errorf("failed to count spaces: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save space count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.SpaceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetSpace, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for space")

		return res, nil
	}

	space, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(space)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save space to cache")
		}
	}()

	return res, nil
}

// find loads a space, turning malformed and unknown ids into a 404.
func (s *serviceImpl) find(ctx context.Context, id string) (model.Space, error) {
	if uuid.Validate(id) != nil {
		return model.Space{}, failure.NotFound(msgSpaceNotFound) // nolint:wrapcheck
	}

	space, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get space")

		return space, fmt.Errorf("failed to get space: %w", err)
	}

	if space.ID == constant.Empty {
		return space, failure.NotFound(msgSpaceNotFound) // nolint:wrapcheck
	}

	return space, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateSpaceRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Update(ctx, req.ToFields(identity.Actor(ctx)), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update space")

		return fmt.Errorf("failed to update space: %w", err)
	}

	if req.Images != nil {
		s.removeImages(ctx, dropped(current.Images, *req.Images))
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	// bookings of the space go with it (ON DELETE CASCADE)
	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete space")

		return fmt.Errorf("failed to delete space: %w", err)
	}

	// the cascade can touch any owner's list
	shared.InvalidateCaches(ctx, s.cache, bookingModel.CacheMine)

	s.removeImages(ctx, current.Images)
	s.invalidate(ctx, id)

	return nil
}

// AddImage uploads the file and appends its URL to the image list.
func (s *serviceImpl) AddImage(ctx context.Context, id string, req dto.UploadImageRequest) (res dto.SpaceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	url, err := s.s3.Put(ctx, s3.Object{
		Key:         path.Join(model.TableName, id, req.ObjectName()),
		Body:        req.ImageFile,
		Size:        req.Image.Size,
		ContentType: req.ContentType(),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to upload space image")

		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	images := append(slices.Clone(current.Images), url)
	fields := map[string]any{
		model.FieldImages:        images,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: identity.Actor(ctx),
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to save space image")
		s.removeImages(ctx, []string{url})

		return res, fmt.Errorf("failed to save image: %w", err)
	}

	current.Images = images
	res.FromModel(current)

	s.invalidate(ctx, id)

	return res, nil
}

// removeImages deletes stored objects of our own bucket. Failures are logged only.
func (s *serviceImpl) removeImages(ctx context.Context, urls []string) {
	for _, url := range urls {
		key := s.s3.KeyFromURL(url)
		if key == constant.Empty {
			continue
		}

		if err := s.s3.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to remove space image")
		}
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSpace, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete space cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(bookingModel.CacheBookedDays, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booked days cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllSpace)
		shared.InvalidateCaches(c, s.cache, cacheCountSpace)
	}()
}

func dropped(before pq.StringArray, after []string) []string {
	var out []string

	for _, url := range before {
		if !slices.Contains(after, url) {
			out = append(out, url)
		}
	}

	return out
}
