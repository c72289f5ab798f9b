package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	otelMocks "spacebook/infras/otel/mocks"
	"spacebook/internal/domains/seed/service"
	spaceMocks "spacebook/internal/domains/space/mocks"
	spaceModel "spacebook/internal/domains/space/model"
	userMocks "spacebook/internal/domains/user/mocks"
	userModel "spacebook/internal/domains/user/model"
	cacheMocks "spacebook/shared/cache/mocks"
	"spacebook/shared/constant"
	"spacebook/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSeed_Run_EmptyDatabase(t *testing.T) {
	ctrl := gomock.NewController(t)

	spaceRepo := spaceMocks.NewMockSpace(ctrl)
	userRepo := userMocks.NewMockUser(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	spaceRepo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(spaceModel.Space{}, nil).Times(5)
	spaceRepo.EXPECT().
		InsertBulk(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, spaces []spaceModel.Space) error {
			require.Len(t, spaces, 5)
			assert.Equal(t, "Downtown Hub", spaces[0].Name)
			assert.InDelta(t, 15.99, spaces[0].PricePerHour, 0.001)
			assert.Equal(t, spaceModel.TypeEventVenue, spaces[3].Type)

			return nil
		})
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil).Times(2)

	var inserted []userModel.User

	userRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user userModel.User) error {
			inserted = append(inserted, user)

			return nil
		}).
		Times(2)

	res, err := service.New(spaceRepo, userRepo, cache, otelMocks.NewOtel()).Run(context.Background())

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 5, res.SpacesCreated)
	assert.Len(t, res.Spaces, 5)
	require.Len(t, res.Users, 2)
	assert.True(t, res.Users[0].Created)

	require.Len(t, inserted, 2)
	assert.Equal(t, "admin@example.com", inserted[0].Email)
	assert.Equal(t, constant.RoleAdmin, inserted[0].Role)
	assert.NoError(t, password.Verify("admin123", inserted[0].Password))
	assert.Equal(t, constant.RoleUser, inserted[1].Role)
}

func TestSeed_Run_AlreadySeeded(t *testing.T) {
	ctrl := gomock.NewController(t)

	spaceRepo := spaceMocks.NewMockSpace(ctrl)
	userRepo := userMocks.NewMockUser(ctrl)

	spaceRepo.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(spaceModel.Space{ID: "existing", Name: "Downtown Hub"}, nil).
		Times(5)
	userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)

	res, err := service.New(spaceRepo, userRepo, cacheMocks.NewMockRedisCache(ctrl), otelMocks.NewOtel()).Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, res.SpacesCreated)
	assert.False(t, res.Users[1].Created)
}

func TestSeed_Run_DatabaseError(t *testing.T) {
	ctrl := gomock.NewController(t)

	spaceRepo := spaceMocks.NewMockSpace(ctrl)
	spaceRepo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(spaceModel.Space{}, errors.New("connection refused"))

	_, err := service.New(spaceRepo, userMocks.NewMockUser(ctrl), cacheMocks.NewMockRedisCache(ctrl), otelMocks.NewOtel()).Run(context.Background())

	require.Error(t, err)
}
