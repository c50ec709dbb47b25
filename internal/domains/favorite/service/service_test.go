package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"quiethours/config"
	"quiethours/infras/otel/mocks"
	favoriteMocks "quiethours/internal/domains/favorite/mocks"
	"quiethours/internal/domains/favorite/model"
	"quiethours/internal/domains/favorite/model/dto"
	"quiethours/internal/domains/favorite/repository"
	"quiethours/internal/domains/favorite/service"
	placeMocks "quiethours/internal/domains/place/mocks"
	cacheMocks "quiethours/shared/cache/mocks"
	"quiethours/shared/constant"
	gDto "quiethours/shared/dto"
	"quiethours/shared/failure"
)

func userContext(userID string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
}

func newService(t *testing.T) (service.Favorite, *favoriteMocks.MockFavorite, *placeMocks.MockPlace, *cacheMocks.MockRedisCache) {
	ctrl := gomock.NewController(t)

	mockRepo := favoriteMocks.NewMockFavorite(ctrl)
	mockPlaceRepo := placeMocks.NewMockPlace(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockPlaceRepo, cfg, mockCache, mockOtel)

	return svc, mockRepo, mockPlaceRepo, mockCache
}

func TestFavoriteService_Add(t *testing.T) {
	req := dto.AddFavoriteRequest{PlaceID: "place-1"}

	t.Run("successful add", func(t *testing.T) {
		svc, mockRepo, mockPlaceRepo, mockCache := newService(t)

		mockPlaceRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Add(userContext("user-1"), req)

		assert.NoError(t, err)
		assert.Equal(t, "user-1", res.UserID)
		assert.Equal(t, "place-1", res.PlaceID)
	})

	t.Run("missing place", func(t *testing.T) {
		svc, _, mockPlaceRepo, _ := newService(t)

		mockPlaceRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := svc.Add(userContext("user-1"), req)

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("second add conflicts", func(t *testing.T) {
		svc, mockRepo, mockPlaceRepo, _ := newService(t)

		mockPlaceRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		_, err := svc.Add(userContext("user-1"), req)

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("racing insert conflicts", func(t *testing.T) {
		svc, mockRepo, mockPlaceRepo, _ := newService(t)

		mockPlaceRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(repository.ErrDuplicateFavorite)

		_, err := svc.Add(userContext("user-1"), req)

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestFavoriteService_Remove(t *testing.T) {
	t.Run("successful remove", func(t *testing.T) {
		svc, mockRepo, _, mockCache := newService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		err := svc.Remove(userContext("user-1"), "place-1")

		assert.NoError(t, err)
	})

	t.Run("absent pair is not found", func(t *testing.T) {
		svc, mockRepo, _, _ := newService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Remove(userContext("user-1"), "place-1")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestFavoriteService_Check(t *testing.T) {
	svc, mockRepo, _, _ := newService(t)

	mockRepo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(true, nil)

	res, err := svc.Check(userContext("user-1"), "place-1")

	assert.NoError(t, err)
	assert.True(t, res.IsFavorite)
}

func TestFavoriteService_List(t *testing.T) {
	svc, mockRepo, _, mockCache := newService(t)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(assert.AnError)

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)

	mockRepo.EXPECT().
		GetAllWithPlace(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.FavoriteWithPlace{
			{
				Favorite:  model.Favorite{ID: "favorite-1", UserID: "user-1", PlaceID: "place-1"},
				PlaceName: "Library",
			},
		}, nil)

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	params := gDto.QueryParams{Page: 1, Limit: 20, SortBy: "favorites.created_at", SortDir: "DESC"}

	res, err := svc.List(userContext("user-1"), params)

	assert.NoError(t, err)
	assert.Len(t, res.Favorites, 1)
	assert.Equal(t, "Library", res.Favorites[0].PlaceName)
	assert.Equal(t, 1, res.TotalData)
}

func TestFavoriteService_ListDefaultOrdering(t *testing.T) {
	svc, mockRepo, _, mockCache := newService(t)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(assert.AnError)

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(0, nil)

	mockRepo.EXPECT().
		GetAllWithPlace(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.FavoriteWithPlace, error) {
			assert.Equal(t, "favorites.created_at", params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			return nil, nil
		})

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	params := gDto.QueryParams{Page: 1, Limit: 20, SortBy: "created_at", SortDir: gDto.SortDirDesc}

	_, err := svc.List(userContext("user-1"), params)

	assert.NoError(t, err)
}
