package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"quiethours/config"
	"quiethours/infras/otel/mocks"
	"quiethours/infras/photon"
	photonMocks "quiethours/infras/photon/mocks"
	placeMocks "quiethours/internal/domains/place/mocks"
	"quiethours/internal/domains/place/model"
	"quiethours/internal/domains/place/model/dto"
	"quiethours/internal/domains/place/service"
	reviewMocks "quiethours/internal/domains/review/mocks"
	reviewModel "quiethours/internal/domains/review/model"
	cacheMocks "quiethours/shared/cache/mocks"
	"quiethours/shared/failure"
)

func stringPtr(s string) *string {
	return &s
}

func newService(t *testing.T) (service.Place, *placeMocks.MockPlace, *reviewMocks.MockReview, *photonMocks.MockClient, *cacheMocks.MockRedisCache) {
	ctrl := gomock.NewController(t)

	mockRepo := placeMocks.NewMockPlace(ctrl)
	mockReviewRepo := reviewMocks.NewMockReview(ctrl)
	mockPhoton := photonMocks.NewMockClient(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockReviewRepo, mockPhoton, cfg, mockCache, mockOtel)

	return svc, mockRepo, mockReviewRepo, mockPhoton, mockCache
}

func TestPlaceService_Nearby(t *testing.T) {
	t.Run("default radius applied", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newService(t)

		mockRepo.EXPECT().
			Nearby(gomock.Any(), 40.7128, -74.0060, float64(5000)).
			Return([]model.PlaceWithDistance{
				{Place: model.Place{ID: "place-1", Name: "Library"}, Distance: 120.5},
				{Place: model.Place{ID: "place-2", Name: "Cafe"}, Distance: 980.0},
			}, nil)

		res, err := svc.Nearby(context.Background(), 40.7128, -74.0060, 0)

		assert.NoError(t, err)
		assert.Len(t, res.Places, 2)
		assert.Equal(t, "place-1", res.Places[0].ID)
		assert.InDelta(t, 120.5, *res.Places[0].Distance, 0.001)
	})

	t.Run("repository failure", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newService(t)

		mockRepo.EXPECT().
			Nearby(gomock.Any(), gomock.Any(), gomock.Any(), float64(2000)).
			Return(nil, errors.New("db down"))

		_, err := svc.Nearby(context.Background(), 40.7128, -74.0060, 2000)

		assert.Error(t, err)
	})
}

func TestPlaceService_Get(t *testing.T) {
	t.Run("place with reviews", func(t *testing.T) {
		svc, mockRepo, mockReviewRepo, _, mockCache := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Place{ID: "place-1", Name: "Library"}, nil)

		mockReviewRepo.EXPECT().
			GetByPlace(gomock.Any(), "place-1").
			Return([]reviewModel.ReviewWithUser{
				{
					Review:            reviewModel.Review{ID: "review-1", Rating: 5},
					ReviewerFirstName: "Test",
					ReviewerLastName:  "User",
				},
			}, nil)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Get(context.Background(), "place-1")

		assert.NoError(t, err)
		assert.Equal(t, "place-1", res.ID)
		assert.Len(t, res.Reviews, 1)
		assert.Equal(t, "Test User", res.Reviews[0].ReviewerName)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _, _, mockCache := newService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Place{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestPlaceService_Search(t *testing.T) {
	req := dto.SearchPlacesRequest{Query: "quiet library"}

	t.Run("external results win", func(t *testing.T) {
		svc, _, _, mockPhoton, _ := newService(t)

		mockPhoton.EXPECT().
			Search(gomock.Any(), req.Query, nil, nil).
			Return([]photon.Result{
				{ExternalID: "node/123", Name: "City Library", Address: "Main St, Springfield", Latitude: 40.7, Longitude: -74.0, PlaceType: "library"},
			}, nil)

		res, err := svc.Search(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, dto.SearchSourceExternal, res.Source)
		assert.Len(t, res.Results, 1)
		assert.Equal(t, "node/123", *res.Results[0].ExternalID)
	})

	t.Run("fallback on transport error", func(t *testing.T) {
		svc, mockRepo, _, mockPhoton, _ := newService(t)

		mockPhoton.EXPECT().
			Search(gomock.Any(), req.Query, nil, nil).
			Return(nil, errors.New("timeout"))

		mockRepo.EXPECT().
			SearchLocal(gomock.Any(), req.Query).
			Return([]model.Place{{ID: "place-1", Name: "Local Library"}}, nil)

		res, err := svc.Search(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, dto.SearchSourceLocal, res.Source)
		assert.Len(t, res.Results, 1)
		assert.Equal(t, "place-1", *res.Results[0].ID)
	})

	t.Run("fallback on empty feature list", func(t *testing.T) {
		svc, mockRepo, _, mockPhoton, _ := newService(t)

		mockPhoton.EXPECT().
			Search(gomock.Any(), req.Query, nil, nil).
			Return([]photon.Result{}, nil)

		mockRepo.EXPECT().
			SearchLocal(gomock.Any(), req.Query).
			Return([]model.Place{}, nil)

		res, err := svc.Search(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, dto.SearchSourceLocal, res.Source)
		assert.Empty(t, res.Results)
	})
}

func TestPlaceService_GetOrCreate(t *testing.T) {
	existing := model.Place{
		ID:         "place-1",
		Name:       "City Library",
		Address:    "Main St, Springfield",
		ExternalID: stringPtr("node/123"),
	}

	t.Run("dedupe by external id wins", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(existing, nil)

		res, created, err := svc.GetOrCreate(context.Background(), dto.CreatePlaceRequest{
			Name:       "Renamed Library",
			Address:    "Other St",
			Latitude:   40.7,
			Longitude:  -74.0,
			ExternalID: stringPtr("node/123"),
		})

		assert.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, existing.ID, res.ID)
		assert.Equal(t, existing.Name, res.Name)
	})

	t.Run("dedupe by name and address", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(existing, nil)

		res, created, err := svc.GetOrCreate(context.Background(), dto.CreatePlaceRequest{
			Name:      existing.Name,
			Address:   existing.Address,
			Latitude:  40.7,
			Longitude: -74.0,
		})

		assert.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, existing.ID, res.ID)
	})

	t.Run("insert when no match", func(t *testing.T) {
		svc, mockRepo, _, _, mockCache := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Place{}, nil)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, created, err := svc.GetOrCreate(context.Background(), dto.CreatePlaceRequest{
			Name:      "Brand New Spot",
			Address:   "Elm St",
			Latitude:  40.7,
			Longitude: -74.0,
		})

		assert.NoError(t, err)
		assert.True(t, created)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, "Brand New Spot", res.Name)
	})
}
