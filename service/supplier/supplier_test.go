package supplier

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"focolog/config"
	"focolog/core/rowstore/rowstoretest"
	"focolog/model/entity"
	"focolog/model/repository"
	"focolog/service"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	repos := repository.New(rowstoretest.NewLocalStore(t), config.BaserowConfig{})
	clock := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	return NewService(repos, zap.NewNop(), func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	})
}

func TestCreateAndList(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	_, err := s.Create(ctx, Input{Name: "Segurança Total"})
	require.NoError(t, err)
	_, err = s.Create(ctx, Input{Name: "Protege EPIs", ContactInfo: "(11) 4000-0000"})
	require.NoError(t, err)
	_, err = s.Create(ctx, Input{})
	assert.True(t, service.IsValidation(err))

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Protege EPIs", all[0].Name)

	found, err := s.List(ctx, "total")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestAddReview_UpdatesAverage(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	sp, err := s.Create(ctx, Input{Name: "Protege EPIs"})
	require.NoError(t, err)

	_, _, err = s.AddReview(ctx, sp.ID, ReviewInput{Rating: 6})
	assert.True(t, service.IsValidation(err))
	_, _, err = s.AddReview(ctx, sp.ID, ReviewInput{Rating: 0})
	assert.True(t, service.IsValidation(err))

	_, updated, err := s.AddReview(ctx, sp.ID, ReviewInput{UserName: "Ana", Rating: 5, Comment: "Entrega rápida"})
	require.NoError(t, err)
	assert.Equal(t, 5.0, updated.AverageRating)
	assert.Equal(t, 1, updated.TotalReviews)

	_, updated, err = s.AddReview(ctx, sp.ID, ReviewInput{UserName: "Bruno", Rating: 2})
	require.NoError(t, err)
	assert.Equal(t, 3.5, updated.AverageRating)
	assert.Equal(t, 2, updated.TotalReviews)

	_, updated, err = s.AddReview(ctx, sp.ID, ReviewInput{UserName: "Carla", Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, 3.7, updated.AverageRating)

	reviews, err := s.Reviews(ctx, sp.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, "Carla", reviews[0].UserName)
}

func TestAddReview_AverageFollowsAllReviews(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	sp, err := s.Create(ctx, Input{Name: "Têxtil Sul"})
	require.NoError(t, err)

	_, _, err = s.AddReview(ctx, sp.ID, ReviewInput{UserName: "Ana", Rating: 5})
	require.NoError(t, err)
	var updated *entity.Supplier
	for i := 0; i < 40; i++ {
		_, updated, err = s.AddReview(ctx, sp.ID, ReviewInput{UserName: "Bruno", Rating: 4})
		require.NoError(t, err)
	}
	assert.Equal(t, 41, updated.TotalReviews)
	assert.Equal(t, 4.0, updated.AverageRating)
}

func TestAverageRating(t *testing.T) {
	avg, n := AverageRating(nil)
	assert.Zero(t, avg)
	assert.Zero(t, n)

	avg, n = AverageRating([]entity.SupplierReview{{Rating: 5}, {Rating: 4}, {Rating: 4}})
	assert.Equal(t, 4.3, avg)
	assert.Equal(t, 3, n)
}
