package actionplan

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

var fixedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func TestUrgency(t *testing.T) {
	assert.Equal(t, UrgencyOverdue, Urgency(entity.MustDate("2024-05-31"), fixedNow))
	assert.Equal(t, UrgencyDueSoon, Urgency(entity.MustDate("2024-06-01"), fixedNow))
	assert.Equal(t, UrgencyDueSoon, Urgency(entity.MustDate("2024-06-04"), fixedNow))
	assert.Equal(t, UrgencyNormal, Urgency(entity.MustDate("2024-06-05"), fixedNow))
}

func TestCreateListStatus(t *testing.T) {
	repos := repository.New(rowstoretest.NewLocalStore(t), config.BaserowConfig{})
	s := NewService(repos, zap.NewNop(), func() time.Time { return fixedNow })
	ctx := context.Background()

	_, err := s.Create(ctx, Input{AlertID: "stock-1", Description: "Comprar luvas"})
	assert.True(t, service.IsValidation(err))

	user, err := repos.Users.Create(ctx, &entity.User{Name: "Carlos Compras", Role: entity.RolePurchasing})
	require.NoError(t, err)

	late, err := s.Create(ctx, Input{AlertID: "ca-3", Description: "Renovar CA do capacete", AssignedToUserName: "Ana", DueDate: entity.MustDate("2024-05-20")})
	require.NoError(t, err)
	assert.Equal(t, UrgencyOverdue, late.Urgency)

	soon, err := s.Create(ctx, Input{AlertID: "stock-1", Description: "Comprar luvas", AssignedToUserID: user.ID, DueDate: entity.MustDate("2024-06-03")})
	require.NoError(t, err)
	assert.Equal(t, "Carlos Compras", soon.AssignedToUserName)
	assert.Equal(t, entity.PlanPending, soon.Status)

	all, err := s.List(ctx, "all", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, late.ID, all[0].ID)

	found, err := s.List(ctx, "", "carlos")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = s.SetStatus(ctx, late.ID, "done")
	assert.True(t, service.IsValidation(err))
	done, err := s.SetStatus(ctx, late.ID, entity.PlanCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.PlanCompleted, done.Status)

	pending, err := s.List(ctx, entity.PlanPending, "")
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	open, err := s.Open(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, soon.ID, open[0].ID)
}
