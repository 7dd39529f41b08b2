package training

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focolog/api/apitest"
	"focolog/model/entity"
)

func TestTrainingRoutes(t *testing.T) {
	a := apitest.NewApp(t)
	e := apitest.Serve(a, entity.RoleHR, RegisterTrainingRoutes)

	rec := apitest.Do(e, http.MethodPost, "/api/trainings", map[string]string{
		"user_name": "Ana", "training_type": "NR-35", "issue_date": "2020-01-01", "expiry_date": "2021-01-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = apitest.Do(e, http.MethodPost, "/api/trainings", map[string]string{
		"user_name": "Ana", "training_type": "NR-35", "issue_date": "2021-01-01", "expiry_date": "2020-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = apitest.Do(e, http.MethodGet, "/api/trainings?status=expired", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []entity.Training
	apitest.Decode(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, entity.TrainingExpired, list[0].Status)

	rec = apitest.Do(e, http.MethodDelete, fmt.Sprintf("/api/trainings/%d", list[0].ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
