package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learningjournal/core/internal/adapters/repository"
	"github.com/learningjournal/core/internal/domain/entities"
	"github.com/learningjournal/core/internal/infrastructure/logger"
	"github.com/learningjournal/core/internal/ports"
)

func newTestRepos(t *testing.T) (*repository.Set, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return repository.NewSet(fs, "data/reflections.json", "data/projects.json"), fs
}

func newTestReflectionService(t *testing.T) *ReflectionService {
	t.Helper()
	repos, _ := newTestRepos(t)
	svc := NewReflectionService(repos.Reflections, NewValidator(), logger.NewNop())
	svc.now = func() time.Time { return time.Date(2025, time.January, 13, 9, 30, 0, 0, time.UTC) }
	return svc
}

func decodeUpdate(t *testing.T, body string) ports.UpdateReflectionRequest {
	t.Helper()
	var req ports.UpdateReflectionRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func strPtr(s string) *string { return &s }

func TestCreateReflection(t *testing.T) {
	svc := newTestReflectionService(t)
	ctx := context.Background()

	created, err := svc.CreateReflection(ctx, ports.CreateReflectionRequest{
		Name:       strPtr("A"),
		Reflection: strPtr("text"),
		Week:       entities.IntPtr(1),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "A", created.Name)
	assert.Equal(t, "text", created.Reflection)
	assert.Equal(t, "Mon Jan 13 2025", created.Date)
	require.NotNil(t, created.Week)
	assert.Equal(t, 1, *created.Week)

	got, err := svc.GetReflection(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateReflectionWithoutWeek(t *testing.T) {
	svc := newTestReflectionService(t)

	created, err := svc.CreateReflection(context.Background(), ports.CreateReflectionRequest{
		Name:       strPtr("A"),
		Reflection: strPtr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, created.Week)
	assert.Equal(t, "", created.Reflection, "present but empty counts as supplied")
}

func TestCreateReflectionValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     ports.CreateReflectionRequest
		message string
	}{
		{
			name:    "missing name",
			req:     ports.CreateReflectionRequest{Reflection: strPtr("text")},
			message: "Missing required field: name",
		},
		{
			name:    "missing reflection",
			req:     ports.CreateReflectionRequest{Name: strPtr("A")},
			message: "Missing required field: reflection",
		},
		{
			name:    "missing both reports name first",
			req:     ports.CreateReflectionRequest{},
			message: "Missing required field: name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestReflectionService(t)

			_, err := svc.CreateReflection(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, entities.IsValidation(err))
			assert.Equal(t, tt.message, err.Error())
			assert.Empty(t, svc.ListReflections(context.Background()))
		})
	}
}

func TestUpdateReflection(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		verify func(t *testing.T, r *entities.Reflection)
	}{
		{
			name: "single field",
			body: `{"reflection": "edited"}`,
			verify: func(t *testing.T, r *entities.Reflection) {
				assert.Equal(t, "A", r.Name)
				assert.Equal(t, "edited", r.Reflection)
				require.NotNil(t, r.Week)
				assert.Equal(t, 1, *r.Week)
			},
		},
		{
			name: "clear week",
			body: `{"week": null}`,
			verify: func(t *testing.T, r *entities.Reflection) {
				assert.Nil(t, r.Week)
				assert.Equal(t, "text", r.Reflection)
			},
		},
		{
			name: "id and date ignored",
			body: `{"id": "other", "date": "Fri Jan 01 1999", "name": "B"}`,
			verify: func(t *testing.T, r *entities.Reflection) {
				assert.Equal(t, "B", r.Name)
				assert.Equal(t, "Mon Jan 13 2025", r.Date)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestReflectionService(t)
			ctx := context.Background()

			created, err := svc.CreateReflection(ctx, ports.CreateReflectionRequest{
				Name:       strPtr("A"),
				Reflection: strPtr("text"),
				Week:       entities.IntPtr(1),
			})
			require.NoError(t, err)

			updated, err := svc.UpdateReflection(ctx, created.ID, decodeUpdate(t, tt.body))
			require.NoError(t, err)
			assert.Equal(t, created.ID, updated.ID)
			tt.verify(t, updated)

			stored, err := svc.GetReflection(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, updated, stored)
		})
	}
}

func TestUpdateReflectionErrors(t *testing.T) {
	svc := newTestReflectionService(t)
	ctx := context.Background()

	created, err := svc.CreateReflection(ctx, ports.CreateReflectionRequest{
		Name:       strPtr("A"),
		Reflection: strPtr("text"),
	})
	require.NoError(t, err)

	_, err = svc.UpdateReflection(ctx, created.ID, decodeUpdate(t, `{}`))
	assert.Equal(t, entities.ErrNoData, err)

	_, err = svc.UpdateReflection(ctx, created.ID, decodeUpdate(t, `{"unknown": 1}`))
	assert.Equal(t, entities.ErrNoData, err)

	_, err = svc.UpdateReflection(ctx, created.ID, decodeUpdate(t, `{"name": null}`))
	require.Error(t, err)
	assert.True(t, entities.IsValidation(err))
	assert.Equal(t, "Field name cannot be null", err.Error())

	_, err = svc.UpdateReflection(ctx, "missing", decodeUpdate(t, `{"name": "B"}`))
	assert.True(t, errors.Is(err, entities.ErrReflectionNotFound))

	stored, err := svc.GetReflection(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, stored)
}

func TestDeleteReflection(t *testing.T) {
	svc := newTestReflectionService(t)
	ctx := context.Background()

	created, err := svc.CreateReflection(ctx, ports.CreateReflectionRequest{
		Name:       strPtr("A"),
		Reflection: strPtr("text"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReflection(ctx, created.ID))

	_, err = svc.GetReflection(ctx, created.ID)
	assert.True(t, errors.Is(err, entities.ErrNotFound))

	err = svc.DeleteReflection(ctx, created.ID)
	assert.True(t, errors.Is(err, entities.ErrReflectionNotFound))
	assert.Empty(t, svc.ListReflections(ctx))
}
