package service

import (
	"context"
	"testing"

	"sportsclub/internal/sports/validator"
	"sportsclub/pkg/config"
	apperrors "sportsclub/pkg/errors"
	"sportsclub/pkg/logger"
	"sportsclub/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	badminton = &model.Sport{ID: "65a1b2c3d4e5f60718293b01", Name: "Badminton", NameKey: "badminton", Price: 300, IsActive: true}
	football  = &model.Sport{ID: "65a1b2c3d4e5f60718293b02", Name: "Football", NameKey: "football", Price: 1000, IsActive: false}
)

type harness struct {
	svc       SportService
	repo      *fakeSportRepo
	publisher *recordingPublisher
}

func newHarness(t *testing.T, snapshot SportSnapshot, counts map[string]int64) *harness {
	t.Helper()
	cfg := &config.Config{Log: logger.Nop()}
	repo := newFakeSportRepo(badminton, football)
	pub := &recordingPublisher{}
	svc := NewSportService(repo, &fakeCounter{counts: counts}, snapshot, pub, validator.NewSportValidator(cfg.Log), cfg)
	return &harness{svc: svc, repo: repo, publisher: pub}
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestCreate_DefaultsPriceAndActivates(t *testing.T) {
	h := newHarness(t, nil, nil)

	sport, err := h.svc.Create(context.Background(), &model.SportCreate{Name: "  Box   Cricket "})
	require.NoError(t, err)

	assert.NotEmpty(t, sport.ID)
	assert.Equal(t, "Box Cricket", sport.Name)
	assert.Equal(t, "box cricket", sport.NameKey)
	assert.Equal(t, model.DefaultSportPrice, sport.Price)
	assert.True(t, sport.IsActive)
	assert.Equal(t, []string{model.EventSportCreated}, h.publisher.types())
}

func TestCreate_RejectsDuplicateActiveName(t *testing.T) {
	h := newHarness(t, nil, nil)

	_, err := h.svc.Create(context.Background(), &model.SportCreate{Name: "BADMINTON", Price: 400})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
	assert.Empty(t, h.publisher.types())
}

func TestCreate_AllowsNameOfInactiveSport(t *testing.T) {
	h := newHarness(t, nil, nil)

	_, err := h.svc.Create(context.Background(), &model.SportCreate{Name: "Football", Price: 900})
	require.NoError(t, err)
}

func TestCreate_Validation(t *testing.T) {
	h := newHarness(t, nil, nil)

	tests := []struct {
		name string
		req  *model.SportCreate
	}{
		{"empty name", &model.SportCreate{Name: "  "}},
		{"short name", &model.SportCreate{Name: "X"}},
		{"negative price", &model.SportCreate{Name: "Squash", Price: -10}},
		{"price too high", &model.SportCreate{Name: "Squash", Price: model.MaxSportPrice + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.svc.Create(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation), "got %v", err)
		})
	}
}

func TestGetByID(t *testing.T) {
	h := newHarness(t, nil, nil)
	ctx := context.Background()

	sport, err := h.svc.GetByID(ctx, badminton.ID)
	require.NoError(t, err)
	assert.Equal(t, "Badminton", sport.Name)

	_, err = h.svc.GetByID(ctx, "65a1b2c3d4e5f60718293bff")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	_, err = h.svc.GetByID(ctx, "nope")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))
}

func TestGetActiveByName(t *testing.T) {
	h := newHarness(t, nil, nil)
	ctx := context.Background()

	sport, err := h.svc.GetActiveByName(ctx, " badminton ")
	require.NoError(t, err)
	assert.Equal(t, badminton.ID, sport.ID)

	_, err = h.svc.GetActiveByName(ctx, "Football")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound), "inactive sports are not offered")
}

func TestListActive_FromStoreAndSnapshot(t *testing.T) {
	ctx := context.Background()

	h := newHarness(t, &fakeSnapshot{}, nil)
	sports, err := h.svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, sports, 1)
	assert.Equal(t, "Badminton", sports[0].Name)

	snap := &fakeSnapshot{items: []*model.Sport{
		{ID: "3", Name: "Table Tennis", NameKey: "table tennis", IsActive: true},
		{ID: "1", Name: "Archery", NameKey: "archery", IsActive: true},
		{ID: "2", Name: "Polo", NameKey: "polo", IsActive: false},
	}}
	h = newHarness(t, snap, nil)
	sports, err = h.svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, sports, 2)
	assert.Equal(t, "Archery", sports[0].Name)
	assert.Equal(t, "Table Tennis", sports[1].Name)

	sport, err := h.svc.GetActiveByName(ctx, "archery")
	require.NoError(t, err)
	assert.Equal(t, "1", sport.ID)
}

func TestListAll_IncludesInactive(t *testing.T) {
	h := newHarness(t, nil, nil)

	sports, err := h.svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, sports, 2)
}

func TestUpdate(t *testing.T) {
	h := newHarness(t, nil, nil)
	ctx := context.Background()

	sport, err := h.svc.Update(ctx, badminton.ID, &model.SportUpdate{Price: intPtr(450)})
	require.NoError(t, err)
	assert.Equal(t, 450, sport.Price)
	assert.True(t, sport.IsActive)

	stored, _ := h.repo.FindByID(ctx, badminton.ID)
	assert.Equal(t, 450, stored.Price)
	assert.Equal(t, []string{model.EventSportUpdated}, h.publisher.types())

	_, err = h.svc.Update(ctx, badminton.ID, &model.SportUpdate{})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	_, err = h.svc.Update(ctx, badminton.ID, &model.SportUpdate{Price: intPtr(0)})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	_, err = h.svc.Update(ctx, "65a1b2c3d4e5f60718293bff", &model.SportUpdate{IsActive: boolPtr(false)})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestToggle(t *testing.T) {
	h := newHarness(t, nil, nil)
	ctx := context.Background()

	sport, err := h.svc.Toggle(ctx, football.ID)
	require.NoError(t, err)
	assert.True(t, sport.IsActive)

	sport, err = h.svc.Toggle(ctx, football.ID)
	require.NoError(t, err)
	assert.False(t, sport.IsActive)
}

func TestToggle_ActivationKeepsNamesUnique(t *testing.T) {
	h := newHarness(t, nil, nil)
	ctx := context.Background()

	_, err := h.svc.Toggle(ctx, badminton.ID)
	require.NoError(t, err)

	replacement, err := h.svc.Create(ctx, &model.SportCreate{Name: "Badminton", Price: 350})
	require.NoError(t, err)

	_, err = h.svc.Toggle(ctx, badminton.ID)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))

	_, err = h.svc.Update(ctx, replacement.ID, &model.SportUpdate{IsActive: boolPtr(true)})
	require.NoError(t, err, "re-activating an already active sport is not a clash with itself")
}

func TestDelete(t *testing.T) {
	h := newHarness(t, nil, map[string]int64{"Badminton": 3})
	ctx := context.Background()

	require.NoError(t, h.svc.Delete(ctx, badminton.ID))
	_, err := h.repo.FindByID(ctx, badminton.ID)
	assert.Error(t, err)
	assert.Equal(t, []string{model.EventSportDeleted}, h.publisher.types())

	require.NoError(t, h.svc.Delete(ctx, badminton.ID), "deleting twice is a no-op")
	assert.Len(t, h.publisher.types(), 1)

	err = h.svc.Delete(ctx, "bad-id")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))
}
