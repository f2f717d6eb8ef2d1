package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/office/dto"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo mirrors the unique index on offices.name.
type memRepo struct {
	byID map[string]*model.Office
}

func newMemRepo() *memRepo {
	return &memRepo{byID: map[string]*model.Office{}}
}

func (r *memRepo) nameTaken(name, excludeID string) bool {
	for id, o := range r.byID {
		if o.Name == name && id != excludeID {
			return true
		}
	}
	return false
}

func (r *memRepo) Create(_ context.Context, o *model.Office) error {
	if r.nameTaken(o.Name, "") {
		return apperr.Conflict("Office", "name "+o.Name)
	}
	cp := *o
	r.byID[o.ID] = &cp
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id string) (*model.Office, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *memRepo) FindAll(_ context.Context, f *dto.OfficeFilters) ([]model.Office, int, error) {
	out := make([]model.Office, 0, len(r.byID))
	for _, o := range r.byID {
		if f.ActiveOnly && !o.IsActive {
			continue
		}
		out = append(out, *o)
	}
	return out, len(out), nil
}

func (r *memRepo) Update(_ context.Context, o *model.Office) error {
	if r.nameTaken(o.Name, o.ID) {
		return apperr.Conflict("Office", "name "+o.Name)
	}
	cp := *o
	r.byID[o.ID] = &cp
	return nil
}

func TestOfficeLifecycle(t *testing.T) {
	repo := newMemRepo()
	uc := NewOfficeUseCase(repo, logger.NewNop())
	ctx := context.Background()

	north, err := uc.CreateOffice(ctx, &dto.CreateOfficeInput{Name: "  North  ", Address: "Av. 1"})
	require.NoError(t, err)
	assert.Equal(t, "North", north.Name)
	assert.True(t, north.IsActive)
	assert.Nil(t, north.Phone)

	south, err := uc.CreateOffice(ctx, &dto.CreateOfficeInput{Name: "South", Phone: "555-0101"})
	require.NoError(t, err)
	require.NotNil(t, south.Phone)

	_, err = uc.CreateOffice(ctx, &dto.CreateOfficeInput{Name: "North"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = uc.UpdateOffice(ctx, &dto.UpdateOfficeInput{ID: south.ID, Name: "North"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	closed, err := uc.UpdateOffice(ctx, &dto.UpdateOfficeInput{ID: south.ID, Name: "South", IsActive: false})
	require.NoError(t, err)
	assert.False(t, closed.IsActive)

	active, total, err := uc.ListOffices(ctx, &dto.OfficeFilters{ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, north.ID, active[0].ID)
}

func TestOffice_Rejects(t *testing.T) {
	uc := NewOfficeUseCase(newMemRepo(), logger.NewNop())
	ctx := context.Background()

	_, err := uc.CreateOffice(ctx, &dto.CreateOfficeInput{Name: "   "})
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))

	_, err = uc.GetOffice(ctx, "missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = uc.UpdateOffice(ctx, &dto.UpdateOfficeInput{ID: "missing", Name: "X"})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
