package navidad_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-curves/internal/application/navidad"
	"github.com/jhoicas/retail-curves/internal/domain/entity"
	"github.com/jhoicas/retail-curves/internal/domain/repository"
)

type countingStores struct {
	repository.StoreRepository
	lookups int
}

func (c *countingStores) GetByCode(ctx context.Context, code string) (*entity.Store, error) {
	c.lookups++
	return c.StoreRepository.GetByCode(ctx, code)
}

func (c *countingStores) ListByCodes(ctx context.Context, codes []string) ([]*entity.Store, error) {
	c.lookups++
	return c.StoreRepository.ListByCodes(ctx, codes)
}

func TestResolver_CacheaAciertosYFallos(t *testing.T) {
	f := newFixture(t)
	stores := &countingStores{StoreRepository: f.db.Stores()}
	r := navidad.NewResolver(stores, f.db.Families())
	ctx := context.Background()

	require.NoError(t, r.Warm(ctx, []string{"35", "999"}, []string{"JUGUETES"}))
	assert.Equal(t, 1, stores.lookups)

	s, err := r.Store(ctx, "35")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "Metropolitana", s.RegionName)

	missing, err := r.Store(ctx, "999")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, r.Warm(ctx, []string{"35", "999"}, nil))
	assert.Equal(t, 1, stores.lookups, "las claves ya resueltas no se vuelven a consultar")

	_, err = r.Store(ctx, "36")
	require.NoError(t, err)
	_, err = r.Store(ctx, "36")
	require.NoError(t, err)
	assert.Equal(t, 2, stores.lookups)

	fam, err := r.Family(ctx, "JUGUETES")
	require.NoError(t, err)
	require.NotNil(t, fam)
	assert.Equal(t, f.family.ID, fam.ID)
}

func TestResolver_FamiliaDistingueMayusculas(t *testing.T) {
	f := newFixture(t)
	r := navidad.NewResolver(f.db.Stores(), f.db.Families())

	fam, err := r.Family(context.Background(), "juguetes")
	require.NoError(t, err)
	assert.Nil(t, fam)
}
