//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	pgrepo "github.com/Gunvolt24/shop_api/internal/repo/postgres"
	"github.com/Gunvolt24/shop_api/internal/testutil"
)

func startCatalog(t *testing.T) (context.Context, *pgrepo.ProductRepository) {
	t.Helper()

	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancelStart)

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopPG(context.Background()) })

	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	pool, err := pgrepo.NewPool(ctx, pg.DSN, 5)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return ctx, pgrepo.NewProductRepository(pool)
}

// 1) Upsert — вставка нового и обновление существующего товара по id
func TestProducts_Upsert_InsertThenUpdate_TC(t *testing.T) {
	t.Parallel()
	ctx, repo := startCatalog(t)

	p := testutil.MakeProduct(501, "12.34")
	require.NoError(t, repo.Upsert(ctx, &p))

	got, err := repo.GetByID(ctx, 501)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, p.Name, got.Name)
	require.True(t, got.Price.Equal(decimal.RequireFromString("12.34")))

	p.Name = "Updated Widget"
	p.Price = decimal.RequireFromString("15.00")
	require.NoError(t, repo.Upsert(ctx, &p))

	got, err = repo.GetByID(ctx, 501)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Updated Widget", got.Name)
	require.True(t, got.Price.Equal(decimal.RequireFromString("15.00")))
}

// 2) GetProducts — отдаёт только найденные id, отсутствующие просто опускаются
func TestProducts_GetProducts_SubsetOnly_TC(t *testing.T) {
	t.Parallel()
	ctx, repo := startCatalog(t)

	// id 1 и 2 — из сида миграций, 999999 не существует
	got, err := repo.GetProducts(ctx, []int64{1, 2, 999999})
	require.NoError(t, err)
	require.Len(t, got, 2)

	byID := map[int64]string{}
	for _, p := range got {
		byID[p.ID] = p.Name
	}
	require.Contains(t, byID, int64(1))
	require.Contains(t, byID, int64(2))
}

// 3) List — поиск по подстроке в имени/описании без учёта регистра
func TestProducts_List_Search_TC(t *testing.T) {
	t.Parallel()
	ctx, repo := startCatalog(t)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(all), 6) // сид миграций

	found, err := repo.List(ctx, "GOPHER")
	require.NoError(t, err)
	require.NotEmpty(t, found)
	for _, p := range found {
		require.Contains(t, p.Name+" "+p.Description, "Gopher")
	}
}

// 4) GetByID несуществующего товара — (nil, nil)
func TestProducts_GetByID_Missing_TC(t *testing.T) {
	t.Parallel()
	ctx, repo := startCatalog(t)

	got, err := repo.GetByID(ctx, 999999)
	require.NoError(t, err)
	require.Nil(t, got)
}
