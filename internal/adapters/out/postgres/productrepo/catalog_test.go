package productrepo_test

import (
	"errors"
	"fmt"
	"regexp"
	"testing"

	"ordering/internal/adapters/out/postgres/productrepo"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestGormProductCatalog_Find_EveryTokenMustMatch(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM "products" WHERE LOWER(name) LIKE $1 ESCAPE '\' AND LOWER(name) LIKE $2 ESCAPE '\' ORDER BY`,
	)).
		WithArgs("%blue%", "%pen%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "stock", "price"}).
			AddRow("PEN-1", "Blue Pen", 40, "12.50").
			AddRow("PEN-2", "Blue Pen Refill", 0, "3.00"))

	products, err := productrepo.NewGormProductCatalog(db).Find(t.Context(), "  BLUE   pen ")

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "PEN-1", products[0].ID)
	assert.Equal(t, "Blue Pen", products[0].Name)
	assert.Equal(t, 40, products[0].Stock)
	assert.Equal(t, "₹12.50", products[0].Price.String())
	assert.Equal(t, 0, products[1].Stock)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProductCatalog_Find_NoMatchIsEmptyNotNil(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE LOWER(name) LIKE $1 ESCAPE '\'`)).
		WithArgs("%glue%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "stock", "price"}))

	products, err := productrepo.NewGormProductCatalog(db).Find(t.Context(), "glue")

	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProductCatalog_Find_EscapesWildcards(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE LOWER(name) LIKE $1 ESCAPE '\'`)).
		WithArgs(`%100\%\_a\\b%`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "stock", "price"}))

	_, err := productrepo.NewGormProductCatalog(db).Find(t.Context(), `100%_a\b`)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProductCatalog_Find_SQLiteMatchesWildcardCharactersLiterally(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&productrepo.ProductDTO{}))
	require.NoError(t, db.Create([]productrepo.ProductDTO{
		{ID: "PEN-1", Name: "Pen", Stock: 10, Price: decimal.RequireFromString("12.50")},
		{ID: "ST-1", Name: "Stapler", Stock: 5, Price: decimal.RequireFromString("150.00")},
		{ID: "TEE-1", Name: "100% Cotton Tee", Stock: 3, Price: decimal.RequireFromString("400.00")},
		{ID: "CLP-1", Name: "Snap_Clip", Stock: 8, Price: decimal.RequireFromString("2.00")},
	}).Error)

	catalog := productrepo.NewGormProductCatalog(db)

	tests := []struct {
		phrase string
		want   []string
	}{
		{phrase: "%", want: []string{"TEE-1"}},
		{phrase: "_", want: []string{"CLP-1"}},
		{phrase: "p_n", want: nil},
		{phrase: "100%", want: []string{"TEE-1"}},
		{phrase: "snap_clip", want: []string{"CLP-1"}},
		{phrase: "pen", want: []string{"PEN-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			products, err := catalog.Find(t.Context(), tt.phrase)
			require.NoError(t, err)

			var ids []string
			for _, p := range products {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestGormProductCatalog_Find_BlankPhraseSkipsQuery(t *testing.T) {
	db, mock := newMockDB(t)

	products, err := productrepo.NewGormProductCatalog(db).Find(t.Context(), " \t ")

	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProductCatalog_Find_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	boom := errors.New("connection refused")

	mock.ExpectQuery(`SELECT \* FROM "products"`).WillReturnError(boom)

	_, err := productrepo.NewGormProductCatalog(db).Find(t.Context(), "pen")

	require.ErrorIs(t, err, boom)
}

func TestGormStockRepository_LockStockUsesRowLock(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT "id","stock" FROM "products" WHERE id = \$1 .*FOR UPDATE$`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "stock"}).AddRow("PEN-1", 7))

	stock, err := productrepo.NewGormStockRepository(db).LockStock(t.Context(), "PEN-1")

	require.NoError(t, err)
	assert.Equal(t, 7, stock)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStockRepository_DecrementStockGuardsAgainstNegative(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE "products" SET "stock"=stock - $1 WHERE id = $2 AND stock >= $3`,
	)).
		WithArgs(3, "PEN-1", 3).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := productrepo.NewGormStockRepository(db).DecrementStock(t.Context(), "PEN-1", 3)

	require.ErrorIs(t, err, productrepo.ErrStockNotDecremented)
	require.NoError(t, mock.ExpectationsWereMet())
}
