package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/textora/core/internal/pkg/response"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParseDefaults(t *testing.T) {
	q, err := Parse(testContext(t, ""), 10, 50)
	require.NoError(t, err)
	require.Equal(t, Query{Page: 1, Limit: 10}, q)
}

func TestParseExplicitValues(t *testing.T) {
	q, err := Parse(testContext(t, "page=3&limit=25"), 10, 50)
	require.NoError(t, err)
	require.Equal(t, Query{Page: 3, Limit: 25}, q)
}

func TestParseRejectsOutOfRange(t *testing.T) {
	cases := []string{
		"page=0",
		"page=-1",
		"limit=0",
		"limit=51",
		"page=abc",
		"limit=abc",
	}
	for _, raw := range cases {
		_, err := Parse(testContext(t, raw), 10, 50)
		require.ErrorIs(t, err, ErrInvalidParams, "query %q", raw)
	}
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

type item struct {
	ID int
}

func itemRows(n int) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id"})
	for i := 1; i <= n; i++ {
		rows.AddRow(i)
	}
	return rows
}

func TestPaginateDescriptorFirstPage(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `items`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(25))
	mock.ExpectQuery("SELECT \\* FROM `items`").
		WillReturnRows(itemRows(10))

	var items []item
	page, err := Paginate(db.Table("items"), Query{Page: 1, Limit: 10}, &items)
	require.NoError(t, err)
	require.Len(t, items, 10)
	require.Equal(t, response.Pagination{
		CurrentPage:  1,
		TotalPages:   3,
		TotalRecords: 25,
		HasNext:      true,
		HasPrev:      false,
	}, page)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginateDescriptorLastPage(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `items`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(25))
	mock.ExpectQuery("SELECT \\* FROM `items`").
		WillReturnRows(itemRows(5))

	var items []item
	page, err := Paginate(db.Table("items"), Query{Page: 3, Limit: 10}, &items)
	require.NoError(t, err)
	require.Len(t, items, 5)
	require.Equal(t, response.Pagination{
		CurrentPage:  3,
		TotalPages:   3,
		TotalRecords: 25,
		HasNext:      false,
		HasPrev:      true,
	}, page)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginateDescriptorEmptyResult(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `items`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectQuery("SELECT \\* FROM `items`").
		WillReturnRows(itemRows(0))

	var items []item
	page, err := Paginate(db.Table("items"), Query{Page: 1, Limit: 10}, &items)
	require.NoError(t, err)
	require.Empty(t, items)
	require.Equal(t, response.Pagination{
		CurrentPage:  1,
		TotalPages:   0,
		TotalRecords: 0,
		HasNext:      false,
		HasPrev:      false,
	}, page)
}
