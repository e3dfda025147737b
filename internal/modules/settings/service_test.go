package settings

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

func optionColumns() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "value"})
}

func TestGetCreatesDefaultsOnFirstUse(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db)

	mock.ExpectQuery("SELECT \\* FROM `options`").
		WillReturnRows(optionColumns())
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `options`.*ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	settings, err := svc.Get()
	require.NoError(t, err)
	require.Equal(t, defaultSettings(), settings)

	// second read is served from cache, no further queries expected
	settings, err = svc.Get()
	require.NoError(t, err)
	require.True(t, settings.GrammarEnabled)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReadsPersistedFlags(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db)

	mock.ExpectQuery("SELECT \\* FROM `options`").
		WillReturnRows(optionColumns().
			AddRow(1, "app_settings", `{"grammarEnabled":false,"translationEnabled":true,"humanizeEnabled":true,"plagiarismEnabled":false}`))

	settings, err := svc.Get()
	require.NoError(t, err)
	require.False(t, settings.GrammarEnabled)
	require.True(t, settings.TranslationEnabled)
	require.False(t, settings.PlagiarismEnabled)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMergesPartialFields(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db)

	mock.ExpectQuery("SELECT \\* FROM `options`").
		WillReturnRows(optionColumns().
			AddRow(1, "app_settings", `{"grammarEnabled":true,"translationEnabled":true,"humanizeEnabled":true,"plagiarismEnabled":true}`))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `options`.*ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	off := false
	settings, err := svc.Update(UpdateDTO{TranslationEnabled: &off})
	require.NoError(t, err)
	require.False(t, settings.TranslationEnabled)
	require.True(t, settings.GrammarEnabled)
	require.True(t, settings.HumanizeEnabled)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateDTOEmpty(t *testing.T) {
	require.True(t, UpdateDTO{}.Empty())

	on := true
	require.False(t, UpdateDTO{HumanizeEnabled: &on}.Empty())
}
