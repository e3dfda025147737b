package auth

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/textora/core/internal/models"
	"github.com/textora/core/internal/pkg/mail"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	svc := NewService(db, mail.New(mail.Config{}), "http://localhost:3000", zap.NewNop())
	return svc, mock
}

func userRow(t *testing.T, password string, blocked bool, role string) *sqlmock.Rows {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return sqlmock.NewRows([]string{"id", "name", "email", "password", "role", "is_blocked"}).
		AddRow("user-1", "Jan", "jan@example.com", string(hash), role, blocked)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	_, err := svc.Register(RegisterDTO{Name: "Jan", Email: "JAN@example.com", Password: "Passw0rd"})
	require.ErrorIs(t, err, errDuplicateEmail)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterCreatesUserWithHashedPassword(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	user, err := svc.Register(RegisterDTO{Name: " Jan ", Email: " JAN@Example.COM ", Password: "Passw0rd"})
	require.NoError(t, err)
	require.Equal(t, "Jan", user.Name)
	require.Equal(t, "jan@example.com", user.Email)
	require.Equal(t, models.RoleUser, user.Role)
	require.NotEqual(t, "Passw0rd", user.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Passw0rd")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginSucceedsWithValidCredentials(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(userRow(t, "Passw0rd", false, models.RoleUser))

	user, err := svc.Login(LoginDTO{Email: "jan@example.com", Password: "Passw0rd"})
	require.NoError(t, err)
	require.Equal(t, "user-1", user.ID)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Login(LoginDTO{Email: "nobody@example.com", Password: "Passw0rd"})
	require.ErrorIs(t, err, errUserNotFound)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(userRow(t, "Passw0rd", false, models.RoleUser))

	_, err := svc.Login(LoginDTO{Email: "jan@example.com", Password: "wrong"})
	require.ErrorIs(t, err, errWrongPassword)
}

func TestLoginRejectsBlockedAccount(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(userRow(t, "Passw0rd", true, models.RoleUser))

	_, err := svc.Login(LoginDTO{Email: "jan@example.com", Password: "Passw0rd"})
	require.ErrorIs(t, err, errAccountBlocked)
}

func TestLoginRejectsRoleMismatch(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(userRow(t, "Passw0rd", false, models.RoleUser))

	_, err := svc.Login(LoginDTO{Email: "jan@example.com", Password: "Passw0rd", RequiredRole: models.RoleAdmin})
	require.ErrorIs(t, err, errRoleMismatch)
}

func TestForgotPasswordIgnoresUnknownEmail(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	require.NoError(t, svc.ForgotPassword("nobody@example.com"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResetPasswordRejectsInvalidToken(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := svc.ResetPassword("bogus-token", "NewPassw0rd")
	require.ErrorIs(t, err, errInvalidResetLink)
}

func TestPasswordStrong(t *testing.T) {
	require.True(t, passwordStrong("Passw0rd"))

	for _, weak := range []string{"password1", "PASSWORD1", "Password", ""} {
		require.False(t, passwordStrong(weak), "password %q", weak)
	}
}
