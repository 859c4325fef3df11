// Package pgtest поднимает PostgreSQL в контейнере для интеграционных тестов репозиториев.
package pgtest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/m04kA/SMC-DetailingService/internal/infra/migrations"
	"github.com/m04kA/SMC-DetailingService/pkg/dbmetrics"
)

const (
	dbName     = "detailing_test"
	dbUser     = "detailing"
	dbPassword = "test-password"
)

type testLogger struct {
	t *testing.T
}

func (l testLogger) Info(format string, v ...interface{}) {
	l.t.Logf(format, v...)
}

// Setup запускает контейнер, применяет миграции и возвращает обертку над БД.
// Без переменной окружения TEST_INTEGRATION тест пропускается.
func Setup(t *testing.T) *dbmetrics.DB {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("Пропуск интеграционного теста: TEST_INTEGRATION не установлена")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Не удалось запустить PostgreSQL контейнер: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Ошибка остановки контейнера: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Не удалось получить host контейнера: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Не удалось получить port контейнера: %v", err)
	}

	url := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPassword, host, port.Port(), dbName)
	if err := migrations.Up(url, testLogger{t: t}); err != nil {
		t.Fatalf("Ошибка применения миграций: %v", err)
	}

	db, err := sql.Open("postgres", url)
	if err != nil {
		t.Fatalf("Ошибка подключения к БД: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return dbmetrics.Wrap(db, nil)
}

// MustExec выполняет служебный запрос подготовки данных
func MustExec(t *testing.T, db *dbmetrics.DB, query string, args ...interface{}) {
	t.Helper()
	if _, err := db.ExecContext(context.Background(), query, args...); err != nil {
		t.Fatalf("Ошибка выполнения %q: %v", query, err)
	}
}

// MustInsertID выполняет INSERT ... RETURNING id и возвращает id
func MustInsertID(t *testing.T, db *dbmetrics.DB, query string, args ...interface{}) int64 {
	t.Helper()
	var id int64
	if err := db.QueryRowContext(context.Background(), query, args...).Scan(&id); err != nil {
		t.Fatalf("Ошибка выполнения %q: %v", query, err)
	}
	return id
}
