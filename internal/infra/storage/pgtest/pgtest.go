//go:build integration

package pgtest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/internal/infra/storage/migrations"
	"github.com/m04kA/SMC-SlotService/pkg/dbmetrics"
)

// SkipIfNoDocker пропускает тест, если Docker недоступен
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	// testcontainers может паниковать на неподдерживаемых окружениях
	defer func() {
		if r := recover(); r != nil {
			t.Skipf("Docker not available (panic recovered): %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, err := testcontainers.NewDockerProvider()
	if err != nil {
		t.Skipf("Docker not available, skipping integration test: %v", err)
		return
	}
	defer provider.Close()

	if _, err := provider.Client().Ping(ctx); err != nil {
		t.Skipf("Docker not responding, skipping integration test: %v", err)
	}
}

// StartPostgres поднимает PostgreSQL в контейнере, применяет миграции
// и возвращает обернутое соединение. Контейнер останавливается в t.Cleanup
func StartPostgres(t *testing.T) *dbmetrics.DB {
	t.Helper()

	SkipIfNoDocker(t)

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("slots_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	raw, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = raw.Close() })

	db := dbmetrics.Wrap(raw, nil)
	if _, err := migrations.Up(ctx, db); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	return db
}

// SeedService создает бизнес и услугу напрямую через SQL
func SeedService(t *testing.T, db dbmetrics.DBExecutor, name string, duration int) (businessID, serviceID int64) {
	t.Helper()
	ctx := context.Background()

	if err := db.QueryRowContext(ctx,
		`INSERT INTO businesses (name) VALUES ($1) RETURNING id`, name+" business",
	).Scan(&businessID); err != nil {
		t.Fatalf("failed to seed business: %v", err)
	}

	if err := db.QueryRowContext(ctx,
		`INSERT INTO services (business_id, name, duration_minutes) VALUES ($1, $2, $3) RETURNING id`,
		businessID, name, duration,
	).Scan(&serviceID); err != nil {
		t.Fatalf("failed to seed service: %v", err)
	}

	return businessID, serviceID
}

// Candidates последовательные кандидаты длительностью duration с шагом interval
func Candidates(start time.Time, count int, interval, duration time.Duration) []domain.SlotCandidate {
	out := make([]domain.SlotCandidate, 0, count)
	for i := 0; i < count; i++ {
		s := start.Add(time.Duration(i) * interval)
		out = append(out, domain.SlotCandidate{Start: s, End: s.Add(duration)})
	}
	return out
}
