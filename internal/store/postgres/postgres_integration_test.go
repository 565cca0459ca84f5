package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/store"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/store/storetest"
)

var testDSN string

// TestMain prefers an externally provided database and otherwise starts a
// throwaway Postgres container when STAY_TEST_PG_CONTAINER is set. With
// neither available the tests skip.
func TestMain(m *testing.M) {
	if dsn := os.Getenv("STAY_TEST_POSTGRES_DSN"); dsn != "" {
		testDSN = dsn
		os.Exit(m.Run())
	}
	if os.Getenv("STAY_TEST_PG_CONTAINER") == "" {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image: "postgres:16-alpine",
		Env: map[string]string{
			"POSTGRES_USER":     "stay",
			"POSTGRES_PASSWORD": "stay",
			"POSTGRES_DB":       "stay",
		},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "start postgres container: %v\n", err)
		os.Exit(1)
	}
	host, err := pg.Host(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "container host: %v\n", err)
		_ = pg.Terminate(ctx)
		os.Exit(1)
	}
	port, err := pg.MappedPort(ctx, "5432")
	if err != nil {
		fmt.Fprintf(os.Stderr, "container port: %v\n", err)
		_ = pg.Terminate(ctx)
		os.Exit(1)
	}
	testDSN = fmt.Sprintf("postgres://stay:stay@%s:%s/stay?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = pg.Terminate(ctx)
	os.Exit(code)
}

func makePGStore(t *testing.T) store.Store {
	t.Helper()
	if testDSN == "" {
		t.Skip("no postgres available; set STAY_TEST_POSTGRES_DSN or STAY_TEST_PG_CONTAINER=1")
	}
	db, err := Open(testDSN)
	if err != nil {
		t.Fatalf("postgres open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	ctx := context.Background()
	if err := Bootstrap(ctx, db); err != nil {
		t.Fatalf("postgres bootstrap: %v", err)
	}
	if _, err := db.ExecContext(ctx, `TRUNCATE properties, users RESTART IDENTITY`); err != nil {
		t.Fatalf("postgres reset: %v", err)
	}
	return NewWithDB(db)
}

func TestPostgresStore_Compliance(t *testing.T) {
	storetest.Run(t, makePGStore)
}
