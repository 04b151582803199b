// Package dbtest provisions an isolated, migrated and seeded Postgres schema
// for store tests. Tests are skipped unless TEST_DATABASE_URL is set.
package dbtest

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/garage/internal/database"
)

const envURL = "TEST_DATABASE_URL"

// New returns a connection whose search_path points at a fresh schema holding
// the full migration set and the seed dataset. The schema is dropped on cleanup.
func New(t *testing.T) *sql.DB {
	t.Helper()

	return open(t, true)
}

// NewEmpty is like New but leaves the schema without seed data.
func NewEmpty(t *testing.T) *sql.DB {
	t.Helper()

	return open(t, false)
}

func open(t *testing.T, seed bool) *sql.DB {
	base := os.Getenv(envURL)
	if base == "" {
		t.Skipf("%s not set, skipping database test", envURL)
	}

	admin, err := database.New(base, database.Pool{MaxOpen: 2})
	require.NoError(t, err)

	schema := "t_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	_, err = admin.Exec(fmt.Sprintf(`CREATE SCHEMA %s`, schema))
	require.NoError(t, err)

	t.Cleanup(func() {
		if _, err := admin.Exec(fmt.Sprintf(`DROP SCHEMA %s CASCADE`, schema)); err != nil {
			t.Logf("dropping schema %s: %v", schema, err)
		}

		admin.Close()
	})

	connStr, err := withSearchPath(base, schema)
	require.NoError(t, err)

	require.NoError(t, database.Migrate(connStr))

	db, err := database.New(connStr, database.Pool{})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	if seed {
		require.NoError(t, database.Seed(context.Background(), db))
	}

	return db
}

func withSearchPath(connStr, schema string) (string, error) {
	u, err := url.Parse(connStr)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", envURL, err)
	}

	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
