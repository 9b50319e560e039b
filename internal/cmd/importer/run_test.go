package importer

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"text/template"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/cgddrd/curator/internal/catalog"
)

func TestIntegrationImporterRun(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	// Start a PostgreSQL container
	pgContainer, err := postgres.Run(ctx,
		"postgres:16",
		postgres.WithDatabase("test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(5*time.Second)),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate pgContainer: %s", err)
		}
	})

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	// Source folder: one well-formed file, one with a ragged row
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dataDir, "shops.csv"),
		[]byte("osm_id,name,shop_type\n1,corner shop,convenience\n2,bara menyn,bakery\n"),
		0644,
	))
	require.NoError(t, os.WriteFile(
		filepath.Join(dataDir, "broken.csv"),
		[]byte("osm_id,name\n1\n"),
		0644,
	))

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yml")
	summaryPath := filepath.Join(tempDir, "summary.json")

	configTemplate := `
db:
  host: "{{.Host}}"
  port: {{.Port}}
  database: test
  user: test
  password: test

target_path: "{{.DataDir}}"`

	tmpl, err := template.New("config").Parse(configTemplate)
	require.NoError(t, err)

	configFile, err := os.Create(configPath)
	require.NoError(t, err)
	defer configFile.Close()

	err = tmpl.Execute(configFile, struct {
		Host    string
		Port    int
		DataDir string
	}{
		Host:    host,
		Port:    port.Int(),
		DataDir: dataDir,
	})
	require.NoError(t, err)

	runOnce := func() *catalog.Catalog {
		cmd := newRunCommand()
		cmd.SetArgs([]string{"--config", configPath, "--summary", summaryPath})
		require.NoError(t, cmd.ExecuteContext(ctx))

		data, err := os.ReadFile(summaryPath)
		require.NoError(t, err)

		var c catalog.Catalog
		require.NoError(t, json.Unmarshal(data, &c))
		return &c
	}

	t.Run("first run loads the good file and records the broken one", func(t *testing.T) {
		c := runOnce()

		assert.Equal(t, 1, c.Succeeded)
		assert.Equal(t, 1, c.Failed)
		require.Len(t, c.Files, 2)

		assert.Equal(t, "broken.csv", c.Files[0].File)
		assert.Contains(t, c.Files[0].Error, "malformed csv")
		assert.Equal(t, "shops.csv", c.Files[1].File)
		assert.Equal(t, int64(2), c.Files[1].Rows)

		conn, err := pgx.Connect(ctx, pgConnString(t, ctx, pgContainer))
		require.NoError(t, err)
		defer conn.Close(ctx)

		var count int
		require.NoError(t, conn.QueryRow(ctx, `SELECT COUNT(*) FROM "shops"`).Scan(&count))
		assert.Equal(t, 2, count)

		// columns come from the header, in header order, all text
		rows, err := conn.Query(ctx, `
			SELECT column_name, data_type
			FROM information_schema.columns
			WHERE table_name = 'shops'
			ORDER BY ordinal_position`)
		require.NoError(t, err)
		defer rows.Close()

		var columns []string
		for rows.Next() {
			var name, dataType string
			require.NoError(t, rows.Scan(&name, &dataType))
			assert.Equal(t, "text", dataType)
			columns = append(columns, name)
		}
		require.NoError(t, rows.Err())
		assert.Equal(t, []string{"osm_id", "name", "shop_type"}, columns)

		// the broken file must not leave a table behind
		var exists bool
		require.NoError(t, conn.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.tables WHERE table_name = 'broken'
			)`).Scan(&exists))
		assert.False(t, exists)
	})

	t.Run("second run appends without schema changes", func(t *testing.T) {
		c := runOnce()
		assert.Equal(t, 1, c.Succeeded)

		conn, err := pgx.Connect(ctx, pgConnString(t, ctx, pgContainer))
		require.NoError(t, err)
		defer conn.Close(ctx)

		var count int
		require.NoError(t, conn.QueryRow(ctx, `SELECT COUNT(*) FROM "shops"`).Scan(&count))
		assert.Equal(t, 4, count)
	})
}

func pgConnString(t *testing.T, ctx context.Context, c *postgres.PostgresContainer) string {
	t.Helper()
	connStr, err := c.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return connStr
}
