package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPending_OrderedAndFiltered(t *testing.T) {
	all, err := Pending(nil)
	require.NoError(t, err)
	require.Equal(t, []string{"001_initial_schema.sql", "002_page_views.sql"}, all)

	rest, err := Pending(map[string]bool{"001_initial_schema.sql": true})
	require.NoError(t, err)
	assert.Equal(t, []string{"002_page_views.sql"}, rest)
}

func TestMigrations_ProvisionPageViews(t *testing.T) {
	content, err := migrationFiles.ReadFile("sql/002_page_views.sql")
	require.NoError(t, err)
	assert.Contains(t, string(content), "CREATE TABLE IF NOT EXISTS page_views")
}
