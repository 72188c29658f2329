package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_Ordered(t *testing.T) {
	names, err := List()
	require.NoError(t, err)

	require.NotEmpty(t, names)
	assert.Equal(t, "0001_init.sql", names[0])
	assert.IsIncreasing(t, names)
}

func TestInitMigration_CreatesTables(t *testing.T) {
	body, err := files.ReadFile("0001_init.sql")
	require.NoError(t, err)

	for _, table := range []string{"businesses", "users", "services", "slots"} {
		assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS "+table)
	}
}
