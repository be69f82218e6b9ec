package postgres

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_EjecucionesProtegenSusPasos(t *testing.T) {
	script, err := migrationsFS.ReadFile("migrations/001_init.sql")
	require.NoError(t, err)

	fk := regexp.MustCompile(`protocol_step_id\s+UUID\s+NOT NULL REFERENCES protocol_steps\(id\) ON DELETE (\w+)`)
	m := fk.FindSubmatch(script)
	require.NotNil(t, m, "FK de workflow_executions a protocol_steps")
	assert.Equal(t, "RESTRICT", string(m[1]), "borrar un paso no debe borrar su historial")

	assert.Regexp(t, `UNIQUE \(batch_id, protocol_step_id\)`, string(script))
}
