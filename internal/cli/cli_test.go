package cli_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsstand/internal/cli"
)

func run(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	require.NoError(t, cmd.Execute(), "command %v", args)
	return out.String()
}

func TestInitSeedAndStats(t *testing.T) {
	db := filepath.Join(t.TempDir(), "newsstand.db")

	out := run(t, "init", "--db", db)
	assert.Contains(t, out, "initialized")

	out = run(t, "seed", "--db", db)
	assert.Contains(t, out, "seeded 2 authors, 2 magazines, 5 articles")

	out = run(t, "stats", "--db", db)
	assert.Contains(t, out, "top publisher: Tech Today")
	assert.Contains(t, out, "Tech Today frequent contributors: Alice")
}

func TestStatsEmptyDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "newsstand.db")

	run(t, "init", "--db", db)

	out := run(t, "stats", "--db", db)
	assert.Contains(t, out, "no articles published yet")
}

func TestAuthorsAddAndShow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "newsstand.db")

	run(t, "init", "--db", db)

	out := run(t, "authors", "add", "Carol", "--db", db)
	assert.Contains(t, out, "Carol")

	out = run(t, "authors", "list", "--db", db)
	assert.Contains(t, out, "Carol")

	out = run(t, "authors", "show", "1", "--db", db)
	assert.Contains(t, out, "Carol (id 1)")
	assert.Contains(t, out, "articles (0)")
}

func TestMagazinesAddAndShow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "newsstand.db")

	run(t, "init", "--db", db)

	out := run(t, "magazines", "add", "Tech Today", "--category", "Technology", "--db", db)
	assert.Contains(t, out, "Tech Today")

	out = run(t, "magazines", "show", "1", "--db", db)
	assert.Contains(t, out, "Tech Today [Technology] (id 1)")
	assert.Contains(t, out, "articles (0)")
}

func TestSeededMagazineShow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "newsstand.db")

	run(t, "seed", "--db", db)

	out := run(t, "magazines", "show", "1", "--db", db)
	assert.Contains(t, out, "AI Trends")
	assert.Contains(t, out, "contributors:")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bob")
}

func TestShowUnknownAuthorFails(t *testing.T) {
	db := filepath.Join(t.TempDir(), "newsstand.db")

	run(t, "init", "--db", db)

	cmd := cli.NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"authors", "show", "42", "--db", db})

	assert.Error(t, cmd.Execute())
}
