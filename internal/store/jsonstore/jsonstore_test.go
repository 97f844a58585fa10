package jsonstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/model"
)

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "todos.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadDefaults(t *testing.T) {
	items, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), items)

	items, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), items)
}

func TestLoadFile(t *testing.T) {
	p := writeSeed(t, `[{"userId":3,"id":5,"title":"x","completed":true}]`)
	items, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []model.Item{{ID: 5, Title: "x", Completed: true}}, items)
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	p := writeSeed(t, `[{"id":1,"title":"a"},{"id":1,"title":"b"}]`)
	_, err := Load(p)
	assert.EqualError(t, err, "seed: duplicate id 1")
}

func TestLoadBadJSON(t *testing.T) {
	_, err := Load(writeSeed(t, `nope`))
	assert.ErrorContains(t, err, "json unmarshal")
}
