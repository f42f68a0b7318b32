package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metric-mapper/internal/compat"
	"metric-mapper/internal/mapping"
	"metric-mapper/internal/model"
)

const (
	settingsYAML = `
buildables:
  cellar: [height, character]
  floor: [width, torches]
  garden: [tree-ratio]
  ground: []
types:
  height: int(0..5)
`
	catalogYAML = `
method:
  - {name: linesOfCode, type: int}
  - {name: McCC, type: float}
  - {name: name, type: string}
class:
  - {name: NOA, type: int}
`
)

type fixture struct {
	dir      string
	settings string
	catalog  string
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	t.Setenv(envSettings, "")
	t.Setenv(envCatalog, "")

	dir := t.TempDir()
	f := fixture{
		dir:      dir,
		settings: filepath.Join(dir, "settings.yaml"),
		catalog:  filepath.Join(dir, "metrics.yaml"),
	}

	require.NoError(t, os.WriteFile(f.settings, []byte(settingsYAML), 0o644))
	require.NoError(t, os.WriteFile(f.catalog, []byte(catalogYAML), 0o644))

	return f
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))

	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func TestMatrix(t *testing.T) {
	out, _, err := run(t, "matrix")
	require.NoError(t, err)

	assert.Contains(t, out, "int(0..5)")
	assert.Contains(t, out, "float(0..1)")
	assert.Regexp(t, `(?m)^int\s+no_conversion\s+to_int\s+cannot_assign\s*$`, out)
	assert.Regexp(t, `(?m)^string\s+quantize\s+quantize\s+no_conversion\s*$`, out)
}

func TestEdit(t *testing.T) {
	f := newFixture(t)
	dest := filepath.Join(f.dir, "mapping.yaml")

	out, errOut, err := run(t, "edit",
		"--settings", f.settings, "--catalog", f.catalog,
		"--bind", "cellar.height=method.linesOfCode",
		"--bind", "floor.torches=method.name",
		"--resource", "stone",
		"--bind-resource", "cellar.character=stone",
		"--out", dest,
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Bound(quantize, method.linesOfCode)")
	assert.Contains(t, out, "Bound(no_conversion, resource.stone)")
	assert.Contains(t, out, "saved "+dest)
	assert.Contains(t, errOut, "[incompatible_binding]")

	doc, err := mapping.Load(dest)
	require.NoError(t, err)

	b, ok := doc.Find(model.Slot{Category: model.Cellar, Attribute: "height"})
	require.True(t, ok)
	assert.Equal(t, compat.Quantize, b.Strategy)

	_, ok = doc.Find(model.Slot{Category: model.Floor, Attribute: "torches"})
	assert.False(t, ok)
	assert.Equal(t, []string{"stone"}, doc.Resources)
}

func TestEdit_Strict(t *testing.T) {
	f := newFixture(t)
	dest := filepath.Join(f.dir, "mapping.yaml")

	_, _, err := run(t, "edit",
		"--settings", f.settings, "--catalog", f.catalog,
		"--bind", "floor.torches=method.name",
		"--strict", "--out", dest,
	)
	require.Error(t, err)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestEdit_FromExisting(t *testing.T) {
	f := newFixture(t)
	first := filepath.Join(f.dir, "first.xml")
	second := filepath.Join(f.dir, "second.yaml")

	_, _, err := run(t, "edit",
		"--settings", f.settings, "--catalog", f.catalog,
		"--bind", "floor.width=method.McCC",
		"--bind", "garden.tree-ratio=class.NOA",
		"--out", first,
	)
	require.NoError(t, err)

	out, _, err := run(t, "edit",
		"--settings", f.settings, "--catalog", f.catalog,
		"--from", first,
		"--unbind", "floor.width",
		"--out", second,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Bound(normalize, class.NOA)")

	doc, err := mapping.Load(second)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Len())
}

func TestEdit_BadFlag(t *testing.T) {
	f := newFixture(t)

	_, _, err := run(t, "edit", "--settings", f.settings, "--bind", "cellar.height")
	assert.Error(t, err)

	_, _, err = run(t, "edit", "--settings", f.settings, "--unbind", "attic.width")
	assert.Error(t, err)
}

func TestEdit_EnvFallback(t *testing.T) {
	f := newFixture(t)
	t.Setenv(envSettings, f.settings)
	t.Setenv(envCatalog, f.catalog)

	out, errOut, err := run(t, "edit", "--bind", "cellar.height=method.McCC")
	require.NoError(t, err)
	assert.Contains(t, out, "Bound(quantize, method.McCC)")
	assert.Empty(t, errOut)
}

func TestEdit_DotEnv(t *testing.T) {
	f := newFixture(t)
	// godotenv never overrides variables that are already set.
	require.NoError(t, os.Unsetenv(envSettings))
	require.NoError(t, os.Unsetenv(envCatalog))

	env := filepath.Join(f.dir, "test.env")
	require.NoError(t, os.WriteFile(env,
		[]byte(envSettings+"="+f.settings+"\n"+envCatalog+"="+f.catalog+"\n"), 0o644))

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--env-file", env, "edit", "--bind", "garden.tree-ratio=class.NOA"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Bound(normalize, class.NOA)")
}

func TestEdit_MissingSettingsFallsBack(t *testing.T) {
	f := newFixture(t)

	out, errOut, err := run(t, "edit",
		"--settings", filepath.Join(f.dir, "nope.yaml"), "--catalog", f.catalog,
		"--bind", "floor.torches=method.linesOfCode",
	)
	require.NoError(t, err)
	assert.Contains(t, errOut, "[config_fallback]")
	assert.Contains(t, out, "floor.external_character")
	assert.Contains(t, out, "Bound(quantize, method.linesOfCode)")
}

func TestSuggest(t *testing.T) {
	f := newFixture(t)

	out, _, err := run(t, "suggest", "floor.width", "--settings", f.settings, "--catalog", f.catalog)
	require.NoError(t, err)
	assert.Contains(t, out, "method.linesOfCode")
	assert.Contains(t, out, "method.McCC")
	assert.NotContains(t, out, "method.name")

	out, _, err = run(t, "suggest", "cellar.character", "--source", "class",
		"--settings", f.settings, "--catalog", f.catalog, "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "class.NOA")

	_, _, err = run(t, "suggest", "floor.colour", "--settings", f.settings)
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	f := newFixture(t)
	dest := filepath.Join(f.dir, "mapping.yaml")

	_, _, err := run(t, "edit", "--settings", f.settings, "--catalog", f.catalog,
		"--bind", "cellar.height=method.linesOfCode", "--out", dest)
	require.NoError(t, err)

	out, _, err := run(t, "check", dest, "--dump")
	require.NoError(t, err)
	assert.Contains(t, out, "linesOfCode")
	assert.Contains(t, out, "1 binding(s), 0 resource(s), ok")

	stale := filepath.Join(f.dir, "other.yaml")
	require.NoError(t, os.WriteFile(stale, []byte(`
version: "1"
linkings:
  - target: cellar
    bindings:
      - to: height
        source: method
        from: removedMetric
`), 0o644))

	out, _, err = run(t, "check", stale, "--settings", f.settings, "--catalog", f.catalog)
	require.NoError(t, err)
	assert.Contains(t, out, "[stale_binding]")

	_, _, err = run(t, "check", filepath.Join(f.dir, "missing.yaml"))
	assert.ErrorIs(t, err, mapping.ErrIO)
}

func TestSuggest_GoCatalog(t *testing.T) {
	f := newFixture(t)
	pkg := filepath.Join("..", "..", "internal", "analyze", "testdata", "metrics")

	out, _, err := run(t, "suggest", "floor.torches", "--settings", f.settings, "--catalog", pkg)
	require.NoError(t, err)
	assert.Contains(t, out, "method.LLOC")
	assert.Contains(t, out, "quantize")
}
