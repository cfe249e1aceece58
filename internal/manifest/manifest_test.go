package manifest

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depsiren/internal/model"
)

func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func specNames(specs []model.DependencySpec) map[string]string {
	byName := make(map[string]string, len(specs))
	for _, s := range specs {
		byName[s.Name] = s.Version
	}
	return byName
}

func TestParseRequirements(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "requirements.txt", `
requests==2.31.0
# a comment
Numpy>=1.0
flask ~= 3.0.0
pyyaml
httpx==0.27.0 ; python_version >= "3.9"
`)

	specs, err := Parse(path)
	require.NoError(t, err)

	byName := specNames(specs)
	assert.Equal(t, map[string]string{
		"requests": "2.31.0",
		"numpy":    "1.0",
		"flask":    "3.0.0",
		"pyyaml":   "",
		"httpx":    "0.27.0",
	}, byName)

	for _, s := range specs {
		assert.Equal(t, model.EcosystemPyPI, s.Ecosystem)
		assert.Equal(t, path, s.SourcePath)
	}
}

func TestParsePackageJSON(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "package.json", `{
		"name": "demo",
		"dependencies": {"react": "^18.0.0", "Left-Pad": "1.3.0"},
		"devDependencies": {"eslint": "^8.0.0"}
	}`)

	specs, err := Parse(path)
	require.NoError(t, err)

	byName := specNames(specs)
	assert.Len(t, byName, 3)
	assert.Equal(t, "^18.0.0", byName["react"])
	assert.Equal(t, "1.3.0", byName["left-pad"], "names are lowercased")
	assert.Equal(t, "^8.0.0", byName["eslint"])
	for _, s := range specs {
		assert.Equal(t, model.EcosystemNpm, s.Ecosystem)
	}
}

func TestParsePackageLockWalksNestedDeps(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "package-lock.json", `{
		"lockfileVersion": 1,
		"dependencies": {
			"express": {
				"version": "4.18.2",
				"dependencies": {
					"body-parser": {"version": "1.20.1"}
				}
			},
			"debug": {"version": "4.3.4"}
		}
	}`)

	specs, err := Parse(path)
	require.NoError(t, err)

	byName := specNames(specs)
	assert.Equal(t, map[string]string{
		"express":     "4.18.2",
		"body-parser": "1.20.1",
		"debug":       "4.3.4",
	}, byName)
}

func TestParsePipfileLock(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "Pipfile.lock", `{
		"default": {"requests": {"version": "==2.31.0"}},
		"develop": {"pytest": {"version": "==8.0.0"}}
	}`)

	specs, err := Parse(path)
	require.NoError(t, err)

	byName := specNames(specs)
	assert.Equal(t, map[string]string{
		"requests": "2.31.0",
		"pytest":   "8.0.0",
	}, byName)
}

func TestParsePoetryLock(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "poetry.lock", `
[[package]]
name = "requests"
version = "2.31.0"
description = "Python HTTP for Humans."

[[package]]
name = "Click"
version = "8.1.7"
description = "Composable command line interface toolkit"

[metadata]
lock-version = "2.0"
`)

	specs, err := Parse(path)
	require.NoError(t, err)

	byName := specNames(specs)
	assert.Equal(t, map[string]string{
		"requests": "2.31.0",
		"click":    "8.1.7",
	}, byName)
	for _, s := range specs {
		assert.Equal(t, model.EcosystemPyPI, s.Ecosystem)
	}
}

func TestParsePnpmLock(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "pnpm-lock.yaml", `
lockfileVersion: 5.4

dependencies:
  axios: 1.6.0
  react-dom: 18.2.0(react@18.2.0)

devDependencies:
  typescript: 5.3.3
`)

	specs, err := Parse(path)
	require.NoError(t, err)

	byName := specNames(specs)
	assert.Equal(t, map[string]string{
		"axios":      "1.6.0",
		"react-dom":  "18.2.0",
		"typescript": "5.3.3",
	}, byName)
}

func TestParseUnparseableManifestYieldsNoSpecs(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "package.json", "{definitely broken")

	specs, err := Parse(path)
	assert.Error(t, err)
	assert.Empty(t, specs, "a broken manifest yields no specs, the error is informational")
}

func TestParseUnsupportedFilename(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "Gemfile.lock", "GEM\n")

	specs, err := Parse(path)
	assert.NoError(t, err)
	assert.Empty(t, specs)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "requirements.txt", "requests\n")
	writeManifest(t, dir, "package.json", "{}")

	sub := filepath.Join(dir, "service")
	require.NoError(t, os.MkdirAll(sub, 0755))
	writeManifest(t, sub, "poetry.lock", "")

	// Vendored trees must be skipped.
	vendored := filepath.Join(dir, "node_modules", "leftpad")
	require.NoError(t, os.MkdirAll(vendored, 0755))
	writeManifest(t, vendored, "package.json", "{}")

	manifests, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, manifests, 3)
	assert.True(t, sort.StringsAreSorted(manifests), "output is sorted")
	for _, m := range manifests {
		assert.NotContains(t, m, "node_modules")
	}
}

func TestDiscoverSkipsUnreadableDirs(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "requirements.txt", "requests\n")

	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.MkdirAll(locked, 0755))
	writeManifest(t, locked, "package.json", "{}")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	manifests, err := Discover(dir)
	require.NoError(t, err, "an unreadable subdirectory must not abort discovery")
	assert.Contains(t, manifests, filepath.Join(dir, "requirements.txt"))
}
