package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/langid/pkg/langid/alphabet"
	"github.com/cognicore/langid/pkg/langid/internalerr"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"langid", "--log-level", "error"}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func smallConfig(t *testing.T, dir string) string {
	return writeFile(t, dir, "langid.yaml", `sampling:
  sample_size: 30
  samples_per_doc: 10
  seed: 3
  test_fraction: 0.2
`)
}

func corpusDir(t *testing.T) string {
	dir := t.TempDir()
	writeFile(t, dir, "german.txt", strings.Repeat("Der schnelle braune Fuchs springt über den faulen Hund.\n", 15))
	writeFile(t, dir, "french.xml", "<doc id=\"1\">\n"+strings.Repeat("Le renard brun rapide saute par-dessus le chien paresseux.\n", 15)+"</doc>\n")
	return dir
}

func TestCleanCommand(t *testing.T) {
	path := writeFile(t, t.TempDir(), "raw.txt", "<doc id=\"1\">Hello\nworld</doc>")

	out, err := run(t, "clean", "--input", path)
	require.NoError(t, err)
	assert.Equal(t, "Hello world\n", out)
}

func TestAlphabetCommand(t *testing.T) {
	out, err := run(t, "alphabet")
	require.NoError(t, err)
	assert.Contains(t, out, "vector length: ")
	assert.Contains(t, out, alphabet.Default().Display())
}

func TestVectorCommand(t *testing.T) {
	path := writeFile(t, t.TempDir(), "text.txt", "the quick brown fox jumps")

	out, err := run(t, "vector", "--input", path, "--offset", "0", "--size", "9")
	require.NoError(t, err)

	var got vectorOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "quick", got.Sample)
	assert.Len(t, got.Vector, alphabet.Default().Len())
}

func TestVectorCommandOutOfBounds(t *testing.T) {
	path := writeFile(t, t.TempDir(), "text.txt", "short text")

	_, err := run(t, "vector", "--input", path, "--size", "50")
	assert.ErrorIs(t, err, internalerr.ErrOutOfBounds)
}

func TestPrepSplitExport(t *testing.T) {
	work := t.TempDir()
	cfg := smallConfig(t, work)
	db := filepath.Join(work, "dataset.db")

	out, err := run(t, "--config", cfg, "prep", "--corpus", corpusDir(t), "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "docs: 2")
	assert.Contains(t, out, "german")
	assert.Contains(t, out, "french")

	splitDir := filepath.Join(work, "split")
	out, err = run(t, "--config", cfg, "split", "--db", db, "--out-dir", splitDir)
	require.NoError(t, err)
	assert.Contains(t, out, "german")
	assert.FileExists(t, filepath.Join(splitDir, "train.csv"))
	assert.FileExists(t, filepath.Join(splitDir, "test.csv"))

	csvPath := filepath.Join(work, "all.csv")
	_, err = run(t, "--config", cfg, "export", "--db", db, "--out", csvPath)
	require.NoError(t, err)
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], "language,"))

	// replacing keeps the row count stable
	_, err = run(t, "--config", cfg, "prep", "--corpus", corpusDir(t), "--db", db, "--replace")
	require.NoError(t, err)
	out, err = run(t, "--config", cfg, "export", "--db", db)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), len(lines))
}

func TestPrepRejectsDifferentAlphabet(t *testing.T) {
	work := t.TempDir()
	db := filepath.Join(work, "dataset.db")

	_, err := run(t, "--config", smallConfig(t, work), "prep", "--corpus", corpusDir(t), "--db", db)
	require.NoError(t, err)

	other := writeFile(t, work, "other.yaml", `alphabet:
  base: abcdefghijklmnopqrstuvwxyz
  punctuation: " "
sampling:
  sample_size: 30
  samples_per_doc: 10
`)
	_, err = run(t, "--config", other, "prep", "--corpus", corpusDir(t), "--db", db)
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestMatrixCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "preds.json", `{"predictions": [
		{"true": "czech", "predicted": "czech"},
		{"true": "czech", "predicted": "slovak"},
		{"true": "slovak", "predicted": "slovak"},
		{"true": "slovak", "predicted": "slovak"}
	]}`)

	out, err := run(t, "matrix", "--input", path, "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "Confusion Matrix")
	assert.Contains(t, out, "accuracy: 0.7500 (4 samples)")
}

func TestMatrixCommandNonInteger(t *testing.T) {
	path := writeFile(t, t.TempDir(), "m.json", `{"labels": ["a", "b"], "matrix": [[1.5, 0], [0, 2]]}`)

	_, err := run(t, "matrix", "--input", path, "--color", "never")
	assert.ErrorIs(t, err, internalerr.ErrNonIntegerCell)
}

func TestMatrixCommandBadColor(t *testing.T) {
	path := writeFile(t, t.TempDir(), "m.json", `{"labels": ["a"], "matrix": [[1]]}`)

	_, err := run(t, "matrix", "--input", path, "--color", "sometimes")
	assert.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	app := newApp()
	app.Writer = &bytes.Buffer{}
	err := app.Run([]string{"langid", "--log-level", "loud", "alphabet"})
	assert.Error(t, err)
}
