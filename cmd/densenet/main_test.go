package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeData(t *testing.T, dir string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("x1 x2 x3 x4 y\n")
	for i := 0; i < 30; i++ {
		x1, x2, x3, x4 := float64(i%10), float64(i%5), float64(i%7), float64(i%3)
		y := 0.1 + 0.02*x1 + 0.05*x2
		fmt.Fprintf(&b, "%g %g %g %g %g\n", x1, x2, x3, x4, y)
	}
	path := filepath.Join(dir, "train.txt")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

const smallConfig = `
batch_size = 5
seed = 7

[normalize]
scales = [10.0, 5.0, 7.0, 3.0]

[[layers]]
inputs = 4
outputs = 3
activation = "sigmoid"

[[layers]]
inputs = 3
outputs = 1
activation = "sigmoid"

[[stages]]
epochs = 5
learning_rate = 0.3

[[stages]]
epochs = 5
learning_rate = 0.1
`

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"version"}, &out, &bytes.Buffer{}))
	assert.Equal(t, "densenet "+version+"\n", out.String())
}

func TestRun_MissingTrain(t *testing.T) {
	err := run(nil, &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "-train")
}

func TestRun_Stages(t *testing.T) {
	dir := t.TempDir()
	data := writeData(t, dir)
	cfgPath := filepath.Join(dir, "run.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(smallConfig), 0o600))
	plotPath := filepath.Join(dir, "loss.png")

	var out, logs bytes.Buffer
	err := run([]string{"-config", cfgPath, "-train", data, "-plot", plotPath}, &out, &logs)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "untrained:"))
	assert.True(t, strings.HasPrefix(lines[1], "stage 1: epochs=5 lr=0.3"))
	assert.True(t, strings.HasPrefix(lines[2], "stage 2: epochs=5 lr=0.1"))
	assert.Contains(t, logs.String(), "training 10 epochs in 2 stages")
	assert.Contains(t, logs.String(), "training done")

	info, err := os.Stat(plotPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRun_BadInputs(t *testing.T) {
	dir := t.TempDir()
	data := writeData(t, dir)

	err := run([]string{"-train", filepath.Join(dir, "missing.txt")}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("batch_size = 0\n"), 0o600))
	err = run([]string{"-config", bad, "-train", data}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRun_VerboseSetsGlobalLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "run.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(smallConfig), 0o600))

	var logs bytes.Buffer
	require.NoError(t, run([]string{"-v", "-config", cfgPath, "-train", writeData(t, dir)}, &bytes.Buffer{}, &logs))
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	assert.Contains(t, logs.String(), "epoch done")

	require.NoError(t, run([]string{"-config", cfgPath, "-train", writeData(t, dir)}, &bytes.Buffer{}, &bytes.Buffer{}))
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
