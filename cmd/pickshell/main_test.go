package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnterExecDir(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { os.Chdir(wd) })

	require.NoError(t, enterExecDir(filepath.Join(dir, "pickshell")))
	got, err := os.Getwd()
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, want, gotResolved)
}

func TestEnterExecDirMissing(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	err = enterExecDir(filepath.Join(t.TempDir(), "gone", "pickshell"))
	assert.Error(t, err)

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, after)
}

func TestEnterExecDirSkipsGoRun(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	require.NoError(t, enterExecDir("/nonexistent/go-build123/b001/exe/pickshell"))

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, after)
}
