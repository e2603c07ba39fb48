package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeSingletons(t *testing.T) {
	tests := []struct {
		name string
		u1   string // "" means the file is absent
		u2   string
		want string
	}{
		{"both with content", "@u1\nAC\n", "@u2\nGT\n", "@u1\nAC\n@u2\nGT\n"},
		{"only first", "@u1\nAC\n", "", "@u1\nAC\n"},
		{"first absent", "", "@u2\nGT\n", "@u2\nGT\n"},
		{"both empty", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			u1 := filepath.Join(dir, "u1.fastq")
			u2 := filepath.Join(dir, "u2.fastq")
			dst := filepath.Join(dir, "singletons.fastq")
			if tt.u1 != "" {
				require.NoError(t, os.WriteFile(u1, []byte(tt.u1), 0644))
			}
			if tt.u2 != "" {
				require.NoError(t, os.WriteFile(u2, []byte(tt.u2), 0644))
			}

			require.NoError(t, mergeSingletons(u1, u2, dst))

			got, err := os.ReadFile(dst)
			require.NoError(t, err, "singleton file must exist even when empty")
			assert.Equal(t, tt.want, string(got))
			assert.NoFileExists(t, u1, "transient unpaired file left behind")
			assert.NoFileExists(t, u2, "transient unpaired file left behind")
		})
	}
}

func TestMergeSingletonsBothAbsent(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "singletons.fastq")
	u1 := filepath.Join(dir, "u1.fastq")
	u2 := filepath.Join(dir, "u2.fastq")

	// safe to call with nothing to merge, and safe to call again
	require.NoError(t, mergeSingletons(u1, u2, dst))
	require.NoError(t, mergeSingletons(u1, u2, dst))

	st, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Zero(t, st.Size())
}

func TestMergeSingletonsKeepsInputsOnFailure(t *testing.T) {
	dir := t.TempDir()
	u1 := filepath.Join(dir, "u1.fastq")
	require.NoError(t, os.WriteFile(u1, []byte("@u1\nAC\n"), 0644))

	// destination in a directory that does not exist
	err := mergeSingletons(u1, filepath.Join(dir, "u2.fastq"), filepath.Join(dir, "nope", "singletons.fastq"))
	require.Error(t, err)
	assert.FileExists(t, u1, "unpaired input must survive a failed merge")
}

func TestFileNonEmpty(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	full := filepath.Join(dir, "full")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	require.NoError(t, os.WriteFile(full, []byte("x"), 0644))

	assert.False(t, fileNonEmpty(filepath.Join(dir, "absent")))
	assert.False(t, fileNonEmpty(empty), "zero-byte file counts as no singletons")
	assert.True(t, fileNonEmpty(full))
}
