package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountContigs(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"single", ">NODE_1\nACGTACGT\n", 1},
		{"several", ">NODE_1\nACGT\nACGT\n>NODE_2\nTTTT\n>NODE_3\nGGGG\n", 3},
		{"no trailing newline", ">NODE_1\nACGT\n>NODE_2\nTTTT", 2},
		{"header only", ">NODE_1 length_120_cov_3.2", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".fasta")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			got, err := countContigs(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountContigsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contigs.fasta")
	require.NoError(t, os.WriteFile(path, []byte(">a\nAC\n>b\nGT\n"), 0644))

	first, err := countContigs(path)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := countContigs(path)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestReportMissingContigs(t *testing.T) {
	var buf bytes.Buffer
	p := &Pipeline{cfg: &Config{}, log: zerolog.New(&buf)}

	n := p.report(Sample{ID: "S9"}, filepath.Join(t.TempDir(), "contigs.fasta"))
	assert.Zero(t, n)
	assert.Contains(t, buf.String(), "no contigs file produced")
	assert.Contains(t, buf.String(), "S9")
}
