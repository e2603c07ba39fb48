package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMixedDirectory(t *testing.T) {
	input := t.TempDir()
	touch(t, filepath.Join(input, "S1_1.fastq.gz"))
	touch(t, filepath.Join(input, "S1_2.fastq.gz"))
	touch(t, filepath.Join(input, "S2_1.fastq.gz")) // no mate

	bin := t.TempDir()
	writeStub(t, bin, "fastqc", "exit 0")
	stubTrimmomatic(t, bin, true)
	stubSpades(t, bin, filepath.Join(bin, "spades.args"))
	toolsFile := filepath.Join(bin, "tools.tsv")
	require.NoError(t, os.WriteFile(toolsFile, []byte(fmt.Sprintf(
		"name\tpath\nfastqc\t%s\ntrimmomatic\t%s\nspades\t%s\n",
		filepath.Join(bin, "fastqc"),
		filepath.Join(bin, "trimmomatic"),
		filepath.Join(bin, "spades.py"),
	)), 0644))

	out := filepath.Join(t.TempDir(), "out")
	code := run([]string{"-o", out, "-tools", toolsFile, "-p", "1", input})
	assert.Equal(t, 0, code, "one skipped sample must not fail the run")

	summary, err := os.ReadFile(filepath.Join(out, "summary.tsv"))
	require.NoError(t, err)
	assert.Contains(t, string(summary), "S1\treported\t2")
	assert.Contains(t, string(summary), "S2\tskipped\t0")

	assert.FileExists(t, filepath.Join(out, "asmpipe.log"))
	assert.FileExists(t, filepath.Join(out, "S1", "asm", "spades", "contigs.fasta"))
}

func TestRunConfigurationErrors(t *testing.T) {
	input := t.TempDir()

	tests := []struct {
		name string
		argv []string
	}{
		{"bad trimmer", []string{"-t", "cutadapt", input}},
		{"bad phred", []string{"-phred", "42", input}},
		{"missing adapters", []string{"-adapters", "/no/such.fa", input}},
		{"missing input dir", []string{filepath.Join(input, "nope")}},
		{"zero threads", []string{"-p", "0", input}},
		{"no positional", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 1, run(tt.argv))
		})
	}
}

func TestRunHelp(t *testing.T) {
	assert.Equal(t, 0, run([]string{"-h"}))
}
