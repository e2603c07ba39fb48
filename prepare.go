package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	simple_util "github.com/liserjrqlxue/simple-util"
	"github.com/rs/zerolog"
)

var mate1RE = regexp.MustCompile(`^(.+)_1\.(f(?:ast)?q(?:\.gz)?)$`)

// discoverSamples scans dir for mate-1 files and pairs each with its mate-2
// counterpart. Mate-1 files without a mate get one skip warning and are
// returned in skipped; discovery itself never fails on them. An input
// directory with no matching files yields an empty sample list.
func discoverSamples(dir string, lg zerolog.Logger) (samples []Sample, skipped []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read input dir %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := mate1RE.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		id, ext := m[1], m[2]
		mate2 := filepath.Join(dir, id+"_2."+ext)
		if !simple_util.FileExists(mate2) {
			lg.Warn().Str("sample", id).Str("missing", mate2).Msg("missing mate file, skipping sample")
			skipped = append(skipped, id)
			continue
		}
		samples = append(samples, Sample{
			ID:    id,
			Mate1: filepath.Join(dir, e.Name()),
			Mate2: mate2,
		})
	}
	return samples, skipped, nil
}

// createSampleDirs makes the per-sample working directories. QC/ exists on
// the trimmomatic path only; fastp ships its own reports under trim/.
func createSampleDirs(outDir, id, backend string) (SampleDirs, error) {
	d := SampleDirs{Base: filepath.Join(outDir, id)}
	d.QC = filepath.Join(d.Base, "QC")
	d.Trim = filepath.Join(d.Base, "trim")
	d.Asm = filepath.Join(d.Base, "asm", "spades")

	dirs := []string{d.Trim, d.Asm}
	if backend == BackendTrimmomatic {
		dirs = append(dirs, d.QC)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return d, err
		}
	}
	return d, nil
}
