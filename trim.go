package main

import (
	"fmt"
	"path/filepath"
	"strconv"
)

// Trimmer is one of the two interchangeable trimming backends. Both
// variants produce the same four-tuple so downstream stages never care
// which one ran.
type Trimmer interface {
	Name() string
	Trim(s Sample, d SampleDirs) (TrimResult, error)
}

func trimPaths(s Sample, d SampleDirs) TrimResult {
	return TrimResult{
		Paired1:   filepath.Join(d.Trim, s.ID+".trim_1.fastq.gz"),
		Paired2:   filepath.Join(d.Trim, s.ID+".trim_2.fastq.gz"),
		Unpaired1: filepath.Join(d.Trim, s.ID+".unpaired_1.fastq.gz"),
		Unpaired2: filepath.Join(d.Trim, s.ID+".unpaired_2.fastq.gz"),
	}
}

type trimmomaticTrimmer struct {
	p *Pipeline
}

func (t *trimmomaticTrimmer) Name() string { return BackendTrimmomatic }

// Trim runs FastQC on the raw mates into QC/, then Trimmomatic PE. Either
// tool exiting non-zero fails the trimming stage for this sample.
func (t *trimmomaticTrimmer) Trim(s Sample, d SampleDirs) (TrimResult, error) {
	p := t.p
	qcArgs := []string{"-t", strconv.Itoa(p.cfg.Threads), "-o", d.QC, s.Mate1, s.Mate2}
	if err := p.runTool(d.Base, stageQC, p.cfg.Tools.FastQC, qcArgs); err != nil {
		return TrimResult{}, err
	}
	args, tr := trimmomaticArgs(s, d, p.cfg.Trim, p.cfg.Threads)
	if err := p.runTool(d.Base, stageTrim, p.cfg.Tools.Trimmomatic, args); err != nil {
		return TrimResult{}, err
	}
	return tr, nil
}

func trimmomaticArgs(s Sample, d SampleDirs, cfg TrimConfig, threads int) ([]string, TrimResult) {
	tr := trimPaths(s, d)
	args := []string{
		"PE",
		"-threads", strconv.Itoa(threads),
		"-phred" + strconv.Itoa(cfg.Phred),
		s.Mate1, s.Mate2,
		tr.Paired1, tr.Unpaired1,
		tr.Paired2, tr.Unpaired2,
	}
	return append(args, trimmomaticSteps(cfg)...), tr
}

// trimmomaticSteps builds the filter chain. ILLUMINACLIP comes first when an
// adapter file is configured; the remaining filters keep a fixed order.
func trimmomaticSteps(cfg TrimConfig) []string {
	var steps []string
	if cfg.AdapterFile != "" {
		steps = append(steps, "ILLUMINACLIP:"+cfg.AdapterFile+":2:30:10")
	}
	return append(steps,
		"SLIDINGWINDOW:"+cfg.SlidingWindow,
		fmt.Sprintf("LEADING:%d", cfg.Leading),
		fmt.Sprintf("TRAILING:%d", cfg.Trailing),
		fmt.Sprintf("MINLEN:%d", cfg.MinLength),
	)
}

type fastpTrimmer struct {
	p *Pipeline
}

func (t *fastpTrimmer) Name() string { return BackendFastp }

// Trim runs fastp. No FastQC stage on this path, fastp writes its own
// JSON and HTML reports under trim/.
func (t *fastpTrimmer) Trim(s Sample, d SampleDirs) (TrimResult, error) {
	p := t.p
	args, tr := fastpArgs(s, d, p.cfg.Trim, p.cfg.Threads)
	if err := p.runTool(d.Base, stageTrim, p.cfg.Tools.Fastp, args); err != nil {
		return TrimResult{}, err
	}
	return tr, nil
}

func fastpArgs(s Sample, d SampleDirs, cfg TrimConfig, threads int) ([]string, TrimResult) {
	tr := trimPaths(s, d)
	args := []string{
		"-i", s.Mate1, "-I", s.Mate2,
		"-o", tr.Paired1, "-O", tr.Paired2,
		"--unpaired1", tr.Unpaired1,
		"--unpaired2", tr.Unpaired2,
		"--json", filepath.Join(d.Trim, "fastp.json"),
		"--html", filepath.Join(d.Trim, "fastp.html"),
		"--thread", strconv.Itoa(threads),
	}
	if cfg.DetectAdaptersPE {
		args = append(args, "--detect_adapter_for_pe")
	}
	return args, tr
}
