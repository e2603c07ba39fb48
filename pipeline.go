package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	simple_util "github.com/liserjrqlxue/simple-util"
	"github.com/rs/zerolog"
)

// Pipeline drives every discovered sample through
// trim -> merge -> assemble -> report, one sample at a time. A stage
// failure abandons the sample's remaining stages and moves on; sibling
// samples share nothing but the immutable configuration.
type Pipeline struct {
	cfg     *Config
	log     zerolog.Logger
	trimmer Trimmer
}

func newPipeline(cfg *Config, lg zerolog.Logger) *Pipeline {
	p := &Pipeline{cfg: cfg, log: lg}
	switch cfg.Trim.Backend {
	case BackendFastp:
		p.trimmer = &fastpTrimmer{p}
	default:
		p.trimmer = &trimmomaticTrimmer{p}
	}
	return p
}

// Run processes samples strictly in order and returns one terminal Result
// per sample. Per-sample failures never abort the run.
func (p *Pipeline) Run(samples []Sample) []Result {
	results := make([]Result, 0, len(samples))
	for _, s := range samples {
		p.log.Info().Str("sample", s.ID).Msg("processing sample")
		results = append(results, p.runSample(s))
	}
	return results
}

func (p *Pipeline) runSample(s Sample) Result {
	res := Result{Sample: s, State: StateDiscovered}
	lg := p.log.With().Str("sample", s.ID).Logger()

	dirs, err := createSampleDirs(p.cfg.OutDir, s.ID, p.cfg.Trim.Backend)
	if err != nil {
		return res.failed(stagePrepare, err, lg)
	}
	contigs := filepath.Join(dirs.Asm, "contigs.fasta")

	if p.cfg.Resume && simple_util.FileExists(contigs) {
		lg.Info().Msg("contigs.fasta present, skipping to report")
		res.State = StateAssembled
	} else {
		tr, err := p.trimmer.Trim(s, dirs)
		if err != nil {
			return res.failed(stageTrim, err, lg)
		}
		res.State = StateTrimmed

		singles := filepath.Join(dirs.Trim, s.ID+".singletons.fastq.gz")
		if err := mergeSingletons(tr.Unpaired1, tr.Unpaired2, singles); err != nil {
			return res.failed(stageMerge, err, lg)
		}
		res.State = StateMerged

		if err := p.assemble(tr, singles, dirs); err != nil {
			return res.failed(stageAssembly, err, lg)
		}
		res.State = StateAssembled
	}

	res.Contigs = p.report(s, contigs)
	res.State = StateReported
	return res
}

func (r Result) failed(stage string, err error, lg zerolog.Logger) Result {
	lg.Warn().Err(err).Str("stage", stage).Msg("stage failed, abandoning sample")
	r.State = failedState(stage)
	r.Err = err
	return r
}

// runTool invokes one external tool, capturing its stdout and stderr to
// <dir>/<stage>.stdout.log and <dir>/<stage>.stderr.log so tool chatter
// never mixes with the run log.
func (p *Pipeline) runTool(dir, stage, tool string, args []string) error {
	stdout, err := os.Create(filepath.Join(dir, stage+".stdout.log"))
	if err != nil {
		return err
	}
	defer simple_util.DeferClose(stdout)
	stderr, err := os.Create(filepath.Join(dir, stage+".stderr.log"))
	if err != nil {
		return err
	}
	defer simple_util.DeferClose(stderr)

	p.log.Debug().Str("stage", stage).Str("tool", tool).Strs("args", args).Msg("run tool")
	cmd := exec.Command(tool, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", tool, err)
	}
	return nil
}
