package main

import (
	"strconv"
)

// assemble invokes SPAdes in assembler-only mode on the paired trimmed
// reads, adding the singletons only when the singleton file is strictly
// non-empty. Success downstream is judged solely by contigs.fasta showing
// up under the assembly directory.
func (p *Pipeline) assemble(tr TrimResult, singles string, d SampleDirs) error {
	args := spadesArgs(tr, singles, fileNonEmpty(singles), p.cfg.Threads, d.Asm)
	return p.runTool(d.Base, stageAssembly, p.cfg.Tools.Spades, args)
}

func spadesArgs(tr TrimResult, singles string, withSingles bool, threads int, outDir string) []string {
	args := []string{
		"--only-assembler",
		"-1", tr.Paired1,
		"-2", tr.Paired2,
	}
	if withSingles {
		args = append(args, "-s", singles)
	}
	return append(args,
		"-t", strconv.Itoa(threads),
		"-o", outDir,
	)
}
