package main

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	simple_util "github.com/liserjrqlxue/simple-util"
)

// report counts contigs for one sample. A missing or unreadable contigs
// file is a diagnostic warning, never a failure.
func (p *Pipeline) report(s Sample, contigs string) int {
	if !simple_util.FileExists(contigs) {
		p.log.Warn().Str("sample", s.ID).Str("contigs", contigs).Msg("no contigs file produced")
		return 0
	}
	n, err := countContigs(contigs)
	if err != nil {
		p.log.Warn().Err(err).Str("sample", s.ID).Msg("count contigs failed")
		return 0
	}
	p.log.Info().Str("sample", s.ID).Int("contigs", n).Msg("assembly reported")
	return n
}

// countContigs counts fasta record headers in path.
func countContigs(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer simple_util.DeferClose(f)

	var n int
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if strings.HasPrefix(line, ">") {
			n++
		}
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
	}
}
