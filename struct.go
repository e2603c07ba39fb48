package main

// Sample is one paired-end sample found in the input directory.
type Sample struct {
	ID    string
	Mate1 string
	Mate2 string
}

// SampleDirs are the working directories owned by one sample.
type SampleDirs struct {
	Base string
	QC   string
	Trim string
	Asm  string
}

// TrimResult is the four-tuple every trimming backend produces.
type TrimResult struct {
	Paired1   string
	Paired2   string
	Unpaired1 string
	Unpaired2 string
}

// State of one sample in the per-sample pipeline.
type State string

const (
	StateDiscovered State = "discovered"
	StateTrimmed    State = "trimmed"
	StateMerged     State = "merged"
	StateAssembled  State = "assembled"
	StateReported   State = "reported"
	StateSkipped    State = "skipped"
)

// pipeline stage names, used in failure states and log file names
const (
	stagePrepare  = "prepare"
	stageQC       = "qc"
	stageTrim     = "trim"
	stageMerge    = "merge"
	stageAssembly = "asm"
)

// Result is the terminal record for one sample.
type Result struct {
	Sample  Sample
	State   State
	Contigs int
	Err     error
}

// failedState marks a stage failure, e.g. "failed@trim".
func failedState(stage string) State { return State("failed@" + stage) }
