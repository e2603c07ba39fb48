package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/liserjrqlxue/goUtil/textUtil"
	simple_util "github.com/liserjrqlxue/simple-util"
	"gopkg.in/yaml.v3"
)

// trimming backends
const (
	BackendTrimmomatic = "trimmomatic"
	BackendFastp       = "fastp"
)

// TrimConfig holds the run-wide trimming options. It is validated once
// before any sample is processed and never mutated afterwards.
type TrimConfig struct {
	Backend          string `yaml:"trimmer" validate:"oneof=trimmomatic fastp"`
	Phred            int    `yaml:"phred" validate:"oneof=33 64"`
	SlidingWindow    string `yaml:"window" validate:"window"`
	Leading          int    `yaml:"leading" validate:"gte=0"`
	Trailing         int    `yaml:"trailing" validate:"gte=0"`
	MinLength        int    `yaml:"minlen" validate:"gte=1"`
	AdapterFile      string `yaml:"adapters" validate:"omitempty,file"`
	DetectAdaptersPE bool   `yaml:"detect_adapter_for_pe"`
}

// Tools maps the external collaborators to their executables.
type Tools struct {
	FastQC      string
	Trimmomatic string
	Fastp       string
	Spades      string
}

func defaultTools() Tools {
	return Tools{
		FastQC:      "fastqc",
		Trimmomatic: "trimmomatic",
		Fastp:       "fastp",
		Spades:      "spades.py",
	}
}

// Config is the whole-run configuration.
type Config struct {
	InputDir   string `validate:"required,dir"`
	OutDir     string `validate:"required"`
	Threads    int    `validate:"gte=1"`
	Resume     bool
	LogLevel   string
	ConfigFile string
	ToolsFile  string
	Trim       TrimConfig
	Tools      Tools
}

var windowRE = regexp.MustCompile(`^[0-9]+:[0-9]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	simple_util.CheckErr(v.RegisterValidation("window", func(fl validator.FieldLevel) bool {
		return windowRE.MatchString(fl.Field().String())
	}))
	return v
}

// Validate reports the first configuration problem, if any. Configuration
// errors are fatal to the whole run before any sample is processed.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return fmt.Errorf("invalid %s: value %v fails %q", e.Namespace(), e.Value(), e.Tag())
		}
		return err
	}
	return nil
}

// newFlagSet returns a FlagSet with the asmpipe usage text.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: trim, merge and assemble paired-end sequencing samples

Usage:
  %s [options] <input-dir>

Mate pairs are discovered in <input-dir> as <id>_1.<ext> / <id>_2.<ext>
(fastq, fq, optionally gzipped). Each sample is processed under
<outdir>/<id>/ through trimming, singleton merge, assembly and report.

Options:
`, name, name)
		fs.PrintDefaults()
	}
	return fs
}

// parseArgs registers and parses all flags plus the required positional
// input directory. The config file, when given, only fills in options not
// set explicitly on the command line.
func parseArgs(fs *flag.FlagSet, argv []string) (*Config, error) {
	cfg := &Config{
		OutDir:   "asmpipe_out",
		Threads:  4,
		LogLevel: "info",
		Trim: TrimConfig{
			Backend:       BackendTrimmomatic,
			Phred:         33,
			SlidingWindow: "4:15",
			Leading:       3,
			Trailing:      3,
			MinLength:     36,
		},
		Tools: defaultTools(),
	}

	fs.StringVar(&cfg.OutDir, "outdir", cfg.OutDir, "base output directory")
	fs.StringVar(&cfg.OutDir, "o", cfg.OutDir, "short for -outdir")
	fs.StringVar(&cfg.Trim.Backend, "trimmer", cfg.Trim.Backend, "trimming backend [trimmomatic|fastp]")
	fs.StringVar(&cfg.Trim.Backend, "t", cfg.Trim.Backend, "short for -trimmer")
	fs.IntVar(&cfg.Trim.Phred, "phred", cfg.Trim.Phred, "phred quality encoding, trimmomatic only [33|64]")
	fs.StringVar(&cfg.Trim.SlidingWindow, "window", cfg.Trim.SlidingWindow, "sliding window W:Q")
	fs.IntVar(&cfg.Trim.Leading, "leading", cfg.Trim.Leading, "leading quality cutoff")
	fs.IntVar(&cfg.Trim.Trailing, "trailing", cfg.Trim.Trailing, "trailing quality cutoff")
	fs.IntVar(&cfg.Trim.MinLength, "minlen", cfg.Trim.MinLength, "minimum read length after trimming")
	fs.StringVar(&cfg.Trim.AdapterFile, "adapters", "", "adapter fasta for ILLUMINACLIP")
	fs.BoolVar(&cfg.Trim.DetectAdaptersPE, "detect-adapters", false, "fastp paired-end adapter auto-detection")
	fs.IntVar(&cfg.Threads, "threads", cfg.Threads, "threads passed to each external tool")
	fs.IntVar(&cfg.Threads, "p", cfg.Threads, "short for -threads")
	fs.BoolVar(&cfg.Resume, "resume", false, "skip samples whose contigs.fasta already exists")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level [debug|info|warn|error]")
	fs.StringVar(&cfg.ConfigFile, "config", "", "yaml file with trim options, overridden by explicit flags")
	fs.StringVar(&cfg.ToolsFile, "tools", "", "tsv file (name, path) overriding tool executables")

	if err := fs.Parse(argv); err != nil {
		return nil, err
	}
	switch fs.NArg() {
	case 1:
		cfg.InputDir = fs.Arg(0)
	case 0:
		fmt.Fprintf(fs.Output(), "%s: missing required <input-dir> argument\n", fs.Name())
		fs.Usage()
		return nil, fmt.Errorf("missing input directory")
	default:
		fmt.Fprintf(fs.Output(), "%s: unexpected arguments: %v\n", fs.Name(), fs.Args()[1:])
		fs.Usage()
		return nil, fmt.Errorf("unexpected arguments")
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	// short aliases count as the long option
	for short, long := range map[string]string{"o": "outdir", "t": "trimmer", "p": "threads"} {
		if set[short] {
			set[long] = true
		}
	}

	if cfg.ConfigFile != "" {
		if err := loadConfigFile(cfg.ConfigFile, cfg, set); err != nil {
			return nil, err
		}
	}
	if cfg.ToolsFile != "" {
		if err := loadTools(cfg.ToolsFile, &cfg.Tools); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// fileConfig mirrors TrimConfig with pointer fields so an absent key can be
// told apart from a zero value.
type fileConfig struct {
	Trimmer          string `yaml:"trimmer"`
	Phred            *int   `yaml:"phred"`
	Window           string `yaml:"window"`
	Leading          *int   `yaml:"leading"`
	Trailing         *int   `yaml:"trailing"`
	MinLen           *int   `yaml:"minlen"`
	Adapters         string `yaml:"adapters"`
	DetectAdaptersPE *bool  `yaml:"detect_adapter_for_pe"`
	Threads          *int   `yaml:"threads"`
}

func loadConfigFile(path string, cfg *Config, set map[string]bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if !set["trimmer"] && fc.Trimmer != "" {
		cfg.Trim.Backend = fc.Trimmer
	}
	if !set["phred"] && fc.Phred != nil {
		cfg.Trim.Phred = *fc.Phred
	}
	if !set["window"] && fc.Window != "" {
		cfg.Trim.SlidingWindow = fc.Window
	}
	if !set["leading"] && fc.Leading != nil {
		cfg.Trim.Leading = *fc.Leading
	}
	if !set["trailing"] && fc.Trailing != nil {
		cfg.Trim.Trailing = *fc.Trailing
	}
	if !set["minlen"] && fc.MinLen != nil {
		cfg.Trim.MinLength = *fc.MinLen
	}
	if !set["adapters"] && fc.Adapters != "" {
		cfg.Trim.AdapterFile = fc.Adapters
	}
	if !set["detect-adapters"] && fc.DetectAdaptersPE != nil {
		cfg.Trim.DetectAdaptersPE = *fc.DetectAdaptersPE
	}
	if !set["threads"] && fc.Threads != nil {
		cfg.Threads = *fc.Threads
	}
	return nil
}

// loadTools applies a tsv with `name` and `path` columns over the defaults.
func loadTools(path string, tools *Tools) error {
	rows, _ := textUtil.File2MapArray(path, "\t", nil)
	for _, row := range rows {
		switch row["name"] {
		case "fastqc":
			tools.FastQC = row["path"]
		case "trimmomatic":
			tools.Trimmomatic = row["path"]
		case "fastp":
			tools.Fastp = row["path"]
		case "spades":
			tools.Spades = row["path"]
		default:
			return fmt.Errorf("unknown tool name %q in %s", row["name"], path)
		}
	}
	return nil
}
