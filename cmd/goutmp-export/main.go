package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/d21d3q/goutmp/internal/config"
	"github.com/d21d3q/goutmp/pkg/errclass"
	"github.com/d21d3q/goutmp/pkg/goutmp"
)

type cliFlags struct {
	file       string
	outputDir  string
	format     string
	delimiter  string
	timeFormat string
	encoding   string
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var f cliFlags
	cmd := &cobra.Command{
		Use:   "goutmp-export -f <file>",
		Short: "Export utmp, wtmp and btmp login records",
		Long: `goutmp-export decodes a utmp, wtmp or btmp login-accounting file and writes
it as <timestamp>.csv (or .jsonl) into the output directory. The whole file is
rejected when its size is not a multiple of the record size or when any record
carries an unknown login type.`,
		Example: `  goutmp-export -f /var/log/wtmp
  goutmp-export -f /var/log/btmp.1.gz --format jsonl -o /tmp/exports`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd.Flags(), f, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errclass.ErrUsage.Wrap(err)
	})

	fl := cmd.Flags()
	fl.StringVarP(&f.file, "file", "f", "", "utmp, wtmp or btmp file to export (gzip and zstd are inflated)")
	fl.StringVarP(&f.outputDir, "output-dir", "o", "", "directory for the export file (default \".\")")
	fl.StringVar(&f.format, "format", "", "export format: "+strings.Join(goutmp.Formats(), ", ")+" (default csv)")
	fl.StringVar(&f.delimiter, "delimiter", "", "CSV field separator, \"tab\" for a tab (default \",\")")
	fl.StringVar(&f.timeFormat, "time-format", "", "time column: epoch, rfc3339 or human (default epoch)")
	fl.StringVar(&f.encoding, "encoding", "", "text field encoding: raw, latin1 or utf8 (default raw)")
	fl.StringVar(&f.configPath, "config", "", "YAML configuration file")
	fl.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error (default info)")
	fl.StringVar(&f.logFormat, "log-format", "", "log format: text or json (default text)")
	return cmd
}

func runExport(fl *pflag.FlagSet, f cliFlags, stdout, stderr io.Writer) error {
	if f.file == "" {
		return errclass.ErrUsage.WithMessage("no input file specified (use -f <file>)")
	}
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	applyFlags(fl, f, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := newLogger(cfg.Logging, stderr)
	if err != nil {
		return err
	}
	render, err := cfg.ExportOptions()
	if err != nil {
		return errclass.ErrConfigInvalid.Wrap(err)
	}

	res, err := goutmp.Export(goutmp.ExportOptions{
		DecodeOptions: goutmp.DecodeOptions{Encoding: cfg.Export.Encoding},
		Input:         f.file,
		OutputDir:     cfg.Export.OutputDir,
		Format:        cfg.Export.Format,
		Render:        render,
		Logger:        logger,
	})
	if err != nil {
		return err
	}
	logger.Debug(res.String())
	fmt.Fprintln(stdout, res.Output)
	return nil
}

// applyFlags overrides configuration values with flags set on the command line.
func applyFlags(fl *pflag.FlagSet, f cliFlags, cfg *config.Config) {
	overrides := []struct {
		name string
		dst  *string
		val  string
	}{
		{"output-dir", &cfg.Export.OutputDir, f.outputDir},
		{"format", &cfg.Export.Format, f.format},
		{"delimiter", &cfg.Export.Delimiter, f.delimiter},
		{"time-format", &cfg.Export.TimeFormat, f.timeFormat},
		{"encoding", &cfg.Export.Encoding, f.encoding},
		{"log-level", &cfg.Logging.Level, f.logLevel},
		{"log-format", &cfg.Logging.Format, f.logFormat},
	}
	for _, o := range overrides {
		if fl.Changed(o.name) {
			*o.dst = o.val
		}
	}
}

func newLogger(cfg config.LoggingConfig, w io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(w)
	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if cfg.Level != "" {
		level, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, errclass.ErrConfigInvalid.WithMessage("log level").Wrap(err)
		}
		logger.SetLevel(level)
	}
	return logger, nil
}

var failurePrefixes = map[string]string{
	errclass.ErrUsage.Code:             "invalid usage",
	errclass.ErrConfigInvalid.Code:     "invalid configuration",
	errclass.ErrSourceUnavailable.Code: "error opening input file",
	errclass.ErrSinkUnavailable.Code:   "error opening output file",
	errclass.ErrFileSizeMismatch.Code:  "file error: invalid file size",
	errclass.ErrInvalidLoginType.Code:  "file error: invalid login type",
}

// exitCode is 1 for every failure; the error class is reported in the log.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

func describe(err error) string {
	if prefix, ok := failurePrefixes[errclass.Code(err)]; ok {
		return prefix + ": " + err.Error()
	}
	return err.Error()
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err != nil {
		logger := logrus.New()
		logger.SetOutput(stderr)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logger.WithField("code", errclass.Code(err)).Error(describe(err))
	}
	return exitCode(err)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
