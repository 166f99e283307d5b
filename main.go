// resize enlarges a 24-bit uncompressed BMP by an integer factor.
//
//	resize [-config resize.yml] [-v] n infile outfile
package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"os"

	"BMPResize/config"
	"BMPResize/rescale"
)

// Exit codes.
const (
	exitOK          = 0
	exitUsage       = 1
	exitInputOpen   = 2
	exitOutputOpen  = 3
	exitUnsupported = 4
	exitOverflow    = 5
	exitIO          = 6
)

const usage = "Usage: resize n infile outfile"

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	logger := log.New(stderr, "", 0)

	flags := flag.NewFlagSet("resize", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", config.DefaultPath, "YAML configuration file")
	verbose := flags.Bool("v", false, "Log each step")
	flags.Usage = func() {
		logger.Println(usage)
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return exitUsage
	}

	if flags.NArg() != 3 {
		logger.Println(usage)
		return exitUsage
	}

	n, err := rescale.ParseScale(flags.Arg(0))
	if err != nil {
		logger.Println(err)
		logger.Println(usage)
		return exitUsage
	}
	infile, outfile := flags.Arg(1), flags.Arg(2)

	var configLogger *log.Logger
	if *verbose {
		configLogger = logger
	}
	cfg, err := config.LoadConfig(*configPath, configLogger)
	if err != nil {
		logger.Println(err)
		return exitUsage
	}
	ruleSet, err := cfg.RuleSet()
	if err != nil {
		logger.Println(err)
		return exitUsage
	}

	opts := []rescale.Option{
		rescale.WithRules(ruleSet),
		rescale.WithBufferSize(cfg.BufferSize),
	}
	if *verbose || cfg.Verbose {
		opts = append(opts, rescale.WithLogger(logger))
	}

	if err := rescale.New(opts...).ResizeFile(n, infile, outfile); err != nil {
		logger.Println(err)
		return exitCode(err)
	}
	return exitOK
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, rescale.ErrBadArgument):
		return exitUsage
	case errors.Is(err, rescale.ErrFileNotFound):
		return exitInputOpen
	case errors.Is(err, rescale.ErrFileUnwritable):
		return exitOutputOpen
	case errors.Is(err, rescale.ErrUnsupportedFormat), errors.Is(err, rescale.ErrTruncatedHeader):
		return exitUnsupported
	case errors.Is(err, rescale.ErrDimensionOverflow):
		return exitOverflow
	default:
		return exitIO
	}
}
