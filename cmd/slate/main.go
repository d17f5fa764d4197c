package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/slate-lang/slate/internal/backend"
	"github.com/slate-lang/slate/internal/config"
	"github.com/slate-lang/slate/internal/diagnostics"
	"github.com/slate-lang/slate/internal/pipeline"
	"github.com/slate-lang/slate/internal/ref"
	"github.com/slate-lang/slate/internal/translator"
)

type options struct {
	file    string
	format  string
	outPath string
	dbPath  string
	check   bool
	mainRef string
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: slate [flags] file%s

Elaborates a slate source file into a fully resolved, flattened object
store and prints it.

Flags:
  -format FMT   output format: text (default), json, yaml
  -o FILE       write output to FILE instead of stdout
  -db FILE      additionally export the store to a sqlite database
  -check        elaborate only; print nothing on success
  -main REF     root object to resolve (default %q)
`, config.SourceFileExt, config.MainRef)
}

func parseArgs(args []string) (*options, error) {
	opts := &options{format: "text", mainRef: config.MainRef}
	i := 0
	for i < len(args) {
		arg := args[i]
		switch arg {
		case "-format", "--format":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("%s requires a value", arg)
			}
			opts.format = args[i]
		case "-o", "--output":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("%s requires a value", arg)
			}
			opts.outPath = args[i]
		case "-db", "--db":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("%s requires a value", arg)
			}
			opts.dbPath = args[i]
		case "-check", "--check":
			opts.check = true
		case "-main", "--main":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("%s requires a value", arg)
			}
			opts.mainRef = args[i]
		case "-h", "-help", "--help":
			usage()
			os.Exit(0)
		default:
			if strings.HasPrefix(arg, "-") {
				return nil, fmt.Errorf("unknown flag %s", arg)
			}
			if opts.file != "" {
				return nil, fmt.Errorf("multiple input files: %s and %s", opts.file, arg)
			}
			opts.file = arg
		}
		i++
	}
	if opts.file == "" {
		return nil, fmt.Errorf("no input file")
	}
	switch opts.format {
	case "text", "json", "yaml":
	default:
		return nil, fmt.Errorf("unknown format %q", opts.format)
	}
	return opts, nil
}

func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func reportError(err error) {
	msg := err.Error()
	if isatty.IsTerminal(os.Stderr.Fd()) {
		code := diagnostics.CodeOf(err)
		if code >= 0 {
			fmt.Fprintf(os.Stderr, "\x1b[31mslate: %s\x1b[0m\n", msg)
			return
		}
	}
	fmt.Fprintf(os.Stderr, "slate: %s\n", msg)
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "slate: %s\n", err)
		usage()
		os.Exit(2)
	}

	if !isSourceFile(opts.file) {
		fmt.Fprintf(os.Stderr, "slate: %s: not a slate source file\n", opts.file)
		os.Exit(2)
	}
	source, err := os.ReadFile(opts.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "slate: %s\n", err)
		os.Exit(1)
	}

	tr := translator.New()
	tr.Main = ref.Parse(opts.mainRef)

	ctx := pipeline.Default(tr).Run(&pipeline.Context{
		File:   opts.file,
		Source: string(source),
	})
	if ctx.Err != nil {
		reportError(ctx.Err)
		os.Exit(1)
	}

	res := &translator.Result{Store: ctx.Store, Env: ctx.Env, Global: ctx.Global}

	if opts.dbPath != "" {
		db := &backend.SQLiteBackend{Path: opts.dbPath}
		if err := db.Export(res); err != nil {
			reportError(err)
			os.Exit(1)
		}
	}

	if opts.check {
		return
	}

	out := os.Stdout
	if opts.outPath != "" {
		f, err := os.Create(opts.outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "slate: %s\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	w := &backend.WriterBackend{Out: out, Format: opts.format}
	if err := w.Export(res); err != nil {
		reportError(err)
		os.Exit(1)
	}
}
