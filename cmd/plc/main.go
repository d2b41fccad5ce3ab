// Command plc is the compiler's driver: reads a source file, runs it
// through the lexer/parser/emitter pipeline, and writes LLVM textual IR.
package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/alecthomas/repr"
	"github.com/llir/llvm/asm"
	"github.com/urfave/cli/v2"

	"github.com/dkerns/plc/diag"
	"github.com/dkerns/plc/emit"
	"github.com/dkerns/plc/lexer"
	"github.com/dkerns/plc/parser"
	"github.com/dkerns/plc/symtab"
)

const welcomeBanner = "plc — single-pass front end"

func main() {
	var (
		inputPath  string
		outputPath string
		logPath    string
		verbosity  int
		noWelcome  bool
		verify     bool
	)

	app := &cli.App{
		Name:  "plc",
		Usage: "Compiles a single source file to LLVM textual IR.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Required:    true,
				Usage:       "Path to the source file to compile.",
				Destination: &inputPath,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Path to write emitted IR to (default stdout).",
				Destination: &outputPath,
			},
			&cli.StringFlag{
				Name:        "log",
				Aliases:     []string{"l"},
				Usage:       "Path to write diagnostics to (default stderr).",
				Destination: &logPath,
			},
			&cli.IntFlag{
				Name:        "verbosity",
				Aliases:     []string{"v"},
				Value:       2,
				Usage:       "Diagnostic verbosity: 0=debug 1=info 2=warn 3=error.",
				Destination: &verbosity,
			},
			&cli.BoolFlag{
				Name:        "no-welcome",
				Aliases:     []string{"w"},
				Usage:       "Suppress the welcome banner.",
				Destination: &noWelcome,
			},
			&cli.BoolFlag{
				Name:        "verify",
				Usage:       "Parse the emitted IR back with llir/llvm to catch malformed output.",
				Destination: &verify,
			},
		},
		Action: func(c *cli.Context) error {
			return compile(inputPath, outputPath, logPath, verbosity, noWelcome, verify)
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func compile(inputPath, outputPath, logPath string, verbosity int, noWelcome bool, verify bool) error {
	logWriter := os.Stderr
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logWriter = f
	}

	diags := diag.New(logWriter, diag.SeverityFromVerbosity(verbosity))

	if !noWelcome {
		fmt.Fprintln(os.Stderr, welcomeBanner)
	}

	src, err := ioutil.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputPath, err)
	}

	env := symtab.New()
	em := emit.New(diags)
	lex := lexer.New(src, env, diags)
	p := parser.New(lex, env, em, diags)

	ok := p.Parse()
	output := em.Output()

	if diags.Line() > 0 {
		diags.Debugf("finished parsing %s (%d lines)", inputPath, diags.Line())
	}
	if verbosity == 0 {
		repr.Println(struct {
			Input     string
			Succeeded bool
			Lines     int
		}{inputPath, ok, diags.Line()})
	}

	if verify {
		if _, verr := asm.ParseString(inputPath+".ll", output); verr != nil {
			diags.Errorf("--verify: emitted IR failed to parse back: %s", verr.Error())
		}
	}

	if outputPath == "" {
		fmt.Print(output)
	} else {
		if err := ioutil.WriteFile(outputPath, []byte(output), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputPath, err)
		}
	}

	if diags.HadError() {
		os.Exit(1)
	}
	return nil
}
