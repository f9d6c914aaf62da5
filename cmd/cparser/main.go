// Command cparser is the CLI driver spec §6 describes: it wires the
// core (lexer, parser, semantic analyzer) to an input file, an
// optional external preprocessor, and the dump/exit-code policy,
// mirroring the urfave/cli/v3 wiring cmd/hey/main.go and the flag-to-
// Options shape cmd/php-parser/main.go use in the teacher.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/azw413/cparser/diag"
	"github.com/azw413/cparser/driver"
)

func main() {
	app := &cli.Command{
		Name:      "cparser",
		Usage:     "parse a preprocessed C translation unit into an annotated AST",
		ArgsUsage: "<input>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output path for -c/-S modes",
			},
			&cli.BoolFlag{
				Name:  "c",
				Usage: "compile to an object file (IR/codegen are out-of-scope collaborators)",
			},
			&cli.BoolFlag{
				Name:  "S",
				Usage: "compile to assembly (IR/codegen are out-of-scope collaborators)",
			},
			&cli.BoolFlag{
				Name:  "lextest",
				Usage: "print the token stream and stop",
			},
			&cli.BoolFlag{
				Name:  "print-ast",
				Usage: "print the parsed AST",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "accepted; does not change the output",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "make a missing type specifier an error instead of an implicit-int warning",
			},
			&cli.StringFlag{
				Name:  "pp",
				Usage: "external preprocessor binary (invoked as <pp> <input> -o <tmp>)",
			},
			&cli.StringSliceFlag{
				Name:  "W",
				Usage: "enable/disable a warning flag, e.g. -W sign-compare or -W no-sign-compare",
			},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "cparser: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	input := cmd.Args().First()
	if input == "" {
		input = "-"
	}

	ws := diag.NewWarningSet()
	for _, flag := range cmd.StringSlice("W") {
		flag = strings.TrimSpace(flag)
		if flag == "" {
			continue
		}
		if err := ws.Parse(flag); err != nil {
			return err
		}
	}

	mode := driver.ModeNone
	switch {
	case cmd.Bool("c"):
		mode = driver.ModeCompile
	case cmd.Bool("S"):
		mode = driver.ModeAssemble
	}

	opts := driver.Options{
		Input:        input,
		Output:       cmd.String("output"),
		Preprocessor: cmd.String("pp"),
		Mode:         mode,
		LexTest:      cmd.Bool("lextest"),
		PrintAST:     cmd.Bool("print-ast"),
		Verbose:      cmd.Bool("verbose"),
		Strict:       cmd.Bool("strict"),
		Warnings:     ws,
	}

	code, _ := driver.Run(opts, os.Stdout, os.Stderr)
	if code != 0 {
		os.Exit(code)
	}
	return nil
}
