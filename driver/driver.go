// Package driver wires the lexer and parser into the external
// interface spec §6 describes: invoking the preprocessor as an opaque
// subprocess, running the core over the result, and applying the
// dump/exit-code policy a surrounding CLI needs. It is the only layer
// between cmd/cparser and the parsing core.
package driver

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/azw413/cparser/ast"
	"github.com/azw413/cparser/diag"
	"github.com/azw413/cparser/lexer"
	"github.com/azw413/cparser/parser"
	"github.com/azw413/cparser/symbol"
	"github.com/azw413/cparser/token"
	"github.com/azw413/cparser/types"
)

// Mode selects what a (stubbed, out-of-scope) backend would do with
// the annotated AST once the core finishes (spec §1 Non-goals: IR
// construction and codegen are external collaborators this module
// never invokes itself).
type Mode int

const (
	ModeNone Mode = iota
	ModeCompile
	ModeAssemble
)

// Options configures one driver run, populated directly from CLI
// flags the way the teacher's cmd/php-parser/main.go Config struct is
// (spec §3 "Configuration").
type Options struct {
	Input        string // path, or "-" for stdin
	Output       string
	Preprocessor string // external <pp> binary; empty skips preprocessing
	Mode         Mode
	LexTest      bool
	PrintAST     bool
	Verbose      bool
	Strict       bool
	Warnings     *diag.WarningSet
}

// Result carries what a driver run produced, for a CLI layer to print
// and translate into an exit code.
type Result struct {
	Diagnostics []diag.Diagnostic
	ErrorCount  int
	Unit        *ast.TranslationUnit
}

// Run executes one translation: preprocess (if configured), lex,
// parse, and apply the dump flags, returning the exit code spec §6
// specifies ("Exit 0 on success, 1 on input, tool, or diagnostic
// failure").
func Run(opts Options, stdout, stderr io.Writer) (int, *Result) {
	src, display, err := readInput(opts)
	if err != nil {
		fmt.Fprintf(stderr, "cparser: %v\n", err)
		return 1, nil
	}

	table := symbol.NewTable()
	ws := opts.Warnings
	if ws == nil {
		ws = diag.NewWarningSet()
	}
	sink := diag.NewSink(ws)
	lx := lexer.Open(src, display, table)

	if opts.LexTest {
		dumpTokens(stdout, lx)
		return 0, &Result{Diagnostics: sink.Diagnostics()}
	}

	arena := types.NewArena()
	p := parser.New(lx, table, arena, sink, opts.Strict)
	unit := p.Parse()

	if opts.PrintAST {
		dumpAST(stdout, unit)
	}

	for _, d := range sink.Diagnostics() {
		fmt.Fprintln(stderr, d.String())
	}

	res := &Result{Diagnostics: sink.Diagnostics(), ErrorCount: sink.ErrorCount(), Unit: unit}
	if sink.HasErrors() || sink.Fatal() {
		return 1, res
	}
	if opts.Mode != ModeNone && opts.Output != "" {
		// IR construction and code generation are out of scope (spec §1);
		// a real backend would consume res.Unit here.
		if err := os.WriteFile(opts.Output, nil, 0o644); err != nil {
			fmt.Fprintf(stderr, "cparser: %v\n", err)
			return 1, res
		}
	}
	return 0, res
}

// readInput resolves opts.Input to preprocessed source text, running
// the external preprocessor as `<pp> <input> -o <tmp>` per spec §6 if
// one is configured.
func readInput(opts Options) (src string, display string, err error) {
	if opts.Preprocessor == "" {
		return readRaw(opts.Input)
	}

	tmp, err := os.CreateTemp("", "cparser-pp-*.i")
	if err != nil {
		return "", "", fmt.Errorf("creating preprocessor output file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	cmd := exec.Command(opts.Preprocessor, opts.Input, "-o", tmpPath)
	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf
	if runErr := cmd.Run(); runErr != nil {
		return "", "", fmt.Errorf("preprocessor %s: %w: %s", opts.Preprocessor, runErr, stderrBuf.String())
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", "", fmt.Errorf("reading preprocessor output: %w", err)
	}
	return string(data), opts.Input, nil
}

func readRaw(input string) (string, string, error) {
	if input == "" || input == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", input, err)
	}
	return string(data), input, nil
}

// dumpTokens prints the token stream `--lextest` requests, one token
// per line, stopping after EOF.
func dumpTokens(w io.Writer, lx *lexer.Lexer) {
	for {
		t := lx.Next()
		fmt.Fprintln(w, t.String())
		if t.Kind == token.EOF {
			return
		}
	}
}

// dumpAST prints the parsed tree `--print-ast` requests, indented one
// level per depth, mirroring the teacher's outputAST/String()-based
// tree dump rather than a raw JSON blob (reserved for a future
// machine-readable mode).
func dumpAST(w io.Writer, unit *ast.TranslationUnit) {
	v := &treePrinter{w: w}
	ast.Walk(v, unit)
}

type treePrinter struct {
	w     io.Writer
	depth int
}

func (v *treePrinter) Visit(n ast.Node) bool {
	for i := 0; i < v.depth; i++ {
		fmt.Fprint(v.w, "  ")
	}
	fmt.Fprintf(v.w, "%s %s\n", n.GetKind(), n.String())
	v.depth++
	for _, c := range n.GetChildren() {
		ast.Walk(v, c)
	}
	v.depth--
	return false
}
