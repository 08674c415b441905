// Package driver wires the lexer, parser+codegen, and VM together: read
// source, compile to an instruction buffer, optionally write a token
// listing and the canonical object-code text, then optionally run it. Each
// phase is a small named step, chained by the top-level entry points —
// modeled on the teacher's CompileAndWrite pipeline.
package driver

import (
	"fmt"
	"io"
	"os"

	"github.com/lalg-lang/lalg/internal/compiler/codegen"
	"github.com/lalg-lang/lalg/internal/compiler/lexer"
	"github.com/lalg-lang/lalg/internal/compiler/parser"
	"github.com/lalg-lang/lalg/internal/compiler/token"
	"github.com/lalg-lang/lalg/internal/vm"
)

// CompileAndRun reads srcPath, compiles it, and executes the result
// immediately using stdin/stdout. It is the default CLI action.
func CompileAndRun(srcPath string) error {
	buf, err := Compile(srcPath)
	if err != nil {
		return err
	}
	return Execute(buf, os.Stdin, os.Stdout)
}

// Build compiles srcPath and writes the canonical object-code text to
// outPath. If tokensPath is non-empty, it also writes the token listing.
func Build(srcPath, outPath, tokensPath string) error {
	src, err := readSource(srcPath)
	if err != nil {
		return err
	}

	if tokensPath != "" {
		if err := writeTokenListing(src, tokensPath); err != nil {
			return err
		}
	}

	buf, err := compileSource(src)
	if err != nil {
		return err
	}

	return writeObject(buf, outPath)
}

// Run loads a previously compiled object file from objPath and executes it
// using stdin/stdout.
func Run(objPath string) error {
	buf, err := loadObject(objPath)
	if err != nil {
		return err
	}
	return Execute(buf, os.Stdin, os.Stdout)
}

// Compile reads and compiles srcPath into an instruction buffer, without
// writing anything to disk.
func Compile(srcPath string) (*codegen.Buffer, error) {
	src, err := readSource(srcPath)
	if err != nil {
		return nil, err
	}
	return compileSource(src)
}

// Execute runs buf to completion against the given I/O streams.
func Execute(buf *codegen.Buffer, in io.Reader, out io.Writer) error {
	m := vm.New(buf, in, out)
	if err := m.Run(); err != nil {
		return fmt.Errorf("runtime error: %w", err)
	}
	return nil
}

func readSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading source: %w", err)
	}
	return string(b), nil
}

// compileSource lexes and parses src. Only a semantic error (p.Fatal) is
// fatal to compilation, per spec.md §7's taxonomy — a lexical or syntax
// error is recoverable, and the parser itself keeps emitting a complete,
// validly-backpatched instruction stream (including the trailing PARA)
// around it. compileSource reports those non-fatal diagnostics to stderr
// and still returns the buffer, so the caller can write the "degraded"
// object file the spec expects to almost certainly fault at runtime.
func compileSource(src string) (*codegen.Buffer, error) {
	lex := lexer.New(src)
	p := parser.New(lex)
	p.Parse()

	for _, e := range lex.Errors() {
		fmt.Fprintf(os.Stderr, "lexical error: %v\n", e)
	}
	for _, e := range p.SyntaxErrors() {
		fmt.Fprintln(os.Stderr, e)
	}

	if fatal := p.Fatal(); fatal != nil {
		return nil, fatal
	}
	return p.Buf, nil
}

func writeObject(buf *codegen.Buffer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing object code: %w", err)
	}
	defer f.Close()
	return buf.WriteText(f)
}

func loadObject(path string) (*codegen.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading object code: %w", err)
	}
	defer f.Close()
	return codegen.ReadText(f)
}

// writeTokenListing re-lexes src independently of the parse (the token
// listing is a diagnostic artifact, not load-bearing for compilation) and
// writes one `[Category, Value]` line per token.
func writeTokenListing(src, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing token listing: %w", err)
	}
	defer f.Close()

	lex := lexer.New(src)
	for {
		tok, ok := lex.Next()
		if !ok {
			break
		}
		if _, err := fmt.Fprintf(f, "[%s, %s]\n", tok.Category(), tokenValue(tok)); err != nil {
			return err
		}
	}
	return nil
}

func tokenValue(tok token.Token) string {
	switch tok.Kind {
	case token.NUM_INT, token.NUM_REAL:
		return tok.Lexeme
	default:
		return tok.Lexeme
	}
}
