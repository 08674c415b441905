package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempSource(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "codigo.txt")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("writing temp source: %v", err)
	}
	return path
}

func TestBuildThenRunRoundTrips(t *testing.T) {
	srcPath := writeTempSource(t, `program t var a: integer; begin a := 10; write(a) end.`)
	dir := filepath.Dir(srcPath)
	objPath := filepath.Join(dir, "codigo.obj")
	tokensPath := filepath.Join(dir, "tokens.txt")

	if err := Build(srcPath, objPath, tokensPath); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	objBytes, err := os.ReadFile(objPath)
	if err != nil {
		t.Fatalf("reading object file: %v", err)
	}
	if !strings.Contains(string(objBytes), "INPP") || !strings.Contains(string(objBytes), "PARA") {
		t.Fatalf("object file missing expected instructions: %s", objBytes)
	}

	tokenBytes, err := os.ReadFile(tokensPath)
	if err != nil {
		t.Fatalf("reading token listing: %v", err)
	}
	if !strings.Contains(string(tokenBytes), "Palavras Reservadas") {
		t.Fatalf("token listing missing reserved-word category: %s", tokenBytes)
	}
}

func TestCompileAndRunRejectsSemanticError(t *testing.T) {
	srcPath := writeTempSource(t, `program t var a: integer; begin b := 1 end.`)
	if err := CompileAndRun(srcPath); err == nil {
		t.Fatalf("expected compilation to fail for undeclared 'b'")
	}
}

// A syntax error is recoverable per spec.md §7: it must not block object
// code emission, even though the resulting program will likely fault.
func TestBuildStillWritesObjectCodeOnSyntaxError(t *testing.T) {
	srcPath := writeTempSource(t, `program t var a: integer; begin a := end.`)
	dir := filepath.Dir(srcPath)
	objPath := filepath.Join(dir, "codigo.obj")

	if err := Build(srcPath, objPath, ""); err != nil {
		t.Fatalf("Build should not fail on a syntax error: %v", err)
	}

	objBytes, err := os.ReadFile(objPath)
	if err != nil {
		t.Fatalf("reading object file: %v", err)
	}
	if !strings.Contains(string(objBytes), "INPP") || !strings.Contains(string(objBytes), "PARA") {
		t.Fatalf("expected a degraded but complete object file, got: %s", objBytes)
	}
}
