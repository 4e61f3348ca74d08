package simplescript

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/LaputanMachines/simplescript/internal/builtins"
	"github.com/LaputanMachines/simplescript/internal/evaluator"
	"github.com/LaputanMachines/simplescript/internal/lexer"
	"github.com/LaputanMachines/simplescript/internal/parser"
	"github.com/LaputanMachines/simplescript/internal/runtime"
)

// TestMain lets go-snaps clean up any snapshot entries that no longer
// correspond to a fixture once the whole fixture suite has run.
func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

// TestFixtures runs every .ss file under fixtures/ through the full
// lex -> parse -> evaluate pipeline and snapshots whatever it printed.
func TestFixtures(t *testing.T) {
	matches, err := filepath.Glob("fixtures/*.ss")
	if err != nil {
		t.Fatalf("globbing fixtures: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("no .ss fixtures found")
	}

	for _, path := range matches {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			src, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading %s: %v", path, err)
			}

			var out bytes.Buffer

			toks, err := lexer.New(path, string(src)).Tokenize()
			if err != nil {
				t.Fatalf("lexing %s: %v", path, err)
			}
			program, err := parser.Parse(toks)
			if err != nil {
				t.Fatalf("parsing %s: %v", path, err)
			}

			env := runtime.NewEnvironment()
			builtins.Register(env)
			ctx := runtime.NewContext("<program>", env)
			ctx.Stdout = &out

			if _, rtErr := evaluator.Run(ctx, program); rtErr != nil {
				t.Fatalf("evaluating %s: %v", path, rtErr)
			}

			snaps.MatchSnapshot(t, out.String())
		})
	}
}
