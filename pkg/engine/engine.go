// Package engine embeds a sandboxed lisp interpreter (zygomys) that
// drives the pre-processor from user scripts: load or generate a mesh,
// assign acoustic attributes, decompose, export. Each evaluation runs
// in a fresh sandbox for determinism.
package engine

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/resound/pkg/geom"
	"github.com/chazu/resound/pkg/medium"
	"github.com/chazu/resound/pkg/mesh"
)

// EvalError is a non-fatal error encountered during evaluation, such
// as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Session holds the objects a script operates on. Builtins populate it
// as the script runs.
type Session struct {
	Mesh     *mesh.Mesh
	Medium   *medium.Medium
	GridSize geom.Vec3
}

func newSession() *Session {
	return &Session{
		Mesh:   mesh.New(),
		Medium: medium.New(),
	}
}

// Engine wraps the zygomys interpreter. It is safe for concurrent use;
// every Evaluate call gets its own sandbox.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate runs a script and returns the session it produced.
//
// Return semantics:
//   - success: session + nil errors + nil error
//   - parse/eval failure: nil session + eval errors + nil error
//   - fatal failure (timeout, panic): nil + nil + error
func (e *Engine) Evaluate(source string) (*Session, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()
		s, evalErrs := e.evaluate(source)
		ch <- evalResult{session: s, errors: evalErrs}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// EvaluateFile runs the script at path.
func (e *Engine) EvaluateFile(path string) (*Session, []EvalError, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return e.Evaluate(string(src))
}

func (e *Engine) evaluate(source string) (*Session, []EvalError) {
	session := newSession()
	if strings.TrimSpace(source) == "" {
		return session, nil
	}

	// Sandbox mode keeps user code away from the filesystem and
	// syscalls; the registered builtins are the only doors out.
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, session)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygoError(err)
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygoError(err)
	}
	return session, nil
}

// linePattern matches zygomys messages of the form "on line N: ...".
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches plain "line N: ..." messages.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygoError converts a zygomys error into EvalError values,
// extracting the line number when the message carries one.
func parseZygoError(err error) []EvalError {
	msg := err.Error()
	for _, pat := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := pat.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
