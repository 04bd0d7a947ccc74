package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/resound/pkg/geom"
	"github.com/chazu/resound/pkg/medium"
	"github.com/chazu/resound/pkg/mesh"
	"github.com/chazu/resound/pkg/meshbuild"
	"github.com/chazu/resound/pkg/octree"
	"github.com/chazu/resound/pkg/wfobj"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix marks keyword arguments after preprocessing.
const kwPrefix = "__kw_"

// preprocessSource rewrites script source before it reaches zygomys:
//
//  1. :keyword becomes the string literal "__kw_keyword", so keyword
//     arguments need no global symbol registration.
//  2. kebab-case identifiers become underscore form (load-mesh ->
//     load_mesh); zygomys reads a bare hyphen as subtraction.
//  3. ; line comments become // comments.
//
// String literals are left untouched.
func preprocessSource(source string) string {
	out := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		switch {
		case b[i] == '"':
			// Copy the string literal verbatim, honoring escapes.
			out = append(out, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					out = append(out, b[i], b[i+1])
					i += 2
					continue
				}
				out = append(out, b[i])
				i++
			}
			if i < len(b) {
				out = append(out, b[i])
				i++
			}

		case b[i] == ';':
			out = append(out, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				out = append(out, b[i])
				i++
			}

		case b[i] == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			out = append(out, '"')
			out = append(out, kwPrefix...)
			for _, c := range b[i+1 : j] {
				if c == '-' {
					c = '_'
				}
				out = append(out, c)
			}
			out = append(out, '"')
			i = j

		case b[i] == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			out = append(out, '_')
			i++

		default:
			out = append(out, b[i])
			i++
		}
	}
	return string(out)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Argument helpers
// ---------------------------------------------------------------------------

// sexpVec3 carries a geom.Vec3 between builtins.
type sexpVec3 struct {
	vec geom.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", float64(v.vec.X), float64(v.vec.Y), float64(v.vec.Z))
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// kwArgs splits an argument list into keyword and positional parts.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		if str, ok := args[i].(*zygo.SexpStr); ok && strings.HasPrefix(str.S, kwPrefix) {
			name := str.S[len(kwPrefix):]
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
			continue
		}
		result.positional = append(result.positional, args[i])
		i++
	}
	return result
}

func toReal(s zygo.Sexp) (geom.Real, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return geom.Real(v.Val), nil
	case *zygo.SexpFloat:
		return geom.Real(v.Val), nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

func toVec3(s zygo.Sexp) (geom.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return geom.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the pre-processing DSL into a zygomys
// environment. The builtins mutate the provided session as the script
// runs. Source must be preprocessed first so :keywords arrive as
// recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, s *Session) {

	// (vec3 x y z)
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3: want 3 components, got %d", len(args))
		}
		var v geom.Vec3
		for i, a := range args {
			f, err := toReal(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %w", err)
			}
			v.SetAt(i, f)
		}
		return &sexpVec3{vec: v}, nil
	})

	// (load-mesh "room.obj")
	env.AddFunction("load_mesh", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("load-mesh: want a path")
		}
		path, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("load-mesh: %w", err)
		}
		if err := wfobj.ImportMesh(path, s.Mesh); err != nil {
			return zygo.SexpNull, fmt.Errorf("load-mesh: %w", err)
		}
		return &zygo.SexpInt{Val: int64(s.Mesh.FaceCount())}, nil
	})

	// (box-mesh x y z :cells 32)
	env.AddFunction("box_mesh", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 3 {
			return zygo.SexpNull, fmt.Errorf("box-mesh: want 3 dimensions, got %d", len(pa.positional))
		}
		var dims [3]geom.Real
		for i, a := range pa.positional {
			f, err := toReal(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("box-mesh: %w", err)
			}
			dims[i] = f
		}
		cells := 0
		if v, ok := pa.kw["cells"]; ok {
			f, err := toReal(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("box-mesh: cells: %w", err)
			}
			cells = int(f)
		}
		m, err := meshbuild.Box(dims[0], dims[1], dims[2], cells)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box-mesh: %w", err)
		}
		s.Mesh = m
		return &zygo.SexpInt{Val: int64(m.FaceCount())}, nil
	})

	// (set-attributes reflection transmission absorption)
	env.AddFunction("set_attributes", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("set-attributes: want 3 channels")
		}
		var ch [3]geom.Real
		for i, a := range args {
			f, err := toReal(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("set-attributes: %w", err)
			}
			ch[i] = f
		}
		s.Mesh.SetAllAttributes(mesh.Attribute{
			Reflection:   ch[0],
			Transmission: ch[1],
			Absorption:   ch[2],
		})
		return zygo.SexpNull, nil
	})

	// (decompose :grid (vec3 0.5 0.5 0.5) :min (vec3 0 0 0) :max (vec3 4 3 3))
	env.AddFunction("decompose", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		gridSexp, ok := pa.kw["grid"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("decompose: :grid is required")
		}
		grid, err := toVec3(gridSexp)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("decompose: grid: %w", err)
		}

		var def *medium.Medium
		minSexp, haveMin := pa.kw["min"]
		maxSexp, haveMax := pa.kw["max"]
		if haveMin != haveMax {
			return zygo.SexpNull, fmt.Errorf("decompose: :min and :max must be given together")
		}
		if haveMin {
			lo, err := toVec3(minSexp)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("decompose: min: %w", err)
			}
			hi, err := toVec3(maxSexp)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("decompose: max: %w", err)
			}
			def = medium.New()
			def.Boundary = geom.AABB{Min: lo, Max: hi}
		}

		if err := s.Medium.BuildFromMesh(def, s.Mesh, grid); err != nil {
			return zygo.SexpNull, fmt.Errorf("decompose: %w", err)
		}
		s.GridSize = grid
		return &zygo.SexpInt{Val: int64(len(s.Medium.Partitions))}, nil
	})

	// (partition-count)
	env.AddFunction("partition_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpInt{Val: int64(len(s.Medium.Partitions))}, nil
	})

	// (export-medium "partitions.obj")
	env.AddFunction("export_medium", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("export-medium: want a path")
		}
		path, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("export-medium: %w", err)
		}
		if err := wfobj.ExportMedium(path, s.Medium); err != nil {
			return zygo.SexpNull, fmt.Errorf("export-medium: %w", err)
		}
		return zygo.SexpNull, nil
	})

	// (export-mesh "mesh.obj")
	env.AddFunction("export_mesh", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("export-mesh: want a path")
		}
		path, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("export-mesh: %w", err)
		}
		if err := wfobj.ExportMesh(path, s.Mesh); err != nil {
			return zygo.SexpNull, fmt.Errorf("export-mesh: %w", err)
		}
		return zygo.SexpNull, nil
	})

	// (export-octree "octree.obj" :smallest (vec3 0.5 0.5 0.5))
	env.AddFunction("export_octree", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("export-octree: want a path")
		}
		path, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("export-octree: %w", err)
		}
		smallest := s.GridSize
		if v, ok := pa.kw["smallest"]; ok {
			smallest, err = toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("export-octree: smallest: %w", err)
			}
		}
		if smallest == (geom.Vec3{}) {
			return zygo.SexpNull, fmt.Errorf("export-octree: no :smallest given and no decomposition has run")
		}
		oct, err := octree.Build(s.Mesh, smallest)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("export-octree: %w", err)
		}
		if err := wfobj.ExportOctree(path, oct); err != nil {
			return zygo.SexpNull, fmt.Errorf("export-octree: %w", err)
		}
		return zygo.SexpNull, nil
	})
}
