package wfobj

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chazu/resound/pkg/logging"
	"github.com/chazu/resound/pkg/mesh"
	"github.com/chazu/resound/pkg/status"
)

// ignoredRecords are OBJ record kinds the importer skips silently.
var ignoredRecords = map[string]bool{
	"vn": true, "vt": true, "vp": true,
	"o": true, "g": true, "s": true,
	"usemtl": true, "mtllib": true,
	"l": true, "p": true,
}

// parseWarning is a recoverable problem encountered while parsing:
// the record is skipped and parsing continues.
type parseWarning struct {
	Line int
	Msg  string
}

// ImportMesh reads an OBJ file into the mesh. Vertex records become
// the vertex buffer; face records are fan-triangulated into the index
// buffer, converted from OBJ's 1-based indexing. Unknown record kinds
// are reported and skipped; malformed numeric fields are fatal.
func ImportMesh(path string, m *mesh.Mesh) error {
	f, err := os.Open(path)
	if err != nil {
		return status.Wrap(status.FopenFailed, err)
	}
	defer f.Close()

	warnings, err := parseOBJ(f, m)
	for _, w := range warnings {
		logging.Warnf("%s:%d: %s", path, w.Line, w.Msg)
	}
	if err != nil {
		return err
	}
	logging.Infof("imported %d vertices, %d faces from %s", m.VertexCount(), m.FaceCount(), path)
	return nil
}

// parseOBJ reads OBJ records from r and fills the mesh with owned
// copies of the parsed buffers.
func parseOBJ(r io.Reader, m *mesh.Mesh) ([]parseWarning, error) {
	var (
		verts    []float64
		indices  []uint32
		warnings []parseWarning
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return warnings, status.Errorf(status.Parse, "line %d: vertex record needs 3 coordinates", lineNo)
			}
			for _, fstr := range fields[1:4] {
				val, err := strconv.ParseFloat(fstr, 64)
				if err != nil {
					return warnings, status.Errorf(status.Parse, "line %d: bad coordinate %q", lineNo, fstr)
				}
				verts = append(verts, val)
			}

		case "f":
			if len(fields) < 4 {
				return warnings, status.Errorf(status.Parse, "line %d: face record needs at least 3 indices", lineNo)
			}
			face := make([]uint32, 0, len(fields)-1)
			for _, fstr := range fields[1:] {
				// A face element may carry texture/normal references
				// (v/vt/vn); only the vertex index matters here.
				head, _, _ := strings.Cut(fstr, "/")
				idx, err := strconv.Atoi(head)
				if err != nil {
					return warnings, status.Errorf(status.Parse, "line %d: bad index %q", lineNo, fstr)
				}
				if idx < 1 {
					return warnings, status.Errorf(status.Parse, "line %d: index %d out of range (obj indices start at 1)", lineNo, idx)
				}
				face = append(face, uint32(idx-1))
			}
			// Fan-triangulate polygons with more than 3 corners.
			for i := 2; i < len(face); i++ {
				indices = append(indices, face[0], face[i-1], face[i])
			}

		default:
			if !ignoredRecords[fields[0]] {
				warnings = append(warnings, parseWarning{
					Line: lineNo,
					Msg:  "unknown record kind " + strconv.Quote(fields[0]),
				})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return warnings, status.Wrap(status.ReadFailed, err)
	}

	vertexCount := len(verts) / 3
	if err := m.CopyFromBuffers(verts, indices, vertexCount, len(indices), mesh.VertexF64, mesh.IndexU32); err != nil {
		return warnings, status.Wrap(status.Parse, err)
	}
	return warnings, nil
}
