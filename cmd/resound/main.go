// Command resound decomposes a triangular surface mesh into
// axis-aligned acoustic partitions and writes the result as OBJ
// wireframes a mesh viewer can open.
//
// Typical use:
//
//	resound -in room.obj -out partitions.obj -grid 0.5,0.5,0.5
//	resound -config room.toml
//	resound -script scene.zy
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/chazu/resound/pkg/engine"
	"github.com/chazu/resound/pkg/geom"
	"github.com/chazu/resound/pkg/logging"
	"github.com/chazu/resound/pkg/medium"
	"github.com/chazu/resound/pkg/mesh"
	"github.com/chazu/resound/pkg/octree"
	"github.com/chazu/resound/pkg/wfobj"
)

// config mirrors the TOML configuration file. Flags override any value
// set here.
type config struct {
	Input        string     `toml:"input"`
	Output       string     `toml:"output"`
	OctreeOutput string     `toml:"octree_output"`
	Grid         [3]float64 `toml:"grid"`
	Boundary     *struct {
		Min [3]float64 `toml:"min"`
		Max [3]float64 `toml:"max"`
	} `toml:"boundary"`
	Verbose bool `toml:"verbose"`
}

func main() {
	var (
		configPath = flag.String("config", "", "TOML configuration file")
		inPath     = flag.String("in", "", "input OBJ mesh")
		outPath    = flag.String("out", "", "output OBJ for the medium wireframe")
		octreePath = flag.String("octree", "", "optional output OBJ for the octree wireframe")
		gridFlag   = flag.String("grid", "", "grid cell size as x,y,z")
		scriptPath = flag.String("script", "", "run a script instead of the fixed pipeline")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	var cfg config
	if *configPath != "" {
		if err := loadConfig(*configPath, &cfg); err != nil {
			fatal(err)
		}
	}
	if *inPath != "" {
		cfg.Input = *inPath
	}
	if *outPath != "" {
		cfg.Output = *outPath
	}
	if *octreePath != "" {
		cfg.OctreeOutput = *octreePath
	}
	if *gridFlag != "" {
		grid, err := parseGrid(*gridFlag)
		if err != nil {
			fatal(err)
		}
		cfg.Grid = grid
	}
	if *verbose {
		cfg.Verbose = true
	}
	logging.SetDebug(cfg.Verbose)

	if *scriptPath != "" {
		runScript(*scriptPath)
		return
	}
	runPipeline(cfg)
}

func loadConfig(path string, cfg *config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func parseGrid(s string) ([3]float64, error) {
	var grid [3]float64
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return grid, fmt.Errorf("grid %q: want x,y,z", s)
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return grid, fmt.Errorf("grid %q: %w", s, err)
		}
		grid[i] = v
	}
	return grid, nil
}

func runScript(path string) {
	e := engine.NewEngine()
	_, evalErrs, err := e.EvaluateFile(path)
	if err != nil {
		fatal(err)
	}
	for _, ee := range evalErrs {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, ee.Error())
	}
	if len(evalErrs) > 0 {
		os.Exit(1)
	}
}

func runPipeline(cfg config) {
	if cfg.Input == "" || cfg.Output == "" {
		fatal(fmt.Errorf("need -in and -out (or a config file providing them)"))
	}
	if cfg.Grid == [3]float64{} {
		fatal(fmt.Errorf("need -grid (or a config file providing it)"))
	}
	grid := geom.V(geom.Real(cfg.Grid[0]), geom.Real(cfg.Grid[1]), geom.Real(cfg.Grid[2]))

	m := mesh.New()
	if err := wfobj.ImportMesh(cfg.Input, m); err != nil {
		fatal(err)
	}

	var def *medium.Medium
	if cfg.Boundary != nil {
		def = medium.New()
		def.Boundary = geom.NewAABB(
			geom.Real(cfg.Boundary.Min[0]), geom.Real(cfg.Boundary.Min[1]), geom.Real(cfg.Boundary.Min[2]),
			geom.Real(cfg.Boundary.Max[0]), geom.Real(cfg.Boundary.Max[1]), geom.Real(cfg.Boundary.Max[2]),
		)
	}

	med := medium.New()
	if err := med.BuildFromMesh(def, m, grid); err != nil {
		fatal(err)
	}
	if err := wfobj.ExportMedium(cfg.Output, med); err != nil {
		fatal(err)
	}
	logging.Infof("wrote %d partitions to %s", len(med.Partitions), cfg.Output)

	if cfg.OctreeOutput != "" {
		oct, err := octree.Build(m, grid)
		if err != nil {
			fatal(err)
		}
		if err := wfobj.ExportOctree(cfg.OctreeOutput, oct); err != nil {
			fatal(err)
		}
		logging.Infof("wrote octree wireframe to %s", cfg.OctreeOutput)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "resound:", err)
	os.Exit(1)
}
