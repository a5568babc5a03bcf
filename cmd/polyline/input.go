package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"polyline-engine/internal/pathgen"
	"polyline-engine/internal/polyline"
)

// inputFlags selects where the polyline comes from: an asset file, or a generated path.
type inputFlags struct {
	asset  string
	gen    string
	points int
	seed   int64
}

func (in *inputFlags) register(set *flag.FlagSet) {
	set.StringVar(&in.asset, "asset", "", "polyline asset (YAML); defaults to "+polyline.DefaultAssetPath+" when present")
	set.StringVar(&in.gen, "gen", "", "generate the path instead: noise or spiral")
	set.IntVar(&in.points, "points", pathgen.DefaultOptions().Points, "number of generated points")
	set.Int64Var(&in.seed, "seed", 1, "noise seed for -gen noise (0 = time based)")
}

// load returns the asset, the path it was read from ("" when not from a file), and
// the file system materials are resolved against (the asset's directory).
func (in *inputFlags) load() (polyline.Asset, string, fs.FS, error) {
	path := in.asset
	if path == "" && in.gen == "" {
		if _, err := os.Stat(polyline.DefaultAssetPath); err == nil {
			path = polyline.DefaultAssetPath
		}
	}

	var (
		asset polyline.Asset
		err   error
	)
	switch {
	case path != "":
		asset, err = polyline.LoadAsset(path)
		if err != nil {
			return polyline.Asset{}, "", nil, err
		}
	default:
		asset = polyline.DefaultAsset()
	}

	switch in.gen {
	case "":
	case "spiral":
		asset.Points = polyline.PointsFrom(pathgen.Spiral(in.points, 4, 3, 6))
	case "noise":
		opts := pathgen.DefaultOptions()
		opts.Points = in.points
		opts.Seed = in.seed
		asset.Points = polyline.PointsFrom(pathgen.Generate(opts))
	default:
		return polyline.Asset{}, "", nil, fmt.Errorf("unknown -gen %q (want noise or spiral)", in.gen)
	}

	dir := filepath.Dir(polyline.DefaultAssetPath)
	if path != "" {
		dir = filepath.Dir(path)
	}
	return asset, path, os.DirFS(dir), nil
}
