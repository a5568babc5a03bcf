package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"polyline-engine/internal/commands"
	"polyline-engine/internal/objexport"
	"polyline-engine/internal/polyline"
	"polyline-engine/internal/ribbon"
)

func registerExport(reg *commands.Registry) {
	set := flag.NewFlagSet("export", flag.ContinueOnError)
	var in inputFlags
	in.register(set)
	out := set.String("out", "ribbon.obj", "output Wavefront OBJ file")
	reg.Register("export", "build the ribbon and write it as OBJ", set, func() error {
		m, err := buildHeadless(&in)
		if err != nil {
			return err
		}
		if err := objexport.WriteFile(*out, m); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d vertices, %d triangles)\n", *out, m.VertexCount(), m.TriangleCount())
		return nil
	})
}

func registerStats(reg *commands.Registry) {
	set := flag.NewFlagSet("stats", flag.ContinueOnError)
	var in inputFlags
	in.register(set)
	reg.Register("stats", "print ribbon vertex/triangle counts and bounds", set, func() error {
		m, err := buildHeadless(&in)
		if err != nil {
			return err
		}
		fmt.Printf("vertices:  %d\n", m.VertexCount())
		fmt.Printf("triangles: %d\n", m.TriangleCount())
		if m.IsEmpty() {
			fmt.Println("bounds:    (empty)")
			return nil
		}
		b := m.Bounds()
		fmt.Printf("bounds:    min (%.3f, %.3f, %.3f) max (%.3f, %.3f, %.3f)\n",
			b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
		return nil
	})
}

// buildHeadless builds the ribbon without a window, the same way the viewer's actor does.
func buildHeadless(in *inputFlags) (ribbon.Mesh, error) {
	asset, _, materials, err := in.load()
	if err != nil {
		return ribbon.Mesh{}, err
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	sink := polyline.NewMemorySink()
	actor := polyline.NewActor(asset, sink, materials, log)
	if err := actor.PostLoad(); err != nil {
		return ribbon.Mesh{}, err
	}
	return sink.Sections[0], nil
}
