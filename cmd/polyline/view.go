package main

import (
	"flag"
	"fmt"
	"log/slog"
	"time"

	"cogentcore.org/core/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"polyline-engine/internal/assetwatch"
	"polyline-engine/internal/commands"
	"polyline-engine/internal/debug"
	"polyline-engine/internal/engineconfig"
	"polyline-engine/internal/graphics"
	"polyline-engine/internal/logger"
	"polyline-engine/internal/polyline"
	"polyline-engine/internal/scene"
)

const thicknessStep = 0.05

func registerView(reg *commands.Registry) {
	set := flag.NewFlagSet("view", flag.ContinueOnError)
	var in inputFlags
	in.register(set)
	prefsPath := set.String("prefs", engineconfig.EngineConfigPath, "viewer preferences (JSON)")
	reg.Register("view", "open a window and render the ribbon", set, func() error {
		return runView(&in, *prefsPath)
	})
}

func runView(in *inputFlags, prefsPath string) error {
	prefs, err := engineconfig.Load(prefsPath)
	if err != nil {
		return err
	}
	logs := logger.New(logger.LogFilePath, slog.LevelInfo)
	log := logs.Slog()

	asset, assetPath, materials, err := in.load()
	if err != nil {
		return err
	}

	shaders := graphics.NewShaderCache(log)
	sink := graphics.NewMeshSink(shaders)
	actor := polyline.NewActor(asset, sink, materials, log)

	scn := scene.New()
	scn.SetGridVisible(prefs.GridVisible)
	if _, err := scn.Add(actor, sink, math32.Vector3{}); err != nil {
		return fmt.Errorf("place polyline: %w", err)
	}

	var watcher *assetwatch.Watcher
	if prefs.WatchAsset && assetPath != "" {
		watcher, err = assetwatch.New(assetPath, time.Duration(prefs.DebounceMS)*time.Millisecond, log)
		if err != nil {
			log.Warn("asset watch disabled", "path", assetPath, "err", err)
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	dbg := debug.New()
	dbg.SetShowFPS(prefs.ShowFPS)
	dbg.SetShowStats(prefs.ShowStats)
	dbg.Stats = scn.Stats

	update := func(dt float32) {
		scn.Update(dt)
		handleKeys(actor, scn, dbg, log)
		if watcher == nil {
			return
		}
		select {
		case path := <-watcher.Changes():
			next, err := polyline.LoadAsset(path)
			if err != nil {
				log.Error("reload asset", "path", path, "err", err)
				return
			}
			if err := actor.ApplyAsset(next); err != nil {
				log.Error("apply asset", "path", path, "err", err)
				return
			}
			log.Info("asset reloaded", "path", path, "points", len(next.Points))
			dbg.Invalidate()
		default:
		}
	}
	draw := func() {
		scn.Draw()
		dbg.Draw()
	}
	unload := func() {
		scn.Unload()
		shaders.Unload()
	}

	graphics.Run(graphics.WindowOptions{
		Title:      "polyline",
		Width:      prefs.WindowWidth,
		Height:     prefs.WindowHeight,
		Fullscreen: prefs.Fullscreen,
		TargetFPS:  prefs.TargetFPS,
	}, update, draw, unload)
	return nil
}

// handleKeys: +/- adjust thickness, G toggles the grid, F the FPS counter, S the stats overlay.
func handleKeys(actor *polyline.Actor, scn *scene.Scene, dbg *debug.Debug, log *slog.Logger) {
	switch {
	case rl.IsKeyPressed(rl.KeyEqual), rl.IsKeyPressed(rl.KeyKpAdd):
		setThickness(actor, actor.Asset().Thickness+thicknessStep, log)
		dbg.Invalidate()
	case rl.IsKeyPressed(rl.KeyMinus), rl.IsKeyPressed(rl.KeyKpSubtract):
		setThickness(actor, max(0, actor.Asset().Thickness-thicknessStep), log)
		dbg.Invalidate()
	case rl.IsKeyPressed(rl.KeyG):
		scn.SetGridVisible(!scn.GridVisible)
	case rl.IsKeyPressed(rl.KeyF):
		dbg.SetShowFPS(!dbg.ShowFPS)
	case rl.IsKeyPressed(rl.KeyS):
		dbg.SetShowStats(!dbg.ShowStats)
	}
}

func setThickness(actor *polyline.Actor, thickness float32, log *slog.Logger) {
	if err := actor.SetThickness(thickness); err != nil {
		log.Error("set thickness", "err", err)
		return
	}
	log.Info("thickness", "value", thickness)
}
