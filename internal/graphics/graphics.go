package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// WindowOptions configures the window opened by Run.
type WindowOptions struct {
	Title      string
	Width      int32
	Height     int32
	Fullscreen bool
	TargetFPS  int32
}

// Run starts the window and main loop. Each frame it calls update with the frame time in
// seconds, then clears the screen and calls draw. GPU resources must be created after Run
// has opened the window, i.e. from update or draw; unload (may be nil) runs before the
// window closes. Close via the window button or ESC.
func Run(opts WindowOptions, update func(dt float32), draw func(), unload func()) {
	flags := uint32(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	width, height := opts.Width, opts.Height
	if opts.Fullscreen {
		// Zero size makes raylib use the current monitor's resolution.
		flags |= rl.FlagFullscreenMode
		width, height = 0, 0
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(width, height, opts.Title)
	defer rl.CloseWindow()
	if unload != nil {
		defer unload()
	}

	if opts.TargetFPS > 0 {
		rl.SetTargetFPS(opts.TargetFPS)
	}

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(24, 24, 28, 255))
		draw()
		rl.EndDrawing()
	}
}
