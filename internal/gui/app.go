package gui

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/voyage/internal/audio"
	"github.com/san-kum/voyage/internal/helm"
	"github.com/san-kum/voyage/internal/poi"
)

const (
	screenWidth  = 1280
	screenHeight = 720

	// frameMillis matches helm.FrameUnit. Step caps the resulting delta.
	frameMillis   = 16.0
	boatHalfWidth = 36
	boatY         = 470
)

var (
	ColText    = rl.NewColor(240, 240, 240, 255)
	ColTextDim = rl.NewColor(200, 210, 230, 180)
	ColPanel   = rl.NewColor(10, 12, 24, 220)
	ColHull    = rl.NewColor(92, 58, 33, 255)
	ColSail    = rl.NewColor(245, 240, 225, 255)
	ColIsland  = rl.NewColor(226, 196, 128, 255)
	ColPalm    = rl.NewColor(46, 125, 50, 255)
)

type Options struct {
	FPS   int
	Audio bool
}

type App struct {
	Ctrl   *helm.Controller
	Audio  *audio.Synth
	Facing bool
	Anchor *poi.Point
}

func initWindow(fps int) {
	rl.InitWindow(screenWidth, screenHeight, "voyage")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// NewApp wires the controller to the window. The window must already exist.
func NewApp(ctrl *helm.Controller, opts Options) *App {
	a := &App{
		Ctrl:   ctrl,
		Facing: true,
	}
	ctrl.SetViewport(screenWidth)
	ctrl.OnAnchor(func(p poi.Point) { a.Anchor = &p })

	if opts.Audio {
		a.Audio = audio.NewSynth(ctrl.Options().Motion.MaxVelocity)
		if err := a.Audio.Start(); err != nil {
			log.Printf("audio disabled: %v", err)
			a.Audio = nil
		}
	}
	return a
}

// Run opens the desktop viewer and blocks until the window is closed.
func Run(ctrl *helm.Controller, opts Options) error {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	initWindow(opts.FPS)
	defer rl.CloseWindow()

	app := NewApp(ctrl, opts)
	defer app.Close()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

func (a *App) Close() {
	if a.Audio != nil {
		a.Audio.Stop()
	}
}

// Update feeds one frame of input to the controller and advances it. It
// returns false when the user asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return false
	}
	if a.Anchor != nil {
		if rl.IsKeyPressed(rl.KeyEscape) || rl.IsKeyPressed(rl.KeyEnter) || rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			a.Anchor = nil
		}
	} else {
		a.handleKeys()
		a.handleMouse()
	}

	if !rl.IsWindowFocused() {
		a.Ctrl.PointerCancel()
	}

	a.Ctrl.Step(float64(rl.GetFrameTime()) * 1000 / frameMillis)

	v := a.Ctrl.State().Velocity
	if v != 0 {
		a.Facing = v > 0
	}
	if a.Audio != nil {
		a.Audio.SetSpeed(v)
	}
	return true
}

func (a *App) handleKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeyLeft), rl.IsKeyPressed(rl.KeyA):
		a.Ctrl.HandleKey(helm.KeyLeft)
	case rl.IsKeyPressed(rl.KeyRight), rl.IsKeyPressed(rl.KeyD):
		a.Ctrl.HandleKey(helm.KeyRight)
	case rl.IsKeyPressed(rl.KeyEnter), rl.IsKeyPressed(rl.KeySpace):
		a.Ctrl.HandleKey(helm.KeyActivate)
	}

	points := a.Ctrl.Points()
	for i := 0; i < len(points) && i < 9; i++ {
		if rl.IsKeyPressed(int32(rl.KeyOne) + int32(i)) {
			a.Ctrl.SeekTo(points[i].Position)
		}
	}
}

func (a *App) handleMouse() {
	m := rl.GetMousePosition()
	x := float64(m.X)

	switch {
	case rl.IsMouseButtonPressed(rl.MouseLeftButton):
		onBoat := a.Ctrl.BoatHit(x, boatHalfWidth) && m.Y > boatY-90 && m.Y < boatY+30
		a.Ctrl.PointerDown(x, onBoat)
	case rl.IsMouseButtonReleased(rl.MouseLeftButton):
		a.Ctrl.PointerUp()
	case a.Ctrl.Dragging() && rl.IsMouseButtonDown(rl.MouseLeftButton):
		a.Ctrl.PointerMove(x)
	}
}
