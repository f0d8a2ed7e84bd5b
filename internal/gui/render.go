package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/voyage/internal/scene"
)

const (
	horizonY = 400
	seaTop   = 440
)

func hexColor(s string, alpha uint8) rl.Color {
	r, g, b := scene.ParseHex(s)
	return rl.NewColor(r, g, b, alpha)
}

// layerX turns a parallax offset into a pixel shift for a layer drawn
// twice the screen wide.
func layerX(position, speed float64) float32 {
	return float32(scene.Offset(position, speed) / 100 * 2 * screenWidth)
}

func (a *App) Draw() {
	snap := a.Ctrl.Snapshot()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	a.drawSky(snap.Position)
	a.drawSea(snap.Position)
	a.drawIslands(snap.Position, snap.NearestID)
	a.drawBoat(snap.Velocity)
	a.drawHUD()
	if a.Anchor != nil {
		a.drawDialog()
	}

	rl.EndDrawing()
}

func (a *App) drawSky(pos float64) {
	sky := scene.SkyAt(pos)
	stops := sky.Gradient()
	band := int32(horizonY / (len(stops) - 1))
	for i := 0; i < len(stops)-1; i++ {
		rl.DrawRectangleGradientV(0, int32(i)*band, screenWidth, band, hexColor(stops[i], 255), hexColor(stops[i+1], 255))
	}

	if sky.StarOpacity > 0 {
		alpha := uint8(sky.StarOpacity * 255)
		shift := layerX(pos, scene.Layers[0].Speed)
		for i := 0; i < 60; i++ {
			x := float32(math.Mod(float64(i*173)+float64(shift), 2*screenWidth))
			if x < 0 {
				x += 2 * screenWidth
			}
			y := float32((i * 97) % 260)
			rl.DrawCircleV(rl.NewVector2(x, y), 1.5, rl.NewColor(255, 255, 255, alpha))
		}
	}

	// the sun sets along the voyage
	t := scene.Progress(pos)
	sunY := int32(80 + t*(horizonY-80))
	rl.DrawCircle(980, sunY, 56, hexColor(sky.SunOuter, 120))
	rl.DrawCircle(980, sunY, 40, hexColor(sky.Sun, 255))

	clouds := layerX(pos, scene.Layers[1].Speed)
	for i := 0; i < 6; i++ {
		x := float32(math.Mod(float64(i*430)+float64(clouds), 2*screenWidth))
		if x < -200 {
			x += 2 * screenWidth
		}
		y := float32(70 + (i%3)*50)
		rl.DrawEllipse(int32(x), int32(y), 90, 22, rl.NewColor(255, 255, 255, 150))
		rl.DrawEllipse(int32(x+50), int32(y-12), 60, 20, rl.NewColor(255, 255, 255, 130))
	}

	horizon := layerX(pos, scene.Layers[2].Speed)
	for i := 0; i < 8; i++ {
		x := float32(math.Mod(float64(i*320)+float64(horizon), 2*screenWidth))
		rl.DrawTriangle(
			rl.NewVector2(x+120, horizonY-40-float32(i%3)*15),
			rl.NewVector2(x, horizonY),
			rl.NewVector2(x+240, horizonY),
			rl.NewColor(40, 60, 90, 200),
		)
	}
}

func (a *App) drawSea(pos float64) {
	rl.DrawRectangleGradientV(0, horizonY, screenWidth, screenHeight-horizonY, rl.NewColor(20, 90, 150, 255), rl.NewColor(5, 30, 70, 255))

	bands := []struct {
		layer  scene.Layer
		y      float32
		amp    float32
		length float32
		color  rl.Color
	}{
		{scene.Layers[3], seaTop, 4, 90, rl.NewColor(70, 140, 200, 160)},
		{scene.Layers[4], seaTop + 90, 7, 140, rl.NewColor(90, 170, 220, 170)},
		{scene.Layers[5], seaTop + 200, 10, 200, rl.NewColor(140, 200, 240, 180)},
	}
	for _, b := range bands {
		shift := layerX(pos, b.layer.Speed)
		prev := rl.NewVector2(0, b.y)
		for x := float32(0); x <= screenWidth; x += 8 {
			y := b.y + b.amp*float32(math.Sin(float64((x-shift)/b.length*2*math.Pi)))
			cur := rl.NewVector2(x, y)
			if x > 0 {
				rl.DrawLineEx(prev, cur, 3, b.color)
			}
			prev = cur
		}
	}
}

func (a *App) drawIslands(pos float64, nearest string) {
	for _, p := range a.Ctrl.Points() {
		// islands sit in track space relative to the boat at screen centre
		x := float32(screenWidth/2 + (p.Position-pos)/100*2*screenWidth)
		if x < -200 || x > screenWidth+200 {
			continue
		}
		rl.DrawEllipse(int32(x), seaTop+6, 110, 26, ColIsland)
		rl.DrawRectangle(int32(x)-4, seaTop-70, 8, 70, ColHull)
		rl.DrawEllipse(int32(x), seaTop-74, 46, 14, ColPalm)

		label := p.Label
		if label == "" {
			label = p.ID
		}
		size := int32(22)
		col := ColTextDim
		if p.ID == nearest {
			size = 26
			col = ColText
			hint := "press enter to drop anchor"
			rl.DrawText(hint, int32(x)-rl.MeasureText(hint, 16)/2, seaTop+44, 16, ColTextDim)
		}
		if scene.Visited(p, pos) {
			label += " *"
		}
		rl.DrawText(label, int32(x)-rl.MeasureText(label, size)/2, seaTop-120, size, col)
	}
}

func (a *App) drawBoat(velocity float64) {
	cx := float32(screenWidth / 2)
	dir := float32(1)
	if !a.Facing {
		dir = -1
	}

	wake := scene.WakeFor(velocity, a.Facing)
	if wake.Visible {
		alpha := uint8(wake.Opacity * 200)
		for i := 1; i <= 4; i++ {
			x := cx - dir*float32(boatHalfWidth+i*22)
			rl.DrawEllipse(int32(x), boatY+8, float32(18-i*3), 4, rl.NewColor(255, 255, 255, alpha/uint8(i)))
		}
	}

	bob := float32(math.Sin(rl.GetTime()*2) * 3)
	hull := []rl.Vector2{
		rl.NewVector2(cx-boatHalfWidth, boatY-10+bob),
		rl.NewVector2(cx-boatHalfWidth*0.7, boatY+12+bob),
		rl.NewVector2(cx+boatHalfWidth*0.7, boatY+12+bob),
		rl.NewVector2(cx+boatHalfWidth, boatY-10+bob),
	}
	rl.DrawTriangle(hull[0], hull[1], hull[2], ColHull)
	rl.DrawTriangle(hull[0], hull[2], hull[3], ColHull)
	rl.DrawRectangle(int32(cx)-2, boatY-90+int32(bob), 4, 80, ColHull)

	mastTop := rl.NewVector2(cx, boatY-88+bob)
	mastFoot := rl.NewVector2(cx, boatY-14+bob)
	tip := rl.NewVector2(cx+dir*44, boatY-14+bob)
	if dir > 0 {
		rl.DrawTriangle(mastTop, mastFoot, tip, ColSail)
	} else {
		rl.DrawTriangle(mastTop, tip, mastFoot, ColSail)
	}
}

func (a *App) drawHUD() {
	s := a.Ctrl.State()
	text := fmt.Sprintf("%5.1f%%  v=%+.2f  %s", s.Position, s.Velocity, a.Ctrl.Mode())
	rl.DrawRectangle(16, screenHeight-44, 360, 30, ColPanel)
	rl.DrawText(text, 26, screenHeight-38, 18, ColText)
	rl.DrawText("click to sail | drag the boat | arrows nudge | 1-9 islands | q quit", 400, screenHeight-38, 16, ColTextDim)
}

func (a *App) drawDialog() {
	p := a.Anchor
	w, h := int32(520), int32(200)
	x, y := (screenWidth-w)/2, int32(160)
	rl.DrawRectangleRounded(rl.NewRectangle(float32(x), float32(y), float32(w), float32(h)), 0.1, 8, ColPanel)

	title := p.Label
	if title == "" {
		title = p.ID
	}
	rl.DrawText(title, x+28, y+28, 32, ColText)
	rl.DrawText(fmt.Sprintf("anchored at %.0f%%", p.Position), x+28, y+80, 20, ColTextDim)
	rl.DrawText("esc or click to set sail", x+28, y+h-40, 18, ColTextDim)
}
