package game

import (
	"sort"

	"github.com/Faultbox/beyond-sight/internal/engine/collision"
	"github.com/Faultbox/beyond-sight/internal/engine/renderer"
	"github.com/Faultbox/beyond-sight/internal/engine/ui2d"
	"github.com/Faultbox/beyond-sight/internal/game/entity"
	"github.com/Faultbox/beyond-sight/pkg/math"
)

var (
	tintPlayer = renderer.Tint{0.35, 0.6, 1, 1}
	tintEnemy  = renderer.Tint{1, 0, 0, 1}
	tintOther  = renderer.Tint{0.8, 0.8, 0.8, 1}
	tintSolid  = renderer.Tint{1, 0.2, 0.2, 0.35}
	tintHitbox = renderer.Tint{0.2, 1, 0.3, 0.8}
	tintSafe   = renderer.Tint{0.6, 0.4, 1, 0.8}
)

// render draws background chunks, actors back to front, foreground chunks,
// debug overlays and finally the HUD in screen space.
func (g *Game) render() {
	g.renderer.Begin(g.camera.Projection())

	g.renderer.DrawGroups(g.streamer.ActiveBackground())
	g.drawActors()
	g.renderer.DrawGroups(g.streamer.ActiveForeground())
	if g.debug {
		g.drawDebug()
	}

	w, h := g.renderer.Size()
	g.renderer.SetProjection(math.Ortho(0, float32(w), 0, float32(h)))
	for _, e := range g.hud.Layout(w, h) {
		g.renderer.DrawQuad(e.Texture, renderer.FullUV, e.Rect, renderer.Tint(e.Color.Array()))
	}

	g.renderer.End()
}

func (g *Game) drawActors() {
	actors := g.world.Actors()
	// Higher on the map is further away.
	sort.SliceStable(actors, func(i, j int) bool {
		return actors[i].Cell.Y > actors[j].Cell.Y
	})

	tile := g.cfg.World.TileSize
	for _, a := range actors {
		anim, ok := g.sprites[a.ID]
		if !ok {
			g.renderer.FillRect(a.Hitbox(), flatTint(a.Kind))
			continue
		}
		frame := anim.Frame(a)
		fw, fh := anim.Idle.FrameSize()
		rect := collision.VisualRect(a.Cell, tile, float64(fw), float64(fh))
		g.renderer.DrawQuad(frame.Texture, frame.UV, rect, renderer.White)
	}
}

func flatTint(k entity.Kind) renderer.Tint {
	switch k {
	case entity.KindPlayer:
		return tintPlayer
	case entity.KindEnemy:
		return tintEnemy
	default:
		return tintOther
	}
}

func (g *Game) drawDebug() {
	view := g.camera.View()
	for _, s := range g.world.Map.Solids.Rects() {
		if s.Intersects(view) {
			g.renderer.FillRect(s, tintSolid)
		}
	}
	for _, a := range g.world.Actors() {
		g.renderer.StrokeRect(a.Hitbox(), 1, tintHitbox)
	}
	if r := g.world.Reaper(); r != nil {
		c := r.Hitbox().Center()
		radius := g.cfg.World.SafeZoneRadius
		g.renderer.StrokeRect(math.Rect{X: c.X - radius, Y: c.Y - radius, W: 2 * radius, H: 2 * radius}, 1, tintSafe)
	}
	if npc := g.world.Talkable(); npc != nil {
		g.renderer.StrokeRect(npc.Hitbox(), 2, renderer.Tint(ui2d.ColorWhite.Array()))
	}
}
