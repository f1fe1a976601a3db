package game

import (
	"go.uber.org/zap"

	"github.com/Faultbox/beyond-sight/internal/config"
	"github.com/Faultbox/beyond-sight/internal/engine/character"
	"github.com/Faultbox/beyond-sight/internal/engine/tileatlas"
	"github.com/Faultbox/beyond-sight/internal/game/entity"
)

// bindSprites loads each actor's sheet. Actors whose sheet is missing or
// fails to load are drawn as flat tiles.
func (g *Game) bindSprites() {
	npcSheets := make(map[string]config.Sheet, len(g.cfg.Spawns.NPCs))
	for _, n := range g.cfg.Spawns.NPCs {
		npcSheets[n.Name] = n.Sheet
	}

	for _, a := range g.world.Actors() {
		var sheet *config.Sheet
		switch a.Kind {
		case entity.KindPlayer:
			sheet = g.cfg.Spawns.PlayerSheet
		case entity.KindReaper:
			sheet = g.cfg.Spawns.ReaperSheet
		case entity.KindNPC:
			if s, ok := npcSheets[a.Name]; ok && s.Path != "" {
				sheet = &s
			}
		}
		if sheet == nil {
			continue
		}

		anim, err := g.loadAnimator(*sheet)
		if err != nil {
			g.log.Warn("sprite unavailable",
				zap.String("actor", a.Name),
				zap.String("sheet", sheet.Path),
				zap.Error(err))
			continue
		}
		anim.Bind(a)
		g.sprites[a.ID] = anim
	}
}

func (g *Game) loadAnimator(sheet config.Sheet) (*character.Animator, error) {
	tex, err := g.renderer.LoadTexture(sheet.Path)
	if err != nil {
		return nil, err
	}
	layout, err := character.NewSheetLayout(sheet, tex)
	if err != nil {
		return nil, err
	}
	return &character.Animator{Idle: layout}, nil
}

func (g *Game) loadHeartImages() {
	load := func(path string) tileatlas.Texture {
		if path == "" {
			return tileatlas.Texture{}
		}
		tex, err := g.renderer.LoadTexture(path)
		if err != nil {
			g.log.Debug("heart image unavailable", zap.String("path", path), zap.Error(err))
			return tileatlas.Texture{}
		}
		return tex
	}
	hud := g.cfg.HUD
	g.hud.SetHeartImages(load(hud.HeartFull), load(hud.HeartBroken), load(hud.HeartEmpty))
}
