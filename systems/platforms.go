package systems

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/skelly/components"
	cfg "github.com/automoto/skelly/config"
	"github.com/automoto/skelly/shared/geom"
	"github.com/automoto/skelly/shared/switchstate"
	"github.com/automoto/skelly/shared/tilemap"
)

// UpdatePlatforms advances every platform one tick, in map order.
// Must run BEFORE UpdatePlayer so the player sees this tick's deltas.
func UpdatePlatforms(ecs *ecs.ECS) {
	level, ok := getLevel(ecs)
	if !ok {
		return
	}
	for _, e := range level.Platforms {
		p := components.Platform.Get(e)
		switch {
		case e.HasComponent(components.Moving):
			updateMovingPlatform(p, components.Moving.Get(e), level.Switches)
		case e.HasComponent(components.Bagel):
			updateBagel(p, components.Bagel.Get(e))
		case e.HasComponent(components.Spring):
			updateSpring(p, components.Spring.Get(e))
		case e.HasComponent(components.Button):
			updateButton(ecs, p, components.Button.Get(e), level.Switches)
		}
		// Conveyors push with a constant delta and never move.
	}
}

func updateMovingPlatform(p *components.PlatformData, m *components.MovingData, switches *switchstate.State) {
	if m.Condition != "" && !switches.IsConditionTrue(m.Condition) {
		// Head back to the start and wait there.
		m.Forward = false
		if p.Position.X == m.Start.X && p.Position.Y == m.Start.Y {
			p.Delta = geom.Point[geom.Subpixels]{}
			return
		}
	}

	p.Delta.X = m.Speed * (m.End.X - m.Start.X).Sign()
	p.Delta.Y = m.Speed * (m.End.Y - m.Start.Y).Sign()
	if m.Forward {
		switch m.Direction {
		case geom.DirUp:
			if p.Position.Y <= m.End.Y {
				switch m.Overflow {
				case tilemap.OverflowWrap:
					p.Position.Y += m.Distance
				case tilemap.OverflowClamp:
					p.Delta.Y = 0
					p.Position.Y = m.End.Y + 1
				case tilemap.OverflowOscillate:
					p.Delta.Y *= -1
					m.Forward = false
				}
			}
		case geom.DirDown:
			if p.Position.Y >= m.End.Y {
				switch m.Overflow {
				case tilemap.OverflowWrap:
					p.Position.Y = m.Start.Y + (m.End.Y - p.Position.Y)
				case tilemap.OverflowClamp:
					p.Delta.Y = 0
					p.Position.Y = m.End.Y - 1
				case tilemap.OverflowOscillate:
					p.Delta.Y *= -1
					m.Forward = false
				}
			}
		case geom.DirLeft:
			if p.Position.X <= m.End.X {
				switch m.Overflow {
				case tilemap.OverflowWrap:
					p.Position.X += m.Distance
				case tilemap.OverflowClamp:
					p.Delta.X = 0
					p.Position.X = m.End.X + 1
				case tilemap.OverflowOscillate:
					p.Delta.X *= -1
					m.Forward = false
				}
			}
		case geom.DirRight:
			if p.Position.X >= m.End.X {
				switch m.Overflow {
				case tilemap.OverflowWrap:
					p.Position.X = m.Start.X + (m.End.X - p.Position.X)
				case tilemap.OverflowClamp:
					p.Delta.X = 0
					p.Position.X = m.End.X - 1
				case tilemap.OverflowOscillate:
					p.Delta.X *= -1
					m.Forward = false
				}
			}
		}
	} else {
		// Must be oscillating.
		var atStart bool
		switch m.Direction {
		case geom.DirUp:
			atStart = p.Position.Y >= m.Start.Y
		case geom.DirDown:
			atStart = p.Position.Y <= m.Start.Y
		case geom.DirLeft:
			atStart = p.Position.X >= m.Start.X
		case geom.DirRight:
			atStart = p.Position.X <= m.Start.X
		}
		if atStart {
			m.Forward = true
		} else {
			p.Delta.X *= -1
			p.Delta.Y *= -1
		}
	}
	p.Position.X += p.Delta.X
	p.Position.Y += p.Delta.Y
}

func updateBagel(p *components.PlatformData, b *components.BagelData) {
	switch {
	case b.Falling:
		b.Remaining--
		if b.Remaining == 0 {
			p.Delta.Y = 0
			p.Position.Y = b.OriginalY
			b.Falling = false
			b.Remaining = cfg.Bagel.WaitTime
		} else {
			p.Delta.Y += cfg.Bagel.GravityAcceleration
			if p.Delta.Y > cfg.Bagel.MaxGravity {
				p.Delta.Y = cfg.Bagel.MaxGravity
			}
			p.Position.Y += p.Delta.Y
		}
	case p.Occupied:
		b.Remaining--
		if b.Remaining == 0 {
			b.Falling = true
			b.Remaining = cfg.Bagel.FallTime
			p.Delta.Y = 0
		}
	default:
		b.Remaining = cfg.Bagel.WaitTime
	}
}

func updateSpring(p *components.PlatformData, s *components.SpringData) {
	p.Delta = geom.Point[geom.Subpixels]{}
	s.Launch = false
	switch {
	case !p.Occupied:
		// Nobody on it, so it resets.
		s.StallCounter = cfg.Spring.StallFrames
		s.Up = false
		if s.Pos > 0 {
			s.Pos -= cfg.Spring.Speed
			p.Delta.Y = -cfg.Spring.Speed
		}
	case s.Up:
		// It's bouncing back up.
		s.StallCounter = cfg.Spring.StallFrames
		if s.Pos > 0 {
			s.Pos -= cfg.Spring.Speed
			p.Delta.Y = -cfg.Spring.Speed
		} else {
			s.Launch = true
		}
	case s.Pos < geom.Pixels(cfg.Spring.Steps).AsSubpixels()-cfg.Spring.Speed:
		// It's still sinking.
		s.StallCounter = cfg.Spring.StallFrames
		s.Pos += cfg.Spring.Speed
		p.Delta.Y = cfg.Spring.Speed
	case s.StallCounter > 0:
		// At the bottom, but not for long enough yet.
		s.StallCounter--
	default:
		s.StallCounter = cfg.Spring.StallFrames
		s.Up = true
	}
}

func updateButton(ecs *ecs.ECS, p *components.PlatformData, b *components.ButtonData, switches *switchstate.State) {
	wasClicked := b.Clicked

	if b.Type == tilemap.ButtonSmart {
		b.Clicked = switches.IsConditionTrue(b.Color)
	}

	if p.Occupied && !b.WasOccupied {
		switch b.Type {
		case tilemap.ButtonOneShot, tilemap.ButtonSmart:
			b.Clicked = true
		case tilemap.ButtonToggle:
			b.Clicked = !b.Clicked
		}
	}

	b.WasOccupied = p.Occupied

	if b.Type == tilemap.ButtonMomentary {
		b.Clicked = p.Occupied
	}

	if b.Clicked {
		if b.Level < cfg.Button.MaxLevel {
			b.Level++
		}
	} else if b.Level > 0 {
		b.Level--
	}

	p.Position.Y = b.OriginalY + geom.Pixels(b.Level).AsSubpixels()/geom.Subpixels(cfg.Button.Delay)

	if b.Clicked != wasClicked {
		PlaySFX(ecs, cfg.SoundClick)
		if b.Type == tilemap.ButtonSmart {
			if b.Clicked && p.Occupied {
				switches.ApplyCommand(b.Color)
			}
		} else if b.Clicked || b.Type != tilemap.ButtonOneShot {
			switches.Toggle(b.Color)
		}
	}
}

// PlatformTryMoveTo returns how far the player rect can move in the
// given direction before touching the platform, zero if it is not in
// the way. Non-solid platforms only block from above.
func PlatformTryMoveTo(e *donburi.Entry, playerRect geom.Rect[geom.Subpixels], d geom.Direction, isBackwards bool) geom.Subpixels {
	p := components.Platform.Get(e)
	if e.HasComponent(components.Spring) {
		return springTryMoveTo(p, components.Spring.Get(e), playerRect, d, isBackwards)
	}

	var area geom.Rect[geom.Subpixels]
	if p.Solid {
		area = p.Position
	} else {
		if d != geom.DirDown || isBackwards {
			return 0
		}
		area = geom.Rect[geom.Subpixels]{
			X: p.Position.X,
			Y: p.Position.Y,
			W: p.Position.W,
			H: p.Position.H / 2,
		}
	}
	return geom.TryMoveToBounds(playerRect, area, d)
}

// springTryMoveTo shrinks the collision area by how far the pad has
// sunk so the player rides it down.
func springTryMoveTo(p *components.PlatformData, s *components.SpringData, playerRect geom.Rect[geom.Subpixels], d geom.Direction, isBackwards bool) geom.Subpixels {
	if p.Solid {
		area := geom.Rect[geom.Subpixels]{
			X: p.Position.X,
			Y: p.Position.Y + s.Pos,
			W: p.Position.W,
			H: p.Position.H - s.Pos,
		}
		return geom.TryMoveToBounds(playerRect, area, d)
	}
	if d != geom.DirDown || isBackwards {
		return 0
	}
	area := geom.Rect[geom.Subpixels]{
		X: p.Position.X,
		Y: p.Position.Y + s.Pos,
		W: p.Position.W,
		H: p.Position.H / 2,
	}
	return geom.TryMoveToBounds(playerRect, area, d)
}

// SpringShouldBoost reports whether jumping off the spring right now
// gives the boosted launch.
func SpringShouldBoost(e *donburi.Entry) bool {
	if !e.HasComponent(components.Spring) {
		return false
	}
	s := components.Spring.Get(e)
	return s.Up || springFrame(s) == cfg.Spring.Steps-1
}

func springFrame(s *components.SpringData) int {
	return int(s.Pos.AsPixels())
}
