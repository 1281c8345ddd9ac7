package systems

import (
	"fmt"
	"log"

	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/skelly/components"
	cfg "github.com/automoto/skelly/config"
	"github.com/automoto/skelly/shared/geom"
	"github.com/automoto/skelly/shared/replay"
	"github.com/automoto/skelly/shared/tilemap"
)

type platformIntersection struct {
	offset    geom.Subpixels
	platforms []int
}

type tryMoveOutcome struct {
	offset    geom.Subpixels
	platforms []int
	tileIDs   tilemap.IDSet
}

type moveAndCheckResult struct {
	onGround          bool
	onTileIDs         tilemap.IDSet
	onPlatforms       []int
	hitCeiling        bool
	againstWall       bool
	crushedByPlatform bool
	stuckInWall       bool
}

type movePlayerXResult struct {
	pushingAgainstWall bool
	crushedByPlatform  bool
	stuckInWall        bool
}

type movePlayerYResult struct {
	onGround          bool
	crushedByPlatform bool
	stuckInWall       bool
}

type playerMovementResult struct {
	onGround           bool
	pushingAgainstWall bool
	jumpDown           bool
	jumpTriggered      bool
	crouchDown         bool
	crushedByPlatform  bool
	stuckInWall        bool
}

// playerMover bundles everything one tick of player physics touches.
type playerMover struct {
	ecs    *ecs.ECS
	level  *components.LevelData
	player *components.PlayerData
	state  *components.StateData
	anim   *components.AnimationData
	input  replay.Snapshot
}

// UpdatePlayer runs one tick of player physics: trajectory, then the
// two movement axes with collision, then the state machine and the
// sprite. Must run AFTER UpdatePlatforms.
func UpdatePlayer(ecs *ecs.ECS) {
	level, ok := getLevel(ecs)
	if !ok {
		return
	}
	entry, ok := components.Player.First(ecs.World)
	if !ok {
		return
	}

	m := &playerMover{
		ecs:    ecs,
		level:  level,
		player: components.Player.Get(entry),
		state:  components.State.Get(entry),
		anim:   components.Animation.Get(entry),
		input:  Snapshot(ecs),
	}

	var movement playerMovementResult
	if m.state.Current != cfg.StateStopped {
		movement = m.updateMovement()
	}
	m.updateState(movement)
	m.updateSprite()
}

func (m *playerMover) boundsRect(d geom.Direction) geom.Rect[geom.Subpixels] {
	return m.player.BoundsRect(d, m.state.Current == cfg.StateCrouching)
}

func (m *playerMover) updateMovement() playerMovementResult {
	m.updateTrajectoryX()
	m.updateTrajectoryY()

	xResult := m.movePlayerX()
	yResult := m.movePlayerY()

	return playerMovementResult{
		onGround:           yResult.onGround,
		pushingAgainstWall: xResult.pushingAgainstWall,
		jumpDown:           m.input.JumpDown,
		jumpTriggered:      m.input.JumpClicked,
		crouchDown:         m.input.CrouchDown,
		crushedByPlatform:  xResult.crushedByPlatform || yResult.crushedByPlatform,
		stuckInWall:        xResult.stuckInWall || yResult.stuckInWall,
	}
}

func (m *playerMover) updateTrajectoryX() {
	delta := &m.player.Delta
	if m.state.Current == cfg.StateCrouching {
		// While crouching you can only slide to a stop.
		switch {
		case delta.X > 0:
			delta.X -= cfg.Player.SlideDeceleration
			if delta.X < 0 {
				delta.X = 0
			}
		case delta.X < 0:
			delta.X += cfg.Player.SlideDeceleration
			if delta.X > 0 {
				delta.X = 0
			}
		}
		return
	}

	// Apply controller input.
	var targetDX geom.Subpixels
	if m.input.LeftDown && !m.input.RightDown {
		targetDX = -cfg.Player.TargetWalkSpeed
	} else if m.input.RightDown && !m.input.LeftDown {
		targetDX = cfg.Player.TargetWalkSpeed
	}

	// Change the velocity toward the target velocity.
	switch {
	case delta.X > 0:
		// We're moving right.
		if targetDX > delta.X {
			delta.X += cfg.Player.WalkAcceleration
			if delta.X > targetDX {
				delta.X = targetDX
			}
		}
		if targetDX < delta.X {
			delta.X -= cfg.Player.WalkDeceleration
			if delta.X < targetDX {
				delta.X = targetDX
			}
		}
	case delta.X < 0:
		// We're moving left.
		if targetDX > delta.X {
			delta.X += cfg.Player.WalkDeceleration
			if delta.X > targetDX {
				delta.X = targetDX
			}
		}
		if targetDX < delta.X {
			delta.X -= cfg.Player.WalkAcceleration
			if delta.X < targetDX {
				delta.X = targetDX
			}
		}
	default:
		// We're stopped.
		if targetDX > delta.X {
			delta.X += cfg.Player.WalkAcceleration
			if delta.X > targetDX {
				delta.X = targetDX
			}
		}
		if targetDX < delta.X {
			delta.X -= cfg.Player.WalkAcceleration
			if delta.X < targetDX {
				delta.X = targetDX
			}
		}
	}
}

func (m *playerMover) updateTrajectoryY() {
	delta := &m.player.Delta
	gravity := m.level.Gravity
	switch m.state.Current {
	case cfg.StateStanding, cfg.StateCrouching:
		// Fall at least one subpixel so that we hit the ground again.
		if delta.Y < 1 {
			delta.Y = 1
		}
	case cfg.StateJumping:
		// Apply gravity.
		if delta.Y < gravity {
			delta.Y += cfg.Player.JumpAcceleration
		}
		if delta.Y > gravity {
			delta.Y = gravity
		}
	case cfg.StateFalling:
		// Apply gravity.
		if delta.Y < gravity {
			delta.Y += cfg.Player.FallAcceleration
		}
		if delta.Y > gravity {
			delta.Y = gravity
		}
	case cfg.StateWallSliding:
		// When you first grab the wall, don't start sliding for a while.
		if m.state.WallSlideCounter > 0 {
			m.state.WallSlideCounter--
			delta.Y = 0
		} else {
			delta.Y = cfg.Player.WallSlideSpeed
		}
	case cfg.StateStopped:
	}
}

func (m *playerMover) findPlatformIntersections(playerRect geom.Rect[geom.Subpixels], d geom.Direction, isBackwards bool) platformIntersection {
	var result platformIntersection
	for i, e := range m.level.Platforms {
		distance := PlatformTryMoveTo(e, playerRect, d, isBackwards)
		if distance == 0 {
			continue
		}
		switch c := geom.CmpInDirection(distance, result.offset, d); {
		case c < 0:
			result.offset = distance
			result.platforms = []int{i}
		case c == 0:
			result.platforms = append(result.platforms, i)
		}
	}
	return result
}

// tryMovePlayer returns how far the player needs to move in the given
// direction to not intersect anything, in subpixels.
func (m *playerMover) tryMovePlayer(d geom.Direction, isBackwards bool) tryMoveOutcome {
	playerRect := m.boundsRect(d)

	mapResult := m.level.Map.TryMoveTo(playerRect, d, m.level.Switches, isBackwards)
	platformResult := m.findPlatformIntersections(playerRect, d, isBackwards)

	if geom.CmpInDirection(platformResult.offset, mapResult.HardOffset, d) <= 0 {
		return tryMoveOutcome{
			offset:    platformResult.offset,
			platforms: platformResult.platforms,
		}
	}
	return tryMoveOutcome{
		offset:  mapResult.HardOffset,
		tileIDs: mapResult.TileIDs,
	}
}

func incPlayerX(p *geom.Point[geom.Subpixels], offset geom.Subpixels) { p.X += offset }
func incPlayerY(p *geom.Point[geom.Subpixels], offset geom.Subpixels) { p.Y += offset }

func (m *playerMover) anySolid(platforms []int) bool {
	for _, i := range platforms {
		if components.Platform.Get(m.level.Platforms[i]).Solid {
			return true
		}
	}
	return false
}

// moveAndCheck resolves one axis: push out of whatever the forward
// probe hit, back out of anything overlapped from behind, and report
// what was touched.
func (m *playerMover) moveAndCheck(forward geom.Direction, applyOffset func(*geom.Point[geom.Subpixels], geom.Subpixels)) moveAndCheckResult {
	move1 := m.tryMovePlayer(forward, false)
	applyOffset(&m.player.Position, move1.offset)

	// Try the opposite direction.
	move2 := m.tryMovePlayer(forward.Opposite(), true)
	offset := move2.offset
	applyOffset(&m.player.Position, offset)

	hitSolidPlatform1 := m.anySolid(move1.platforms)
	hitSolidPlatform2 := m.anySolid(move2.platforms)

	var result moveAndCheckResult
	switch forward {
	case geom.DirDown:
		result.onGround = move1.offset != 0
		result.onTileIDs = move1.tileIDs
		result.onPlatforms = move1.platforms
	case geom.DirUp:
		// When traveling up, hitting something below isn't the ground,
		// unless we're standing on a platform.
		if m.state.Current != cfg.StateJumping && m.state.Current != cfg.StateFalling {
			result.onGround = move2.offset != 0
		}
		result.hitCeiling = move1.offset != 0
		result.onTileIDs = move2.tileIDs
		result.onPlatforms = move2.platforms
	case geom.DirLeft, geom.DirRight:
		result.againstWall = move1.offset != 0
	}

	// See if we're crushed.
	if offset != 0 {
		crushCheck := m.tryMovePlayer(forward, false)
		if crushCheck.offset != 0 {
			if hitSolidPlatform1 || hitSolidPlatform2 {
				result.crushedByPlatform = true
			} else {
				result.stuckInWall = true
			}
		}
	}

	return result
}

func (m *playerMover) movePlayerX() movePlayerXResult {
	dx := m.player.Delta.X
	if m.player.CurrentPlatform != nil {
		dx += components.Platform.Get(m.player.CurrentPlatform).Delta.X
	}
	m.player.Position.X += dx

	var moveResult moveAndCheckResult
	var pushing bool
	if dx < 0 || (dx == 0 && !m.player.FacingRight) {
		moveResult = m.moveAndCheck(geom.DirLeft, incPlayerX)
		pushing = m.input.LeftDown
	} else {
		moveResult = m.moveAndCheck(geom.DirRight, incPlayerX)
		pushing = m.input.RightDown
	}

	result := movePlayerXResult{
		pushingAgainstWall: pushing && moveResult.againstWall,
		crushedByPlatform:  moveResult.crushedByPlatform,
		stuckInWall:        moveResult.stuckInWall,
	}

	// If you're pushing against the wall, you're stopped.
	if result.pushingAgainstWall {
		m.player.Delta.X = 0
	}

	return result
}

// slopeDY is how far the player must fall this tick to follow the
// steepest slope underfoot.
func (m *playerMover) slopeDY() geom.Subpixels {
	var slopeFall geom.Subpixels
	for _, id := range m.player.CurrentSlopes.All() {
		slope := m.level.Map.SlopeAt(id)
		if slope == nil {
			continue
		}
		var fall geom.Subpixels
		if m.player.Delta.X > 0 || (m.player.Delta.X == 0 && m.player.FacingRight) {
			// The player is facing right.
			if slope.RightY > slope.LeftY {
				fall = slope.RightY - slope.LeftY
			}
		} else {
			// The player is facing left.
			if slope.LeftY > slope.RightY {
				fall = slope.LeftY - slope.RightY
			}
		}
		if fall > slopeFall {
			slopeFall = fall
		}
	}
	return slopeFall
}

func (m *playerMover) movePlayerY() movePlayerYResult {
	dy := m.player.Delta.Y
	if m.player.CurrentPlatform != nil {
		// This could be positive or negative.
		dy += components.Platform.Get(m.player.CurrentPlatform).Delta.Y
	}

	// On a slope, fall at least the slope amount.
	if dy >= 0 {
		if slope := m.slopeDY(); slope > dy {
			dy = slope
		}
	}

	m.player.Position.Y += dy

	if dy <= 0 {
		// Moving up.
		moveResult := m.moveAndCheck(geom.DirUp, incPlayerY)
		if moveResult.hitCeiling {
			m.player.Delta.Y = 0
		}

		m.handleSlopes(&moveResult.onTileIDs)
		m.handleCurrentPlatforms(moveResult.onPlatforms)

		return movePlayerYResult{
			onGround:          moveResult.onGround,
			crushedByPlatform: moveResult.crushedByPlatform,
			stuckInWall:       moveResult.stuckInWall,
		}
	}

	// Moving down.
	moveResult := m.moveAndCheck(geom.DirDown, incPlayerY)

	m.handleSpikes(&moveResult.onTileIDs)
	m.handleSwitchTiles(&moveResult.onTileIDs)
	m.handleSlopes(&moveResult.onTileIDs)
	m.handleCurrentPlatforms(moveResult.onPlatforms)

	return movePlayerYResult{
		onGround:          moveResult.onGround,
		crushedByPlatform: moveResult.crushedByPlatform,
		stuckInWall:       moveResult.stuckInWall,
	}
}

func (m *playerMover) handleSlopes(tiles *tilemap.IDSet) {
	m.player.CurrentSlopes.Clear()
	for _, id := range tiles.All() {
		if props := m.level.Map.Properties(id); props != nil && props.Slope {
			m.player.CurrentSlopes.Insert(id)
		}
	}
}

func (m *playerMover) handleSpikes(tiles *tilemap.IDSet) {
	for _, id := range tiles.All() {
		if props := m.level.Map.Properties(id); props != nil && props.Deadly {
			m.player.IsDead = true
		}
	}
}

func (m *playerMover) handleCurrentPlatforms(platforms []int) {
	m.player.CurrentPlatform = nil
	for _, e := range m.level.Platforms {
		components.Platform.Get(e).Occupied = false
	}

	for _, i := range platforms {
		e := m.level.Platforms[i]
		components.Platform.Get(e).Occupied = true
		m.player.CurrentPlatform = e
	}
}

// handleSwitchTiles flips switches for tiles we just landed on. Staying
// on the same tile doesn't retrigger it.
func (m *playerMover) handleSwitchTiles(tiles *tilemap.IDSet) {
	previous := m.player.CurrentSwitchTiles
	m.player.CurrentSwitchTiles = tilemap.IDSet{}
	for _, id := range tiles.All() {
		props := m.level.Map.Properties(id)
		if props == nil || props.Switch == "" {
			continue
		}
		m.player.CurrentSwitchTiles.Insert(id)
		if previous.Contains(id) {
			continue
		}
		PlaySFX(m.ecs, cfg.SoundClick)
		m.level.Switches.ApplyCommand(props.Switch)
	}
}

func (m *playerMover) updateState(movement playerMovementResult) {
	player := m.player
	state := m.state

	if movement.onGround {
		state.CoyoteCounter = cfg.Player.CoyoteTime
	} else if state.CoyoteCounter > 0 {
		state.CoyoteCounter--
	}

	if state.JumpGraceCounter > 0 {
		state.JumpGraceCounter--
	}

	if movement.crushedByPlatform {
		state.Current = cfg.StateStopped
		player.IsDead = true
		return
	}

	// Wedged in a non-solid obstruction. Not fatal; log once on entry.
	if movement.stuckInWall && !player.StuckInWall {
		log.Printf("Warning: Player stuck in wall at %v", player.Position)
	}
	player.StuckInWall = movement.stuckInWall

	switch state.Current {
	case cfg.StateStopped:

	case cfg.StateStanding:
		launch := false
		if player.CurrentPlatform != nil && player.CurrentPlatform.HasComponent(components.Spring) {
			launch = components.Spring.Get(player.CurrentPlatform).Launch
		}
		switch {
		case launch:
			// The spring reached the top with us still on it.
			state.JumpGraceCounter = 0
			state.Current = cfg.StateJumping
			if movement.jumpTriggered || state.JumpGraceCounter > 0 {
				state.SpringCounter = cfg.Spring.JumpDuration
				player.Delta.Y = -cfg.Spring.JumpVelocity
			} else {
				state.SpringCounter = cfg.Spring.BounceDuration
				player.Delta.Y = -cfg.Spring.BounceVelocity
			}
		case state.CoyoteCounter == 0:
			state.Current = cfg.StateFalling
			player.Delta.Y = 0
			if player.CurrentPlatform != nil {
				player.Delta.X = components.Platform.Get(player.CurrentPlatform).Delta.X
			}
		case movement.crouchDown:
			state.Current = cfg.StateCrouching
		case movement.jumpTriggered || state.JumpGraceCounter > 0:
			if player.CurrentDoor != nil {
				if door := components.Door.Get(player.CurrentDoor); door.State == components.DoorOpen {
					state.Current = cfg.StateStopped
					door.State = components.DoorClosing
					door.Frame = 0
				}
			} else {
				state.JumpGraceCounter = 0
				state.Current = cfg.StateJumping
				if player.CurrentPlatform != nil && SpringShouldBoost(player.CurrentPlatform) {
					state.SpringCounter = cfg.Spring.JumpDuration
					player.Delta.Y = -cfg.Spring.JumpVelocity
				} else {
					state.SpringCounter = 0
					player.Delta.Y = -cfg.Player.JumpInitialSpeed
				}
				if player.CurrentPlatform != nil {
					player.Delta.X += components.Platform.Get(player.CurrentPlatform).Delta.X
				}
			}
		}

	case cfg.StateFalling:
		if movement.jumpTriggered {
			state.JumpGraceCounter = cfg.Player.JumpGraceTime
		}
		if movement.onGround {
			state.Current = cfg.StateStanding
			player.Delta.Y = 0
		} else if movement.pushingAgainstWall && player.Delta.Y >= 0 {
			state.Current = cfg.StateWallSliding
			state.WallSlideCounter = cfg.Player.WallSlideTime
		}

	case cfg.StateJumping:
		if movement.onGround {
			state.Current = cfg.StateStanding
			player.Delta.Y = 0
		} else if player.Delta.Y >= 0 {
			state.Current = cfg.StateFalling
		} else if !movement.jumpDown {
			// Letting go cuts the jump short, unless a spring is still
			// carrying us.
			if state.SpringCounter == 0 {
				state.Current = cfg.StateFalling
				player.Delta.Y = 0
			} else {
				state.SpringCounter--
			}
		}

	case cfg.StateWallSliding:
		switch {
		case movement.jumpTriggered:
			state.Current = cfg.StateJumping
			player.Delta.Y = -cfg.Player.WallJumpVerticalSpeed
			if player.FacingRight {
				player.Delta.X = -cfg.Player.WallJumpHorizontalSpeed
			} else {
				player.Delta.X = cfg.Player.WallJumpHorizontalSpeed
			}
		case movement.onGround:
			state.Current = cfg.StateStanding
		case movement.pushingAgainstWall:
			state.WallStickCounter = cfg.Player.WallStickTime
			state.WallStickFacingRight = player.FacingRight
		default:
			if state.WallStickFacingRight != player.FacingRight {
				state.Current = cfg.StateFalling
			} else if state.WallStickCounter > 0 {
				state.WallStickCounter--
			} else {
				state.Current = cfg.StateFalling
			}
		}

	case cfg.StateCrouching:
		if !movement.onGround {
			state.Current = cfg.StateFalling
			player.Delta.Y = 0
		} else if !movement.crouchDown {
			state.Current = cfg.StateStanding
		}
	}
}

func (m *playerMover) updateSprite() {
	player := m.player
	if player.Delta.X < 0 {
		player.FacingRight = false
	} else if player.Delta.X > 0 {
		player.FacingRight = true
	}

	var display string
	if player.IsDead {
		display = "dead"
	} else {
		switch m.state.Current {
		case cfg.StateFalling:
			display = "falling"
		case cfg.StateJumping:
			display = "jumping"
		case cfg.StateWallSliding:
			display = "wall_sliding"
		case cfg.StateCrouching:
			display = "crouching"
		default:
			if m.anim.IdleCounter > 0 {
				m.anim.IdleCounter--
				display = "standing"
			} else {
				player.IsIdle = true
				display = "idle"
			}
		}
	}

	if m.state.Current != cfg.StateStanding || player.Delta.X != 0 {
		player.IsIdle = false
		m.anim.IdleCounter = cfg.Player.IdleTime
	}

	if m.anim.Counter == 0 {
		m.anim.Frame = playerAnimation(display).NextFrame(m.anim.Frame + 1)
		m.anim.Counter = cfg.Player.FramesPerFrame
	} else {
		m.anim.Counter--
	}
}

func playerAnimation(display string) cfg.AnimationDef {
	def, ok := cfg.PlayerAnimations[display]
	if !ok {
		panic(fmt.Sprintf("no player animation for %q", display))
	}
	return def
}
