package config

import "github.com/automoto/skelly/shared/geom"

// PlayerConfig contains player movement tuning. Speeds and
// accelerations are subpixels per frame; times are frames.
type PlayerConfig struct {
	// Horizontal speed
	TargetWalkSpeed   geom.Subpixels
	WalkAcceleration  geom.Subpixels
	WalkDeceleration  geom.Subpixels
	SlideDeceleration geom.Subpixels

	// Vertical speed
	CoyoteTime       int // How long to hover in the air before officially falling.
	JumpGraceTime    int // How long to remember jump was pressed while falling.
	JumpInitialSpeed geom.Subpixels
	JumpAcceleration geom.Subpixels
	FallAcceleration geom.Subpixels
	MaxGravity       geom.Subpixels

	// Wall sliding
	WallSlideSpeed          geom.Subpixels
	WallJumpHorizontalSpeed geom.Subpixels
	WallJumpVerticalSpeed   geom.Subpixels
	WallStickTime           int
	WallSlideTime           int

	// Appearance
	IdleTime       int // How long before showing the idle animation.
	FramesPerFrame int // How fast to animate the player.

	// Spawn position when the map has no spawn object
	DefaultX geom.Pixels
	DefaultY geom.Pixels
}

// PlatformConfig contains defaults shared by the platform variants.
type PlatformConfig struct {
	DefaultSpeed         geom.Pixels // moving platforms
	DefaultConveyorSpeed geom.Pixels
	SpeedDivisor         geom.Subpixels // object speeds are sixteenths of a pixel
}

// SpringConfig contains spring platform tuning.
type SpringConfig struct {
	Steps          int // This should match the spring animation.
	StallFrames    int // How long the spring stays at the bottom.
	Speed          geom.Subpixels
	BounceDuration int // How long to rise when bouncing passively.
	BounceVelocity geom.Subpixels
	JumpDuration   int // How long to rise when jumping off the spring.
	JumpVelocity   geom.Subpixels
}

// BagelConfig contains falling platform tuning.
type BagelConfig struct {
	WaitTime            int
	FallTime            int
	MaxGravity          geom.Subpixels
	GravityAcceleration geom.Subpixels
}

// ButtonConfig contains button platform tuning.
type ButtonConfig struct {
	Delay    int // How slowly the button goes down.
	MaxLevel int
}

// DoorConfig contains door animation tuning.
type DoorConfig struct {
	Speed           int
	ClosingFrames   int // This should match the door animation frames.
	UnlockingFrames int
}

// ToastConfig controls the text bar that pops down from the top.
type ToastConfig struct {
	Time   int
	Height geom.Pixels
	Speed  geom.Subpixels
}

// ViewConfig contains camera and lighting tuning.
type ViewConfig struct {
	PanSpeed          geom.Subpixels // How quickly the viewport pans to where it wants to be.
	MaxLights         int
	PlayerLightRadius geom.Pixels
}

var (
	Player   PlayerConfig
	Platform PlatformConfig
	Spring   SpringConfig
	Bagel    BagelConfig
	Button   ButtonConfig
	Door     DoorConfig
	Toast    ToastConfig
	View     ViewConfig
)

func init() {
	Player = PlayerConfig{
		TargetWalkSpeed:   geom.Pixels(2).AsSubpixels(),
		WalkAcceleration:  2,
		WalkDeceleration:  6,
		SlideDeceleration: 1,

		CoyoteTime:       6,
		JumpGraceTime:    12,
		JumpInitialSpeed: geom.Pixels(3).AsSubpixels(),
		JumpAcceleration: 4,
		FallAcceleration: 10,
		MaxGravity:       geom.Pixels(2).AsSubpixels(),

		WallSlideSpeed:          8,
		WallJumpHorizontalSpeed: geom.Pixels(3).AsSubpixels(),
		WallJumpVerticalSpeed:   geom.Pixels(3).AsSubpixels(),
		WallStickTime:           3,
		WallSlideTime:           60,

		IdleTime:       240,
		FramesPerFrame: 4,

		DefaultX: 8,
		DefaultY: 8,
	}

	Platform = PlatformConfig{
		DefaultSpeed:         1,
		DefaultConveyorSpeed: 24,
		SpeedDivisor:         16,
	}

	Spring = SpringConfig{
		Steps:          4,
		StallFrames:    10,
		Speed:          geom.Pixels(1).AsSubpixels(),
		BounceDuration: 30,
		BounceVelocity: geom.Pixels(3).AsSubpixels(),
		JumpDuration:   10,
		JumpVelocity:   156,
	}

	Bagel = BagelConfig{
		WaitTime:            30,
		FallTime:            150,
		MaxGravity:          22,
		GravityAcceleration: 2,
	}

	Button = ButtonConfig{
		Delay:    2,
		MaxLevel: 6, // There are 4 frames of animation.
	}

	Door = DoorConfig{
		Speed:           3,
		ClosingFrames:   9,
		UnlockingFrames: 9,
	}

	Toast = ToastConfig{
		Time:   150,
		Height: 12,
		Speed:  16,
	}

	View = ViewConfig{
		PanSpeed:          geom.Pixels(5).AsSubpixels(),
		MaxLights:         32,
		PlayerLightRadius: 120,
	}
}
