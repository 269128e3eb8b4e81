package config

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi/ecs"
)

// Default is the ECS layer every gameplay entity is spawned on.
const Default ecs.LayerID = 0

// Config holds the host window size used by the debug view.
type Config struct {
	Width  int
	Height int
}

// BoostConfig contains the jetpack fuel model
type BoostConfig struct {
	Force            float64 `yaml:"force"`
	Capacity         float64 `yaml:"capacity"`
	UsageRate        float64 `yaml:"usageRate"`        // fuel per second while boosting
	RegenerationRate float64 `yaml:"regenerationRate"` // fuel per second while idle
}

// PlayerConfig contains all player-related configuration values
type PlayerConfig struct {
	// Physics
	Mass                  float64 `yaml:"mass"`
	Friction              float64 `yaml:"friction"`
	Radius                float64 `yaml:"radius"`
	LinearDamping         float64 `yaml:"linearDamping"`
	ContactSkin           float64 `yaml:"contactSkin"`
	ContactForceThreshold float64 `yaml:"contactForceThreshold"`
	ProximitySensorRadius float64 `yaml:"proximitySensorRadius"`

	// Movement
	VelocityLimit           float64 `yaml:"velocityLimit"`
	VelocityDamping         float64 `yaml:"velocityDamping"` // multiplier applied while over the limit
	HorizontalMovementForce float64 `yaml:"horizontalMovementForce"`
	JumpForce               float64 `yaml:"jumpForce"`
	WallJumpForce           float64 `yaml:"wallJumpForce"`
	WallJumpHorizontalForce float64 `yaml:"wallJumpHorizontalForce"` // configured, not applied
	RayLength               float64 `yaml:"rayLength"`

	Spawn mgl64.Vec3 `yaml:"spawn"`

	Boost BoostConfig `yaml:"boost"`

	// Visuals
	WalkClip          string  `yaml:"walkClip"`
	WalkTimeScale     float64 `yaml:"walkTimeScale"` // per unit of horizontal speed
	AirTimeScale      float64 `yaml:"airTimeScale"`
	AirTimeScaleMax   float64 `yaml:"airTimeScaleMax"`
	VisualLambda      float64 `yaml:"visualLambda"`
	YawDegrees        float64 `yaml:"yawDegrees"`
	TiltBias          float64 `yaml:"tiltBias"`
	TiltPerVelocity   float64 `yaml:"tiltPerVelocity"`
	IndicatorFull     float64 `yaml:"indicatorFull"` // boost indicator scale when full and boosting
	IndicatorIdle     float64 `yaml:"indicatorIdle"` // boost indicator scale when full and idle
	JetpackLambda     float64 `yaml:"jetpackLambda"`
	JetpackSilenceVol float64 `yaml:"jetpackSilenceVol"`
}

// EnemyConfig contains the patrolling enemy tuning
type EnemyConfig struct {
	Mass                    float64 `yaml:"mass"`
	Friction                float64 `yaml:"friction"`
	Radius                  float64 `yaml:"radius"`
	LinearDamping           float64 `yaml:"linearDamping"`
	HorizontalMovementForce float64 `yaml:"horizontalMovementForce"`
	RayLength               float64 `yaml:"rayLength"`
	YawDegrees              float64 `yaml:"yawDegrees"`
	TiltBias                float64 `yaml:"tiltBias"`
	TiltPerVelocity         float64 `yaml:"tiltPerVelocity"`
	VisualLambda            float64 `yaml:"visualLambda"`
}

// BlockConfig contains the moveable block tuning
type BlockConfig struct {
	Density               float64 `yaml:"density"`
	Friction              float64 `yaml:"friction"`
	Restitution           float64 `yaml:"restitution"`
	LinearDamping         float64 `yaml:"linearDamping"`
	AngularDamping        float64 `yaml:"angularDamping"`
	ContactForceThreshold float64 `yaml:"contactForceThreshold"`
	MinHalfExtent         float64 `yaml:"minHalfExtent"`
	Inset                 float64 `yaml:"inset"` // shrink applied to the collider half extent
	StartLift             float64 `yaml:"startLift"`
}

// GrappleConfig contains the grapple graph tuning
type GrappleConfig struct {
	Range               float64 `yaml:"range"`
	MaxInstances        int     `yaml:"maxInstances"`
	FixedStiffness      float64 `yaml:"fixedStiffness"`
	MassStiffnessFactor float64 `yaml:"massStiffnessFactor"`
	MassStiffnessBias   float64 `yaml:"massStiffnessBias"`
	OriginJitter        float64 `yaml:"originJitter"` // total width of the source-side anchor jitter
}

// SpringConfig contains the spring link tuning
type SpringConfig struct {
	RestLength       float64 `yaml:"restLength"`
	Damping          float64 `yaml:"damping"`
	GrowDuration     float64 `yaml:"growDuration"` // seconds for the stretch-in to complete
	ThicknessFalloff float64 `yaml:"thicknessFalloff"`
	MinThickness     float64 `yaml:"minThickness"`
}

// CameraConfig contains the follow camera tuning
type CameraConfig struct {
	FollowDistance float64    `yaml:"followDistance"`
	VerticalOffset float64    `yaml:"verticalOffset"`
	RenderDistance float64    `yaml:"renderDistance"`
	Fov            float64    `yaml:"fov"` // vertical, degrees
	Near           float64    `yaml:"near"`
	Start          mgl64.Vec3 `yaml:"start"`
}

// LevelConfig contains level construction and outcome tuning
type LevelConfig struct {
	TerrainFriction float64    `yaml:"terrainFriction"`
	FogNearOffset   float64    `yaml:"fogNearOffset"`
	SkyGlowHeight   float64    `yaml:"skyGlowHeight"`
	SkyGlowDepth    float64    `yaml:"skyGlowDepth"`
	BatchMaterial   string     `yaml:"batchMaterial"`
	CullCellSize    int        `yaml:"cullCellSize"`
	EnemiesLethal   bool       `yaml:"enemiesLethal"`
	DefaultFog      color.RGBA `yaml:"defaultFog"`
}

// ContactAudioConfig contains the contact driven audio tuning
type ContactAudioConfig struct {
	PlayerHitScale   float64 `yaml:"playerHitScale"`
	WoodHitScale     float64 `yaml:"woodHitScale"`
	DragMinSpeed     float64 `yaml:"dragMinSpeed"`
	DragScale        float64 `yaml:"dragScale"`
	DragLambda       float64 `yaml:"dragLambda"`
	SilenceThreshold float64 `yaml:"silenceThreshold"`
	GrappleVolume    float64 `yaml:"grappleVolume"`
	GrappleDetune    float64 `yaml:"grappleDetune"`
	GrappleRateMin   float64 `yaml:"grappleRateMin"`
	GrappleRateRange float64 `yaml:"grappleRateRange"`
}

// TickerConfig contains the fixed-step loop settings
type TickerConfig struct {
	TickRate int     `yaml:"tickRate"`
	MaxDelta float64 `yaml:"maxDelta"` // seconds
}

// PhysicsConfig contains the physics world settings
type PhysicsConfig struct {
	Gravity mgl64.Vec3 `yaml:"gravity"`
}

// Global configuration instances
var C *Config
var Player PlayerConfig
var Enemy EnemyConfig
var Block BlockConfig
var Grapple GrappleConfig
var Spring SpringConfig
var Camera CameraConfig
var Level LevelConfig
var ContactAudio ContactAudioConfig
var Ticker TickerConfig
var Physics PhysicsConfig

// Direction constants for facing
const (
	DirectionLeft  = -1.0
	DirectionRight = 1.0
)

func init() {
	C = &Config{
		Width:  960,
		Height: 540,
	}

	Physics = PhysicsConfig{
		Gravity: mgl64.Vec3{0, -30, 0},
	}

	Ticker = TickerConfig{
		TickRate: 60,
		MaxDelta: 0.1,
	}

	Player = PlayerConfig{
		Mass:                  5,
		Friction:              0.25,
		Radius:                0.2,
		LinearDamping:         1,
		ContactSkin:           0.01,
		ContactForceThreshold: 300,
		ProximitySensorRadius: 2,

		VelocityLimit:           10,
		VelocityDamping:         0.9,
		HorizontalMovementForce: 100,
		JumpForce:               40,
		WallJumpForce:           15,
		WallJumpHorizontalForce: 35,
		RayLength:               0.6,
		Spawn:                   mgl64.Vec3{0, 1, 0},

		Boost: BoostConfig{
			Force:            110,
			Capacity:         7000,
			UsageRate:        10000,
			RegenerationRate: 10000,
		},

		WalkClip:          "walk",
		WalkTimeScale:     0.8,
		AirTimeScale:      0.1,
		AirTimeScaleMax:   0.2,
		VisualLambda:      10,
		YawDegrees:        70,
		TiltBias:          0.1,
		TiltPerVelocity:   -0.03,
		IndicatorFull:     5,
		IndicatorIdle:     0.5,
		JetpackLambda:     20,
		JetpackSilenceVol: 0.01,
	}

	Enemy = EnemyConfig{
		Mass:                    0.5,
		Friction:                0.1,
		Radius:                  0.2,
		LinearDamping:           0.2,
		HorizontalMovementForce: 2.5,
		RayLength:               0.45,
		YawDegrees:              70,
		TiltBias:                0.2,
		TiltPerVelocity:         0.05,
		VisualLambda:            10,
	}

	Block = BlockConfig{
		Density:               0.5,
		Friction:              0.2,
		Restitution:           0,
		LinearDamping:         0.3,
		AngularDamping:        0.3,
		ContactForceThreshold: 300,
		MinHalfExtent:         0.1,
		Inset:                 0.2,
		StartLift:             1,
	}

	Grapple = GrappleConfig{
		Range:               9,
		MaxInstances:        4,
		FixedStiffness:      10,
		MassStiffnessFactor: 20,
		MassStiffnessBias:   0.1,
		OriginJitter:        0.4,
	}

	Spring = SpringConfig{
		RestLength:       1,
		Damping:          0.2,
		GrowDuration:     0.1,
		ThicknessFalloff: 0.1,
		MinThickness:     0.4,
	}

	Camera = CameraConfig{
		FollowDistance: 45,
		VerticalOffset: 1,
		RenderDistance: 95,
		Fov:            20,
		Near:           0.1,
		Start:          mgl64.Vec3{0, 3, 45},
	}

	Level = LevelConfig{
		TerrainFriction: 30,
		FogNearOffset:   25,
		SkyGlowHeight:   15,
		SkyGlowDepth:    -60,
		BatchMaterial:   "gradient material",
		CullCellSize:    4,
		EnemiesLethal:   false,
		DefaultFog:      color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}

	ContactAudio = ContactAudioConfig{
		PlayerHitScale:   0.0003,
		WoodHitScale:     0.002,
		DragMinSpeed:     0.1,
		DragScale:        0.1,
		DragLambda:       20,
		SilenceThreshold: 0.01,
		GrappleVolume:    0.7,
		GrappleDetune:    1000,
		GrappleRateMin:   0.75,
		GrappleRateRange: 0.5,
	}
}
