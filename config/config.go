package config

import (
	"image/color"

	"github.com/yohamta/donburi/ecs"
)

// Default is the only render layer; renderers run in registration order.
const Default ecs.LayerID = iota

// Config holds general window configuration
type Config struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	TPS    int    `yaml:"tps"`
}

// MovementConfig contains the grid movement constants shared by player and NPCs
type MovementConfig struct {
	Grid    float64 `yaml:"grid"`    // Tile size targets snap to
	Arrival float64 `yaml:"arrival"` // Remaining distance at which an actor snaps onto its target

	// Speeds in world units per second
	Walk     float64 `yaml:"walk"`
	Run      float64 `yaml:"run"`
	Ride     float64 `yaml:"ride"`
	NPCSpeed float64 `yaml:"npcSpeed"`

	// Hitbox relative to the sprite's top-left corner
	HitboxX float64 `yaml:"hitboxX"`
	HitboxY float64 `yaml:"hitboxY"`
	HitboxW float64 `yaml:"hitboxW"`
	HitboxH float64 `yaml:"hitboxH"`

	// FreeMove drives the player continuously instead of one tile per input
	FreeMove bool `yaml:"freeMove"`
}

// NPCConfig contains autonomous actor behaviour
type NPCConfig struct {
	PatrolProperty string  `yaml:"patrolProperty"` // Object property naming a polyline or object to walk to
	PatrolPause    float64 `yaml:"patrolPause"`    // Seconds spent idle at each patrol end
	MaxPathSteps   int     `yaml:"maxPathSteps"`   // Routes longer than this are dropped
}

// CameraConfig contains camera behavior configuration
type CameraConfig struct {
	// Offset from the actor's top-left to the point the camera centres on
	FocusX float64 `yaml:"focusX"`
	FocusY float64 `yaml:"focusY"`
}

// MapConfig contains map loading conventions
type MapConfig struct {
	AssetRoot string `yaml:"assetRoot"` // Directory maps and sprites are read from; empty uses the bundled assets
	Start     string `yaml:"start"`     // Map path within the asset root

	// Reserved layer and object names
	CollisionLayer string `yaml:"collisionLayer"`
	PlayerLayer    string `yaml:"playerLayer"`
	PlayerSpawn    string `yaml:"playerSpawn"`
	NPCLayer       string `yaml:"npcLayer"`
	NPCPrefix      string `yaml:"npcPrefix"`
	SpriteProperty string `yaml:"spriteProperty"`
	FacingProperty string `yaml:"facingProperty"`

	// Actors are drawn between BackgroundGroups and ForegroundGroups. Maps
	// without those groups split around ActorLayer instead.
	ActorLayer       string   `yaml:"actorLayer"`
	BackgroundGroups []string `yaml:"backgroundGroups"`
	ForegroundGroups []string `yaml:"foregroundGroups"`

	// The player sprite is placed at PlayerSpawn + offset
	SpawnOffsetX float64 `yaml:"spawnOffsetX"`
	SpawnOffsetY float64 `yaml:"spawnOffsetY"`

	CellSize int `yaml:"cellSize"` // Broad-phase and path grid cell size
}

// SpriteConfig contains the default character sheet layout
type SpriteConfig struct {
	FrameWidth  int    `yaml:"frameWidth"`
	FrameHeight int    `yaml:"frameHeight"`
	FrameMS     int    `yaml:"frameMS"` // Walk frame duration
	PlayerSheet string `yaml:"playerSheet"`
}

// TransitionConfig contains the map fade-in configuration
type TransitionConfig struct {
	FadeSeconds float64    `yaml:"fadeSeconds"`
	Color       color.RGBA `yaml:"color"`
}

// WatchConfig contains hot reload configuration
type WatchConfig struct {
	Enabled    bool `yaml:"enabled"`
	DebounceMS int  `yaml:"debounceMS"`
}

// DebugConfig contains debug overlay configuration
type DebugConfig struct {
	Enabled        bool       `yaml:"enabled"`
	CollisionColor color.RGBA `yaml:"collisionColor"`
	PolygonColor   color.RGBA `yaml:"polygonColor"`
	HitboxColor    color.RGBA `yaml:"hitboxColor"`
	PathColor      color.RGBA `yaml:"pathColor"`
	HUDColor       color.RGBA `yaml:"hudColor"`
	HUDFontSize    float64    `yaml:"hudFontSize"`
}

// Global configuration instances
var C *Config
var Movement MovementConfig
var NPC NPCConfig
var Camera CameraConfig
var Map MapConfig
var Sprite SpriteConfig
var Transition TransitionConfig
var Watch WatchConfig
var Debug DebugConfig

// AppName keys the per-user preference store.
const AppName = "tilewalk"

var (
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black  = color.RGBA{A: 255}
	Grey   = color.RGBA{R: 100, G: 100, B: 100, A: 255}
	Cyan   = color.RGBA{G: 255, B: 255, A: 255}
	Blue   = color.RGBA{B: 255, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, A: 255}
)

func init() {
	Reset()
}

// Reset restores every configuration value to its built-in default.
func Reset() {
	C = &Config{
		Width:  320,
		Height: 240,
		Title:  "tilewalk",
		TPS:    60,
	}

	Movement = MovementConfig{
		Grid:     16,
		Arrival:  1,
		Walk:     50,
		Run:      100,
		Ride:     160,
		NPCSpeed: 30,
		HitboxX:  5,
		HitboxY:  24,
		HitboxW:  15,
		HitboxH:  8,
	}

	NPC = NPCConfig{
		PatrolProperty: "patrol",
		PatrolPause:    1,
		MaxPathSteps:   256,
	}

	Camera = CameraConfig{
		FocusX: 12,
		FocusY: 16,
	}

	Map = MapConfig{
		AssetRoot:        "",
		Start:            "maps/town.tmx",
		CollisionLayer:   "CollisionObject",
		PlayerLayer:      "PlayerObject",
		PlayerSpawn:      "PlayerSpawn",
		NPCLayer:         "PNJObject",
		NPCPrefix:        "PNJ",
		SpriteProperty:   "sprite",
		FacingProperty:   "direction",
		ActorLayer:       "PlayerObject",
		BackgroundGroups: []string{"Background", "PremierPlan"},
		ForegroundGroups: []string{"SecondPlan"},
		SpawnOffsetX:     -12,
		SpawnOffsetY:     -32,
		CellSize:         16,
	}

	Sprite = SpriteConfig{
		FrameWidth:  25,
		FrameHeight: 32,
		FrameMS:     150,
		PlayerSheet: "sprites/player.png",
	}

	Transition = TransitionConfig{
		FadeSeconds: 0.5,
		Color:       Black,
	}

	Watch = WatchConfig{
		DebounceMS: 100,
	}

	Debug = DebugConfig{
		CollisionColor: Grey,
		PolygonColor:   Cyan,
		HitboxColor:    Blue,
		PathColor:      Yellow,
		HUDColor:       White,
		HUDFontSize:    8,
	}

	Window = defaultWindow()
	Input = defaultInput()
}
