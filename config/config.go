package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lixenwraith/flag-arena/engine"
	"github.com/lixenwraith/flag-arena/physics"
	"github.com/lixenwraith/flag-arena/vmath"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid configuration")

// EnvPrefix is prepended to environment overrides, e.g. FLAG_ARENA_RING_GAPCOUNT
const EnvPrefix = "FLAG_ARENA"

// ArenaConfig is the play area and frame pacing
type ArenaConfig struct {
	Width   float64 `mapstructure:"width" toml:"width"`
	Height  float64 `mapstructure:"height" toml:"height"`
	FPS     int     `mapstructure:"fps" toml:"fps"`
	MaxStep float64 `mapstructure:"maxStep" toml:"maxStep"` // dt cap in seconds
}

// RingConfig is the containing ring; angles are in degrees
type RingConfig struct {
	Radius            float64 `mapstructure:"radius" toml:"radius"`
	Thickness         float64 `mapstructure:"thickness" toml:"thickness"`
	GapCount          int     `mapstructure:"gapCount" toml:"gapCount"`
	GapDegrees        float64 `mapstructure:"gapDegrees" toml:"gapDegrees"`
	RotationDegPerSec float64 `mapstructure:"rotationDegPerSec" toml:"rotationDegPerSec"`
}

// PhysicsConfig is the free-body regime after escape
type PhysicsConfig struct {
	Gravity       float64 `mapstructure:"gravity" toml:"gravity"`
	Damping       float64 `mapstructure:"damping" toml:"damping"`
	Restitution   float64 `mapstructure:"restitution" toml:"restitution"`
	StopSpeed     float64 `mapstructure:"stopSpeed" toml:"stopSpeed"`
	FloorFriction float64 `mapstructure:"floorFriction" toml:"floorFriction"`
	FloorY        float64 `mapstructure:"floorY" toml:"floorY"`
	LeftWall      float64 `mapstructure:"leftWall" toml:"leftWall"`
	RightWall     float64 `mapstructure:"rightWall" toml:"rightWall"`
	TopWall       float64 `mapstructure:"topWall" toml:"topWall"`
}

// SpawnConfig is body size and launch parameters
type SpawnConfig struct {
	TargetSize float64 `mapstructure:"targetSize" toml:"targetSize"` // larger flag side after scaling
	Margin     float64 `mapstructure:"margin" toml:"margin"`
	MinSpeed   float64 `mapstructure:"minSpeed" toml:"minSpeed"`
	MaxSpeed   float64 `mapstructure:"maxSpeed" toml:"maxSpeed"`
	Seed       uint64  `mapstructure:"seed" toml:"seed"` // 0 = time based
}

// RoundConfig is the state machine timing
type RoundConfig struct {
	WinSeconds       float64 `mapstructure:"winSeconds" toml:"winSeconds"`
	CountdownSeconds float64 `mapstructure:"countdownSeconds" toml:"countdownSeconds"`
	LastThreshold    int     `mapstructure:"lastThreshold" toml:"lastThreshold"` // "last N" cue, 0 = disabled
}

// AssetsConfig locates flags, sounds and country name overrides
type AssetsConfig struct {
	FlagsDir      string `mapstructure:"flagsDir" toml:"flagsDir"`
	SoundsDir     string `mapstructure:"soundsDir" toml:"soundsDir"`
	CountriesFile string `mapstructure:"countriesFile" toml:"countriesFile"`
}

type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled" toml:"enabled"`
	Volume  float64 `mapstructure:"volume" toml:"volume"` // linear gain, 1 = unchanged
}

type LogConfig struct {
	Debug bool   `mapstructure:"debug" toml:"debug"`
	Dir   string `mapstructure:"dir" toml:"dir"`
	Level string `mapstructure:"level" toml:"level"`
}

// Config is fixed at process start
type Config struct {
	Arena   ArenaConfig   `mapstructure:"arena" toml:"arena"`
	Ring    RingConfig    `mapstructure:"ring" toml:"ring"`
	Physics PhysicsConfig `mapstructure:"physics" toml:"physics"`
	Spawn   SpawnConfig   `mapstructure:"spawn" toml:"spawn"`
	Round   RoundConfig   `mapstructure:"round" toml:"round"`
	Assets  AssetsConfig  `mapstructure:"assets" toml:"assets"`
	Audio   AudioConfig   `mapstructure:"audio" toml:"audio"`
	Log     LogConfig     `mapstructure:"log" toml:"log"`

	Headless bool `mapstructure:"headless" toml:"headless"`
	Rounds   int  `mapstructure:"rounds" toml:"rounds"` // stop after N rounds, 0 = unlimited
}

// Default returns the shipped tuning: a 540x960 portrait arena with one 30° gap
func Default() *Config {
	const width, height = 540.0, 960.0
	radius := math.Floor(min(width, height) * 0.33)
	return &Config{
		Arena: ArenaConfig{Width: width, Height: height, FPS: 60, MaxStep: 0.05},
		Ring: RingConfig{
			Radius:            radius,
			Thickness:         math.Floor(radius * 0.9),
			GapCount:          1,
			GapDegrees:        30,
			RotationDegPerSec: 20,
		},
		Physics: PhysicsConfig{
			Gravity:       260,
			Damping:       0.995,
			Restitution:   0.35,
			StopSpeed:     8,
			FloorFriction: 0.98,
			FloorY:        height - 40,
			LeftWall:      0,
			RightWall:     width,
			TopWall:       0,
		},
		Spawn: SpawnConfig{
			TargetSize: float64(int(radius * 0.18)),
			Margin:     5,
			MinSpeed:   250,
			MaxSpeed:   450,
		},
		Round:  RoundConfig{WinSeconds: 5, CountdownSeconds: 3, LastThreshold: 5},
		Assets: AssetsConfig{FlagsDir: "flags", SoundsDir: ".", CountriesFile: "countries.json"},
		Audio:  AudioConfig{Enabled: true, Volume: 1},
		Log:    LogConfig{Dir: "logs", Level: "info"},
	}
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("arena.width", d.Arena.Width)
	v.SetDefault("arena.height", d.Arena.Height)
	v.SetDefault("arena.fps", d.Arena.FPS)
	v.SetDefault("arena.maxStep", d.Arena.MaxStep)

	v.SetDefault("ring.radius", d.Ring.Radius)
	v.SetDefault("ring.thickness", d.Ring.Thickness)
	v.SetDefault("ring.gapCount", d.Ring.GapCount)
	v.SetDefault("ring.gapDegrees", d.Ring.GapDegrees)
	v.SetDefault("ring.rotationDegPerSec", d.Ring.RotationDegPerSec)

	v.SetDefault("physics.gravity", d.Physics.Gravity)
	v.SetDefault("physics.damping", d.Physics.Damping)
	v.SetDefault("physics.restitution", d.Physics.Restitution)
	v.SetDefault("physics.stopSpeed", d.Physics.StopSpeed)
	v.SetDefault("physics.floorFriction", d.Physics.FloorFriction)
	v.SetDefault("physics.floorY", d.Physics.FloorY)
	v.SetDefault("physics.leftWall", d.Physics.LeftWall)
	v.SetDefault("physics.rightWall", d.Physics.RightWall)
	v.SetDefault("physics.topWall", d.Physics.TopWall)

	v.SetDefault("spawn.targetSize", d.Spawn.TargetSize)
	v.SetDefault("spawn.margin", d.Spawn.Margin)
	v.SetDefault("spawn.minSpeed", d.Spawn.MinSpeed)
	v.SetDefault("spawn.maxSpeed", d.Spawn.MaxSpeed)
	v.SetDefault("spawn.seed", d.Spawn.Seed)

	v.SetDefault("round.winSeconds", d.Round.WinSeconds)
	v.SetDefault("round.countdownSeconds", d.Round.CountdownSeconds)
	v.SetDefault("round.lastThreshold", d.Round.LastThreshold)

	v.SetDefault("assets.flagsDir", d.Assets.FlagsDir)
	v.SetDefault("assets.soundsDir", d.Assets.SoundsDir)
	v.SetDefault("assets.countriesFile", d.Assets.CountriesFile)

	v.SetDefault("audio.enabled", d.Audio.Enabled)
	v.SetDefault("audio.volume", d.Audio.Volume)

	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("log.dir", d.Log.Dir)
	v.SetDefault("log.level", d.Log.Level)

	v.SetDefault("headless", d.Headless)
	v.SetDefault("rounds", d.Rounds)
}

// flagKeys maps command-line flags to config keys
var flagKeys = map[string]string{
	"debug":      "log.debug",
	"log-level":  "log.level",
	"headless":   "headless",
	"rounds":     "rounds",
	"seed":       "spawn.seed",
	"flags-dir":  "assets.flagsDir",
	"sounds-dir": "assets.soundsDir",
	"countries":  "assets.countriesFile",
	"gaps":       "ring.gapCount",
	"fps":        "arena.fps",
}

// NewFlagSet declares the command-line flags understood by Load
func NewFlagSet(name string) *pflag.FlagSet {
	d := Default()
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("config", "c", "", "config file (toml, json or yaml)")
	fs.Bool("dump-config", false, "print the effective configuration as TOML and exit")
	fs.Bool("mute", false, "disable audio")
	fs.Bool("debug", d.Log.Debug, "write debug logs to the log directory")
	fs.String("log-level", d.Log.Level, "log level: trace, debug, info, warn, error")
	fs.Bool("headless", d.Headless, "simulate without a terminal")
	fs.Int("rounds", d.Rounds, "stop after this many completed rounds (0 = unlimited)")
	fs.Uint64("seed", d.Spawn.Seed, "random seed (0 = time based)")
	fs.String("flags-dir", d.Assets.FlagsDir, "directory of <code>.png flag images")
	fs.String("sounds-dir", d.Assets.SoundsDir, "directory of sound clips")
	fs.String("countries", d.Assets.CountriesFile, "country name override file (json)")
	fs.Int("gaps", d.Ring.GapCount, "number of ring gaps")
	fs.Int("fps", d.Arena.FPS, "target frames per second")
	return fs
}

// Load merges defaults, the optional config file, environment and flags
// path may be empty; flags may be nil
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
		if mute, err := flags.GetBool("mute"); err == nil && mute {
			v.Set("audio.enabled", false)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects tunings the physics cannot run with
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Arena.Width > 0 && c.Arena.Height > 0, "arena size must be positive, got %vx%v", c.Arena.Width, c.Arena.Height)
	check(c.Arena.FPS > 0, "arena.fps must be positive, got %d", c.Arena.FPS)
	check(c.Arena.MaxStep > 0, "arena.maxStep must be positive, got %v", c.Arena.MaxStep)
	check(c.Ring.Radius > 0, "ring.radius must be positive, got %v", c.Ring.Radius)
	check(c.Ring.Thickness >= 0 && c.Ring.Thickness <= c.Ring.Radius, "ring.thickness must be within [0, radius], got %v", c.Ring.Thickness)
	check(c.Ring.GapCount >= 0, "ring.gapCount must not be negative, got %d", c.Ring.GapCount)
	check(c.Ring.GapDegrees >= 0 && c.Ring.GapDegrees <= 360, "ring.gapDegrees must be within [0, 360], got %v", c.Ring.GapDegrees)
	check(c.Physics.Damping > 0 && c.Physics.Damping < 1, "physics.damping must be within (0, 1), got %v", c.Physics.Damping)
	check(c.Physics.Restitution > 0 && c.Physics.Restitution < 1, "physics.restitution must be within (0, 1), got %v", c.Physics.Restitution)
	check(c.Physics.FloorFriction > 0 && c.Physics.FloorFriction <= 1, "physics.floorFriction must be within (0, 1], got %v", c.Physics.FloorFriction)
	check(c.Physics.StopSpeed >= 0, "physics.stopSpeed must not be negative, got %v", c.Physics.StopSpeed)
	check(c.Physics.LeftWall < c.Physics.RightWall, "physics.leftWall must be left of rightWall")
	check(c.Physics.TopWall < c.Physics.FloorY, "physics.topWall must be above floorY")
	check(c.Spawn.TargetSize > 0, "spawn.targetSize must be positive, got %v", c.Spawn.TargetSize)
	check(c.Spawn.MinSpeed >= 0 && c.Spawn.MinSpeed <= c.Spawn.MaxSpeed, "spawn speeds must satisfy 0 <= min <= max, got %v..%v", c.Spawn.MinSpeed, c.Spawn.MaxSpeed)
	check(c.Spawn.Margin >= 0, "spawn.margin must not be negative, got %v", c.Spawn.Margin)
	check(c.Round.LastThreshold == 0 || c.Round.LastThreshold >= 2, "round.lastThreshold must be 0 (disabled) or at least 2, got %d", c.Round.LastThreshold)
	check(c.Round.WinSeconds >= 0, "round.winSeconds must not be negative")
	check(c.Round.CountdownSeconds >= 0, "round.countdownSeconds must not be negative")
	check(c.Rounds >= 0, "rounds must not be negative")
	check(c.Audio.Volume >= 0, "audio.volume must not be negative")

	return errors.Join(errs...)
}

// WriteTOML encodes the configuration in a form Load can read back
func (c *Config) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Center is the ring center: the middle of the arena, snapped to whole units
func (c *Config) Center() vmath.Vec2 {
	return vmath.V2(float64(int(c.Arena.Width)/2), float64(int(c.Arena.Height)/2))
}

// InnerRadius is the spawn budget: ring radius minus thickness
func (c *Config) InnerRadius() float64 {
	return c.Ring.Radius - c.Ring.Thickness
}

func (c *Config) RingGeometry() physics.RingGeometry {
	return physics.RingGeometry{
		Center:        c.Center(),
		Radius:        c.Ring.Radius,
		GapHalfWidth:  vmath.Radians(c.Ring.GapDegrees / 2),
		RotationSpeed: vmath.Radians(c.Ring.RotationDegPerSec),
	}
}

func (c *Config) FreeBody() physics.FreeBody {
	return physics.FreeBody{
		Gravity:       c.Physics.Gravity,
		Damping:       c.Physics.Damping,
		Restitution:   c.Physics.Restitution,
		StopSpeed:     c.Physics.StopSpeed,
		FloorFriction: c.Physics.FloorFriction,
		Left:          c.Physics.LeftWall,
		Right:         c.Physics.RightWall,
		Top:           c.Physics.TopWall,
		Floor:         c.Physics.FloorY,
	}
}

func (c *Config) Controller() engine.ControllerConfig {
	return engine.ControllerConfig{
		Ring:              c.RingGeometry(),
		GapCount:          c.Ring.GapCount,
		Free:              c.FreeBody(),
		WinDuration:       c.Round.WinSeconds,
		CountdownDuration: c.Round.CountdownSeconds,
		LastThreshold:     c.Round.LastThreshold,
	}
}

func (c *Config) SpawnArea() engine.SpawnConfig {
	return engine.SpawnConfig{
		Center:      c.Center(),
		SpawnRadius: c.InnerRadius(),
		Margin:      c.Spawn.Margin,
		MinSpeed:    c.Spawn.MinSpeed,
		MaxSpeed:    c.Spawn.MaxSpeed,
		Width:       c.Arena.Width,
		Height:      c.Arena.Height,
	}
}
