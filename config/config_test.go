package config

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_MatchesShippedTuning(t *testing.T) {
	c := Default()

	assert.Equal(t, 178.0, c.Ring.Radius)
	assert.Equal(t, 160.0, c.Ring.Thickness)
	assert.Equal(t, 18.0, c.InnerRadius())
	assert.Equal(t, 32.0, c.Spawn.TargetSize)
	assert.Equal(t, 920.0, c.Physics.FloorY)
	assert.Equal(t, 270.0, c.Center().X)
	assert.Equal(t, 480.0, c.Center().Y)
	require.NoError(t, c.Validate())
}

func TestLoad_NoSources(t *testing.T) {
	c, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.toml")
	content := `
rounds = 4

[ring]
gapCount = 3
gapDegrees = 40

[physics]
gravity = 500
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Rounds)
	assert.Equal(t, 3, c.Ring.GapCount)
	assert.Equal(t, 40.0, c.Ring.GapDegrees)
	assert.Equal(t, 500.0, c.Physics.Gravity)
	// untouched keys keep defaults
	assert.Equal(t, 0.995, c.Physics.Damping)
	assert.Equal(t, 178.0, c.Ring.Radius)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"), nil)
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("FLAG_ARENA_RING_GAPCOUNT", "2")
	t.Setenv("FLAG_ARENA_HEADLESS", "true")

	c, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Ring.GapCount)
	assert.True(t, c.Headless)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ring]\ngapCount = 3\n"), 0o644))

	fs := NewFlagSet("test")
	require.NoError(t, fs.Parse([]string{"--gaps=2", "--seed=7", "--mute", "--headless", "--rounds=9"}))

	c, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Ring.GapCount)
	assert.Equal(t, uint64(7), c.Spawn.Seed)
	assert.False(t, c.Audio.Enabled)
	assert.True(t, c.Headless)
	assert.Equal(t, 9, c.Rounds)
}

func TestLoad_UnchangedFlagsKeepFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ring]\ngapCount = 3\n"), 0o644))

	fs := NewFlagSet("test")
	require.NoError(t, fs.Parse(nil))

	c, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Ring.GapCount)
	assert.True(t, c.Audio.Enabled)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.toml")
	require.NoError(t, os.WriteFile(path, []byte("[physics]\ndamping = 1.5\n"), 0o644))

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Arena.Width = 0 }},
		{"zero fps", func(c *Config) { c.Arena.FPS = 0 }},
		{"thickness above radius", func(c *Config) { c.Ring.Thickness = c.Ring.Radius + 1 }},
		{"negative gaps", func(c *Config) { c.Ring.GapCount = -1 }},
		{"gap wider than circle", func(c *Config) { c.Ring.GapDegrees = 400 }},
		{"restitution of one", func(c *Config) { c.Physics.Restitution = 1 }},
		{"walls crossed", func(c *Config) { c.Physics.LeftWall = c.Physics.RightWall }},
		{"speeds reversed", func(c *Config) { c.Spawn.MinSpeed = c.Spawn.MaxSpeed + 1 }},
		{"negative rounds", func(c *Config) { c.Rounds = -1 }},
		{"negative margin", func(c *Config) { c.Spawn.Margin = -1 }},
		{"threshold of one", func(c *Config) { c.Round.LastThreshold = 1 }},
		{"negative threshold", func(c *Config) { c.Round.LastThreshold = -3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestValidate_ThresholdZeroDisables(t *testing.T) {
	c := Default()
	c.Round.LastThreshold = 0
	assert.NoError(t, c.Validate())
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	c := Default()
	c.Arena.FPS = 0
	c.Ring.GapCount = -1

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arena.fps")
	assert.Contains(t, err.Error(), "ring.gapCount")
}

func TestWriteTOML_LoadsBack(t *testing.T) {
	c := Default()
	c.Ring.GapCount = 4
	c.Rounds = 2

	var buf bytes.Buffer
	require.NoError(t, c.WriteTOML(&buf))
	assert.Contains(t, buf.String(), "[ring]")

	path := filepath.Join(t.TempDir(), "dump.toml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	loaded, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}

func TestConversions(t *testing.T) {
	c := Default()

	geom := c.RingGeometry()
	assert.InDelta(t, 15*math.Pi/180, geom.GapHalfWidth, 1e-12)
	assert.InDelta(t, 20*math.Pi/180, geom.RotationSpeed, 1e-12)
	assert.Equal(t, c.Center(), geom.Center)

	free := c.FreeBody()
	assert.Equal(t, 540.0, free.Right)
	assert.Equal(t, 920.0, free.Floor)

	ctrl := c.Controller()
	assert.Equal(t, 1, ctrl.GapCount)
	assert.Equal(t, 5.0, ctrl.WinDuration)
	assert.Equal(t, 3.0, ctrl.CountdownDuration)
	assert.Equal(t, 5, ctrl.LastThreshold)

	area := c.SpawnArea()
	assert.Equal(t, 18.0, area.SpawnRadius)
	assert.Equal(t, 960.0, area.Height)
}
