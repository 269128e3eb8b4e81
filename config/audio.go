package config

// SoundID represents a logical sound effect
type SoundID int

const (
	SoundNone SoundID = iota
	// Player sounds
	SoundJetpackBurst
	SoundJetpackLoop
	SoundFootsteps
	SoundPlayerHit
	// Grapple sounds
	SoundGrapple
	// Block sounds
	SoundWoodHit
	SoundDrop
	SoundBlockDrag
)

// String returns the asset name of the sound.
func (s SoundID) String() string {
	if def, ok := Sound.Defs[s]; ok {
		return def.Name
	}
	return "none"
}

// SoundDef describes how a sound is pooled and played.
type SoundDef struct {
	Name         string
	Path         string
	MaxInstances int
	Volume       float64
	Loop         bool
}

// AudioConfig contains audio-related configuration values
type AudioConfig struct {
	MasterVolume float64 `yaml:"masterVolume"`
}

// SoundConfig maps sound IDs to their definitions
type SoundConfig struct {
	Defs map[SoundID]SoundDef
}

var Audio AudioConfig
var Sound SoundConfig

func init() {
	Audio = AudioConfig{
		MasterVolume: 1,
	}

	Sound = SoundConfig{
		Defs: map[SoundID]SoundDef{
			SoundJetpackBurst: {Name: "jetpackBurst", Path: "audio/jetpack-burst.mp3", MaxInstances: 5, Volume: 1},
			SoundJetpackLoop:  {Name: "jetpackLoop", Path: "audio/jetpack-loop.mp3", MaxInstances: 1, Volume: 1, Loop: true},
			SoundFootsteps:    {Name: "footsteps", Path: "audio/footsteps.mp3", MaxInstances: 1, Volume: 1, Loop: true},
			SoundPlayerHit:    {Name: "playerHit", Path: "audio/player-hit.mp3", MaxInstances: 5, Volume: 1},
			SoundGrapple:      {Name: "grapple", Path: "audio/grapple.mp3", MaxInstances: 5, Volume: 1},
			SoundWoodHit:      {Name: "woodHit", Path: "audio/wood-hit.mp3", MaxInstances: 5, Volume: 1},
			SoundDrop:         {Name: "drop", Path: "audio/drop.mp3", MaxInstances: 1, Volume: 1},
			SoundBlockDrag:    {Name: "blockDrag", Path: "audio/scrape.mp3", MaxInstances: 1, Volume: 1, Loop: true},
		},
	}
}
