// Package audio defines the sound playback contract used by gameplay and a
// pooled, master-volume aware Manager that implements it.
package audio

import cfg "github.com/automoto/skyhook/config"

// Controls manipulates one playing instance of a sound.
type Controls interface {
	SetVolume(volume float64)
	Volume() float64
	SetPlaybackRate(rate float64)
	SetDetune(cents float64)
	SetLoop(loop bool)
	Stop()
	IsPlaying() bool
}

// Provider plays named sounds.
type Provider interface {
	// Play starts or resumes an instance and returns controls bound to it.
	Play(id cfg.SoundID) Controls
	// Stop stops every instance of a sound.
	Stop(id cfg.SoundID)
	StopAll()
}

type nopControls struct{}

func (nopControls) SetVolume(float64)       {}
func (nopControls) Volume() float64         { return 0 }
func (nopControls) SetPlaybackRate(float64) {}
func (nopControls) SetDetune(float64)       {}
func (nopControls) SetLoop(bool)            {}
func (nopControls) Stop()                   {}
func (nopControls) IsPlaying() bool         { return false }

// Silent is a Provider that plays nothing.
type Silent struct{}

func (Silent) Play(cfg.SoundID) Controls { return nopControls{} }
func (Silent) Stop(cfg.SoundID)          {}
func (Silent) StopAll()                  {}
