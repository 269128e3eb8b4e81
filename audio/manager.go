package audio

import (
	cfg "github.com/automoto/skyhook/config"
	"github.com/automoto/skyhook/shared/gamemath"
)

// Manager is a Provider backed by one Pool per sound. Volumes set through its
// controls are scaled by the master volume.
type Manager struct {
	pools  map[cfg.SoundID]*Pool
	master float64
	last   map[cfg.SoundID]*Instance
}

var _ Provider = (*Manager)(nil)

func NewManager(defs map[cfg.SoundID]cfg.SoundDef, masterVolume float64) *Manager {
	m := &Manager{
		pools:  make(map[cfg.SoundID]*Pool, len(defs)),
		master: gamemath.Clamp(masterVolume, 0, 1),
		last:   make(map[cfg.SoundID]*Instance),
	}
	for id, def := range defs {
		m.pools[id] = NewPool(def.MaxInstances, def.Volume, def.Loop)
	}
	return m
}

type masterControls struct {
	*Instance
	m *Manager
}

func (c masterControls) SetVolume(volume float64) {
	c.Instance.SetVolume(c.m.master * volume)
}

func (m *Manager) Play(id cfg.SoundID) Controls {
	p, ok := m.pools[id]
	if !ok {
		return nopControls{}
	}
	i := p.Play()
	m.last[id] = i
	return masterControls{Instance: i, m: m}
}

func (m *Manager) Stop(id cfg.SoundID) {
	if p, ok := m.pools[id]; ok {
		p.StopAll()
	}
}

func (m *Manager) StopAll() {
	for _, p := range m.pools {
		p.StopAll()
	}
}

// SetMasterVolume clamps volume to [0,1]. Voices already playing keep their
// gain until their controls set a new volume.
func (m *Manager) SetMasterVolume(volume float64) {
	m.master = gamemath.Clamp(volume, 0, 1)
}

func (m *Manager) MasterVolume() float64 {
	return m.master
}

// Last returns the voice most recently handed out for a sound.
func (m *Manager) Last(id cfg.SoundID) (*Instance, bool) {
	i, ok := m.last[id]
	return i, ok
}

// Pool returns the pool backing a sound.
func (m *Manager) Pool(id cfg.SoundID) (*Pool, bool) {
	p, ok := m.pools[id]
	return p, ok
}
