package audio

import (
	"testing"

	cfg "github.com/automoto/skyhook/config"
)

func testDefs() map[cfg.SoundID]cfg.SoundDef {
	return map[cfg.SoundID]cfg.SoundDef{
		cfg.SoundWoodHit:     {Name: "woodHit", MaxInstances: 3, Volume: 1},
		cfg.SoundJetpackLoop: {Name: "jetpackLoop", MaxInstances: 1, Volume: 0.8, Loop: true},
	}
}

func TestPoolGrowsUpToMax(t *testing.T) {
	p := NewPool(3, 1, false)

	first := p.Play()
	second := p.Play()
	third := p.Play()
	fourth := p.Play()

	if len(p.Instances()) != 3 {
		t.Fatalf("expected 3 voices, got %d", len(p.Instances()))
	}
	if first == second || second == third {
		t.Errorf("expected busy voices to hand out new ones")
	}
	if fourth != third {
		t.Errorf("expected a full pool to reuse the current voice")
	}
	if fourth.Starts != 1 {
		t.Errorf("expected a busy voice not to restart, got %d starts", fourth.Starts)
	}
}

func TestPoolRestartsIdleVoice(t *testing.T) {
	p := NewPool(0, 1, true)
	i := p.Play()
	p.StopAll()
	if i.IsPlaying() {
		t.Fatalf("expected StopAll to stop the voice")
	}

	if again := p.Play(); again != i || !i.Playing || i.Starts != 2 {
		t.Errorf("expected the same voice restarted, got %+v", i)
	}
	if !i.Loop {
		t.Errorf("expected the loop flag from the pool")
	}
}

func TestManagerMasterVolume(t *testing.T) {
	tests := []struct {
		name   string
		master float64
		volume float64
		want   float64
	}{
		{"Full master", 1, 0.5, 0.5},
		{"Half master", 0.5, 0.5, 0.25},
		{"Master clamped high", 4, 0.5, 0.5},
		{"Master clamped low", -1, 0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(testDefs(), tt.master)
			m.Play(cfg.SoundWoodHit).SetVolume(tt.volume)

			i, ok := m.Last(cfg.SoundWoodHit)
			if !ok {
				t.Fatalf("expected a last voice")
			}
			if i.Gain != tt.want {
				t.Errorf("expected gain %v, got %v", tt.want, i.Gain)
			}
		})
	}
}

func TestManagerUnknownSound(t *testing.T) {
	m := NewManager(testDefs(), 1)
	c := m.Play(cfg.SoundGrapple)
	c.SetVolume(1)

	if c.IsPlaying() {
		t.Errorf("expected an unknown sound to play nothing")
	}
	if _, ok := m.Last(cfg.SoundGrapple); ok {
		t.Errorf("expected no voice recorded for an unknown sound")
	}
}

func TestManagerStop(t *testing.T) {
	m := NewManager(testDefs(), 1)
	m.Play(cfg.SoundWoodHit)
	m.Play(cfg.SoundJetpackLoop)

	m.Stop(cfg.SoundWoodHit)
	hit, _ := m.Last(cfg.SoundWoodHit)
	loop, _ := m.Last(cfg.SoundJetpackLoop)
	if hit.Playing || !loop.Playing {
		t.Fatalf("expected only the wood hit to stop")
	}

	m.StopAll()
	if loop.Playing {
		t.Errorf("expected StopAll to stop the loop")
	}
}

func TestStoppedVoiceIgnoresVolume(t *testing.T) {
	m := NewManager(testDefs(), 1)
	c := m.Play(cfg.SoundJetpackLoop)
	c.Stop()
	c.SetVolume(0.1)

	if got := c.Volume(); got != 0.8 {
		t.Errorf("expected the pool volume to stay, got %v", got)
	}
}

func TestSilent(t *testing.T) {
	var p Provider = Silent{}
	c := p.Play(cfg.SoundDrop)
	c.SetLoop(true)
	c.SetVolume(1)
	if c.IsPlaying() || c.Volume() != 0 {
		t.Errorf("expected silent controls")
	}
	p.StopAll()
}
