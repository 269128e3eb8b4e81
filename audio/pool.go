package audio

// Instance is the playback state of one pooled voice. A host backend mirrors
// these values onto real players.
type Instance struct {
	Playing bool
	Loop    bool
	Gain    float64
	Rate    float64
	Detune  float64
	Starts  int
}

func (i *Instance) SetVolume(volume float64) {
	if !i.Playing {
		return
	}
	i.Gain = volume
}

func (i *Instance) Volume() float64           { return i.Gain }
func (i *Instance) SetPlaybackRate(r float64) { i.Rate = r }
func (i *Instance) SetDetune(cents float64)   { i.Detune = cents }
func (i *Instance) SetLoop(loop bool)         { i.Loop = loop }
func (i *Instance) Stop()                     { i.Playing = false }
func (i *Instance) IsPlaying() bool           { return i.Playing }

// Pool hands out up to maxSize voices of the same sound, round robin.
type Pool struct {
	instances []*Instance
	maxSize   int
	volume    float64
	loop      bool
	index     int
}

func NewPool(maxSize int, volume float64, loop bool) *Pool {
	if maxSize < 1 {
		maxSize = 1
	}
	p := &Pool{maxSize: maxSize, volume: volume, loop: loop}
	p.instances = append(p.instances, p.newInstance())
	return p
}

func (p *Pool) newInstance() *Instance {
	return &Instance{Loop: p.loop, Gain: p.volume, Rate: 1}
}

// Play grows the pool while the current voice is busy, then starts the
// current voice if it is idle.
func (p *Pool) Play() *Instance {
	if p.instances[p.index].Playing && len(p.instances) < p.maxSize {
		p.instances = append(p.instances, p.newInstance())
		p.index = (p.index + 1) % len(p.instances)
	}
	current := p.instances[p.index]
	if !current.Playing {
		current.Playing = true
		current.Starts++
	}
	return current
}

func (p *Pool) StopAll() {
	for _, i := range p.instances {
		i.Stop()
	}
}

// Instances returns the pooled voices.
func (p *Pool) Instances() []*Instance {
	return p.instances
}
