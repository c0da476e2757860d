package tui

import (
	"log"
	"sync"
	"time"

	"snake-ai/game"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Tone is a short sine blip
type Tone struct {
	Freq     float64
	Duration time.Duration
}

var (
	eatTone = Tone{Freq: 880, Duration: 50 * time.Millisecond}
	hitTone = Tone{Freq: 140, Duration: 150 * time.Millisecond}
)

// Beeper plays tones for game events through the system speaker
type Beeper struct {
	mu     sync.Mutex
	ready  bool
	logger *log.Logger
}

// NewBeeper initialises the speaker. Failure is logged and leaves the
// Beeper silent; the game runs without sound.
func NewBeeper(logger *log.Logger) *Beeper {
	b := &Beeper{logger: logger}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		logger.Printf("Audio initialization failed: %v", err)
		return b
	}
	b.ready = true
	return b
}

// ToneFor picks the tone for an event, if any
func ToneFor(e game.Event) (Tone, bool) {
	switch e.Type {
	case game.EventConsume:
		if e.Kind.Beneficial() {
			return eatTone, true
		}
		return hitTone, true
	case game.EventCollide:
		return hitTone, true
	}
	return Tone{}, false
}

func (b *Beeper) OnEvent(e game.Event) {
	if tone, ok := ToneFor(e); ok {
		b.play(tone)
	}
}

func (b *Beeper) play(t Tone) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.ready {
		return
	}
	sine, err := generators.SineTone(sampleRate, t.Freq)
	if err != nil {
		b.logger.Printf("Tone %.0fHz: %v", t.Freq, err)
		return
	}
	speaker.Play(beep.Take(sampleRate.N(t.Duration), sine))
}

func (b *Beeper) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ready {
		speaker.Close()
		b.ready = false
	}
}
