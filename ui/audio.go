package ui

import (
	"log"
	"os"
	"path/filepath"

	"snake-ai/game"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sounds plays the eat and hit effects in response to game events
type Sounds struct {
	eat, hit       rl.Sound
	hasEat, hasHit bool
}

// LoadSounds opens the audio device and loads Sounds/eat.mp3 and
// Sounds/wall.mp3. Missing files leave that effect silent.
func LoadSounds(assetsDir string, logger *log.Logger) *Sounds {
	rl.InitAudioDevice()
	s := &Sounds{}
	if !rl.IsAudioDeviceReady() {
		logger.Printf("Audio device unavailable, playing without sound")
		return s
	}
	s.eat, s.hasEat = loadSound(filepath.Join(assetsDir, "Sounds", "eat.mp3"), logger)
	s.hit, s.hasHit = loadSound(filepath.Join(assetsDir, "Sounds", "wall.mp3"), logger)
	return s
}

func loadSound(path string, logger *log.Logger) (rl.Sound, bool) {
	if _, err := os.Stat(path); err != nil {
		logger.Printf("Sound %s not loaded: %v", path, err)
		return rl.Sound{}, false
	}
	return rl.LoadSound(path), true
}

func (s *Sounds) OnEvent(e game.Event) {
	switch e.Type {
	case game.EventConsume:
		if e.Kind.Beneficial() {
			s.play(s.eat, s.hasEat)
		} else {
			s.play(s.hit, s.hasHit)
		}
	case game.EventCollide:
		s.play(s.hit, s.hasHit)
	}
}

func (s *Sounds) play(snd rl.Sound, ok bool) {
	if ok {
		rl.PlaySound(snd)
	}
}

// Close unloads the effects and shuts the audio device
func (s *Sounds) Close() {
	if s.hasEat {
		rl.UnloadSound(s.eat)
	}
	if s.hasHit {
		rl.UnloadSound(s.hit)
	}
	if rl.IsAudioDeviceReady() {
		rl.CloseAudioDevice()
	}
}
