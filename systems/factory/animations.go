package factory

import (
	"errors"
	"fmt"

	"github.com/automoto/skyhook/components"
	cfg "github.com/automoto/skyhook/config"
)

// ErrMissingAnimation is returned when a model lacks a clip its controller
// needs.
var ErrMissingAnimation = errors.New("missing animation clip")

// GenerateAnimations creates an AnimationData component based on the character key
// (e.g., "player") which maps to a set of clip definitions in config.
func GenerateAnimations(key string) (*components.AnimationData, error) {
	defs, ok := cfg.CharacterAnimations[key]
	if !ok {
		return nil, fmt.Errorf("no animation definitions for %q: %w", key, ErrMissingAnimation)
	}

	animData := &components.AnimationData{
		Clips: make(map[string]components.Clip, len(defs)),
	}
	for name, def := range defs {
		animData.Clips[name] = components.Clip{Name: name, Duration: def.Duration}
	}
	return animData, nil
}
