package config

// AnimationDef describes a looping clip of a character model.
type AnimationDef struct {
	Duration float64 // seconds
}

// CharacterAnimations maps a character key (e.g., "player")
// to the clips its model ships with.
var CharacterAnimations = map[string]map[string]AnimationDef{
	"player": {
		"walk": {Duration: 0.8},
	},
}
