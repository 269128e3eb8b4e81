package tags

import "github.com/yohamta/donburi"

var (
	Player  = donburi.NewTag().SetName("Player")
	Enemy   = donburi.NewTag().SetName("Enemy")
	Block   = donburi.NewTag().SetName("Block")
	Spring  = donburi.NewTag().SetName("Spring")
	Goal    = donburi.NewTag().SetName("Goal")
	Danger  = donburi.NewTag().SetName("Danger")
	Terrain = donburi.NewTag().SetName("Terrain")
)
