package sim

import (
	"github.com/udisondev/monench/internal/ench"
	"github.com/udisondev/monench/internal/model"
)

// Bestiary is the set of templates a level is populated from.
var Bestiary = []model.Template{
	{Name: "goblin", HP: 8, HitDice: 1, Speed: ench.BaselineSpeed},
	{Name: "orc warrior", HP: 24, HitDice: 4, Speed: ench.BaselineSpeed},
	{Name: "ogre", HP: 40, HitDice: 5, Speed: ench.BaselineSpeed},
	{Name: "wolf", HP: 14, HitDice: 3, Speed: 15},
	{Name: "zombie", HP: 20, HitDice: 3, Speed: 8,
		Flags: model.FlagNonliving | model.FlagZombified, Resists: model.Resists{Poison: 1, Drowning: 1}},
	{Name: "fire elemental", HP: 30, HitDice: 6, Speed: 12,
		Flags: model.FlagNonliving | model.FlagFlier, Resists: model.Resists{Fire: 3, Poison: 3, Drowning: 1}},
	{Name: "electric eel", HP: 12, HitDice: 3, Speed: ench.BaselineSpeed,
		Flags: model.FlagAquatic | model.FlagSubmerges, Resists: model.Resists{Drowning: 1}},
	{Name: "water moccasin", HP: 18, HitDice: 4, Speed: ench.BaselineSpeed,
		Flags: model.FlagSubmerges, Resists: model.Resists{Poison: 1, Drowning: 1}},
	{Name: "wisp", HP: 6, HitDice: 2, Speed: 20,
		Flags: model.FlagFlier | model.FlagInnateInvis | model.FlagInnateConfused | model.FlagNonliving},
	{Name: "chaos spawn", HP: 28, HitDice: 5, Speed: ench.BaselineSpeed,
		Flags: model.FlagChaotic | model.FlagUnblindable},
	{Name: "oklob plant", HP: 30, HitDice: 6, Speed: ench.BaselineSpeed,
		Flags: model.FlagStationary | model.FlagNoTeleport, Resists: model.Resists{Poison: 1}},
	{Name: "fire bat", HP: 10, HitDice: 2, Speed: 30,
		Flags: model.FlagFlier, Resists: model.Resists{Fire: -1}},
}
