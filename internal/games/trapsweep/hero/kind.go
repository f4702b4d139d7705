// Package hero implements the playable characters of crawl mode: their
// passive reaction to traps and their signature spells.
package hero

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownKind      = errors.New("hero: unknown kind")
	ErrNoSpell          = errors.New("hero: no spell to cast")
	ErrNoCastsLeft      = errors.New("hero: no casts left")
	ErrNotEnoughShards  = errors.New("hero: not enough shards")
	ErrSpellUnavailable = errors.New("hero: spell unavailable")
	ErrInvalidTarget    = errors.New("hero: invalid target")
)

// Kind identifies a hero.
type Kind uint8

const (
	KindBlank Kind = iota
	KindSage
	KindViolet
	KindGale
	KindGoblin
	KindMystic
)

// SpellKind identifies a signature spell.
type SpellKind uint8

const (
	SpellNone SpellKind = iota
	SpellRevealSurroundings
	SpellTeleport
	SpellRevealClosestTrap
	SpellInvincibility
)

func (s SpellKind) String() string {
	switch s {
	case SpellRevealSurroundings:
		return "Reveal Surroundings"
	case SpellTeleport:
		return "Teleport"
	case SpellRevealClosestTrap:
		return "Trap Sense"
	case SpellInvincibility:
		return "Invincibility"
	default:
		return "None"
	}
}

// Trait is a passive reaction to stepping on a trap.
type Trait uint8

const (
	TraitNone Trait = iota
	// TraitNimble disarms traps by chance.
	TraitNimble
	// TraitWarded disarms traps while invincibility lasts.
	TraitWarded
)

// Profile is the fixed capability row for a hero kind.
type Profile struct {
	Kind  Kind
	ID    string
	Name  string
	Blurb string
	Spell SpellKind
	Trait Trait
	// UsesShards marks heroes that collect shards to pay for their spell.
	UsesShards bool
}

var profiles = [...]Profile{
	KindBlank: {
		Kind:  KindBlank,
		ID:    "blank",
		Name:  "Wanderer",
		Blurb: "No tricks. Just a torch and a flag.",
	},
	KindSage: {
		Kind:  KindSage,
		ID:    "sage",
		Name:  "Sage",
		Blurb: "Safely uncovers the eight surrounding cells.",
		Spell: SpellRevealSurroundings,
	},
	KindViolet: {
		Kind:  KindViolet,
		ID:    "violet",
		Name:  "Violet",
		Blurb: "Teleports to the aimed cell.",
		Spell: SpellTeleport,
	},
	KindGale: {
		Kind:       KindGale,
		ID:         "gale",
		Name:       "Gale",
		Blurb:      "Collects shards and spends them to sense a nearby trap.",
		Spell:      SpellRevealClosestTrap,
		UsesShards: true,
	},
	KindGoblin: {
		Kind:  KindGoblin,
		ID:    "goblin",
		Name:  "Goblin",
		Blurb: "Even odds of disarming any trap underfoot.",
		Trait: TraitNimble,
	},
	KindMystic: {
		Kind:  KindMystic,
		ID:    "mystic",
		Name:  "Mystic",
		Blurb: "Becomes invincible for a few steps.",
		Spell: SpellInvincibility,
		Trait: TraitWarded,
	},
}

// Kinds returns every hero kind in menu order.
func Kinds() []Kind {
	return []Kind{KindBlank, KindSage, KindViolet, KindGale, KindGoblin, KindMystic}
}

// Profile returns the capability row for k.
func (k Kind) Profile() Profile {
	if int(k) < len(profiles) {
		return profiles[k]
	}
	return profiles[KindBlank]
}

// String returns the hero's ID.
func (k Kind) String() string {
	return k.Profile().ID
}

// ParseKind resolves a hero ID or display name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range profiles {
		if s == p.ID || s == strings.ToLower(p.Name) {
			return p.Kind, nil
		}
	}
	return KindBlank, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
