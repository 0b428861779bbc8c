package model

import "slices"

// Trait is a capability of a kind type, named after its derive name.
type Trait string

const (
	Debug     Trait = "Debug"
	Clone     Trait = "Clone"
	Copy      Trait = "Copy"
	PartialEq Trait = "PartialEq"
	Eq        Trait = "Eq"
	Display   Trait = "Display"
	FromStr   Trait = "FromStr"
	From      Trait = "From"

	Hash        Trait = "Hash"
	PartialOrd  Trait = "PartialOrd"
	Ord         Trait = "Ord"
	Serialize   Trait = "Serialize"
	Deserialize Trait = "Deserialize"
)

// skippable is the canonical trait order. Its first five traits are derived
// by default; the rest are generated unless skipped.
var skippable = []Trait{Debug, Clone, Copy, PartialEq, Eq, Display, FromStr, From}

const numDefaults = 5

// Defaults returns the traits derived unless skipped, in the canonical order.
func Defaults() []Trait {
	return slices.Clone(skippable[:numDefaults])
}

// Skippable returns the traits allowed in skip_derive, in the canonical order.
func Skippable() []Trait {
	return slices.Clone(skippable)
}

// IsSkippable reports whether t may appear in skip_derive.
func (t Trait) IsSkippable() bool {
	return slices.Contains(skippable, t)
}

func (t Trait) String() string { return string(t) }
