package synth

import "github.com/sublee/kinded/internal/kinded/model"

// Augmentation is what the generator adds to the variants of a sum type: one
// projection per variant and the capability linking each variant to the kind
// type.
type Augmentation struct {
	Kind        string       `json:"kind" yaml:"kind"`
	Projections []Projection `json:"projections" yaml:"projections"`
}

// Projection is a Kind method of a variant returning a constant kind value.
type Projection struct {
	Variant string `json:"variant" yaml:"variant"`
	Const   string `json:"const" yaml:"const"`

	// TypeParams is the number of type parameters of the variant. The
	// receiver of a generic variant is written with blank type arguments.
	TypeParams int `json:"typeParams,omitempty" yaml:"typeParams,omitempty"`

	// Pointer is true if the variant implements the sum type only through its
	// pointer type. The projection then has a pointer receiver.
	Pointer bool `json:"pointer,omitempty" yaml:"pointer,omitempty"`

	// Assert is true if a compile-time assertion of the capability can be
	// written. Generic variants cannot be asserted without instantiation.
	Assert bool `json:"assert" yaml:"assert"`
}

// Augment synthesizes the projections of m.
func Augment(m *model.Model) Augmentation {
	aug := Augmentation{Kind: m.KindName}
	for _, v := range m.Source.Variants {
		aug.Projections = append(aug.Projections, Projection{
			Variant:    v.Name,
			Const:      m.KindName + v.Name,
			TypeParams: v.TypeParams,
			Pointer:    v.Pointer,
			Assert:     v.TypeParams == 0,
		})
	}
	return aug
}
