package emit

import (
	"errors"
	"slices"
	"strings"

	"github.com/sublee/kinded/internal/codefmt"
	"github.com/sublee/kinded/internal/kinded/model"
)

// supported lists the traits the emitter can render, in the canonical order.
var supported = append(model.Skippable(),
	model.Hash,
	model.PartialOrd,
	model.Ord,
	model.Serialize,
	model.Deserialize,
)

// Supported returns the traits accepted by derive(...).
func Supported() []model.Trait {
	return slices.Clone(supported)
}

// Check reports derives the emitter cannot render. Errors are positioned at
// the derive directive of m.
func Check(pkger codefmt.Pkger, m *model.Model) error {
	var errs error
	pos := codefmt.Pos(m.Config.Pos)

	for _, t := range m.Config.Derive {
		if !slices.Contains(supported, t) {
			err := codefmt.Errorf(pkger, pos, "unsupported trait to derive: %s; supported traits: %s", t, traitList(supported))
			errs = errors.Join(errs, err)
		}
	}

	if m.Has(model.Serialize) && !m.Has(model.Display) {
		err := codefmt.Errorf(pkger, pos, "cannot derive Serialize for %s: Display is skipped", m.KindName)
		errs = errors.Join(errs, err)
	}
	if m.Has(model.Deserialize) && !m.Has(model.FromStr) {
		err := codefmt.Errorf(pkger, pos, "cannot derive Deserialize for %s: FromStr is skipped", m.KindName)
		errs = errors.Join(errs, err)
	}
	return errs
}

func traitList(traits []model.Trait) string {
	names := make([]string, len(traits))
	for i, t := range traits {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}
