package controller

// Modifier is a single bit in the Status.Keys modifier bitmap. The
// declared order matches the reference KeyModifiers() table, which is in
// turn ordered by each modifier's associated KeyIdentifier codepoint
// value (Imaginary < Shift < Control < System < Meta < Hyper).
type Modifier uint32

const (
	ModifierImaginary Modifier = 1 << iota
	ModifierShift
	ModifierControl
	ModifierSystem
	ModifierMeta
	ModifierHyper
)

// orderedModifiers is iterated for deterministic textual rendering.
var orderedModifiers = []Modifier{
	ModifierImaginary, ModifierShift, ModifierControl,
	ModifierSystem, ModifierMeta, ModifierHyper,
}

var modifierKeys = map[Modifier]KeyIdentifier{
	ModifierImaginary: KeyImaginary,
	ModifierShift:     KeyShift,
	ModifierControl:   KeyControl,
	ModifierSystem:    KeySystem,
	ModifierMeta:      KeyMeta,
	ModifierHyper:     KeyHyper,
}

var modifierNames = map[Modifier]string{
	ModifierImaginary: "Imaginary",
	ModifierShift:     "Shift",
	ModifierControl:   "Control",
	ModifierSystem:    "System",
	ModifierMeta:      "Meta",
	ModifierHyper:     "Hyper",
}

// Key returns the KeyIdentifier associated with a single modifier bit.
func (m Modifier) Key() KeyIdentifier {
	return modifierKeys[m]
}

// Modifiers is the bitmap carried in Status.Keys.
type Modifiers uint32

// Has reports whether m is set.
func (k Modifiers) Has(m Modifier) bool {
	return Modifiers(m)&k != 0
}

// Set returns a copy of k with m set.
func (k Modifiers) Set(m Modifier) Modifiers {
	return k | Modifiers(m)
}

// Clear returns a copy of k with m cleared.
func (k Modifiers) Clear(m Modifier) Modifiers {
	return k &^ Modifiers(m)
}

// Names renders the set modifiers in the enum's declared order, so the
// same bitmap always produces the same string.
func (k Modifiers) Names() []string {
	var names []string
	for _, m := range orderedModifiers {
		if k.Has(m) {
			names = append(names, modifierNames[m])
		}
	}
	return names
}
