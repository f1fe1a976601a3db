package entity

// Keys is the set of held input keys for one tick.
type Keys uint8

const (
	KeyUp Keys = 1 << iota
	KeyDown
	KeyLeft
	KeyRight
	KeyRun
	KeyInteract
)

// Has reports whether every key in k2 is held.
func (k Keys) Has(k2 Keys) bool {
	return k&k2 == k2
}

// Direction returns the requested facing. When several directions are held
// the first of up, down, left, right wins.
func (k Keys) Direction() (Facing, bool) {
	switch {
	case k.Has(KeyUp):
		return FacingUp, true
	case k.Has(KeyDown):
		return FacingDown, true
	case k.Has(KeyLeft):
		return FacingLeft, true
	case k.Has(KeyRight):
		return FacingRight, true
	}
	return FacingDown, false
}
