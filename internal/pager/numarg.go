package pager

import "strconv"

// NumericArgument accumulates a typed count such as "10" in "10 Enter".
// The zero value is an empty argument.
type NumericArgument struct {
	text string
}

// Append adds r to the argument. Digits are always accepted, '-' only as the
// first character and '.' at most once. It reports whether r was taken.
func (a *NumericArgument) Append(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
	case r == '-':
		if a.text != "" {
			return false
		}
	case r == '.':
		for _, c := range a.text {
			if c == '.' {
				return false
			}
		}
	default:
		return false
	}
	a.text += string(r)
	return true
}

// Pending returns the typed text and whether anything has been typed.
func (a *NumericArgument) Pending() (string, bool) {
	return a.text, a.text != ""
}

// Get returns the argument value, or def when nothing (or nothing numeric,
// like a lone "-") has been typed.
func (a *NumericArgument) Get(def float64) float64 {
	if a.text == "" {
		return def
	}
	v, err := strconv.ParseFloat(a.text, 64)
	if err != nil {
		return def
	}
	return v
}

// Take returns Get(def) and clears the argument.
func (a *NumericArgument) Take(def float64) float64 {
	v := a.Get(def)
	a.Clear()
	return v
}

// Clear empties the argument and reports whether it held anything.
func (a *NumericArgument) Clear() bool {
	had := a.text != ""
	a.text = ""
	return had
}

func (a *NumericArgument) String() string {
	return a.text
}
