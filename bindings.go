package infix

import (
	"strconv"
	"strings"
)

// Marker begins every synthetic variable name. Valid user names never begin
// with it.
const Marker = '#'

// MaxNameLen is the longest permitted user variable name.
const MaxNameLen = 64

// ValidName returns whether name may be used as a user variable name: it is
// nonempty, at most MaxNameLen bytes, begins with an ASCII letter or
// underscore, and otherwise contains only ASCII letters, digits, and
// underscores.
func ValidName(name string) bool {
	if name == "" || len(name) > MaxNameLen {
		return false
	}
	if c := name[0]; c != '_' && !isLetter(c) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if c := name[i]; c != '_' && !isLetter(c) && !isDigit(c) {
			return false
		}
	}
	return true
}

// reserved holds the names which read as constants or float literals, so a
// variable by any of them could never be looked up.
var reserved = [...]string{"pi", "e", "inf", "infinity", "nan"}

// Reserved returns whether name, ignoring case, is a constant or a literal
// spelling. Reserved names satisfy ValidName but cannot be bound.
func Reserved(name string) bool {
	for _, r := range reserved {
		if strings.EqualFold(name, r) {
			return true
		}
	}
	return false
}

// checkName returns a binding error if name cannot be bound.
func checkName(name string) error {
	switch {
	case !ValidName(name):
		return &Error{Kind: KindBinding, Msg: "invalid variable name " + strconv.Quote(name), Col: -1}
	case Reserved(name):
		return &Error{Kind: KindBinding, Msg: "variable name " + strconv.Quote(name) + " is reserved", Col: -1}
	}
	return nil
}

// synthetic returns whether name is in the synthetic class.
func synthetic(name string) bool {
	return len(name) > 0 && name[0] == Marker
}

// Bindings maps variable names to values. User names and synthetic names
// share one namespace. It is not safe to use Bindings concurrently.
type Bindings struct {
	vals map[string]float64
	// key is the next candidate for a synthetic name.
	key int
}

func newBindings() *Bindings {
	return &Bindings{vals: make(map[string]float64)}
}

// Lookup returns the value bound to name.
func (b *Bindings) Lookup(name string) (float64, bool) {
	v, ok := b.vals[name]
	return v, ok
}

// Set binds a user variable. The name must satisfy ValidName and must not be
// Reserved.
func (b *Bindings) Set(name string, v float64) error {
	if err := checkName(name); err != nil {
		return err
	}
	b.vals[name] = v
	return nil
}

// SetVars binds a batch of user variables. No variable is bound if any name
// is invalid.
func (b *Bindings) SetVars(vars map[string]float64) error {
	for name := range vars {
		if err := checkName(name); err != nil {
			return err
		}
	}
	for name, v := range vars {
		b.vals[name] = v
	}
	return nil
}

// Len returns the number of bound names, synthetic ones included.
func (b *Bindings) Len() int {
	return len(b.vals)
}

// bind sets a value without validating the name.
func (b *Bindings) bind(name string, v float64) {
	b.vals[name] = v
}

// fresh returns an unbound synthetic name. It does not bind the name.
func (b *Bindings) fresh() string {
	for {
		name := string(Marker) + strconv.Itoa(b.key)
		b.key++
		if _, ok := b.vals[name]; !ok {
			return name
		}
	}
}

// clone copies the bindings for a nested evaluation. The copy starts its own
// synthetic counter.
func (b *Bindings) clone() *Bindings {
	n := &Bindings{vals: make(map[string]float64, len(b.vals))}
	for k, v := range b.vals {
		n.vals[k] = v
	}
	return n
}

// dropSynthetic removes all synthetic names and resets the counter.
func (b *Bindings) dropSynthetic() {
	for k := range b.vals {
		if synthetic(k) {
			delete(b.vals, k)
		}
	}
	b.key = 0
}
