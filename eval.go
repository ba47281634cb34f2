package infix

import (
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// Option is an option used when creating a resolver.
type Option interface {
	option()
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt  map[string]float64
	angleopt bool
	logopt   struct{ l *slog.Logger }
	stepsopt int
)

func (varopt) option()   {}
func (varsopt) option()  {}
func (angleopt) option() {}
func (logopt) option()   {}
func (stepsopt) option() {}

// SetVar binds a variable in the new resolver.
func SetVar(name string, val float64) Option {
	return varopt{name, val}
}

// SetVars binds any number of variables in the new resolver.
func SetVars(vars map[string]float64) Option {
	return varsopt(vars)
}

// Degrees interprets the arguments of trigonometric functions as degrees.
// This is the default.
func Degrees() Option {
	return angleopt(true)
}

// Radians interprets the arguments of trigonometric functions as radians.
func Radians() Option {
	return angleopt(false)
}

// Logger sets a logger which receives a debug record for each reduction
// step. By default, nothing is logged.
func Logger(l *slog.Logger) Option {
	return logopt{l}
}

// MaxSteps bounds the number of iterations of each reduction loop. If n is
// not positive, the bound is derived from the length of the text, which is
// always enough for well-formed input.
func MaxSteps(n int) Option {
	return stepsopt(n)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))

// state is the reduction state shared by every resolver.
type state struct {
	// src is the text as supplied.
	src string
	// buf is the current reduction of src.
	buf  string
	vars *Bindings
	// deg selects degrees for trigonometric arguments.
	deg   bool
	log   *slog.Logger
	steps int
}

func newState(src string, opts []Option) (state, error) {
	s := state{
		src:  src,
		buf:  strings.TrimSpace(src),
		vars: newBindings(),
		deg:  true,
		log:  discard,
	}
	if s.buf == "" {
		return s, formatErr(src, -1, "empty expression")
	}
	if k := strings.IndexByte(src, Marker); k >= 0 {
		return s, formatErr(src, k, "reserved character "+string(Marker))
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			if err := s.vars.Set(opt.name, opt.val); err != nil {
				return s, err
			}
		case varsopt:
			if err := s.vars.SetVars(opt); err != nil {
				return s, err
			}
		case angleopt:
			s.deg = bool(opt)
		case logopt:
			if opt.l != nil {
				s.log = opt.l
			}
		case stepsopt:
			s.steps = int(opt)
		default:
			panic("infix: unknown option type")
		}
	}
	return s, nil
}

// child creates the state for a nested evaluation of src. The child sees a
// copy of the current bindings and has its own synthetic counter.
func (s *state) child(src string) (state, error) {
	c := state{
		src:   src,
		buf:   strings.TrimSpace(src),
		vars:  s.vars.clone(),
		deg:   s.deg,
		log:   s.log,
		steps: s.steps,
	}
	if c.buf == "" {
		return c, formatErr(src, -1, "empty expression")
	}
	return c, nil
}

// Set binds a user variable. The name must satisfy ValidName and must not be
// Reserved.
func (s *state) Set(name string, v float64) error {
	return s.vars.Set(name, v)
}

// SetVars binds a batch of user variables.
func (s *state) SetVars(vars map[string]float64) error {
	return s.vars.SetVars(vars)
}

// Lookup returns the value bound to a variable.
func (s *state) Lookup(name string) (float64, bool) {
	return s.vars.Lookup(name)
}

// Text returns the expression text as it was supplied.
func (s *state) Text() string {
	return s.src
}

// Buffer returns the current working text. After Eval, it is what remained
// once this resolver's own reductions were done, which the next layer then
// evaluated.
func (s *state) Buffer() string {
	return s.buf
}

// Degrees returns whether trigonometric arguments are read as degrees.
func (s *state) Degrees() bool {
	return s.deg
}

// run evaluates from the original text using reduce. Synthetic bindings from
// any previous run are discarded first.
func (s *state) run(reduce func() (float64, error)) (x float64, err error) {
	s.buf = strings.TrimSpace(s.src)
	s.vars.dropSynthetic()
	defer func() {
		if r := recover(); r != nil {
			x, err = 0, recovered(s.src, r)
		}
	}()
	x, err = reduce()
	if err != nil {
		return 0, wrap(s.src, err)
	}
	return x, nil
}

// limit is the iteration bound for a reduction loop over the current buffer.
func (s *state) limit() int {
	if s.steps > 0 {
		return s.steps
	}
	return len(s.buf) + 1
}

func (s *state) diverged(stage string, n int) error {
	return &Error{
		Kind: KindInternal,
		Msg:  stage + " reduction did not converge after " + strconv.Itoa(n) + " steps",
		Text: s.buf,
		Col:  -1,
	}
}

// fold binds v to a fresh synthetic name and returns the name.
func (s *state) fold(stage, span string, v float64) string {
	name := s.vars.fresh()
	s.vars.bind(name, v)
	s.log.Debug("fold", "stage", stage, "span", span, "var", name, "value", v)
	return name
}
