// Package autopilot drives a session from a tengo script, one call per
// frame, for headless runs and level checks.
package autopilot

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/findthekeys/session"
)

var ErrNoUpdate = errors.New("autopilot: script must define update(pilot, memory)")

const dispatchScript = `
if __run {
	update(__pilot, __memory)
}
`

type keyEdge struct {
	action  session.Action
	pressed bool
}

// Pilot runs a compiled script. The script's memory map survives between
// frames; everything else is rebuilt each run.
type Pilot struct {
	name     string
	compiled *tengo.Compiled
	memory   *tengo.Map
	pending  []keyEdge
	errs     []error
}

func Load(path string) (*Pilot, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("autopilot: read %s: %w", path, err)
	}
	return New(path, src)
}

func New(name string, src []byte) (*Pilot, error) {
	full := string(src) + "\n" + dispatchScript
	script := tengo.NewScript([]byte(full))
	_ = script.Add("__run", false)
	_ = script.Add("__pilot", map[string]any{})
	_ = script.Add("__memory", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		if strings.Contains(err.Error(), "unresolved reference 'update'") {
			return nil, fmt.Errorf("%s: %w", name, ErrNoUpdate)
		}
		return nil, fmt.Errorf("autopilot: compile %s: %w", name, err)
	}

	p := &Pilot{
		name:     name,
		compiled: compiled,
		memory:   &tengo.Map{Value: map[string]tengo.Object{}},
	}

	// A dry run with __run unset resolves top-level globals.
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("autopilot: init %s: %w", name, err)
	}
	if !compiled.IsDefined("update") {
		return nil, fmt.Errorf("%s: %w", name, ErrNoUpdate)
	}
	return p, nil
}

func (p *Pilot) Name() string {
	return p.name
}

// Step runs the script against s and feeds the key edges it asked for
// through the controller, in call order.
func (p *Pilot) Step(c *session.Controller, s session.State) (session.State, error) {
	p.pending = p.pending[:0]
	p.errs = p.errs[:0]

	if err := p.compiled.Set("__run", true); err != nil {
		return s, err
	}
	if err := p.compiled.Set("__pilot", p.engine(s)); err != nil {
		return s, err
	}
	if err := p.compiled.Set("__memory", p.memory); err != nil {
		return s, err
	}
	if err := p.compiled.Run(); err != nil {
		return s, fmt.Errorf("autopilot: %s frame %d: %w", p.name, s.Frame, err)
	}
	if err := errors.Join(p.errs...); err != nil {
		return s, fmt.Errorf("autopilot: %s frame %d: %w", p.name, s.Frame, err)
	}

	for _, edge := range p.pending {
		s = c.HandleKey(s, edge.action, edge.pressed)
	}
	return s, nil
}

// Memory returns a value the script stored, or nil.
func (p *Pilot) Memory(key string) any {
	obj, ok := p.memory.Value[key]
	if !ok {
		return nil
	}
	return tengo.ToInterface(obj)
}

func (p *Pilot) engine(s session.State) *tengo.ImmutableMap {
	values := map[string]tengo.Object{
		"frame":    &tengo.Int{Value: int64(s.Frame)},
		"score":    &tengo.Int{Value: int64(s.Score)},
		"total":    &tengo.Int{Value: int64(s.TotalPickups)},
		"x":        &tengo.Float{Value: s.Player.Pos.X},
		"y":        &tengo.Float{Value: s.Player.Pos.Y},
		"vx":       &tengo.Float{Value: s.Player.Vel.X},
		"vy":       &tengo.Float{Value: s.Player.Vel.Y},
		"grounded": boolObject(s.Player.Grounded),
	}

	pickups := make([]tengo.Object, 0, len(s.Pickups))
	for _, k := range s.Pickups {
		pickups = append(pickups, &tengo.ImmutableMap{Value: map[string]tengo.Object{
			"id": &tengo.Int{Value: int64(k.ID)},
			"x":  &tengo.Float{Value: k.Pos.X},
			"y":  &tengo.Float{Value: k.Pos.Y},
		}})
	}
	values["pickups"] = &tengo.ImmutableArray{Value: pickups}

	values["press"] = p.keyFunc("press", true)
	values["release"] = p.keyFunc("release", false)
	return &tengo.ImmutableMap{Value: values}
}

func (p *Pilot) keyFunc(name string, pressed bool) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		actionName, ok := tengo.ToString(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "action", Expected: "string", Found: args[0].TypeName()}
		}
		action, err := session.ParseAction(actionName)
		if err != nil {
			p.errs = append(p.errs, err)
			return tengo.FalseValue, nil
		}
		p.pending = append(p.pending, keyEdge{action: action, pressed: pressed})
		return tengo.TrueValue, nil
	}}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
