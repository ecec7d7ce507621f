package route

import (
	"net/url"
	"time"

	"github.com/guidepost/guidepost/id"
	"github.com/guidepost/guidepost/nav"
	"github.com/guidepost/guidepost/step"
)

// Reserved query keys. Everything else round-trips through the state's
// Parameters map.
const (
	keySession = "session"
	keyStep    = "step"
	keySubstep = "substep"
)

// Directory maps steps to route definitions and converts between
// navigation states and addresses. Construct once with New; safe for
// concurrent use (read-only after construction).
type Directory struct {
	byStep map[step.Step]Definition
	now    func() time.Time
}

// Option configures a Directory.
type Option func(*Directory)

// WithClock overrides the timestamp source used for parsed states.
func WithClock(now func() time.Time) Option {
	return func(d *Directory) { d.now = now }
}

// New builds the directory from the static route table.
func New(opts ...Option) *Directory {
	d := &Directory{
		byStep: make(map[step.Step]Definition, len(definitions)),
		now:    time.Now,
	}
	for _, def := range definitions {
		d.byStep[def.Step] = def
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// AddressFor builds the shareable address for a navigation target.
// Deterministic: query keys are emitted in sorted order. All supplied
// params are preserved alongside the mandatory session and step keys.
// Unknown steps fall back to an empty path with the query intact.
func (d *Directory) AddressFor(sessionID string, s step.Step, substep string, params map[string]string) string {
	q := url.Values{}
	q.Set(keySession, sessionID)
	q.Set(keyStep, string(s))
	if substep != "" {
		q.Set(keySubstep, substep)
	}
	for k, v := range params {
		if k == keySession || k == keyStep || k == keySubstep {
			continue
		}
		q.Set(k, v)
	}

	path := ""
	if def, ok := d.byStep[s]; ok {
		path = def.Path
	}
	return path + "?" + q.Encode()
}

// AddressForState builds the address for an existing navigation state.
func (d *Directory) AddressForState(st nav.State) string {
	return d.AddressFor(st.SessionID, st.Step, st.Substep, st.Parameters)
}

// ParseAddress converts an address back into a navigation state. Returns
// nil — not an error — when the address is malformed, lacks the session
// or step key, or names an unknown step; callers must treat nil as "no
// navigable state". Unrecognized query parameters are preserved in the
// Parameters map, so any address produced by AddressFor round-trips.
func (d *Directory) ParseAddress(addr string) *nav.State {
	u, err := url.Parse(addr)
	if err != nil {
		return nil
	}
	q := u.Query()

	sessionID := q.Get(keySession)
	rawStep := q.Get(keyStep)
	if sessionID == "" || rawStep == "" {
		return nil
	}
	s, ok := step.Parse(rawStep)
	if !ok {
		return nil
	}

	var params map[string]string
	for k, vs := range q {
		if k == keySession || k == keyStep || k == keySubstep || len(vs) == 0 {
			continue
		}
		if params == nil {
			params = make(map[string]string)
		}
		params[k] = vs[0]
	}

	return &nav.State{
		ID:            id.NewEntryID(),
		SessionID:     sessionID,
		Step:          s,
		Substep:       q.Get(keySubstep),
		Timestamp:     d.now(),
		Parameters:    params,
		Transition:    nav.TransitionPush,
		SourceAddress: addr,
	}
}

// RouteFor returns the route definition for a step.
func (d *Directory) RouteFor(s step.Step) (Definition, bool) {
	def, ok := d.byStep[s]
	return def, ok
}

// Routes returns all route definitions in pipeline order.
func (d *Directory) Routes() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Title returns the display title for a step, or the raw step name when
// the step has no route definition.
func (d *Directory) Title(s step.Step) string {
	if def, ok := d.byStep[s]; ok {
		return def.Title
	}
	return string(s)
}
