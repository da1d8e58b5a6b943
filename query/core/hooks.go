package core

// Hooks holds observation callbacks for property resolution in the
// ordering engine. All fields are optional - nil means no observation for
// that event. Hooks are invoked synchronously while the ordering is being
// built, so they should be fast.
type Hooks struct {
	OnResolve  func(typeName, property string)            // Property resolved to an accessor
	OnFallback func(typeName, property string, err error) // Resolution failed, fallback selector used
	OnReject   func(typeName, property string, err error) // Resolution failed with no fallback
}

// hookSet holds multiple Hooks for FIFO invocation.
type hookSet []Hooks

func (hs hookSet) resolve(typeName, property string) {
	for _, h := range hs {
		if h.OnResolve != nil {
			h.OnResolve(typeName, property)
		}
	}
}

func (hs hookSet) fallback(typeName, property string, err error) {
	for _, h := range hs {
		if h.OnFallback != nil {
			h.OnFallback(typeName, property, err)
		}
	}
}

func (hs hookSet) reject(typeName, property string, err error) {
	for _, h := range hs {
		if h.OnReject != nil {
			h.OnReject(typeName, property, err)
		}
	}
}

// SafeHooks wraps Hooks to recover from panics in hook functions.
// Use this when hooks are user-provided and a panic should not abort the
// ordering call.
type SafeHooks struct {
	Hooks
	panicHandler func(any)
}

// NewSafeHooks creates SafeHooks from regular Hooks.
// If panicHandler is nil, panics are silently recovered.
func NewSafeHooks(hooks Hooks, panicHandler func(any)) SafeHooks {
	if panicHandler == nil {
		panicHandler = func(any) {}
	}
	safe := SafeHooks{panicHandler: panicHandler}

	if hooks.OnResolve != nil {
		original := hooks.OnResolve
		safe.OnResolve = func(typeName, property string) {
			defer safe.handlePanic()
			original(typeName, property)
		}
	}
	if hooks.OnFallback != nil {
		original := hooks.OnFallback
		safe.OnFallback = func(typeName, property string, err error) {
			defer safe.handlePanic()
			original(typeName, property, err)
		}
	}
	if hooks.OnReject != nil {
		original := hooks.OnReject
		safe.OnReject = func(typeName, property string, err error) {
			defer safe.handlePanic()
			original(typeName, property, err)
		}
	}
	return safe
}

func (s SafeHooks) handlePanic() {
	if r := recover(); r != nil {
		s.panicHandler(r)
	}
}
