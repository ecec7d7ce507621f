// Package guidepost is the navigation and resume engine for a multi-step
// guided document workflow. It models the workflow as a prerequisite DAG
// of steps, translates between navigation states and shareable
// addresses, keeps per-session history in sync with the platform's
// native back/forward mechanism, and recommends where a returning user
// should pick up.
//
// Guidepost is designed as a library, not a service. Construct a
// Navigator with its collaborators injected and drive it from the
// application boundary:
//
//	routes := route.New()
//	n, err := guidepost.New(routes, resume.NewAdvisor(routes), sessions,
//	    guidepost.WithStore(memory.New()),
//	    guidepost.WithPlatform(browserHistory),
//	)
//
// # Architecture
//
// Each subsystem owns its concern behind a small interface: the route
// directory converts steps to addresses and back, the resume advisor is
// a pure function over session snapshots, the store interfaces persist
// histories, cached contexts, and backups (memory, Redis, and SQLite
// backends ship in store/), and the history platform port keeps the core
// free of any compile-time dependency on a concrete history API.
//
// Progress truth always lives in the external session service; Guidepost
// caches derived contexts only for offline resilience, never as a source
// of truth.
package guidepost
