// Package clock provides the single event loop every handler runs on, timers that
// post their callbacks into that loop, and a manual scheduler for deterministic tests.
package clock
