// Package middleware decorates a bookmark store with cross-cutting behavior.
package middleware

import "github.com/aretw0/matrixdeck/pkg/ports"

// Middleware allows wrapping a BookmarkStore to add behavior.
type Middleware func(ports.BookmarkStore) ports.BookmarkStore

// Chain wraps store with mws. The first middleware is the outermost.
func Chain(store ports.BookmarkStore, mws ...Middleware) ports.BookmarkStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
