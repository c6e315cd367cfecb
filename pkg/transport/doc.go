// Package transport defines the handler contracts and middleware chain
// between the HTTP layer and the translation engine.
package transport
