// Package state provides filesystem-backed storage implementations.
package state
