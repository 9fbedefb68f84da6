// Package watch re-runs work when watched files change.
//
// A Watcher polls a list of paths and compares size and modification time
// between polls. Changes go to a Debouncer, which waits for a quiet period
// before calling its function once for the whole burst.
package watch
