// Package watch keeps a workspace graph fresh by running a background
// scheduler per watched root.
//
// # Architecture
//
// Each call to Spawn starts one independent scheduler goroutine. The
// scheduler owns all of its state exclusively and communicates only through
// two unbounded, never-blocking mailboxes: a command queue into the loop
// (notify and shutdown) and an update stream out of it. Inside the loop a
// fixed-interval poll recomputes workspace fingerprints; fingerprint changes
// and external notifications merge into a single pending trigger, and a
// debounce deadline ensures a burst of activity produces exactly one
// rebuild. Rebuilds run synchronously inside the loop, so no two builds for
// the same root are ever in flight.
//
// # Usage
//
//	handle, updates := watch.Spawn(ctx, root, watch.Config{})
//	for update := range updates {
//	    fmt.Println(update.Graph.Revision, update.Trigger)
//	}
//
// A failed rebuild is logged and the previous snapshot stays current;
// subscribers never observe errors, only successive immutable graphs.
package watch
