// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package realtime fans live Stats snapshots out to question viewers.

# Hub

One Hub serves the whole process. It owns a room per question with at least
one subscriber and computes snapshots through an injected StatsFunc:

	hub := realtime.NewHub(statsFn)

	sub, err := hub.Subscribe(questionID) // current snapshot queued at once
	defer sub.Close()
	for snapshot := range sub.C {
		// deliver to the viewer
	}

After a committed response write:

	hub.Notify(questionID) // recompute once, fan out to the room

# Semantics

Everything is event-driven: snapshots are computed on subscribe and on
accepted writes, never on a timer. A question with no subscribers has no
room and costs nothing. Snapshots delivered to a room are serialized, so
once a broadcast reflects a write, every later broadcast does too. Fan-out
never blocks: a subscriber that stops draining its channel is dropped and
its channel closed, without affecting other subscribers or the write path.
*/
package realtime
