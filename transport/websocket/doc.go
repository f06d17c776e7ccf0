// Package websocket pushes board snapshots to browser clients.
//
// A central Hub owns every connection. Clients attach to one session with
// GET /ws?session=<id>; after each state change the API layer calls
// BroadcastToSession and every client of that session receives
//
//	{"session_id": "ab12", "event": "move", "snapshot": {"cells": [[...]], "score": 4}, "phase": "playing"}
//
// The connection is one-way. Moves are sent through the REST API; anything a
// client writes is read and discarded so pings and close frames are handled.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
// Concurrency:
//
// Registration, removal and broadcasts travel over channels to the Run
// goroutine, which is the only code that touches the client map. A client
// whose send buffer is full is dropped instead of stalling the hub.
package websocket
