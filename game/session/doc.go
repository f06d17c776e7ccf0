// Package session provides session management for the tile merge game.
//
// The session package implements:
//   - Thread-safe in-memory session storage
//   - Unique session ID generation
//   - Expiry of idle sessions
//
// Each Session exclusively owns one engine.GameEngine, so two sessions never
// share a board. Sessions use 4-character hex IDs generated from crypto/rand
// and are looked up case-insensitively.
//
// Sessions live only in memory; restarting the process discards them.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//	removed := manager.CleanupExpiredSessions(24 * time.Hour)
package session
