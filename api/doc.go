// Package api provides the HTTP REST API for the tile merge game.
//
// Endpoints:
//
// Sessions:
//   - GET    /api/health                    - Liveness check
//   - POST   /api/sessions                  - Create session {"config_id", "grid_size"}
//   - GET    /api/sessions                  - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET    /api/sessions/unified          - Compact boards of several sessions (?sessionIds=a,b or ?configName=)
//   - GET    /api/sessions/{id}             - Session info
//   - DELETE /api/sessions/{id}             - Remove session
//
// Game operations:
//   - GET  /api/sessions/{id}/state     - Full game state
//   - GET  /api/sessions/{id}/snapshot  - {cells, score}
//   - POST /api/sessions/{id}/move      - {"direction": "left", "reset": false}
//   - POST /api/sessions/{id}/bulk-move - {"moves": ["up", "left"], "reset": false}, at most 50 moves
//   - POST /api/sessions/{id}/reset     - New board, score 0
//   - GET  /api/sessions/{id}/history   - ?page=1&limit=20&order=desc
//
// Configuration:
//   - GET  /api/configs        - List configurations
//   - POST /api/configs?id=six - Save a configuration
//   - GET  /api/configs/{name} - Load one configuration
//
// Moves, bulk moves and resets are pushed to WebSocket clients of the
// session through /ws?session={id}.
//
// Errors are JSON with a status picked from the error chain:
//
//	{"error": "session \"zz99\": session not found", "code": 404}
//
// Invalid directions, grid sizes and configs map to 400, unknown sessions and
// configs to 404.
package api
