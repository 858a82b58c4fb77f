package api

import "net/http"

// handleLiveness reports that the process is up.
func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReadiness reports whether the store can serve reads. A fresh
// deployment with an unreachable database should fail here, not on the
// first game request.
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if _, err := s.db.ListGames(1, 0); err != nil {
		s.logger.Printf("readiness probe failed: %v", err)
		s.writeError(w, http.StatusServiceUnavailable, ErrTypeUnavailable, "store not ready")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
