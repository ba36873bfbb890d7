package gateway

import (
	"net/http"
)

type addMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (s *Server) handleAddMessage(w http.ResponseWriter, r *http.Request) {
	var req addMessageRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	msg, err := s.messages.Add(r.Context(), req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, msg)
}
