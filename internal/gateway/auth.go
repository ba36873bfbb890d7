package gateway

import (
	"net/http"

	identity "github.com/shophub/storefront/internal/identity/domain"
)

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type providerLoginRequest struct {
	Provider    string `json:"provider"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type authResponse struct {
	User  identity.User `json:"user"`
	Token string        `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	user, err := s.identity.SignUp(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respondWithToken(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	user, err := s.identity.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respondWithToken(w, http.StatusOK, user)
}

func (s *Server) handleProviderLogin(w http.ResponseWriter, r *http.Request) {
	var req providerLoginRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	user, err := s.identity.SignInWithProvider(r.Context(), req.Provider, req.Email, req.DisplayName)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respondWithToken(w, http.StatusOK, user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.identity.SignOut(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) respondWithToken(w http.ResponseWriter, status int, user identity.User) {
	token, err := s.identity.Token(user)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, status, authResponse{User: user, Token: token})
}
