package services

import (
	"context"

	"storedash/internal/apiclient"
	"storedash/internal/repos"
)

// SessionService is the single place protected pages ask for the owner token.
// Presence is all that is checked; validity is left to the backend.
type SessionService struct {
	Sessions *repos.SessionRepo
	API      *apiclient.Client
}

func NewSessionService(sessions *repos.SessionRepo, api *apiclient.Client) *SessionService {
	return &SessionService{Sessions: sessions, API: api}
}

func (s *SessionService) CurrentToken(sid string) (string, bool) {
	if sid == "" {
		return "", false
	}
	tok, err := s.Sessions.Token(sid)
	if err != nil || tok == "" {
		return "", false
	}
	return tok, true
}

func (s *SessionService) IsAuthenticated(sid string) bool {
	_, ok := s.CurrentToken(sid)
	return ok
}

// Login exchanges credentials with the backend and binds the token to sid.
func (s *SessionService) Login(ctx context.Context, sid, email, password string) error {
	tok, err := s.API.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.Sessions.Bind(sid, tok)
}

func (s *SessionService) Logout(sid string) error {
	return s.Sessions.Unbind(sid)
}
