package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/kaffecito/kaffecito/internal/session"
	pkgerrors "github.com/kaffecito/kaffecito/pkg/errors"
)

type apiClient interface {
	Post(ctx context.Context, path string, body, out any) error
}

// Service handles sign-in and sign-out against the backend's auth endpoints.
// Credential verification and token issuance live on the backend; the client
// only stores what it is handed.
type Service struct {
	api  apiClient
	sess session.Store
}

func NewService(api apiClient, sess session.Store) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("api client required")
	}
	if sess == nil {
		return nil, fmt.Errorf("session store required")
	}
	return &Service{api: api, sess: sess}, nil
}

type loginRequest struct {
	Cedula   string `json:"cedula_usuario"`
	Password string `json:"password_usuario"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for an access token and persists the session.
func (s *Service) Login(ctx context.Context, cedula, password string) (session.Identity, error) {
	var reasons []string
	if strings.TrimSpace(cedula) == "" {
		reasons = append(reasons, "cedula is required")
	}
	if password == "" {
		reasons = append(reasons, "password is required")
	}
	if len(reasons) > 0 {
		return session.Identity{}, pkgerrors.New(pkgerrors.CodeValidation, "missing credentials").WithDetails(reasons)
	}

	var resp loginResponse
	if err := s.api.Post(ctx, "/auth/login", loginRequest{Cedula: cedula, Password: password}, &resp); err != nil {
		return session.Identity{}, err
	}
	if resp.AccessToken == "" {
		return session.Identity{}, pkgerrors.New(pkgerrors.CodeServer, "no access token received")
	}

	if err := s.sess.Save(resp.AccessToken); err != nil {
		return session.Identity{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "storing session")
	}
	ident, _ := s.sess.Identity()
	return ident, nil
}

func (s *Service) IsAuthenticated() bool {
	_, ok := s.sess.Token()
	return ok
}

// Logout tears down the session through its single invalidation entry point.
func (s *Service) Logout() error {
	return s.sess.Invalidate()
}
