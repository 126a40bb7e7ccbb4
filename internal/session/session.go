package session

// Identity is what the client knows about the signed-in user, extracted from
// the access token's claims. The backend remains the authority; these fields
// are only used for addressing (usuario_id on order creation) and display.
type Identity struct {
	UserID int
	Cedula string
	Name   string
}

// Store holds the bearer session. Invalidate is the single entry point for
// tearing a session down; every 401 observer funnels through it.
type Store interface {
	Token() (string, bool)
	Identity() (Identity, bool)
	Save(token string) error
	Invalidate() error
}
