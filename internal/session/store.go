package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kaffecito/kaffecito/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type record struct {
	ID        uint   `gorm:"primaryKey"`
	Token     string `gorm:"not null"`
	UpdatedAt time.Time
}

func (record) TableName() string {
	return "session"
}

// DurableStore keeps the session in the local state database so the token
// survives between command invocations, mirroring the app's durable storage
// key `access_token`.
type DurableStore struct {
	mu    sync.Mutex
	conn  *gorm.DB
	token string
	ident Identity
	known bool
}

func NewDurableStore(client *db.Client) (*DurableStore, error) {
	if client == nil {
		return nil, fmt.Errorf("state database client required")
	}
	conn := client.DB()
	if err := conn.AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("migrating session table: %w", err)
	}

	store := &DurableStore{conn: conn}

	var row record
	err := conn.First(&row, 1).Error
	switch {
	case err == nil:
		store.token = row.Token
		store.ident, store.known = identityFromToken(row.Token)
	case errors.Is(err, gorm.ErrRecordNotFound):
		// no prior session
	default:
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return store, nil
}

func (s *DurableStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

func (s *DurableStore) Identity() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ident, s.known
}

func (s *DurableStore) Save(token string) error {
	if token == "" {
		return fmt.Errorf("access token is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	row := record{ID: 1, Token: token, UpdatedAt: time.Now()}
	err := s.conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}

	s.token = token
	s.ident, s.known = identityFromToken(token)
	return nil
}

// Invalidate clears the stored credentials; all 401 handling funnels here.
func (s *DurableStore) Invalidate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.ident = Identity{}
	s.known = false

	if err := s.conn.Delete(&record{}, 1).Error; err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
