package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/iwellness/admin-users/internal/core/domain"
	"github.com/iwellness/admin-users/internal/core/security"
)

// ---------------------------------------------------------------------------
// In-memory store: identities, roles, profiles and transactions.
// ---------------------------------------------------------------------------

type memStore struct {
	txMu sync.Mutex // serializes transactions
	mu   sync.Mutex

	nextID    int64
	users     map[int64]*domain.Identity
	roles     map[string]*domain.Role
	tourists  map[int64]*domain.TouristProfile
	providers map[int64]*domain.ProviderProfile

	touristErr        error // if set, SaveTourist returns this error
	saveUserErr       error // if set, Save on an existing identity returns this error
	providerLookupErr error // if set, FindProviderByIdentity returns this error
}

func newMemStore(roles ...string) *memStore {
	s := &memStore{
		users:     make(map[int64]*domain.Identity),
		roles:     make(map[string]*domain.Role),
		tourists:  make(map[int64]*domain.TouristProfile),
		providers: make(map[int64]*domain.ProviderProfile),
	}
	for i, r := range roles {
		s.roles[r] = &domain.Role{ID: int64(i + 1), Name: r}
	}
	return s
}

func catalogStore() *memStore {
	return newMemStore(domain.RoleCatalog...)
}

func (s *memStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byEmail(email) != nil, nil
}

func (s *memStore) FindByEmail(_ context.Context, email string) (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.byEmail(email)
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *memStore) FindByID(_ context.Context, id int64) (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *memStore) Save(_ context.Context, identity *domain.Identity) (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if other := s.byEmail(identity.Email); other != nil && other.ID != identity.ID {
		return nil, domain.ErrEmailTaken
	}
	clone := *identity
	if clone.ID == 0 {
		s.nextID++
		clone.ID = s.nextID
	} else {
		if s.saveUserErr != nil {
			return nil, s.saveUserErr
		}
		if _, ok := s.users[clone.ID]; !ok {
			return nil, domain.ErrUserNotFound
		}
	}
	s.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (s *memStore) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

func (s *memStore) FindByName(_ context.Context, name string) (*domain.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.roles[name]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	clone := *r
	return &clone, nil
}

func (s *memStore) SaveTourist(_ context.Context, p *domain.TouristProfile) (*domain.TouristProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.touristErr != nil {
		return nil, s.touristErr
	}
	clone := *p
	if clone.ID == 0 {
		clone.ID = clone.IdentityID + 100
	}
	s.tourists[clone.IdentityID] = &clone
	out := clone
	return &out, nil
}

func (s *memStore) FindTouristByIdentity(_ context.Context, identityID int64) (*domain.TouristProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.tourists[identityID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *memStore) SaveProvider(_ context.Context, p *domain.ProviderProfile) (*domain.ProviderProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *p
	if clone.ID == 0 {
		clone.ID = clone.IdentityID + 200
	}
	s.providers[clone.IdentityID] = &clone
	out := clone
	return &out, nil
}

func (s *memStore) FindProviderByIdentity(_ context.Context, identityID int64) (*domain.ProviderProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.providerLookupErr != nil {
		return nil, s.providerLookupErr
	}
	p, ok := s.providers[identityID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *memStore) DeleteByIdentity(_ context.Context, identityID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tourists, identityID)
	delete(s.providers, identityID)
	return nil
}

// WithinTransaction snapshots the maps and restores them when fn fails.
func (s *memStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	users, tourists, providers := cloneMap(s.users), cloneMap(s.tourists), cloneMap(s.providers)
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.users, s.tourists, s.providers = users, tourists, providers
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) byEmail(email string) *domain.Identity {
	for _, u := range s.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func (s *memStore) counts() (users, tourists, providers int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users), len(s.tourists), len(s.providers)
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ---------------------------------------------------------------------------
// Reset tokens, notifier and mailer.
// ---------------------------------------------------------------------------

type stubResetRepo struct {
	mu     sync.Mutex
	tokens map[string]*domain.ResetToken
}

func newStubResetRepo() *stubResetRepo {
	return &stubResetRepo{tokens: make(map[string]*domain.ResetToken)}
}

func (r *stubResetRepo) Save(_ context.Context, t *domain.ResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *t
	r.tokens[t.Token] = &clone
	return nil
}

func (r *stubResetRepo) FindByToken(_ context.Context, token string) (*domain.ResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok {
		return nil, domain.ErrInvalidResetToken
	}
	clone := *t
	return &clone, nil
}

func (r *stubResetRepo) Delete(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[token]; !ok {
		return false, nil
	}
	delete(r.tokens, token)
	return true, nil
}

func (r *stubResetRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}

type stubNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (n *stubNotifier) Notify(msg domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
}

func (n *stubNotifier) all() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Notification(nil), n.sent...)
}

type sentMail struct {
	to, subject, body string
}

type stubMailer struct {
	err  error
	sent []sentMail
}

func (m *stubMailer) Send(_ context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

var errStoreDown = errors.New("store unavailable")

// ---------------------------------------------------------------------------
// Service builders.
// ---------------------------------------------------------------------------

func newTestTokenService() *security.TokenService {
	svc, err := security.NewTokenService(security.TokenConfig{Secret: []byte("secret"), TTL: time.Hour})
	if err != nil {
		panic(err)
	}
	return svc
}

func newTestAuth(store *memStore) *AuthService {
	return NewAuthService(store, store, security.SHA256Hasher{}, newTestTokenService(), zerolog.Nop())
}

func newTestRegistration(store *memStore, notifier *stubNotifier) *RegistrationService {
	return NewRegistrationService(store, store, store, store, security.SHA256Hasher{}, newTestAuth(store), notifier, zerolog.Nop())
}
