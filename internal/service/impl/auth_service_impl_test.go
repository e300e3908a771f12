package impl

import (
	"context"
	"errors"
	"sync"
	"testing"

	"user-directory/internal/domain"
	"user-directory/internal/dto"
	"user-directory/internal/service"
	"user-directory/internal/store"

	"github.com/google/uuid"
)

type stubPasswordService struct {
	hashFunc   func(password string) (string, error)
	verifyFunc func(password, digest string) bool

	hashCalls   []string
	verifyCalls []string
}

func (s *stubPasswordService) Hash(password string) (string, error) {
	s.hashCalls = append(s.hashCalls, password)
	if s.hashFunc != nil {
		return s.hashFunc(password)
	}
	return "digest:" + password, nil
}

func (s *stubPasswordService) Verify(password, digest string) bool {
	s.verifyCalls = append(s.verifyCalls, password)
	if s.verifyFunc != nil {
		return s.verifyFunc(password, digest)
	}
	return digest == "digest:"+password
}

type stubTokenService struct {
	token    string
	issueErr error

	issueCalls []uuid.UUID
}

func (s *stubTokenService) Issue(ctx context.Context, acct *domain.Account) (string, error) {
	s.issueCalls = append(s.issueCalls, acct.ID)
	if s.issueErr != nil {
		return "", s.issueErr
	}
	return s.token, nil
}

func (s *stubTokenService) Verify(ctx context.Context, token string) (*service.SessionClaims, error) {
	return nil, errors.New("not implemented")
}

// memoryStore mimics the relational store's transactional behaviour: writes
// roll back on error, and the email unique index rejects racing duplicates.
type memoryStore struct {
	mu         sync.Mutex
	accounts   map[uuid.UUID]*domain.Account
	emailIndex map[string]uuid.UUID
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		accounts:   make(map[uuid.UUID]*domain.Account),
		emailIndex: make(map[string]uuid.UUID),
	}
}

type storeSnapshot struct {
	accounts   map[uuid.UUID]*domain.Account
	emailIndex map[string]uuid.UUID
}

func (m *memoryStore) WithTx(ctx context.Context, fn func(tx storeTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.snapshot()
	if err := fn(memoryTx{store: m}); err != nil {
		m.restore(snapshot)
		return err
	}
	return nil
}

func (m *memoryStore) snapshot() storeSnapshot {
	accounts := make(map[uuid.UUID]*domain.Account, len(m.accounts))
	for id, acct := range m.accounts {
		cp := *acct
		accounts[id] = &cp
	}
	emails := make(map[string]uuid.UUID, len(m.emailIndex))
	for k, v := range m.emailIndex {
		emails[k] = v
	}
	return storeSnapshot{accounts: accounts, emailIndex: emails}
}

func (m *memoryStore) restore(s storeSnapshot) {
	m.accounts = s.accounts
	m.emailIndex = s.emailIndex
}

func (m *memoryStore) accountByEmail(email string) (*domain.Account, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.emailIndex[email]
	if !ok {
		return nil, false
	}
	cp := *m.accounts[id]
	return &cp, true
}

type memoryTx struct{ store *memoryStore }

func (m memoryTx) Accounts() accountStore { return memoryAccountStore{store: m.store} }

type memoryAccountStore struct{ store *memoryStore }

func (a memoryAccountStore) Create(ctx context.Context, acct *domain.Account) error {
	if _, exists := a.store.emailIndex[acct.Email]; exists {
		return store.ErrDuplicateKey
	}
	cp := *acct
	a.store.accounts[acct.ID] = &cp
	a.store.emailIndex[acct.Email] = acct.ID
	return nil
}

func (a memoryAccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	id, ok := a.store.emailIndex[email]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	cp := *a.store.accounts[id]
	return &cp, nil
}

func TestAuthServiceRegisterPersistsAccountAndIssuesToken(t *testing.T) {
	st := newMemoryStore()
	ps := &stubPasswordService{}
	ts := &stubTokenService{token: "signed-token"}
	svc := &AuthServiceImpl{Store: st, Passwords: ps, Tokens: ts}

	ctx := context.Background()
	res, err := svc.Register(ctx, registerReq("Ada", "ada@example.com", "hunter22"))
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if !res.TokenIssued || res.Token != "signed-token" {
		t.Fatalf("unexpected auth result: %+v", res)
	}
	if res.User.Email != "ada@example.com" || res.User.Name != "Ada" {
		t.Fatalf("unexpected public view: %+v", res.User)
	}
	if len(ps.hashCalls) != 1 || ps.hashCalls[0] != "hunter22" {
		t.Fatalf("expected one hash call with the raw password")
	}

	acct, ok := st.accountByEmail("ada@example.com")
	if !ok {
		t.Fatalf("account was not persisted")
	}
	if acct.PasswordHash != "digest:hunter22" {
		t.Fatalf("stored hash mismatch: %q", acct.PasswordHash)
	}
	if len(ts.issueCalls) != 1 || ts.issueCalls[0] != acct.ID {
		t.Fatalf("token not issued for the new account: %+v", ts.issueCalls)
	}
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	st := newMemoryStore()
	svc := &AuthServiceImpl{Store: st, Passwords: &stubPasswordService{}, Tokens: &stubTokenService{token: "tok"}}
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq("Ada", "ada@example.com", "hunter22")); err != nil {
		t.Fatalf("first register returned error: %v", err)
	}
	if _, err := svc.Register(ctx, registerReq("Imposter", "ada@example.com", "hunter23")); !errors.Is(err, domain.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestAuthServiceRegisterConcurrentDuplicates(t *testing.T) {
	st := newMemoryStore()
	svc := &AuthServiceImpl{Store: st, Passwords: &stubPasswordService{}, Tokens: &stubTokenService{token: "tok"}}
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(ctx, registerReq("Ada", "race@example.com", "hunter22"))
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrAccountExists):
		default:
			t.Fatalf("unexpected error under concurrency: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one successful registration, got %d", successes)
	}
}

func TestAuthServiceRegisterHashFailureLeavesNoState(t *testing.T) {
	st := newMemoryStore()
	ps := &stubPasswordService{hashFunc: func(string) (string, error) {
		return "", errors.New("allocation failed")
	}}
	svc := &AuthServiceImpl{Store: st, Passwords: ps, Tokens: &stubTokenService{}}

	if _, err := svc.Register(context.Background(), registerReq("Ada", "ada@example.com", "hunter22")); !errors.Is(err, domain.ErrHashingFailed) {
		t.Fatalf("expected ErrHashingFailed, got %v", err)
	}
	if _, ok := st.accountByEmail("ada@example.com"); ok {
		t.Fatalf("no account should be persisted after a hash failure")
	}
}

func TestAuthServiceRegisterTokenFailureKeepsAccount(t *testing.T) {
	st := newMemoryStore()
	ts := &stubTokenService{issueErr: errors.New("signer broken")}
	svc := &AuthServiceImpl{Store: st, Passwords: &stubPasswordService{}, Tokens: ts}

	res, err := svc.Register(context.Background(), registerReq("Ada", "ada@example.com", "hunter22"))
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if res.TokenIssued || res.Token != "" {
		t.Fatalf("token must not be marked issued: %+v", res)
	}
	if _, ok := st.accountByEmail("ada@example.com"); !ok {
		t.Fatalf("account must survive a token issuance failure")
	}
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	st := newMemoryStore()
	ts := &stubTokenService{token: "signed-token"}
	svc := &AuthServiceImpl{Store: st, Passwords: &stubPasswordService{}, Tokens: ts}
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerReq("Bob", "bob@example.com", "super-secret"))
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	res, err := svc.Login(ctx, loginReq("bob@example.com", "super-secret"))
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if res.Token != "signed-token" || !res.TokenIssued {
		t.Fatalf("unexpected login result: %+v", res)
	}
	if res.User.ID != reg.User.ID {
		t.Fatalf("login resolved a different account: %v vs %v", res.User.ID, reg.User.ID)
	}
}

func TestAuthServiceLoginFailuresAreIndistinguishable(t *testing.T) {
	st := newMemoryStore()
	svc := &AuthServiceImpl{Store: st, Passwords: &stubPasswordService{}, Tokens: &stubTokenService{token: "tok"}}
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq("Bob", "bob@example.com", "super-secret")); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	wrongPw, err1 := svc.Login(ctx, loginReq("bob@example.com", "wrong"))
	noSuch, err2 := svc.Login(ctx, loginReq("nobody@example.com", "whatever"))

	if !errors.Is(err1, domain.ErrInvalidCredentials) || !errors.Is(err2, domain.ErrInvalidCredentials) {
		t.Fatalf("both failures must be ErrInvalidCredentials: %v / %v", err1, err2)
	}
	if wrongPw != nil || noSuch != nil {
		t.Fatalf("failed logins must not return partial results")
	}
	if err1.Error() != err2.Error() {
		t.Fatalf("failure messages differ: %q vs %q", err1, err2)
	}
}

func TestAuthServiceLoginTokenFailure(t *testing.T) {
	st := newMemoryStore()
	svc := &AuthServiceImpl{Store: st, Passwords: &stubPasswordService{}, Tokens: &stubTokenService{token: "tok"}}
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq("Bob", "bob@example.com", "super-secret")); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	svc.Tokens = &stubTokenService{issueErr: errors.New("signer broken")}
	if _, err := svc.Login(ctx, loginReq("bob@example.com", "super-secret")); !errors.Is(err, domain.ErrTokenIssuance) {
		t.Fatalf("expected ErrTokenIssuance, got %v", err)
	}
}

func TestAuthServiceRegisterThenLoginRoundTrip(t *testing.T) {
	st := newMemoryStore()
	real := NewPasswordServiceBcrypt(4)
	ts := &stubTokenService{token: "tok"}
	svc := &AuthServiceImpl{Store: st, Passwords: real, Tokens: ts}
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerReq("Carol", "carol@example.com", "correct horse"))
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	login, err := svc.Login(ctx, loginReq("carol@example.com", "correct horse"))
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if login.User.ID != reg.User.ID {
		t.Fatalf("round trip resolved different accounts")
	}
	if _, err := svc.Login(ctx, loginReq("carol@example.com", "incorrect horse")); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func registerReq(name, email, password string) dto.RegisterRequest {
	return dto.RegisterRequest{Name: name, Email: email, Password: password}
}

func loginReq(email, password string) dto.LoginRequest {
	return dto.LoginRequest{Email: email, Password: password}
}
