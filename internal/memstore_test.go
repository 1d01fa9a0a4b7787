package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// In-memory store fakes mirroring the pg implementations: lookups that
// match nothing return (nil, nil), mutations count rows actually changed.

type memUserStore struct {
	mu    sync.Mutex
	users []User
}

func (m *memUserStore) Insert(_ context.Context, u User) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = uuid.NewString()
	m.users = append(m.users, u)
	return u.ID, nil
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].Email == email {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUserStore) List(_ context.Context) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]User{}, m.users...), nil
}

func (m *memUserStore) SetRole(_ context.Context, id string, role Role) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for i := range m.users {
		if m.users[i].ID == id && m.users[i].Role != role {
			m.users[i].Role = role
			n++
		}
	}
	return n, nil
}

func (m *memUserStore) Delete(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	kept := m.users[:0]
	for _, u := range m.users {
		if u.ID == id {
			n++
			continue
		}
		kept = append(kept, u)
	}
	m.users = kept
	return n, nil
}

type memDraftStore struct {
	mu     sync.Mutex
	drafts []DraftContest
}

func (m *memDraftStore) Insert(_ context.Context, d DraftContest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = uuid.NewString()
	m.drafts = append(m.drafts, d)
	return d.ID, nil
}

func (m *memDraftStore) List(_ context.Context) ([]DraftContest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]DraftContest{}, m.drafts...), nil
}

func (m *memDraftStore) Find(_ context.Context, id string) (*DraftContest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.drafts {
		if m.drafts[i].ID == id {
			d := m.drafts[i]
			return &d, nil
		}
	}
	return nil, nil
}

func (m *memDraftStore) UpdateFields(_ context.Context, id string, f ContestFields) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for i := range m.drafts {
		if m.drafts[i].ID == id {
			m.drafts[i].ContestFields = f
			n++
		}
	}
	return n, nil
}

func (m *memDraftStore) SetStatus(_ context.Context, id string, status DraftStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for i := range m.drafts {
		if m.drafts[i].ID == id && m.drafts[i].Status != status {
			m.drafts[i].Status = status
			n++
		}
	}
	return n, nil
}

func (m *memDraftStore) Delete(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	kept := m.drafts[:0]
	for _, d := range m.drafts {
		if d.ID == id {
			n++
			continue
		}
		kept = append(kept, d)
	}
	m.drafts = kept
	return n, nil
}

type memContestStore struct {
	mu       sync.Mutex
	contests []Contest
}

func (m *memContestStore) Insert(_ context.Context, c Contest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = uuid.NewString()
	m.contests = append(m.contests, c)
	return c.ID, nil
}

func (m *memContestStore) List(_ context.Context) ([]Contest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Contest{}, m.contests...), nil
}

func (m *memContestStore) Find(_ context.Context, id string) (*Contest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.contests {
		if m.contests[i].ID == id {
			c := m.contests[i]
			return &c, nil
		}
	}
	return nil, nil
}

type memSubmissionStore struct {
	mu   sync.Mutex
	subs []Submission
}

func (m *memSubmissionStore) Insert(_ context.Context, s Submission) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = uuid.NewString()
	m.subs = append(m.subs, s)
	return s.ID, nil
}

func (m *memSubmissionStore) List(_ context.Context) ([]Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Submission{}, m.subs...), nil
}

func (m *memSubmissionStore) Find(_ context.Context, id string) (*Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.subs {
		if m.subs[i].ID == id {
			s := m.subs[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (m *memSubmissionStore) ListByContest(_ context.Context, contestID string) ([]Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Submission{}
	for _, s := range m.subs {
		if s.ContestID == contestID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSubmissionStore) MarkWinners(_ context.Context, contestID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for i := range m.subs {
		if m.subs[i].ContestID == contestID && m.subs[i].Status != SubmissionWinner {
			m.subs[i].Status = SubmissionWinner
			n++
		}
	}
	return n, nil
}

type memWinnerStore struct {
	mu      sync.Mutex
	winners []Winner
}

func (m *memWinnerStore) Insert(_ context.Context, w Winner) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w.ID = uuid.NewString()
	m.winners = append(m.winners, w)
	return w.ID, nil
}

func (m *memWinnerStore) ListByEmail(_ context.Context, email string) ([]Winner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Winner{}
	for _, w := range m.winners {
		if w.ParticipantEmail == email {
			out = append(out, w)
		}
	}
	return out, nil
}

type memPaymentStore struct {
	mu       sync.Mutex
	payments []Payment
}

func (m *memPaymentStore) Insert(_ context.Context, p Payment) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = uuid.NewString()
	m.payments = append(m.payments, p)
	return p.ID, nil
}

func (m *memPaymentStore) ListByEmail(_ context.Context, email string) ([]Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Payment{}
	for _, p := range m.payments {
		if p.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

type memAuditStore struct {
	mu      sync.Mutex
	entries []AuditEntry
}

func (m *memAuditStore) Record(_ context.Context, actor, action, details string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, AuditEntry{
		ID:        int64(len(m.entries) + 1),
		CreatedAt: time.Now().UTC().Format("2006-01-02 15:04:05"),
		Actor:     actor,
		Action:    action,
		Details:   details,
	})
}

func (m *memAuditStore) Recent(_ context.Context, limit int) ([]AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []AuditEntry{}
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}

type fakeProvider struct {
	calls []int64
	err   error
}

func (f *fakeProvider) CreateIntent(_ context.Context, amount int64, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.calls = append(f.calls, amount)
	return "cs_test_123", nil
}

/* ===================== HARNESS ===================== */

const testSecret = "test-secret"

type testEnv struct {
	stores *Stores
	router *gin.Engine
	pay    *fakeProvider
}

func newTestEnv() *testEnv {
	s := &Stores{
		Users:       &memUserStore{},
		Drafts:      &memDraftStore{},
		Contests:    &memContestStore{},
		Submissions: &memSubmissionStore{},
		Winners:     &memWinnerStore{},
		Payments:    &memPaymentStore{},
		Audit:       &memAuditStore{},
	}
	pay := &fakeProvider{}
	return &testEnv{stores: s, router: NewRouter(s, testSecret, pay), pay: pay}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) token(t *testing.T, email string) string {
	t.Helper()
	tok, err := IssueToken(testSecret, email)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), into); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

// register creates a user and returns its id.
func (e *testEnv) register(t *testing.T, email string) string {
	t.Helper()
	w := e.do(t, "POST", "/users", "", map[string]string{"email": email})
	if w.Code != 200 {
		t.Fatalf("register %s: status %d", email, w.Code)
	}
	var resp struct {
		InsertedID string `json:"insertedId"`
	}
	decode(t, w, &resp)
	if resp.InsertedID == "" {
		t.Fatalf("register %s: no insertedId", email)
	}
	return resp.InsertedID
}

// makeAdmin promotes a registered user directly through the store.
func (e *testEnv) makeAdmin(t *testing.T, email string) {
	t.Helper()
	u, err := e.stores.Users.FindByEmail(context.Background(), email)
	if err != nil || u == nil {
		t.Fatalf("makeAdmin: user %s not found", email)
	}
	if _, err := e.stores.Users.SetRole(context.Background(), u.ID, RoleAdmin); err != nil {
		t.Fatalf("makeAdmin: %v", err)
	}
}
