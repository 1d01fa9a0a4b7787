package internal

import (
	"encoding/json"
	"testing"
)

func TestAuditTrailForPrivilegedMutations(t *testing.T) {
	e := newTestEnv()
	id := e.register(t, "subject@x.com")
	e.register(t, "root@x.com")
	e.makeAdmin(t, "root@x.com")

	e.do(t, "PATCH", "/users/creator/"+id, e.token(t, "root@x.com"), nil)
	e.do(t, "PATCH", "/submission/c1", "", nil)
	e.do(t, "DELETE", "/users/"+id, "", nil)

	w := e.do(t, "GET", "/logs", e.token(t, "root@x.com"), nil)
	if w.Code != 200 {
		t.Fatalf("status %d", w.Code)
	}
	var entries []AuditEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}

	// newest first; unauthenticated mutations carry the sentinel actor
	if entries[0].Action != "delete_user" || entries[0].Actor != "anonymous" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Action != "mark_winner" || entries[1].Actor != "anonymous" {
		t.Errorf("entries[1] = %+v", entries[1])
	}
	if entries[2].Action != "make_creator" || entries[2].Actor != "root@x.com" {
		t.Errorf("entries[2] = %+v", entries[2])
	}
}

func TestLogsAreAdminGated(t *testing.T) {
	e := newTestEnv()
	e.register(t, "plain@x.com")

	if w := e.do(t, "GET", "/logs", "", nil); w.Code != 401 {
		t.Errorf("unauthenticated: status = %d, want 401", w.Code)
	}
	if w := e.do(t, "GET", "/logs", e.token(t, "plain@x.com"), nil); w.Code != 403 {
		t.Errorf("non-admin: status = %d, want 403", w.Code)
	}
}
