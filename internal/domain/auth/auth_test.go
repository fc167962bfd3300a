package auth

import (
	"testing"
	"time"
)

func TestRole_AtLeast(t *testing.T) {
	if !RoleAdmin.AtLeast(RoleCreator) {
		t.Fatalf("admin should satisfy creator")
	}
	if !RoleCreator.AtLeast(RoleMember) {
		t.Fatalf("creator should satisfy member")
	}
	if RoleMember.AtLeast(RoleCreator) {
		t.Fatalf("member should not satisfy creator")
	}
	if !RoleGuest.AtLeast(RoleGuest) {
		t.Fatalf("guest should satisfy guest")
	}
}

func TestSession_IsGuest(t *testing.T) {
	s := Session{Role: RoleGuest}
	if !s.IsGuest() {
		t.Fatalf("expected guest")
	}
	if (Session{Role: RoleMember}).IsGuest() {
		t.Fatalf("did not expect guest")
	}
}

func TestIdentity_SimpleFields(t *testing.T) {
	id := Identity{UserID: "u", Email: "e", ExpiresAt: time.Now().Add(time.Hour)}
	if id.UserID != "u" || id.Email != "e" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}
