package database

import (
	"context"
	"testing"
	"time"

	"github.com/mbolis/survey-box/session"
)

var (
	_ session.Store   = (*Sessions)(nil)
	_ session.Sweeper = (*Sessions)(nil)
)

func TestSessionsSetGetClear(t *testing.T) {
	s := NewSessions(openTestDB(t))
	ctx := context.Background()

	flags, err := s.Get(ctx, "tok")
	if err != nil {
		t.Fatalf("get unknown: %v", err)
	}
	if len(flags) != 0 {
		t.Fatalf("expected no flags, got %v", flags)
	}

	if err := s.Set(ctx, "tok", session.Admin); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "tok", session.Admin); err != nil {
		t.Fatalf("set twice: %v", err)
	}
	flags, err = s.Get(ctx, "tok")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !flags[session.Admin] || len(flags) != 1 {
		t.Fatalf("expected only the admin flag, got %v", flags)
	}

	if err := s.Clear(ctx, "tok", session.Admin); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := s.Clear(ctx, "tok", session.Admin); err != nil {
		t.Fatalf("clear twice: %v", err)
	}
	flags, _ = s.Get(ctx, "tok")
	if flags[session.Admin] {
		t.Fatal("expected admin flag to be cleared")
	}
}

func TestSessionsDelete(t *testing.T) {
	s := NewSessions(openTestDB(t))
	ctx := context.Background()

	s.Set(ctx, "a", session.Admin)
	s.Set(ctx, "a", "other")
	s.Set(ctx, "b", session.Admin)

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	a, _ := s.Get(ctx, "a")
	b, _ := s.Get(ctx, "b")
	if len(a) != 0 || !b[session.Admin] {
		t.Fatalf("expected only b to remain, got a=%v b=%v", a, b)
	}
}

func TestSessionsSweep(t *testing.T) {
	s := NewSessions(openTestDB(t))
	ctx := context.Background()

	s.Set(ctx, "old", session.Admin)
	s.Set(ctx, "old", "other")

	n, err := s.Sweep(ctx, time.Now().Add(-time.Hour))
	if err != nil || n != 0 {
		t.Fatalf("expected nothing swept, got %d (%v)", n, err)
	}

	n, err = s.Sweep(ctx, time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected both rows of the session swept, got %d", n)
	}
	if flags, _ := s.Get(ctx, "old"); len(flags) != 0 {
		t.Fatalf("expected swept session to be gone, got %v", flags)
	}
}
