package session

import (
	"context"
	"errors"
	"testing"

	"ipschool.org/internal/kv"
)

func TestStoreSetAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, kv.NewMemory())

	if got := s.Token(); got != "" {
		t.Fatalf("fresh store token = %q, want empty", got)
	}

	s.SetToken(ctx, "tok-1")
	if got := s.Token(); got != "tok-1" {
		t.Fatalf("token = %q, want tok-1", got)
	}

	s.SetToken(ctx, "tok-2")
	if got := s.Token(); got != "tok-2" {
		t.Fatalf("last write should win, token = %q", got)
	}

	s.SetToken(ctx, "")
	if got := s.Token(); got != "" {
		t.Fatalf("cleared token = %q, want empty", got)
	}
}

func TestStoreNotifiesEveryWrite(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, kv.NewMemory())

	calls := 0
	s.Subscribe(func() { calls++ })

	s.SetToken(ctx, "tok")
	s.SetToken(ctx, "tok") // redundant write still notifies
	s.SetToken(ctx, "")

	if calls != 3 {
		t.Fatalf("subscriber called %d times, want 3", calls)
	}
}

func TestStoreSubscriberOrderAndUnsubscribe(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, kv.NewMemory())

	var order []string
	cancelA := s.Subscribe(func() { order = append(order, "a") })
	s.Subscribe(func() { order = append(order, "b") })

	s.SetToken(ctx, "one")
	cancelA()
	s.SetToken(ctx, "two")

	want := []string{"a", "b", "b"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestStoreRestoresPersistedToken(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()

	first := NewStore(ctx, mem)
	first.SetToken(ctx, "persisted")

	// A new store over the same backing restores the session.
	second := NewStore(ctx, mem)
	if got := second.Token(); got != "persisted" {
		t.Fatalf("restored token = %q, want persisted", got)
	}

	second.SetToken(ctx, "")
	third := NewStore(ctx, mem)
	if got := third.Token(); got != "" {
		t.Fatalf("token after clear = %q, want empty", got)
	}
}

type failingKV struct{ err error }

func (f *failingKV) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f *failingKV) Set(context.Context, string, string) error         { return f.err }
func (f *failingKV) Delete(context.Context, string) error              { return f.err }
func (f *failingKV) Close() error                                      { return nil }

func TestStoreSurvivesPersistenceFailure(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, &failingKV{err: errors.New("disk gone")})

	// Writes keep working in memory even when persistence fails.
	s.SetToken(ctx, "tok")
	if got := s.Token(); got != "tok" {
		t.Fatalf("token = %q, want tok despite kv failure", got)
	}
}
