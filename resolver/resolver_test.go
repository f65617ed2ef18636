package resolver

import (
	"reflect"
	"sync"
	"testing"
)

func TestResolveSpeaker(t *testing.T) {
	table := New(map[string]string{"alice": "/refs/alice.wav"}, nil)

	path, ok := table.ResolveSpeaker("alice")
	if !ok || path != "/refs/alice.wav" {
		t.Errorf("ResolveSpeaker(alice) = %q, %v", path, ok)
	}
	if _, ok := table.ResolveSpeaker("nobody"); ok {
		t.Error("unknown speaker should miss")
	}
}

// TestResolveEmotionFallback tests that an emotion id resolves from the
// emotion namespace first and falls back to the speaker namespace.
func TestResolveEmotionFallback(t *testing.T) {
	table := New(
		map[string]string{"alice": "/refs/alice.wav"},
		map[string]string{"happy": "/refs/happy.wav"},
	)

	tests := []struct {
		id       string
		wantPath string
		wantOK   bool
	}{
		{"happy", "/refs/happy.wav", true},
		{"alice", "/refs/alice.wav", true}, // speaker fallback
		{"nothing", "", false},
	}

	for _, tt := range tests {
		path, ok := table.ResolveEmotion(tt.id)
		if ok != tt.wantOK || path != tt.wantPath {
			t.Errorf("ResolveEmotion(%q) = %q, %v; want %q, %v",
				tt.id, path, ok, tt.wantPath, tt.wantOK)
		}
	}
}

// TestEmotionNamespaceWins tests that when both namespaces hold the same
// id, the emotion entry is used.
func TestEmotionNamespaceWins(t *testing.T) {
	table := New(
		map[string]string{"alice": "/refs/alice.wav"},
		map[string]string{"alice": "/refs/alice_emo.wav"},
	)

	path, ok := table.ResolveEmotion("alice")
	if !ok || path != "/refs/alice_emo.wav" {
		t.Errorf("ResolveEmotion(alice) = %q, %v; want emotion namespace entry", path, ok)
	}
}

func TestAddAndReplace(t *testing.T) {
	table := New(nil, nil)

	table.AddSpeaker("bob", "/refs/bob.wav")
	table.AddSpeaker("bob", "/refs/bob_v2.wav")
	table.AddEmotion("sad", "/refs/sad.wav")

	if path, _ := table.ResolveSpeaker("bob"); path != "/refs/bob_v2.wav" {
		t.Errorf("ResolveSpeaker(bob) = %q, want the replaced path", path)
	}
	if _, ok := table.ResolveEmotion("sad"); !ok {
		t.Error("added emotion should resolve")
	}
}

func TestListingsAreSorted(t *testing.T) {
	table := New(
		map[string]string{"zoe": "z", "alice": "a", "mike": "m"},
		map[string]string{"sad": "s", "happy": "h"},
	)

	if got, want := table.Speakers(), []string{"alice", "mike", "zoe"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Speakers = %v, want %v", got, want)
	}
	if got, want := table.Emotions(), []string{"happy", "sad"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Emotions = %v, want %v", got, want)
	}
}

// TestNewCopiesInput tests that the table owns its maps.
func TestNewCopiesInput(t *testing.T) {
	speakers := map[string]string{"alice": "/refs/alice.wav"}
	table := New(speakers, nil)

	speakers["alice"] = "/tampered.wav"
	if path, _ := table.ResolveSpeaker("alice"); path != "/refs/alice.wav" {
		t.Errorf("table mutated through caller map: %q", path)
	}
}

// TestConcurrentAccess resolves and registers from many goroutines; run
// with -race.
func TestConcurrentAccess(t *testing.T) {
	table := New(map[string]string{"alice": "/refs/alice.wav"}, nil)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				table.ResolveSpeaker("alice")
				table.ResolveEmotion("alice")
				if i%10 == 0 {
					table.AddEmotion("happy", "/refs/happy.wav")
					table.Speakers()
				}
			}
		}(g)
	}
	wg.Wait()
}
