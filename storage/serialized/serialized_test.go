package serialized_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jrife/ssw/serializer"
	"github.com/jrife/ssw/storage/serialized"
)

type fakeBackend struct {
	value   string
	saves   []string
	reads   int
	inits   int
	clears  int
	saveErr error
}

func (backend *fakeBackend) Name() string {
	return "fake"
}

func (backend *fakeBackend) IsAvailable() bool {
	return true
}

func (backend *fakeBackend) Read() (string, error) {
	backend.reads++

	return backend.value, nil
}

func (backend *fakeBackend) Save(s string) error {
	if backend.saveErr != nil {
		return backend.saveErr
	}

	backend.saves = append(backend.saves, s)
	backend.value = s

	return nil
}

func (backend *fakeBackend) SpecificInit() error {
	backend.inits++

	return nil
}

func (backend *fakeBackend) SpecificClear() error {
	backend.clears++

	return nil
}

func newAdapter(backend *fakeBackend) *serialized.Adapter {
	return serialized.New(backend, serialized.Config{})
}

func mustAll(t *testing.T, adapter *serialized.Adapter) map[string]interface{} {
	all, err := adapter.All()

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	return all
}

func TestInitDoesNotReadBox(t *testing.T) {
	backend := &fakeBackend{value: `{"a":1}`}
	adapter := newAdapter(backend)

	if err := adapter.Init(); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if backend.inits != 1 {
		t.Fatalf("expected specific init to run once, ran %d times", backend.inits)
	}

	if backend.reads != 0 {
		t.Fatalf("expected no reads during init, got %d", backend.reads)
	}

	adapter.Get("a")
	adapter.Get("a")

	if backend.reads != 1 {
		t.Fatalf("expected exactly one read, got %d", backend.reads)
	}
}

func TestAddAndRemove(t *testing.T) {
	backend := &fakeBackend{}
	adapter := newAdapter(backend)

	if err := adapter.Add("x", 1.0); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if err := adapter.AddAll(map[string]interface{}{"y": 2.0}); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if diff := cmp.Diff(map[string]interface{}{"x": 1.0, "y": 2.0}, mustAll(t, adapter)); diff != "" {
		t.Fatal(diff)
	}

	if err := adapter.Remove("x"); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if diff := cmp.Diff(map[string]interface{}{"y": 2.0}, mustAll(t, adapter)); diff != "" {
		t.Fatal(diff)
	}

	// What was saved is what a fresh adapter sees
	if diff := cmp.Diff(map[string]interface{}{"y": 2.0}, mustAll(t, newAdapter(&fakeBackend{value: backend.value}))); diff != "" {
		t.Fatal(diff)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	backend := &fakeBackend{value: `{"k":"v","other":true}`}
	adapter := newAdapter(backend)

	adapter.Remove("k")
	first := mustAll(t, adapter)
	adapter.Remove("k")
	second := mustAll(t, adapter)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatal(diff)
	}

	if len(backend.saves) != 1 {
		t.Fatalf("expected one write, got %d", len(backend.saves))
	}

	adapter.Remove("missing")

	if len(backend.saves) != 1 {
		t.Fatalf("expected removing an absent key not to write, got %d writes", len(backend.saves))
	}
}

func TestClear(t *testing.T) {
	backend := &fakeBackend{value: `{"k":"v"}`}
	adapter := newAdapter(backend)

	if err := adapter.Clear(); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if diff := cmp.Diff(map[string]interface{}{}, mustAll(t, adapter)); diff != "" {
		t.Fatal(diff)
	}

	if _, ok, _ := adapter.Get("k"); ok {
		t.Fatalf("expected k to be absent after clear")
	}

	if diff := cmp.Diff([]string{""}, backend.saves); diff != "" {
		t.Fatal(diff)
	}

	if backend.clears != 1 {
		t.Fatalf("expected specific clear to run once, ran %d times", backend.clears)
	}
}

func TestReadBox(t *testing.T) {
	testCases := map[string]struct {
		stored   string
		expected map[string]interface{}
	}{
		"empty": {
			stored:   "",
			expected: map[string]interface{}{},
		},
		"garbage": {
			stored:   "some window name",
			expected: map[string]interface{}{},
		},
		"mapping": {
			stored:   `{"a":"b","n":3}`,
			expected: map[string]interface{}{"a": "b", "n": 3.0},
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			adapter := newAdapter(&fakeBackend{value: testCase.stored})

			if diff := cmp.Diff(testCase.expected, mustAll(t, adapter)); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestGetAbsentAndEmpty(t *testing.T) {
	adapter := newAdapter(&fakeBackend{value: `{"empty":""}`})

	value, ok, err := adapter.Get("empty")

	if err != nil || !ok || value != "" {
		t.Fatalf("expected present empty value, got %#v ok=%v err=%#v", value, ok, err)
	}

	if _, ok, _ := adapter.Get("missing"); ok {
		t.Fatalf("expected missing to be absent")
	}
}

func TestAllReturnsCopy(t *testing.T) {
	adapter := newAdapter(&fakeBackend{})
	adapter.Add("a", "b")

	all := mustAll(t, adapter)
	all["a"] = "changed"

	if value, _, _ := adapter.Get("a"); value != "b" {
		t.Fatalf("expected box to be unaffected, got %#v", value)
	}
}

func TestCorruptMapping(t *testing.T) {
	adapter := newAdapter(&fakeBackend{value: "{broken"})

	if _, err := adapter.All(); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestSaveFailureReloadsFromMedium(t *testing.T) {
	backend := &fakeBackend{value: `{"a":"persisted"}`}
	adapter := newAdapter(backend)
	saveErr := errors.New("quota exceeded")

	backend.saveErr = saveErr

	if err := adapter.Add("a", "lost"); !errors.Is(err, saveErr) {
		t.Fatalf("expected save error, got %#v", err)
	}

	backend.saveErr = nil

	if value, _, _ := adapter.Get("a"); value != "persisted" {
		t.Fatalf("expected the persisted value, got %#v", value)
	}
}

func TestSerializationUnavailable(t *testing.T) {
	release := make(chan struct{})
	s := serializer.New(serializer.Config{
		Fallback: func() (serializer.Codec, error) {
			<-release

			return serializer.NativeCodec{}, nil
		},
	})
	backend := &fakeBackend{value: `{"a":"b"}`}
	adapter := serialized.New(backend, serialized.Config{Serializer: s})

	if err := adapter.Init(); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if _, _, err := adapter.Get("a"); !errors.Is(err, serializer.ErrSerializationUnavailable) {
		t.Fatalf("expected ErrSerializationUnavailable, got %#v", err)
	}

	if err := adapter.Add("c", "d"); !errors.Is(err, serializer.ErrSerializationUnavailable) {
		t.Fatalf("expected ErrSerializationUnavailable, got %#v", err)
	}

	close(release)
	<-s.Ready()

	if value, _, err := adapter.Get("a"); err != nil || value != "b" {
		t.Fatalf("expected b, got %#v err=%#v", value, err)
	}
}
