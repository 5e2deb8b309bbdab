package event

import "testing"

func TestSignalEmitOrder(t *testing.T) {
	var s Signal[int]
	var got []int
	s.Subscribe(func(v int) { got = append(got, v) })
	s.Subscribe(func(v int) { got = append(got, v*10) })

	s.Emit(2)

	want := []int{2, 20}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestSignalCancel(t *testing.T) {
	var s Signal[string]
	calls := 0
	cancel := s.Subscribe(func(string) { calls++ })

	s.Emit("a")
	cancel()
	cancel()
	s.Emit("b")

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestSignalUnsubscribeDuringEmit(t *testing.T) {
	var s Signal[struct{}]
	calls := 0
	var cancel func()
	cancel = s.Subscribe(func(struct{}) {
		calls++
		cancel()
	})
	s.Subscribe(func(struct{}) { calls++ })

	s.Emit(struct{}{})
	s.Emit(struct{}{})

	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}
