package keypool

import "testing"

func TestNextRoundRobins(t *testing.T) {
	p := New([]string{"k1", "k2", "k3"}, []string{"a", "b", "c"})

	var got []string
	for i := 0; i < 4; i++ {
		_, v := p.Next()
		got = append(got, v)
	}
	want := []string{"a", "b", "c", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rotation mismatch: got %v, want %v", got, want)
		}
	}
}

func TestNextSkipsEmptySlots(t *testing.T) {
	p := New([]string{"k1", "k2", "k3"}, []string{"", "b", ""})

	for i := 0; i < 3; i++ {
		label, v := p.Next()
		if v != "b" || label != "k2" {
			t.Fatalf("expected only the populated slot, got (%q, %q)", label, v)
		}
	}
}

func TestNextEmptyPool(t *testing.T) {
	p := New(nil, nil)
	if label, v := p.Next(); label != "" || v != "" {
		t.Errorf("empty pool should return empty key, got (%q, %q)", label, v)
	}

	allEmpty := New([]string{"k1"}, []string{""})
	if _, v := allEmpty.Next(); v != "" {
		t.Errorf("pool with only unset slots should return empty key, got %q", v)
	}
}

func TestSizeCountsPopulatedSlots(t *testing.T) {
	p := New([]string{"k1", "k2", "k3"}, []string{"a", "", "c"})
	if p.Size() != 2 {
		t.Errorf("expected 2 usable keys, got %d", p.Size())
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("NVIDIA_API_KEY_1", "first")
	t.Setenv("NVIDIA_API_KEY_2", "")
	t.Setenv("NVIDIA_API_KEY_3", "third")
	t.Setenv("NVIDIA_API_KEY_4", "")
	t.Setenv("NVIDIA_API_KEY_5", "")

	p := FromEnv()
	if p.Size() != 2 {
		t.Fatalf("expected 2 keys from env, got %d", p.Size())
	}
	label, v := p.Next()
	if label != "NVIDIA_API_KEY_1" || v != "first" {
		t.Errorf("unexpected first key: (%q, %q)", label, v)
	}
	label, v = p.Next()
	if label != "NVIDIA_API_KEY_3" || v != "third" {
		t.Errorf("unexpected second key: (%q, %q)", label, v)
	}
}
