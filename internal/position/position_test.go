package position

import "testing"

func TestEngineToHost(t *testing.T) {
	e := Engine{Line: 1, Column: 1}
	h := e.ToHost()
	if h.Line != 0 || h.Column != 0 {
		t.Errorf("expected (0,0), got %v", h)
	}
}

func TestEngineToHostSaturatesAtZero(t *testing.T) {
	e := Engine{Line: 0, Column: 0}
	h := e.ToHost()
	if h.Line != 0 || h.Column != 0 {
		t.Errorf("expected saturated (0,0), got %v", h)
	}
}

func TestHostToEngine(t *testing.T) {
	h := Host{Line: 4, Column: 2}
	e := h.ToEngine()
	if e.Line != 5 || e.Column != 3 {
		t.Errorf("expected (5,3), got %v", e)
	}
}

func TestRoundTripIsIdentityInRange(t *testing.T) {
	for line := uint32(1); line < 20; line++ {
		for col := uint32(1); col < 20; col++ {
			e := Engine{Line: line, Column: col}
			got := e.ToHost().ToEngine()
			if got != e {
				t.Errorf("round trip failed for %v: got %v", e, got)
			}
		}
	}
}

func TestCompareOrdering(t *testing.T) {
	cases := []struct {
		a, b Host
		want int
	}{
		{Host{0, 0}, Host{0, 0}, 0},
		{Host{0, 1}, Host{0, 2}, -1},
		{Host{1, 0}, Host{0, 100}, 1},
		{Host{0, 5}, Host{0, 1}, 1},
	}
	for _, c := range cases {
		if got := c.a.Compare(c.b); got != c.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestMinMax(t *testing.T) {
	a := Host{Line: 0, Column: 5}
	b := Host{Line: 0, Column: 2}
	if got := a.Min(b); got != b {
		t.Errorf("Min: got %v, want %v", got, b)
	}
	if got := a.Max(b); got != a {
		t.Errorf("Max: got %v, want %v", got, a)
	}
}

func TestPlusCol(t *testing.T) {
	h := Host{Line: 2, Column: 3}
	if got := h.PlusCol(1); got.Column != 4 {
		t.Errorf("PlusCol(1): got %v", got)
	}
	if got := (Host{Line: 0, Column: 0}).PlusCol(-1); got.Column != 0 {
		t.Errorf("PlusCol(-1) should clamp at 0, got %v", got)
	}
}
