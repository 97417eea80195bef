package rank

import "testing"

func TestCurrent(t *testing.T) {
	cases := []struct {
		exp  int
		want string
	}{
		{0, "Bronze"},
		{99, "Bronze"},
		{100, "Silver"},
		{150, "Silver"},
		{299, "Silver"},
		{300, "Gold"},
		{600, "Platinum"},
		{1000, "Diamond"},
		{1500, "Master"},
		{50000, "Master"},
		{-5, "Bronze"},
	}
	for _, c := range cases {
		if got := Current(c.exp); got.Name != c.want {
			t.Errorf("Current(%d) = %s, want %s", c.exp, got.Name, c.want)
		}
	}
}

func TestLadderIsContiguous(t *testing.T) {
	if Ranks[0].MinExp != 0 {
		t.Fatalf("ladder must start at 0, got %d", Ranks[0].MinExp)
	}
	for i := 1; i < len(Ranks); i++ {
		if Ranks[i].MinExp != Ranks[i-1].MaxExp {
			t.Errorf("gap between %s and %s: %d != %d",
				Ranks[i-1].Name, Ranks[i].Name, Ranks[i-1].MaxExp, Ranks[i].MinExp)
		}
	}
}

func TestCurrentBounds(t *testing.T) {
	// For every exp, the chosen rank's threshold is at or below exp and the
	// next rank (if any) has not been reached yet.
	for exp := 0; exp <= 2000; exp++ {
		r := Current(exp)
		if r.MinExp > exp {
			t.Fatalf("Current(%d) returned rank with min_exp %d", exp, r.MinExp)
		}
		for i, rr := range Ranks {
			if rr.Name == r.Name && i+1 < len(Ranks) {
				if exp >= Ranks[i+1].MinExp {
					t.Fatalf("Current(%d) = %s but %s already reached", exp, r.Name, Ranks[i+1].Name)
				}
			}
		}
	}
}

func TestProgress(t *testing.T) {
	if got := Progress(0); got != 0 {
		t.Errorf("Progress(0) = %v, want 0", got)
	}
	if got := Progress(50); got != 50 {
		t.Errorf("Progress(50) = %v, want 50", got)
	}
	if got := Progress(200); got != 50 {
		t.Errorf("Progress(200) = %v, want 50 (silver band)", got)
	}
	if got := Progress(1000000); got != 100 {
		t.Errorf("Progress(1000000) = %v, want clamped 100", got)
	}

	// Monotonic within a band, in range everywhere.
	prev := -1.0
	for exp := 100; exp < 300; exp++ {
		p := Progress(exp)
		if p < 0 || p > 100 {
			t.Fatalf("Progress(%d) = %v out of range", exp, p)
		}
		if p < prev {
			t.Fatalf("Progress(%d) = %v decreased within band", exp, p)
		}
		prev = p
	}
	// Drops back toward 0 right after crossing into the next band.
	if Progress(300) >= Progress(299) {
		t.Errorf("Progress should reset at band boundary: %v >= %v", Progress(300), Progress(299))
	}
}

func TestToNext(t *testing.T) {
	if got := ToNext(150); got != 150 {
		t.Errorf("ToNext(150) = %d, want 150", got)
	}
	if got := ToNext(0); got != 100 {
		t.Errorf("ToNext(0) = %d, want 100", got)
	}
	if got := ToNext(10000); got > 0 {
		t.Errorf("ToNext(10000) = %d, want <= 0 at max rank", got)
	}
}

func TestCurrentIsStable(t *testing.T) {
	a := Current(742)
	b := Current(742)
	if a != b {
		t.Errorf("Current is not stable: %+v != %+v", a, b)
	}
}
