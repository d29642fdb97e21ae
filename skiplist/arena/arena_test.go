package arena

import "testing"

func TestAllocAndLinks(t *testing.T) {
	a := New[int, string](4)
	h1 := a.Alloc(1, "a", 2)
	h2 := a.Alloc(2, "b", 0)

	if got := a.Level(h1); got != 2 {
		t.Errorf("Level(h1) = %d, want 2", got)
	}
	for i := 0; i <= 2; i++ {
		if a.Next(h1, i) != Nil {
			t.Errorf("Next(h1, %d) = %d, want Nil", i, a.Next(h1, i))
		}
	}

	a.SetNext(h1, 0, h2)
	if a.Next(h1, 0) != h2 {
		t.Errorf("Next(h1, 0) = %d, want %d", a.Next(h1, 0), h2)
	}

	a.SetValue(h2, "bb")
	if a.Key(h2) != 2 || a.Value(h2) != "bb" {
		t.Errorf("node h2 = (%d, %q), want (2, \"bb\")", a.Key(h2), a.Value(h2))
	}
	if a.Len() != 2 {
		t.Errorf("Len() = %d, want 2", a.Len())
	}
}

func TestFreeReusesSlot(t *testing.T) {
	a := New[int, int](0)
	h1 := a.Alloc(1, 10, 0)
	a.Alloc(2, 20, 1)

	a.Free(h1)
	if a.Len() != 1 {
		t.Fatalf("Len() = %d after free, want 1", a.Len())
	}

	h3 := a.Alloc(3, 30, 3)
	if h3 != h1 {
		t.Errorf("Alloc after Free = %d, want reused handle %d", h3, h1)
	}
	if a.Key(h3) != 3 || a.Level(h3) != 3 {
		t.Errorf("reused node = (key %d, level %d), want (3, 3)", a.Key(h3), a.Level(h3))
	}
}

func TestInvalidHandlePanics(t *testing.T) {
	a := New[int, int](0)
	h := a.Alloc(1, 1, 0)
	a.Free(h)

	defer func() {
		if recover() == nil {
			t.Error("Key on freed handle did not panic")
		}
	}()
	a.Key(h)
}

func TestOutOfRangeLevelPanics(t *testing.T) {
	a := New[int, int](0)
	h := a.Alloc(1, 1, 0)

	defer func() {
		if recover() == nil {
			t.Error("Next above node level did not panic")
		}
	}()
	a.Next(h, 1)
}

func TestReset(t *testing.T) {
	a := New[int, int](0)
	for i := range 10 {
		a.Alloc(i, i, i%3)
	}
	a.Reset()
	if a.Len() != 0 {
		t.Errorf("Len() = %d after Reset, want 0", a.Len())
	}
	if h := a.Alloc(7, 7, 0); h != 0 {
		t.Errorf("first Alloc after Reset = %d, want 0", h)
	}
}
