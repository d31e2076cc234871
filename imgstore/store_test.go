package imgstore

import "testing"

func TestAddImageDeduplicatesIdenticalBytes(t *testing.T) {
	s := New()
	a := s.AddImage("foo.png", []byte{1, 2, 3})
	b := s.AddImage("bar.png", []byte{1, 2, 3})
	if a != b {
		t.Fatalf("identical bytes must map to the same stored name, got %q and %q", a, b)
	}
	if s.Len() != 1 {
		t.Fatalf("expected exactly one stored image, got %d", s.Len())
	}
}

func TestAddImageSuffixesOnNameCollision(t *testing.T) {
	s := New()
	a := s.AddImage("foo.png", []byte{1})
	b := s.AddImage("foo.png", []byte{2})
	if a == b {
		t.Fatalf("distinct bytes under the same suggested name must get distinct names")
	}
	if b != "foo.png_1" {
		t.Fatalf("expected a _1 suffix on collision, got %q", b)
	}
}
