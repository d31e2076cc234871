package palette

import "testing"

func TestFromHex(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want Color
	}{
		{"rrggbb", "#ff0000", Color{255, 0, 0, 255}},
		{"rrggbbaa", "00ff0080", Color{0, 255, 0, 0x80}},
		{"no hash", "0000ff", Color{0, 0, 255, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromHex(tt.hex)
			if err != nil {
				t.Fatalf("FromHex(%q) error: %v", tt.hex, err)
			}
			if got != tt.want {
				t.Errorf("FromHex(%q) = %+v, want %+v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestFromHexInvalid(t *testing.T) {
	if _, err := FromHex("#abc"); err == nil {
		t.Error("FromHex(\"#abc\") expected error for 3-digit hex")
	}
}

func TestFromNameBundled(t *testing.T) {
	c, err := FromName("red", 255)
	if err != nil {
		t.Fatalf("FromName(red) error: %v", err)
	}
	if c.R != 255 || c.G != 0 || c.B != 0 {
		t.Errorf("FromName(red) = %+v, want pure red", c)
	}
}

func TestFromNameCyclic(t *testing.T) {
	c0, err := FromName("c0", 255)
	if err != nil {
		t.Fatalf("FromName(c0) error: %v", err)
	}
	cycled, err := FromName("c"+itoa(len(tableauCycle)), 255)
	if err != nil {
		t.Fatalf("FromName(cN) error: %v", err)
	}
	if c0 != cycled {
		t.Errorf("cyclic shorthand did not wrap: c0=%+v cN=%+v", c0, cycled)
	}
}

func TestFromNameUnknown(t *testing.T) {
	_, err := FromName("not-a-real-color", 255)
	if err == nil {
		t.Error("FromName(unknown) expected error")
	}
	var uc *ErrUnknownColor
	if _, ok := err.(*ErrUnknownColor); !ok {
		t.Errorf("FromName(unknown) error type = %T, want %T", err, uc)
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
