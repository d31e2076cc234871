package palette

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

//go:embed data/base_colors.csv data/tableau_colors.csv data/open_colors.csv data/x11_colors.csv data/xkcd_colors.csv
var bundledData embed.FS

// ParseCSV parses a "name,#rrggbb" palette file: blank lines are ignored
// and prefix, if non-empty, is prepended to every key. Grounded on
// original_source's parse_colors_from_text.
func ParseCSV(r io.Reader, prefix string) (map[string]Color, error) {
	out := make(map[string]Color)
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) != 2 {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(rec[0]))
		if name == "" {
			continue
		}
		c, err := FromHex(rec[1])
		if err != nil {
			return nil, fmt.Errorf("palette: parsing %q: %w", name, err)
		}
		out[prefix+name] = c
	}
	return out, nil
}

func mustLoad(path, prefix string) map[string]Color {
	f, err := bundledData.Open(path)
	if err != nil {
		panic(fmt.Sprintf("palette: missing bundled table %q: %v", path, err))
	}
	defer f.Close()
	m, err := ParseCSV(f, prefix)
	if err != nil {
		panic(fmt.Sprintf("palette: parsing bundled table %q: %v", path, err))
	}
	return m
}

// Bundled named palettes, loaded once at init time.
var (
	baseColors    = mustLoad("data/base_colors.csv", "")
	tableauColors = mustLoad("data/tableau_colors.csv", "tab:")
	openColors    = mustLoad("data/open_colors.csv", "")
	x11Colors     = mustLoad("data/x11_colors.csv", "")
	xkcdColors    = mustLoad("data/xkcd_colors.csv", "xkcd:")

	// tableauCycle preserves tableau_colors.csv's on-disk order for the
	// c0..c9 cyclic shorthand, which indexes by position, not by name.
	tableauCycle = loadCycle("data/tableau_colors.csv")
)

func loadCycle(path string) []string {
	f, err := bundledData.Open(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	cr := csv.NewReader(f)
	cr.FieldsPerRecord = 2
	var names []string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(rec) != 2 {
			continue
		}
		names = append(names, "tab:"+strings.ToLower(strings.TrimSpace(rec[0])))
	}
	return names
}

// ErrUnknownColor is returned by FromName when a color name is not found
// in any bundled palette.
type ErrUnknownColor struct{ Name string }

func (e *ErrUnknownColor) Error() string {
	return fmt.Sprintf("palette: unknown color name %q", e.Name)
}

// FromName resolves a color name against the five bundled palettes (base,
// tableau, open, x11, xkcd) in that priority order, or against the
// matplotlib-style cyclic shorthand "c0".."c9" (indexing into the tableau
// cycle modulo its length). alpha overrides the channel for named-table
// lookups (the tables themselves carry no alpha).
func FromName(name string, alpha int) (Color, error) {
	name = strings.ToLower(name)
	if c, ok := lookupAll(name); ok {
		return withAlpha(c, alpha), nil
	}
	if len(name) >= 2 && name[0] == 'c' && isAllDigits(name[1:]) {
		idx := 0
		for _, ch := range name[1:] {
			idx = idx*10 + int(ch-'0')
		}
		if len(tableauCycle) == 0 {
			return Color{}, &ErrUnknownColor{Name: name}
		}
		resolved := tableauCycle[idx%len(tableauCycle)]
		c, _ := lookupAll(resolved)
		return withAlpha(c, alpha), nil
	}
	return Color{}, &ErrUnknownColor{Name: name}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func lookupAll(name string) (Color, bool) {
	if c, ok := baseColors[name]; ok {
		return c, true
	}
	if c, ok := tableauColors[name]; ok {
		return c, true
	}
	if c, ok := openColors[name]; ok {
		return c, true
	}
	if c, ok := x11Colors[name]; ok {
		return c, true
	}
	if c, ok := xkcdColors[name]; ok {
		return c, true
	}
	return Color{}, false
}

func withAlpha(c Color, alpha int) Color {
	c.A = clamp(alpha)
	return c
}
