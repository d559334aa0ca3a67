package colormap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

type Category string

const (
	PerceptuallyUniform Category = "Perceptually Uniform Sequential"
	Sequential          Category = "Sequential"
	Sequential2         Category = "Sequential (2)"
	Diverging           Category = "Diverging"
	Qualitative         Category = "Qualitative"
	Miscellaneous       Category = "Miscellaneous"
)

// Entry is one named colormap of the catalog.
type Entry struct {
	Name     string
	Category Category
	Map      Colormap
}

func (e Entry) String() string {
	return fmt.Sprintf("%s (%s)", e.Name, e.Category)
}

// Validate reports a malformed definition.
func (e Entry) Validate() error {
	if e.Name == "" {
		return errors.New("colormap without a name")
	}
	if e.Map == nil {
		return errors.Errorf("colormap %s has no definition", e.Name)
	}
	if v, ok := e.Map.(interface{ Valid() bool }); ok && !v.Valid() {
		return errors.Errorf("colormap %s has a malformed definition", e.Name)
	}
	return nil
}

// categories lists the catalog in display order.
var categories = []struct {
	category Category
	names    []string
}{
	{PerceptuallyUniform, []string{"viridis", "plasma", "inferno", "magma"}},
	{Sequential, []string{
		"Greys", "Purples", "Blues", "Greens", "Oranges", "Reds",
		"YlOrBr", "YlOrRd", "OrRd", "PuRd", "RdPu", "BuPu",
		"GnBu", "PuBu", "YlGnBu", "PuBuGn", "BuGn", "YlGn"}},
	{Sequential2, []string{
		"binary", "gist_yarg", "gist_gray", "gray", "bone", "pink",
		"spring", "summer", "autumn", "winter", "cool", "Wistia",
		"hot", "afmhot", "gist_heat", "copper"}},
	{Diverging, []string{
		"PiYG", "PRGn", "BrBG", "PuOr", "RdGy", "RdBu",
		"RdYlBu", "RdYlGn", "Spectral", "coolwarm", "bwr", "seismic"}},
	{Qualitative, []string{
		"Pastel1", "Pastel2", "Paired", "Accent",
		"Dark2", "Set1", "Set2", "Set3",
		"tab10", "tab20", "tab20b", "tab20c"}},
	{Miscellaneous, []string{
		"flag", "prism", "ocean", "gist_earth", "terrain", "gist_stern",
		"gnuplot", "gnuplot2", "CMRmap", "cubehelix", "brg", "hsv",
		"gist_rainbow", "rainbow", "jet", "nipy_spectral", "gist_ncar"}},
}

// RainbowNames are the colormaps whose lightness is not monotonic and which
// flag a paper when they explain a page.
var RainbowNames = []string{
	"flag", "prism", "hsv", "gist_rainbow", "rainbow", "jet", "nipy_spectral", "gist_ncar",
}

// DefaultExclusions are near-grayscale maps. Text and line art match them on
// almost every page.
var DefaultExclusions = []string{"Greys", "binary", "gist_yarg", "gist_gray", "gray"}

// UnknownColormapError is returned for a name missing from the catalog.
type UnknownColormapError struct {
	Name string
}

func (e *UnknownColormapError) Error() string {
	return fmt.Sprintf("unknown colormap %q", e.Name)
}

// Catalog returns every known colormap in category order.
func Catalog() []Entry {
	var entries []Entry
	for _, c := range categories {
		for _, name := range c.names {
			m, _ := builtin(name)
			entries = append(entries, Entry{Name: name, Category: c.category, Map: m})
		}
	}
	return entries
}

// Lookup finds one catalog entry by name. Names are case sensitive, as in
// "Greys" and "gray".
func Lookup(name string) (Entry, error) {
	for _, c := range categories {
		for _, n := range c.names {
			if n == name {
				m, _ := builtin(name)
				return Entry{Name: name, Category: c.category, Map: m}, nil
			}
		}
	}
	return Entry{}, &UnknownColormapError{Name: name}
}

// Names returns the names of entries in order.
func Names(entries []Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// Exclude removes the named maps from entries. Every name must exist in the
// catalog so a typo in configuration is not silently ignored.
func Exclude(entries []Entry, names []string) ([]Entry, error) {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		if _, err := Lookup(name); err != nil {
			return nil, err
		}
		drop[name] = true
	}

	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !drop[e.Name] {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

// RainbowSet returns RainbowNames as a lookup set.
func RainbowSet() map[string]bool {
	set := make(map[string]bool, len(RainbowNames))
	for _, name := range RainbowNames {
		set[name] = true
	}
	return set
}

// ParseNames splits a comma separated list of colormap names and checks
// each against the catalog.
func ParseNames(list string) ([]string, error) {
	var names []string
	for _, field := range strings.Split(list, ",") {
		name := strings.TrimSpace(field)
		if name == "" {
			continue
		}
		if _, err := Lookup(name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
