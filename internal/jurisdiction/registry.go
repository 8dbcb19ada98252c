package jurisdiction

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Registry is the ordered set of supported jurisdictions.
type Registry struct {
	order  []Code
	byCode map[Code]Jurisdiction
}

func defaults() []Jurisdiction {
	return []Jurisdiction{
		{
			Code:        NY,
			Name:        "New York",
			LinkBaseURL: "https://nylottery.ny.gov/scratch-off-game?game=",
		},
		{
			Code:         FL,
			Name:         "Florida",
			MediaBaseURL: "https://www.flalottery.com/",
			LinkBaseURL:  "https://floridalottery.com/games/scratch-offs/view?id=",
		},
	}
}

// Default returns the built-in NY/FL registry.
func Default() *Registry {
	return NewRegistry(defaults()...)
}

// NewRegistry builds a registry preserving the given order. Later entries with a
// duplicate code replace earlier ones in place.
func NewRegistry(items ...Jurisdiction) *Registry {
	r := &Registry{byCode: make(map[Code]Jurisdiction, len(items))}
	for _, j := range items {
		r.put(j)
	}
	return r
}

type fileFormat struct {
	Jurisdictions []Jurisdiction `toml:"jurisdiction"`
}

// LoadFile overlays the TOML file at path onto the built-in registry. Entries
// for known codes override their non-empty fields; unknown codes are appended.
func LoadFile(path string) (*Registry, error) {
	r := Default()
	if path == "" {
		return r, nil
	}

	var f fileFormat
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("jurisdictions file %s: %w", path, err)
	}

	for _, item := range f.Jurisdictions {
		item.Code = ParseCode(string(item.Code))
		if item.Code == "" {
			return nil, fmt.Errorf("jurisdictions file %s: entry without code", path)
		}
		if existing, ok := r.byCode[item.Code]; ok {
			item = merge(existing, item)
		}
		r.put(item)
	}
	return r, nil
}

func merge(base, override Jurisdiction) Jurisdiction {
	if override.Name != "" {
		base.Name = override.Name
	}
	if override.MediaBaseURL != "" {
		base.MediaBaseURL = override.MediaBaseURL
	}
	if override.LinkBaseURL != "" {
		base.LinkBaseURL = override.LinkBaseURL
	}
	return base
}

func (r *Registry) put(j Jurisdiction) {
	if _, ok := r.byCode[j.Code]; !ok {
		r.order = append(r.order, j.Code)
	}
	r.byCode[j.Code] = j
}

// Lookup resolves a raw code, case-insensitively.
func (r *Registry) Lookup(raw string) (Jurisdiction, error) {
	code := ParseCode(raw)
	j, ok := r.byCode[code]
	if !ok {
		return Jurisdiction{}, fmt.Errorf("%w: %q", ErrUnsupported, raw)
	}
	return j, nil
}

// All returns the jurisdictions in registry order.
func (r *Registry) All() []Jurisdiction {
	out := make([]Jurisdiction, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.byCode[code])
	}
	return out
}
