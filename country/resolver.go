package country

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/biter777/countries"
)

// FallbackName labels a flag whose code no resolver recognizes
const FallbackName = "Unknown"

// Resolver maps a flag code to a display name
type Resolver interface {
	Name(code string) (string, bool)
}

// ISO resolves ISO 3166-1 alpha-2 and alpha-3 codes
type ISO struct {
	byCode map[string]string
}

func NewISO() *ISO {
	all := countries.All()
	r := &ISO{byCode: make(map[string]string, 2*len(all))}
	for _, c := range all {
		name := c.String()
		if a2 := c.Alpha2(); a2 != "" {
			r.byCode[a2] = name
		}
		if a3 := c.Alpha3(); a3 != "" {
			r.byCode[a3] = name
		}
	}
	return r
}

func (r *ISO) Name(code string) (string, bool) {
	name, ok := r.byCode[normalize(code)]
	return name, ok
}

// Overrides is a fixed code to name table
type Overrides map[string]string

func (o Overrides) Name(code string) (string, bool) {
	name, ok := o[normalize(code)]
	return name, ok
}

type overrideEntry struct {
	Code string `json:"country_code"`
	Name string `json:"country_name"`
}

// LoadOverrides reads a JSON object of region arrays:
// {"Europe": [{"country_code": "de", "country_name": "Germany"}], ...}
func LoadOverrides(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var regions map[string][]overrideEntry
	if err := json.Unmarshal(data, &regions); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	out := make(Overrides)
	for _, entries := range regions {
		for _, e := range entries {
			if code := normalize(e.Code); code != "" && e.Name != "" {
				out[code] = e.Name
			}
		}
	}
	return out, nil
}

// Chain consults resolvers in order
type Chain []Resolver

func (c Chain) Name(code string) (string, bool) {
	for _, r := range c {
		if r == nil {
			continue
		}
		if name, ok := r.Name(code); ok {
			return name, true
		}
	}
	return "", false
}

// Label resolves code through r, falling back to FallbackName
func Label(r Resolver, code string) string {
	if name, ok := r.Name(code); ok {
		return name
	}
	return FallbackName
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
