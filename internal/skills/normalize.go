// Package skills canonicalizes free-text skill names.
package skills

import (
	"fmt"
	"strings"
)

var defaultAliases = map[string]string{
	"js":                      "javascript",
	"nodejs":                  "javascript",
	"node.js":                 "javascript",
	"reactjs":                 "javascript",
	"react.js":                "javascript",
	"py":                      "python",
	"django":                  "python",
	"flask":                   "python",
	"cpp":                     "c++",
	"cplusplus":               "c++",
	"csharp":                  "c#",
	"dotnet":                  "c#",
	".net":                    "c#",
	"ml":                      "machine learning",
	"ai":                      "machine learning",
	"artificial intelligence": "machine learning",
	"dl":                      "deep learning",
	"neural networks":         "deep learning",
	"aws":                     "cloud computing",
	"azure":                   "cloud computing",
	"gcp":                     "cloud computing",
	"mysql":                   "sql",
	"postgresql":              "sql",
	"postgres":                "sql",
	"mongodb":                 "nosql",
	"cassandra":               "nosql",
	"redis":                   "nosql",
	"html5":                   "html",
	"css3":                    "css",
	"communication skills":    "communication",
	"project planning":        "project management",
	"user interface":          "ui/ux design",
	"user experience":         "ui/ux design",
}

// DefaultAliases returns a copy of the built-in alias table.
func DefaultAliases() map[string]string {
	out := make(map[string]string, len(defaultAliases))
	for k, v := range defaultAliases {
		out[k] = v
	}
	return out
}

// Normalizer maps raw skill spellings to canonical skills.
// It is immutable once built and safe for concurrent use.
type Normalizer struct {
	aliases map[string]string
}

// NewNormalizer builds a normalizer from an alias table. Keys and values are
// trimmed and lower-cased, and alias chains (a -> b -> c) are collapsed so that
// normalization stays idempotent. A cycle in the table is an error.
func NewNormalizer(aliases map[string]string) (*Normalizer, error) {
	cleaned := make(map[string]string, len(aliases))
	for alias, canonical := range aliases {
		alias = clean(alias)
		canonical = clean(canonical)
		if alias == "" || canonical == "" || alias == canonical {
			continue
		}
		cleaned[alias] = canonical
	}

	resolved := make(map[string]string, len(cleaned))
	for alias := range cleaned {
		target, err := resolve(cleaned, alias)
		if err != nil {
			return nil, err
		}
		resolved[alias] = target
	}

	return &Normalizer{aliases: resolved}, nil
}

// DefaultNormalizer returns a normalizer over the built-in alias table.
func DefaultNormalizer() *Normalizer {
	n, err := NewNormalizer(defaultAliases)
	if err != nil {
		panic(err)
	}
	return n
}

func resolve(aliases map[string]string, alias string) (string, error) {
	seen := map[string]bool{alias: true}
	current := aliases[alias]
	for {
		next, ok := aliases[current]
		if !ok {
			return current, nil
		}
		if seen[current] {
			return "", fmt.Errorf("alias cycle detected at %q", alias)
		}
		seen[current] = true
		current = next
	}
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Normalize returns the canonical form of skill. Unknown skills pass through
// trimmed and lower-cased; blank input yields "".
func (n *Normalizer) Normalize(skill string) string {
	skill = clean(skill)
	if skill == "" {
		return ""
	}
	if n == nil {
		return skill
	}
	if canonical, ok := n.aliases[skill]; ok {
		return canonical
	}
	return skill
}

// Aliases returns the number of alias entries.
func (n *Normalizer) Aliases() int {
	if n == nil {
		return 0
	}
	return len(n.aliases)
}

// Set normalizes the declared skills into a canonical set.
func (n *Normalizer) Set(declared ...string) Set {
	s := Set{members: make(map[string]struct{}, len(declared))}
	for _, raw := range declared {
		canonical := n.Normalize(raw)
		if canonical == "" {
			continue
		}
		s.declared++
		if _, ok := s.members[canonical]; ok {
			continue
		}
		s.members[canonical] = struct{}{}
		s.order = append(s.order, canonical)
	}
	return s
}
