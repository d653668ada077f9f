package engine

import (
	"fmt"
	"strings"
)

// pattern matches field keys. Each position is a literal byte, '.' for any
// byte, or a bracketed set. Patterns match at the start of the key; a
// trailing '$' requires the whole key to match.
type pattern struct {
	source string
	slots  []slot
	exact  bool
}

type slot struct {
	any bool
	set string
}

func (s slot) matches(c byte) bool {
	return s.any || strings.IndexByte(s.set, c) >= 0
}

func compile(src string) (pattern, error) {
	p := pattern{source: src}
	s := strings.TrimPrefix(src, "^")
	if strings.HasSuffix(s, "$") {
		p.exact = true
		s = strings.TrimSuffix(s, "$")
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.':
			p.slots = append(p.slots, slot{any: true})
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 2 {
				return p, fmt.Errorf("pattern %q: unterminated or empty class", src)
			}
			p.slots = append(p.slots, slot{set: s[i+1 : i+end]})
			i += end
		case '\\':
			if i+1 >= len(s) {
				return p, fmt.Errorf("pattern %q: trailing escape", src)
			}
			i++
			p.slots = append(p.slots, slot{set: s[i : i+1]})
		default:
			p.slots = append(p.slots, slot{set: s[i : i+1]})
		}
	}
	if len(p.slots) == 0 {
		return p, fmt.Errorf("pattern %q: empty", src)
	}
	return p, nil
}

func (p pattern) match(key string) bool {
	if len(key) < len(p.slots) || (p.exact && len(key) != len(p.slots)) {
		return false
	}
	for i, s := range p.slots {
		if !s.matches(key[i]) {
			return false
		}
	}
	return true
}
