package internal

import (
	"errors"
	"net/url"
	"strings"
)

var errOptionalSegment = errors.New("optional segments can only occur at the end of a route")

// expandPattern turns trailing optional segments ("/users[/{id}]") into the
// plain patterns they stand for, shortest first.
func expandPattern(p string) ([]string, error) {
	open := indexOutsideParams(p, '[')
	if open < 0 {
		if indexOutsideParams(p, ']') >= 0 {
			return nil, errOptionalSegment
		}
		return []string{p}, nil
	}
	if !strings.HasSuffix(p, "]") {
		return nil, errOptionalSegment
	}

	base := p[:open]
	rest, err := expandPattern(p[open+1 : len(p)-1])
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(rest)+1)
	if base == "" {
		out = append(out, "/")
	} else {
		out = append(out, base)
	}
	for _, r := range rest {
		out = append(out, base+r)
	}
	return out, nil
}

// indexOutsideParams finds c outside of "{...}" placeholders, whose regular
// expressions may contain brackets of their own.
func indexOutsideParams(p string, c byte) int {
	depth := 0
	for i := 0; i < len(p); i++ {
		switch p[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case c:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// segment is a piece of a parsed pattern: literal text or a placeholder.
type segment struct {
	text  string
	param bool
}

// parsePattern splits a plain pattern into literals and placeholders.
// "{id:[0-9]+}" yields the placeholder "id".
func parsePattern(p string) []segment {
	var segs []segment
	for p != "" {
		open := strings.IndexByte(p, '{')
		if open < 0 {
			segs = append(segs, segment{text: p})
			break
		}
		if open > 0 {
			segs = append(segs, segment{text: p[:open]})
		}

		depth, end := 0, -1
		for i := open; i < len(p); i++ {
			if p[i] == '{' {
				depth++
			} else if p[i] == '}' {
				depth--
				if depth == 0 {
					end = i
					break
				}
			}
		}
		if end < 0 {
			segs = append(segs, segment{text: p[open:]})
			break
		}

		name := p[open+1 : end]
		if i := strings.IndexByte(name, ':'); i >= 0 {
			name = name[:i]
		}
		segs = append(segs, segment{text: strings.TrimSpace(name), param: true})
		p = p[end+1:]
	}
	return segs
}

// buildPath fills the placeholders of segs from params. It returns the
// first missing parameter name when a value is absent.
func buildPath(segs []segment, params map[string]string) (string, string) {
	var b strings.Builder
	for _, s := range segs {
		if !s.param {
			b.WriteString(s.text)
			continue
		}
		v, ok := params[s.text]
		if !ok {
			return "", s.text
		}
		b.WriteString(url.PathEscape(v))
	}
	return b.String(), ""
}

// reversePattern renders the longest expansion of pattern whose placeholders
// are all present in params.
func reversePattern(pattern string, params map[string]string) (string, string, error) {
	expansions, err := expandPattern(pattern)
	if err != nil {
		return "", "", err
	}

	missing := ""
	for i := len(expansions) - 1; i >= 0; i-- {
		path, m := buildPath(parsePattern(expansions[i]), params)
		if m == "" {
			return path, "", nil
		}
		missing = m
	}
	return "", missing, nil
}

// encodeQuery renders query parameters sorted by key.
func encodeQuery(query map[string]string) string {
	if len(query) == 0 {
		return ""
	}
	v := make(url.Values, len(query))
	for k, val := range query {
		v.Set(k, val)
	}
	return v.Encode()
}
