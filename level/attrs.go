package level

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// requiredInt reads an integer attribute that must be present and parse.
func requiredInt(e *etree.Element, key string) (int, error) {
	a := e.SelectAttr(key)
	if a == nil {
		return 0, fmt.Errorf("%w: <%s> missing %q", ErrMalformedDocument, e.Tag, key)
	}
	v, err := strconv.Atoi(strings.TrimSpace(a.Value))
	if err != nil {
		return 0, fmt.Errorf("%w: <%s> %s=%q is not an integer", ErrMalformedDocument, e.Tag, key, a.Value)
	}
	return v, nil
}

// requiredPositive is requiredInt for sizes.
func requiredPositive(e *etree.Element, key string) (int, error) {
	v, err := requiredInt(e, key)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: <%s> %s=%d must be positive", ErrMalformedDocument, e.Tag, key, v)
	}
	return v, nil
}

func requiredString(e *etree.Element, key string) (string, error) {
	a := e.SelectAttr(key)
	if a == nil || strings.TrimSpace(a.Value) == "" {
		return "", fmt.Errorf("%w: <%s> missing %q", ErrMalformedDocument, e.Tag, key)
	}
	return a.Value, nil
}

// optionalInt returns def when the attribute is absent. A present but
// unparsable value is an error.
func optionalInt(e *etree.Element, key string, def int) (int, error) {
	a := e.SelectAttr(key)
	if a == nil {
		return def, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(a.Value))
	if err != nil {
		return def, fmt.Errorf("%w: <%s> %s=%q is not an integer", ErrMalformedDocument, e.Tag, key, a.Value)
	}
	return v, nil
}

// truncInt parses an int or float attribute and truncates it toward zero.
func truncInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// readProperties collects <properties><property name value/> children of e.
// A property without a value attribute takes its element text.
func readProperties(e *etree.Element) map[string]string {
	props := map[string]string{}
	for _, group := range e.SelectElements("properties") {
		for _, p := range group.SelectElements("property") {
			name := p.SelectAttrValue("name", "")
			if name == "" {
				continue
			}
			if a := p.SelectAttr("value"); a != nil {
				props[name] = a.Value
			} else {
				props[name] = p.Text()
			}
		}
	}
	return props
}
