package cli

import (
	"fmt"
	"strings"
)

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	if v == "" {
		return fmt.Errorf("value cannot be empty")
	}
	*s = append(*s, v)
	return nil
}

// defineList collects repeatable NAME[=VALUE] flags. A name given without
// "=" is defined without a value.
type defineList map[string]*string

func (d defineList) String() string {
	parts := make([]string, 0, len(d))
	for k, v := range d {
		if v == nil {
			parts = append(parts, k)
			continue
		}
		parts = append(parts, k+"="+*v)
	}
	return strings.Join(parts, ",")
}

func (d defineList) Set(v string) error {
	name, value, hasValue := strings.Cut(v, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("define %q has no name", v)
	}
	if !hasValue {
		d[name] = nil
		return nil
	}
	d[name] = &value
	return nil
}
