package preproc

import (
	"fmt"
	"strconv"
	"strings"
)

// substitute expands every {...} placeholder in line. {i} is the counter,
// {NAME} is the value of a define with a non-empty value, and {iii...} is
// the counter zero-padded to the placeholder width. Expanded text is not
// rescanned.
func substitute(line string, counter int, defines *defineTable) (string, error) {
	if !strings.Contains(line, "{") {
		return line, nil
	}

	var sb strings.Builder
	rest := line
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			break
		}
		closeAt := strings.IndexByte(rest[open+1:], '}')
		if closeAt < 0 {
			break
		}
		name := rest[open+1 : open+1+closeAt]
		value, err := expandPlaceholder(name, counter, defines)
		if err != nil {
			return "", err
		}
		sb.WriteString(rest[:open])
		sb.WriteString(value)
		rest = rest[open+closeAt+2:]
	}
	sb.WriteString(rest)
	return sb.String(), nil
}

func expandPlaceholder(name string, counter int, defines *defineTable) (string, error) {
	if name == "i" {
		return strconv.Itoa(counter), nil
	}
	if value, ok := defines.lookup(name); ok {
		return value, nil
	}
	if name == "" || strings.Trim(name, "i") != "" {
		return "", fmt.Errorf("bad substitution placeholder {%s}", name)
	}
	return fmt.Sprintf("%0*d", len(name), counter), nil
}
