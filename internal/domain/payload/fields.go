package payload

import (
	"fmt"
	"regexp"
	"strings"
)

// Fields maps CloudFormation event keys to their values.
type Fields map[string]string

// Get returns the value for key and whether it was present.
func (f Fields) Get(key string) (string, bool) {
	v, ok := f[key]
	return v, ok
}

// keyPattern matches the start of an assignment at the beginning of a line.
// Lines inside embedded JSON never have the form key=' so they do not match.
var keyPattern = regexp.MustCompile(`(?m)^([^='\s]+)='`)

// ParseFields extracts Key='Value' assignments. A value extends from its
// opening quote to the last quote before the next assignment (or the end of
// input), so it may contain newlines and quote characters. Later occurrences
// of a key overwrite earlier ones.
func ParseFields(raw string) (Fields, error) {
	matches := keyPattern.FindAllStringSubmatchIndex(raw, -1)
	if len(matches) == 0 {
		return nil, &ParseError{Reason: "no Key='Value' pairs found"}
	}

	fields := make(Fields, len(matches))
	for i, m := range matches {
		key := raw[m[2]:m[3]]
		end := len(raw)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		region := raw[m[1]:end]
		closing := strings.LastIndex(region, "'")
		if closing < 0 {
			return nil, &ParseError{Reason: fmt.Sprintf("unterminated value for key %q", key)}
		}
		fields[key] = region[:closing]
	}
	return fields, nil
}
