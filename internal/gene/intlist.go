package gene

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// IntList is an ordered sequence of integers that remote sources deliver
// in two shapes: a comma-delimited string (possibly with a trailing
// comma) or a JSON integer array. Both unmarshal to the same canonical
// sequence.
type IntList []int64

// ParseIntList normalizes a comma-delimited string into an IntList.
// Empty segments from trailing or doubled delimiters are skipped.
func ParseIntList(s string) (IntList, error) {
	var list IntList
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse int list element %q: %w", field, err)
		}
		list = append(list, n)
	}
	return list, nil
}

// UnmarshalJSON accepts either a delimited string or an integer array.
func (l *IntList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := ParseIntList(s)
		if err != nil {
			return err
		}
		*l = parsed
		return nil
	}

	var nums []int64
	if err := json.Unmarshal(data, &nums); err != nil {
		return fmt.Errorf("int list must be a delimited string or integer array: %w", err)
	}
	*l = IntList(nums)
	return nil
}

// String serializes the list as comma-joined text with no trailing
// delimiter. An empty list serializes to the empty string.
func (l IntList) String() string {
	if len(l) == 0 {
		return ""
	}
	parts := make([]string, len(l))
	for i, n := range l {
		parts[i] = strconv.FormatInt(n, 10)
	}
	return strings.Join(parts, ",")
}
