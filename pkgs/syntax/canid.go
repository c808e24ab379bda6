package syntax

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParseIDList parses a separator-delimited list of CAN identifiers into a
// deduplicated, ascending slice. Entries may be decimal or 0x-prefixed
// hexadecimal; blank entries, whole-line comments ("#...") and inline
// comments are ignored.
func ParseIDList(input string, separator string) ([]uint32, error) {
	if separator == "" {
		separator = ","
	}

	unique := make(map[uint32]struct{})
	for _, entry := range strings.Split(input, separator) {
		entry = strings.TrimSpace(entry)
		if entry == "" || strings.HasPrefix(entry, "#") {
			continue
		}
		if idx := strings.Index(entry, "#"); idx != -1 {
			entry = strings.TrimSpace(entry[:idx])
		}
		if entry == "" {
			continue
		}

		id, err := strconv.ParseUint(entry, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid CAN id: %s", entry)
		}
		unique[uint32(id)] = struct{}{}
	}

	result := make([]uint32, 0, len(unique))
	for id := range unique {
		result = append(result, id)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result, nil
}
