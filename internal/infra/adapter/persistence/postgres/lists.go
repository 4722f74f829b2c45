package postgres

import (
	"encoding/json"
	"fmt"
)

// encodeList stores a string list as JSONB. A nil list is stored as NULL.
func encodeList(list []string) (any, error) {
	if list == nil {
		return nil, nil
	}
	b, err := json.Marshal(list)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// decodeList is the inverse of encodeList.
func decodeList(raw []byte) ([]string, error) {
	if raw == nil {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return list, nil
}
