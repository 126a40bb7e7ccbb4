package types

import (
	"bytes"
	"fmt"
	"strconv"
)

// FlexInt is an integer that also accepts JSON string encodings; quantities
// and table numbers arrive both ways from the backend.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*f = 0
		return nil
	}
	if raw[0] == '"' {
		unquoted, err := strconv.Unquote(string(raw))
		if err != nil {
			return fmt.Errorf("invalid integer %s: %w", raw, err)
		}
		if unquoted == "" {
			*f = 0
			return nil
		}
		value, err := strconv.Atoi(unquoted)
		if err != nil {
			return fmt.Errorf("invalid integer %q: %w", unquoted, err)
		}
		*f = FlexInt(value)
		return nil
	}
	value, err := strconv.Atoi(string(raw))
	if err != nil {
		return fmt.Errorf("invalid integer %s: %w", raw, err)
	}
	*f = FlexInt(value)
	return nil
}

func (f FlexInt) Int() int {
	return int(f)
}
