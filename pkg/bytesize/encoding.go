package bytesize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// MarshalText implements encoding.TextMarshaler with the default IEC
// rendering. The text is human-readable and rounded; use JSON or Uint64 when
// the exact count matters.
func (s ByteSize) MarshalText() ([]byte, error) {
	var buf [32]byte
	return s.Display().appendTo(buf[:0]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (s *ByteSize) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalJSON encodes the exact byte count as a JSON number.
func (s ByteSize) MarshalJSON() ([]byte, error) {
	return strconv.AppendUint(nil, uint64(s), 10), nil
}

// UnmarshalJSON accepts a JSON number of bytes or a string understood by
// Parse.
func (s *ByteSize) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		return s.UnmarshalText([]byte(text))
	}
	n, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("bytesize: invalid JSON byte count %s", data)
	}
	*s = ByteSize(n)
	return nil
}
