package responses

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexInt accepts a JSON number, a numeric string or null. Anything else decodes to 0.
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	*f = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		data = []byte(strings.TrimSpace(s))
	}
	if n, err := strconv.ParseInt(string(data), 10, 64); err == nil {
		*f = FlexInt(n)
		return nil
	}
	if v, err := strconv.ParseFloat(string(data), 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		*f = FlexInt(math.Round(v))
	}
	return nil
}

func (f FlexInt) Int64() int64 {
	return int64(f)
}

// FlexTags accepts either a comma-separated string or an array of strings.
type FlexTags []string

func (t *FlexTags) UnmarshalJSON(data []byte) error {
	*t = FlexTags{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*t = splitTags(s)
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil
		}
		tags := FlexTags{}
		for _, item := range items {
			var s string
			if json.Unmarshal(item, &s) != nil {
				continue
			}
			if s = strings.TrimSpace(s); s != "" {
				tags = append(tags, s)
			}
		}
		*t = tags
	}
	return nil
}

// Joined renders the tags the way the canonical product stores them.
func (t FlexTags) Joined() string {
	return strings.Join(t, ", ")
}

func splitTags(s string) FlexTags {
	tags := FlexTags{}
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// FlexString accepts a string, a number or null.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	*s = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err == nil {
			*s = FlexString(v)
		}
		return nil
	}
	if data[0] == '-' || (data[0] >= '0' && data[0] <= '9') {
		*s = FlexString(data)
	}
	return nil
}

func (s FlexString) String() string {
	return string(s)
}

// OptionalBool keeps a flag only when it is a real JSON boolean.
type OptionalBool struct {
	Set   bool
	Value bool
}

func (b *OptionalBool) UnmarshalJSON(data []byte) error {
	*b = OptionalBool{}
	switch string(bytes.TrimSpace(data)) {
	case "true":
		*b = OptionalBool{Set: true, Value: true}
	case "false":
		*b = OptionalBool{Set: true, Value: false}
	}
	return nil
}
