package responses

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Envelope describes which wrapper a list payload arrived in.
type Envelope string

const (
	EnvelopeBare    Envelope = "bare"
	EnvelopeUnknown Envelope = "unknown"
)

// ListResult is a decoded list plus what was dropped along the way.
type ListResult[T any] struct {
	Items    []T
	Envelope Envelope
	// Skipped counts elements that were present but could not be decoded.
	Skipped int
	// Meta holds the top-level object when the list was wrapped.
	Meta map[string]json.RawMessage
}

// Recognized reports whether the payload matched a known envelope.
func (r ListResult[T]) Recognized() bool {
	return r.Envelope != EnvelopeUnknown
}

// DecodeList accepts a bare array or an object holding an array under one of paths.
// A path may be nested with '.', e.g. "blog.articles". Unknown shapes give an empty list.
func DecodeList[T any](raw []byte, paths ...string) ListResult[T] {
	res := ListResult[T]{Items: []T{}, Envelope: EnvelopeUnknown}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return res
	}

	switch raw[0] {
	case '[':
		res.Envelope = EnvelopeBare
		res.Items, res.Skipped = decodeElements[T](raw)
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return res
		}
		res.Meta = obj
		for _, path := range paths {
			value, ok := lookup(obj, path)
			if !ok || !isArray(value) {
				continue
			}
			res.Envelope = Envelope(path)
			res.Items, res.Skipped = decodeElements[T](value)
			return res
		}
	}
	return res
}

// DecodeMergedList concatenates every listed key that holds an array.
// Used where upstream splits one logical list across keys.
func DecodeMergedList[T any](raw []byte, keys ...string) ListResult[T] {
	res := ListResult[T]{Items: []T{}, Envelope: EnvelopeUnknown}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return res
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return res
	}
	res.Meta = obj
	var matched []byte
	for _, key := range keys {
		value, ok := obj[key]
		if !ok || !isArray(value) {
			continue
		}
		items, skipped := decodeElements[T](value)
		res.Items = append(res.Items, items...)
		res.Skipped += skipped
		if len(matched) > 0 {
			matched = append(matched, '+')
		}
		matched = append(matched, key...)
	}
	if len(matched) > 0 {
		res.Envelope = Envelope(matched)
	}
	return res
}

// DecodeObject accepts {key: {...}} or the bare object itself.
func DecodeObject[T any](raw []byte, key string) (T, Envelope, bool) {
	var zero T
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return zero, EnvelopeUnknown, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return zero, EnvelopeUnknown, false
	}

	envelope := EnvelopeBare
	if inner, ok := obj[key]; ok && isObject(inner) {
		raw = inner
		envelope = Envelope(key)
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, EnvelopeUnknown, false
	}
	return out, envelope, true
}

// DecodeCount accepts {key: n} or a bare number.
func DecodeCount(raw []byte, key string) (int64, Envelope, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, EnvelopeUnknown, false
	}
	if raw[0] == '{' {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return 0, EnvelopeUnknown, false
		}
		n, ok := NumberField(obj, key)
		if !ok {
			return 0, EnvelopeUnknown, false
		}
		return int64(n), Envelope(key), true
	}
	n, ok := NumberField(map[string]json.RawMessage{key: raw}, key)
	if !ok {
		return 0, EnvelopeUnknown, false
	}
	return int64(n), EnvelopeBare, true
}

// NumberField returns obj[key] only when it is a JSON number.
func NumberField(obj map[string]json.RawMessage, key string) (int, bool) {
	value, ok := obj[key]
	if !ok {
		return 0, false
	}
	value = bytes.TrimSpace(value)
	if len(value) == 0 || !(value[0] == '-' || (value[0] >= '0' && value[0] <= '9')) {
		return 0, false
	}
	var n json.Number
	if err := json.Unmarshal(value, &n); err != nil {
		return 0, false
	}
	v, err := n.Float64()
	if err != nil {
		return 0, false
	}
	return int(v), true
}

func decodeElements[T any](raw []byte) ([]T, int) {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return []T{}, 0
	}
	items := make([]T, 0, len(elements))
	skipped := 0
	for _, element := range elements {
		var item T
		if err := json.Unmarshal(element, &item); err != nil {
			skipped++
			continue
		}
		items = append(items, item)
	}
	return items, skipped
}

func lookup(obj map[string]json.RawMessage, path string) (json.RawMessage, bool) {
	key, rest, nested := strings.Cut(path, ".")
	value, ok := obj[key]
	if !ok {
		return nil, false
	}
	if !nested {
		return value, true
	}
	var inner map[string]json.RawMessage
	if !isObject(value) || json.Unmarshal(value, &inner) != nil {
		return nil, false
	}
	return lookup(inner, rest)
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}
