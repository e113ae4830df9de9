package rapidapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// cnameSeparator joins a CNAME chain the service sends as an array
const cnameSeparator = " -> "

// UnmarshalJSON decodes a record leniently: a field with an unexpected JSON type is converted
// where a sensible reading exists and dropped otherwise, so one odd record never fails a fetch
func (r *SubdomainRecord) UnmarshalJSON(data []byte) error {
	*r = SubdomainRecord{}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// not an object, keep the record with every field absent
		return nil
	}

	r.Subdomain = looseString(raw["subdomain"], ", ")
	r.Alive = looseBool(raw["alive"])
	r.HTTPStatus = looseInt(raw["httpStatus"])
	r.IPAddresses = looseStrings(raw["ipAddresses"])
	r.OpenPorts = looseInts(raw["openPorts"])
	r.Title = looseString(raw["title"], " ")
	r.CNAME = looseString(raw["cname"], cnameSeparator)
	r.IsCDN = looseBool(raw["isCdn"])
	r.CDNProvider = looseString(raw["cdnProvider"], ", ")
	r.ServerHeader = looseString(raw["serverHeader"], ", ")
	r.Technologies = looseStrings(raw["technologies"])

	return nil
}

// absent reports whether a raw value is missing or null
func absent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)

	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// looseString reads a string; numbers and booleans keep their literal text and arrays are joined with sep
func looseString(raw json.RawMessage, sep string) *string {
	if absent(raw) {
		return nil
	}

	if isArray(raw) {
		joined := strings.Join(looseStrings(raw), sep)
		return &joined
	}

	text := scalarText(raw)

	return &text
}

// looseStrings reads an array of strings; a single scalar becomes a one element slice
func looseStrings(raw json.RawMessage) []string {
	if absent(raw) {
		return nil
	}

	if !isArray(raw) {
		return []string{scalarText(raw)}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	out := make([]string, 0, len(items))

	for _, item := range items {
		if absent(item) {
			continue
		}

		out = append(out, scalarText(item))
	}

	return out
}

// isArray reports whether a raw value is a JSON array
func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)

	return len(trimmed) > 0 && trimmed[0] == '['
}

// scalarText returns a JSON string unquoted and any other value as compact JSON text
func scalarText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return string(bytes.TrimSpace(raw))
	}

	return compact.String()
}

// looseInt reads an integer from a number or a numeric string
func looseInt(raw json.RawMessage) *int {
	if absent(raw) {
		return nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		n := int(f)
		return &n
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return &n
		}
	}

	return nil
}

// looseInts reads an array of integers, skipping elements that are not numeric
func looseInts(raw json.RawMessage) []int {
	if absent(raw) {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		if n := looseInt(raw); n != nil {
			return []int{*n}
		}

		return nil
	}

	out := make([]int, 0, len(items))

	for _, item := range items {
		if n := looseInt(item); n != nil {
			out = append(out, *n)
		}
	}

	return out
}

// looseBool reads a boolean from a bool, a "true"/"false" string or a number
func looseBool(raw json.RawMessage) bool {
	if absent(raw) {
		return false
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		parsed, _ := strconv.ParseBool(strings.TrimSpace(s))
		return parsed
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f != 0
	}

	return false
}
