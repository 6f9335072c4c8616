package loom

import (
	"regexp"
	"strconv"
	"strings"
)

// Placeholder tokens materialize interpolation boundaries inside the
// compiled markup so they survive the tokenizer:
//
//	__loom3__          attribute name/value position, slot 3
//	data-__loom3__     tag-level dataset position (synthetic attribute)
//	<!--__loom3__-->   child position (marker comment)

const slotPrefix = "__loom"
const slotSuffix = "__"
const datasetPrefix = "data-" + slotPrefix

var slotPattern = regexp.MustCompile(`__loom(\d+)__`)

func slotToken(i int) string {
	return slotPrefix + strconv.Itoa(i) + slotSuffix
}

// slotIndex reports whether s is exactly one placeholder token, and its
// slot index if so.
func slotIndex(s string) (int, bool) {
	if !strings.HasPrefix(s, slotPrefix) || !strings.HasSuffix(s, slotSuffix) {
		return 0, false
	}
	digits := s[len(slotPrefix) : len(s)-len(slotSuffix)]
	if digits == "" {
		return 0, false
	}
	i, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return i, true
}

// datasetSlotIndex matches the synthetic dataset attribute form.
func datasetSlotIndex(name string) (int, bool) {
	if !strings.HasPrefix(name, datasetPrefix) {
		return 0, false
	}
	return slotIndex(name[len("data-"):])
}

// hasSlot reports whether s contains any placeholder token.
func hasSlot(s string) bool {
	return strings.Contains(s, slotPrefix) && slotPattern.MatchString(s)
}

// substituteSlots resolves every placeholder in s textually against the
// values sequence. Used for names/values that mix literal text with one
// or more placeholders; an exact-token match is resolved by the caller
// instead, preserving the raw value type.
func substituteSlots(s string, values []any) string {
	return slotPattern.ReplaceAllStringFunc(s, func(tok string) string {
		i, ok := slotIndex(tok)
		if !ok || i >= len(values) {
			return tok
		}
		return stringify(values[i])
	})
}
