// Package email holds helpers for account e-mail addresses.
package email

import (
	"strings"
	"unicode"
)

// DisplayName derives a readable name from the local part of an address,
// e.g. "asha.raman+land@example.com" becomes "Asha Raman". Registration uses
// it when no name is supplied.
func DisplayName(address string) string {
	local, _, _ := strings.Cut(address, "@")
	if plus := strings.IndexByte(local, '+'); plus >= 0 {
		local = local[:plus]
	}
	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	if len(parts) == 0 {
		return "Registry User"
	}
	for i, p := range parts {
		runes := []rune(p)
		runes[0] = unicode.ToUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}
