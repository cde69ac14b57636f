package validation

import "strings"

// NormalizeEmail lowercases the address and canonicalizes Gmail addresses
// (dots and +tags in the local part are ignored by Gmail).
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndexByte(email, '@')
	if at <= 0 {
		return email
	}
	local, host := email[:at], email[at+1:]
	if host == "gmail.com" || host == "googlemail.com" {
		if plus := strings.IndexByte(local, '+'); plus >= 0 {
			local = local[:plus]
		}
		local = strings.ReplaceAll(local, ".", "")
		host = "gmail.com"
	}
	return local + "@" + host
}
