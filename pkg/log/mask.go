package log

// secretMask replaces secrets in log output; its width never depends on the secret
const secretMask = "********"

// MaskSecret hides a shared secret for logging. Empty input stays empty so a
// missing secret is still visible.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	return secretMask
}
