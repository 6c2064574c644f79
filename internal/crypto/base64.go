package crypto

import (
	"encoding/base64"
)

// ToBase64URL encodes bytes to URL-safe base64 without padding.
// Used for keys, PSKs, and serialized envelopes exchanged as text.
func ToBase64URL(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// FromBase64URL decodes base64 text. URL-safe unpadded input is expected,
// but padded and standard-alphabet input is accepted too since other TEOS
// implementations emit either.
func FromBase64URL(s string) ([]byte, error) {
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}

	for _, enc := range []*base64.Encoding{base64.URLEncoding, base64.RawStdEncoding} {
		if data, err2 := enc.DecodeString(s); err2 == nil {
			return data, nil
		}
	}

	return base64.StdEncoding.DecodeString(s)
}
