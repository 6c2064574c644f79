// Package crypto provides the cryptographic primitives consumed by the TEOS
// envelope engine. Nothing in this package knows about envelopes; it exposes
// small, stateless functions over byte slices.
//
// # Algorithm Suite
//
//   - AES-256-GCM: AEAD used by pre-shared-key envelopes. The 32-byte key is
//     derived per message with HKDF.
//
//   - ChaCha20-Poly1305 (RFC 8439): AEAD used by MLS envelopes. The key comes
//     from an MLS exporter secret and is never derived here.
//
//   - HKDF-SHA-256 (RFC 5869): extract-then-expand key derivation.
//
//   - Ed25519 (RFC 8032): detached signatures over the envelope hash.
//
// # Sealed Buffers
//
// Both AEADs produce ciphertext || tag as one buffer. [SplitSealed] separates
// the trailing 16-byte tag and [JoinSealed] restores the original buffer
// before opening. The two halves are only ever produced and consumed as a
// pair.
//
// # Security Notes
//
// Signature verification MUST happen before any call to [Open]. Opening
// unauthenticated ciphertext turns the AEAD into a decryption oracle.
//
// Nonces MUST be unique per key. PSK envelopes get a fresh key per message, and
// a fresh random nonce on top of that from [RandomBytes].
package crypto
