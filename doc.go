// Package teos implements the Torln Encrypted Object Specification (TEOS):
// self-describing, signed, authenticated-encrypted envelopes for
// message-layer payloads.
//
// Two key-establishment modes are supported:
//
//   - PSK: every envelope gets its own AES-256-GCM key, derived with
//     HKDF-SHA-256 from a long-lived pre-shared key and the envelope's
//     group, epoch, generation, identifier, sender and sequence number.
//     The key is never transmitted; receivers derive it again.
//
//   - MLS: the MLS layer seals the payload with ChaCha20-Poly1305 under a
//     key from its epoch exporter secret and hands over the sealed buffer
//     and nonce. This package only wraps and signs it.
//
// In both modes an Ed25519 signature covers exactly the base fields: type,
// version, algorithm, aad, nonce, tag and ciphertext, hashed with SHA-256
// over a canonical msgpack encoding. Changing any of them invalidates the
// envelope.
//
// Basic usage:
//
//	pub, priv, err := teos.GenerateSigningKey()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	plaintext, err := teos.EncodePayload(map[string]any{"message": "hello"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	env, err := teos.CreatePSK(teos.AADPayload{
//	    ContextID:       "group-123",
//	    EpochID:         42,
//	    SenderClientID:  "client-7",
//	    MessageSequence: 3,
//	}, psk, priv, plaintext)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	blob, err := teos.Serialize(env)
//	// ... transport ...
//	msg, err := teos.ExtractPSKSerialized[map[string]any](blob, psk, pub)
//
// Extraction always verifies the signature first; an [AuthenticationError]
// means nothing was decrypted. All functions are stateless and safe for
// concurrent use.
package teos
