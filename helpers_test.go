package teos

import (
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/torlnapp/teos-go/internal/crypto"
)

var fixedTime = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

var defaultAAD = AADPayload{
	ContextID:       "group-123",
	ScopeID:         "scope1",
	EpochID:         42,
	SenderClientID:  "client-7",
	MessageSequence: 3,
}

type nested struct {
	Active bool `msgpack:"active"`
}

type samplePayload struct {
	Message string `msgpack:"message"`
	Count   int    `msgpack:"count"`
	Nested  nested `msgpack:"nested"`
}

type statusPayload struct {
	Status string `msgpack:"status"`
	Items  []int  `msgpack:"items"`
}

type testContext struct {
	pub  ed25519.PublicKey
	priv ed25519.PrivateKey
	psk  []byte
}

func newTestContext(t testing.TB) *testContext {
	t.Helper()

	pub, priv, err := GenerateSigningKey()
	require.NoError(t, err)

	psk, err := GeneratePSK()
	require.NoError(t, err)

	return &testContext{pub: pub, priv: priv, psk: psk}
}

func (tc *testContext) createPSK(t testing.TB, v any, opts ...Option) *Envelope {
	t.Helper()

	plaintext, err := EncodePayload(v)
	require.NoError(t, err)

	env, err := CreatePSK(defaultAAD, tc.psk, tc.priv, plaintext, opts...)
	require.NoError(t, err)
	return env
}

// mlsSealed is what the MLS layer hands over: a key it keeps, the nonce it
// used, and ciphertext || tag.
type mlsSealed struct {
	key    []byte
	nonce  []byte
	sealed []byte
}

func sealForMLS(t testing.TB, v any) mlsSealed {
	t.Helper()

	plaintext, err := EncodePayload(v)
	require.NoError(t, err)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	nonce, err := crypto.GenerateNonce()
	require.NoError(t, err)

	sealed, err := crypto.Seal(crypto.AlgorithmChaCha20Poly1305, key, nonce, plaintext)
	require.NoError(t, err)

	return mlsSealed{key: key, nonce: nonce, sealed: sealed}
}
