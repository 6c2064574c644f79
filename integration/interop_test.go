//go:build integration

package integration

import (
	"encoding/json"
	"testing"

	teos "github.com/torlnapp/teos-go"
	"github.com/torlnapp/teos-go/internal/crypto"
)

type aadJSON struct {
	ContextID       string `json:"contextId"`
	ScopeID         string `json:"scopeId,omitempty"`
	EpochID         uint64 `json:"epochId"`
	SenderClientID  string `json:"senderClientId"`
	MessageSequence uint64 `json:"messageSequence"`
}

type keygenOutput struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
	PSK        string `json:"psk"`
}

type createOutput struct {
	ID       string `json:"id"`
	Mode     string `json:"mode"`
	Envelope string `json:"envelope"`
}

type extractOutput struct {
	ID      string          `json:"id"`
	Mode    string          `json:"mode"`
	Payload json.RawMessage `json:"payload"`
}

var interopAAD = teos.AADPayload{
	ContextID:       "interop-group",
	ScopeID:         "general",
	EpochID:         7,
	SenderClientID:  "go-client",
	MessageSequence: 1,
}

type interopMessage struct {
	Message string `msgpack:"message" json:"message"`
	Count   int    `msgpack:"count" json:"count"`
}

func TestInterop_GoCreatesPeerExtracts(t *testing.T) {
	pub, priv, err := teos.GenerateSigningKey()
	if err != nil {
		t.Fatalf("GenerateSigningKey() error = %v", err)
	}
	psk, err := teos.GeneratePSK()
	if err != nil {
		t.Fatalf("GeneratePSK() error = %v", err)
	}

	plaintext, err := teos.EncodePayload(interopMessage{Message: "from go", Count: 2})
	if err != nil {
		t.Fatalf("EncodePayload() error = %v", err)
	}
	env, err := teos.CreatePSK(interopAAD, psk, priv, plaintext)
	if err != nil {
		t.Fatalf("CreatePSK() error = %v", err)
	}
	data, err := teos.Serialize(env)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	var out extractOutput
	err = runPeer(t, "extract-psk", map[string]string{
		"envelope":  crypto.ToBase64URL(data),
		"psk":       crypto.ToBase64URL(psk),
		"publicKey": crypto.ToBase64URL(pub),
	}, &out)
	if err != nil {
		t.Fatalf("peer extract-psk error = %v", err)
	}

	var got interopMessage
	if err := json.Unmarshal(out.Payload, &got); err != nil {
		t.Fatalf("decode peer payload: %v", err)
	}
	if got.Message != "from go" || got.Count != 2 {
		t.Errorf("peer payload = %+v, want {from go 2}", got)
	}
	if out.ID != env.AAD.Identifier {
		t.Errorf("peer id = %s, want %s", out.ID, env.AAD.Identifier)
	}
}

func TestInterop_PeerCreatesGoExtracts(t *testing.T) {
	var keys keygenOutput
	if err := runPeer(t, "keygen", map[string]string{}, &keys); err != nil {
		t.Fatalf("peer keygen error = %v", err)
	}

	var created createOutput
	err := runPeer(t, "create-psk", map[string]any{
		"aad": aadJSON{
			ContextID:       interopAAD.ContextID,
			ScopeID:         interopAAD.ScopeID,
			EpochID:         interopAAD.EpochID,
			SenderClientID:  "peer-client",
			MessageSequence: 9,
		},
		"psk":        keys.PSK,
		"signingKey": keys.PrivateKey,
		"payload":    interopMessage{Message: "from peer", Count: 5},
	}, &created)
	if err != nil {
		t.Fatalf("peer create-psk error = %v", err)
	}

	data, err := crypto.FromBase64URL(created.Envelope)
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	psk, err := crypto.FromBase64URL(keys.PSK)
	if err != nil {
		t.Fatalf("decode psk: %v", err)
	}
	pub, err := crypto.FromBase64URL(keys.PublicKey)
	if err != nil {
		t.Fatalf("decode public key: %v", err)
	}

	got, err := teos.ExtractPSKSerialized[interopMessage](data, psk, pub)
	if err != nil {
		t.Fatalf("ExtractPSKSerialized() error = %v", err)
	}
	if got.Message != "from peer" || got.Count != 5 {
		t.Errorf("payload = %+v, want {from peer 5}", got)
	}
}

func TestInterop_PeerRejectsTamperedEnvelope(t *testing.T) {
	pub, priv, err := teos.GenerateSigningKey()
	if err != nil {
		t.Fatalf("GenerateSigningKey() error = %v", err)
	}
	psk, err := teos.GeneratePSK()
	if err != nil {
		t.Fatalf("GeneratePSK() error = %v", err)
	}
	plaintext, err := teos.EncodePayload("tamper me")
	if err != nil {
		t.Fatalf("EncodePayload() error = %v", err)
	}
	env, err := teos.CreatePSK(interopAAD, psk, priv, plaintext)
	if err != nil {
		t.Fatalf("CreatePSK() error = %v", err)
	}

	tampered := env.Clone()
	tampered.AAD.MessageSequence++
	data, err := teos.Serialize(tampered)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	err = runPeer(t, "extract-psk", map[string]string{
		"envelope":  crypto.ToBase64URL(data),
		"psk":       crypto.ToBase64URL(psk),
		"publicKey": crypto.ToBase64URL(pub),
	}, nil)
	if err == nil {
		t.Error("peer should reject an envelope whose AAD was altered after signing")
	}
}

// mlsSealedWithAESGCM seals msg the way the peer's MLS layer does: AES-GCM
// under the exporter key, while the envelope still stamps ChaCha20-Poly1305.
func mlsSealedWithAESGCM(t *testing.T, msg interopMessage) (key, nonce, sealed []byte) {
	t.Helper()

	plaintext, err := teos.EncodePayload(msg)
	if err != nil {
		t.Fatalf("EncodePayload() error = %v", err)
	}
	if key, err = crypto.GenerateKey(); err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}
	if nonce, err = crypto.GenerateNonce(); err != nil {
		t.Fatalf("GenerateNonce() error = %v", err)
	}
	if sealed, err = crypto.Seal(crypto.AlgorithmAESGCM, key, nonce, plaintext); err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	return key, nonce, sealed
}

func TestInterop_MLS_GoCreatesPeerExtracts(t *testing.T) {
	pub, priv, err := teos.GenerateSigningKey()
	if err != nil {
		t.Fatalf("GenerateSigningKey() error = %v", err)
	}
	key, nonce, sealed := mlsSealedWithAESGCM(t, interopMessage{Message: "mls from go", Count: 3})

	env, err := teos.CreateMLS("go-mls-001", interopAAD, priv, sealed, nonce)
	if err != nil {
		t.Fatalf("CreateMLS() error = %v", err)
	}
	data, err := teos.Serialize(env)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	var out extractOutput
	err = runPeer(t, "extract", map[string]string{
		"envelope":  crypto.ToBase64URL(data),
		"key":       crypto.ToBase64URL(key),
		"publicKey": crypto.ToBase64URL(pub),
		"aead":      teos.AlgorithmAESGCM,
	}, &out)
	if err != nil {
		t.Fatalf("peer extract error = %v", err)
	}

	var got interopMessage
	if err := json.Unmarshal(out.Payload, &got); err != nil {
		t.Fatalf("decode peer payload: %v", err)
	}
	if got.Message != "mls from go" || got.Count != 3 {
		t.Errorf("peer payload = %+v, want {mls from go 3}", got)
	}
}

func TestInterop_MLS_PeerCreatesGoExtracts(t *testing.T) {
	var keys keygenOutput
	if err := runPeer(t, "keygen", map[string]string{}, &keys); err != nil {
		t.Fatalf("peer keygen error = %v", err)
	}
	key, nonce, sealed := mlsSealedWithAESGCM(t, interopMessage{Message: "mls from peer", Count: 8})

	var created createOutput
	err := runPeer(t, "create-mls", map[string]any{
		"identifier": "peer-mls-001",
		"aad": aadJSON{
			ContextID:       interopAAD.ContextID,
			EpochID:         interopAAD.EpochID,
			SenderClientID:  "peer-client",
			MessageSequence: 2,
		},
		"signingKey": keys.PrivateKey,
		"sealed":     crypto.ToBase64URL(sealed),
		"nonce":      crypto.ToBase64URL(nonce),
	}, &created)
	if err != nil {
		t.Fatalf("peer create-mls error = %v", err)
	}

	data, err := crypto.FromBase64URL(created.Envelope)
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	pub, err := crypto.FromBase64URL(keys.PublicKey)
	if err != nil {
		t.Fatalf("decode public key: %v", err)
	}

	env, err := teos.Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	if env.Algorithm != teos.AlgorithmChaCha20Poly1305 {
		t.Errorf("Algorithm = %s, want %s", env.Algorithm, teos.AlgorithmChaCha20Poly1305)
	}

	got, err := teos.Extract[interopMessage](env, key, pub, teos.WithMLSAEAD(teos.AlgorithmAESGCM))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got.Message != "mls from peer" || got.Count != 8 {
		t.Errorf("payload = %+v, want {mls from peer 8}", got)
	}
}
