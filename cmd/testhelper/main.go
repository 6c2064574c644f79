// Command testhelper exchanges TEOS envelopes with other implementations.
// Every command reads one JSON document on stdin and writes one on stdout;
// binary values are base64url.
package main

import (
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	teos "github.com/torlnapp/teos-go"
	"github.com/torlnapp/teos-go/internal/crypto"
)

// Config holds the I/O streams of a run.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns a Config bound to the process streams.
func DefaultConfig() *Config {
	return &Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

var exitFunc = os.Exit

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	exitFunc(1)
}

const usage = "usage: testhelper <keygen|create-psk|extract-psk|create-mls|extract|inspect>"

func run(args []string, cfg *Config) error {
	if len(args) < 2 {
		return errors.New(usage)
	}

	switch args[1] {
	case "keygen":
		return runKeygen(cfg)
	case "create-psk":
		return runCreatePSK(cfg)
	case "extract-psk":
		return runExtractPSK(cfg)
	case "create-mls":
		return runCreateMLS(cfg)
	case "extract":
		return runExtract(cfg)
	case "inspect":
		return runInspect(cfg)
	default:
		return fmt.Errorf("unknown command: %s\n%s", args[1], usage)
	}
}

// AADInput is the JSON form of teos.AADPayload.
type AADInput struct {
	ContextID       string `json:"contextId"`
	ScopeID         string `json:"scopeId,omitempty"`
	EpochID         uint64 `json:"epochId"`
	SenderClientID  string `json:"senderClientId"`
	MessageSequence uint64 `json:"messageSequence"`
}

func (a AADInput) payload() teos.AADPayload {
	return teos.AADPayload{
		ContextID:       a.ContextID,
		ScopeID:         a.ScopeID,
		EpochID:         a.EpochID,
		SenderClientID:  a.SenderClientID,
		MessageSequence: a.MessageSequence,
	}
}

type KeygenOutput struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
	PSK        string `json:"psk"`
}

type CreatePSKInput struct {
	AAD           AADInput        `json:"aad"`
	PSK           string          `json:"psk"`
	SigningKey    string          `json:"signingKey"`
	Payload       json.RawMessage `json:"payload"`
	PSKGeneration uint32          `json:"pskGeneration,omitempty"`
}

type CreateMLSInput struct {
	Identifier string   `json:"identifier"`
	AAD        AADInput `json:"aad"`
	SigningKey string   `json:"signingKey"`
	Sealed     string   `json:"sealed"`
	Nonce      string   `json:"nonce"`
}

type CreateOutput struct {
	ID       string `json:"id"`
	Mode     string `json:"mode"`
	Envelope string `json:"envelope"`
}

type ExtractPSKInput struct {
	Envelope  string `json:"envelope"`
	PSK       string `json:"psk"`
	PublicKey string `json:"publicKey"`
}

type ExtractInput struct {
	Envelope  string `json:"envelope"`
	Key       string `json:"key"`
	PublicKey string `json:"publicKey"`
	AEAD      string `json:"aead,omitempty"` // cipher the MLS layer sealed with, if not the stamped one
}

type ExtractOutput struct {
	ID      string `json:"id"`
	Mode    string `json:"mode"`
	Payload any    `json:"payload"`
}

type InspectInput struct {
	Envelope  string `json:"envelope"`
	PublicKey string `json:"publicKey,omitempty"`
}

type InspectOutput struct {
	ID          string   `json:"id"`
	Mode        string   `json:"mode"`
	Ciphersuite string   `json:"ciphersuite"`
	Version     string   `json:"version"`
	Algorithm   string   `json:"algorithm"`
	Timestamp   string   `json:"timestamp"`
	AAD         AADInput `json:"aad"`
	Hash        string   `json:"hash"`
	Expired     bool     `json:"expired"`
	Verified    *bool    `json:"verified,omitempty"`
}

func runKeygen(cfg *Config) error {
	pub, priv, err := teos.GenerateSigningKey()
	if err != nil {
		return fmt.Errorf("generate signing key: %w", err)
	}
	psk, err := teos.GeneratePSK()
	if err != nil {
		return fmt.Errorf("generate psk: %w", err)
	}

	return writeJSON(cfg, KeygenOutput{
		PublicKey:  crypto.ToBase64URL(pub),
		PrivateKey: crypto.ToBase64URL(priv.Seed()),
		PSK:        crypto.ToBase64URL(psk),
	})
}

func runCreatePSK(cfg *Config) error {
	var in CreatePSKInput
	if err := readJSON(cfg, &in); err != nil {
		return err
	}

	psk, err := crypto.FromBase64URL(in.PSK)
	if err != nil {
		return fmt.Errorf("decode psk: %w", err)
	}
	signer, err := signingKey(in.SigningKey)
	if err != nil {
		return err
	}
	plaintext, err := encodeJSONPayload(in.Payload)
	if err != nil {
		return err
	}

	var opts []teos.Option
	if in.PSKGeneration != 0 {
		opts = append(opts, teos.WithPSKGeneration(in.PSKGeneration))
	}

	env, err := teos.CreatePSK(in.AAD.payload(), psk, signer, plaintext, opts...)
	if err != nil {
		return fmt.Errorf("create psk envelope: %w", err)
	}
	return writeEnvelope(cfg, env)
}

func runCreateMLS(cfg *Config) error {
	var in CreateMLSInput
	if err := readJSON(cfg, &in); err != nil {
		return err
	}

	signer, err := signingKey(in.SigningKey)
	if err != nil {
		return err
	}
	sealed, err := crypto.FromBase64URL(in.Sealed)
	if err != nil {
		return fmt.Errorf("decode sealed: %w", err)
	}
	nonce, err := crypto.FromBase64URL(in.Nonce)
	if err != nil {
		return fmt.Errorf("decode nonce: %w", err)
	}

	env, err := teos.CreateMLS(in.Identifier, in.AAD.payload(), signer, sealed, nonce)
	if err != nil {
		return fmt.Errorf("create mls envelope: %w", err)
	}
	return writeEnvelope(cfg, env)
}

func runExtractPSK(cfg *Config) error {
	var in ExtractPSKInput
	if err := readJSON(cfg, &in); err != nil {
		return err
	}

	env, err := decodeEnvelope(in.Envelope)
	if err != nil {
		return err
	}
	psk, err := crypto.FromBase64URL(in.PSK)
	if err != nil {
		return fmt.Errorf("decode psk: %w", err)
	}
	pub, err := publicKey(in.PublicKey)
	if err != nil {
		return err
	}

	payload, err := teos.ExtractPSK[any](env, psk, pub)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	return writeJSON(cfg, ExtractOutput{ID: env.AAD.Identifier, Mode: string(env.Mode()), Payload: payload})
}

func runExtract(cfg *Config) error {
	var in ExtractInput
	if err := readJSON(cfg, &in); err != nil {
		return err
	}

	env, err := decodeEnvelope(in.Envelope)
	if err != nil {
		return err
	}
	key, err := crypto.FromBase64URL(in.Key)
	if err != nil {
		return fmt.Errorf("decode key: %w", err)
	}
	pub, err := publicKey(in.PublicKey)
	if err != nil {
		return err
	}

	var opts []teos.Option
	if in.AEAD != "" {
		opts = append(opts, teos.WithMLSAEAD(in.AEAD))
	}

	payload, err := teos.Extract[any](env, key, pub, opts...)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	return writeJSON(cfg, ExtractOutput{ID: env.AAD.Identifier, Mode: string(env.Mode()), Payload: payload})
}

func runInspect(cfg *Config) error {
	var in InspectInput
	if err := readJSON(cfg, &in); err != nil {
		return err
	}

	env, err := decodeEnvelope(in.Envelope)
	if err != nil {
		return err
	}
	hash, err := env.Hash()
	if err != nil {
		return fmt.Errorf("hash: %w", err)
	}

	out := InspectOutput{
		ID:          env.AAD.Identifier,
		Mode:        string(env.Mode()),
		Ciphersuite: env.Metadata.Ciphersuite(),
		Version:     env.Version,
		Algorithm:   env.Algorithm,
		Timestamp:   env.AAD.Time().UTC().Format(time.RFC3339Nano),
		AAD: AADInput{
			ContextID:       env.AAD.ContextID,
			ScopeID:         env.AAD.ScopeID,
			EpochID:         env.AAD.EpochID,
			SenderClientID:  env.AAD.SenderClientID,
			MessageSequence: env.AAD.MessageSequence,
		},
		Hash:    crypto.ToBase64URL(hash[:]),
		Expired: env.Expired(time.Now()),
	}

	if in.PublicKey != "" {
		pub, err := publicKey(in.PublicKey)
		if err != nil {
			return err
		}
		verified := teos.Verify(env, pub)
		out.Verified = &verified
	}

	return writeJSON(cfg, out)
}

func readJSON(cfg *Config, v any) error {
	data, err := io.ReadAll(cfg.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse input: %w", err)
	}
	return nil
}

func writeJSON(cfg *Config, v any) error {
	if err := json.NewEncoder(cfg.Stdout).Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func writeEnvelope(cfg *Config, env *teos.Envelope) error {
	data, err := teos.Serialize(env)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}
	return writeJSON(cfg, CreateOutput{
		ID:       env.AAD.Identifier,
		Mode:     string(env.Mode()),
		Envelope: crypto.ToBase64URL(data),
	})
}

func decodeEnvelope(s string) (*teos.Envelope, error) {
	data, err := crypto.FromBase64URL(s)
	if err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	env, err := teos.Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("deserialize: %w", err)
	}
	return env, nil
}

// signingKey accepts a 32-byte seed or a 64-byte expanded private key.
func signingKey(s string) (ed25519.PrivateKey, error) {
	raw, err := crypto.FromBase64URL(s)
	if err != nil {
		return nil, fmt.Errorf("decode signing key: %w", err)
	}

	switch len(raw) {
	case ed25519.SeedSize:
		_, priv, err := teos.SigningKeyFromSeed(raw)
		if err != nil {
			return nil, fmt.Errorf("expand signing key: %w", err)
		}
		return priv, nil
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(raw), nil
	default:
		return nil, fmt.Errorf("signing key: got %d bytes, want %d or %d", len(raw), ed25519.SeedSize, ed25519.PrivateKeySize)
	}
}

func publicKey(s string) (ed25519.PublicKey, error) {
	raw, err := crypto.FromBase64URL(s)
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	return ed25519.PublicKey(raw), nil
}

// encodeJSONPayload turns a JSON document into a msgpack payload. Integral
// numbers are encoded as integers so other implementations see the same
// types they would have produced.
func encodeJSONPayload(raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 {
		return nil, errors.New("payload is required")
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("parse payload: %w", err)
	}

	plaintext, err := teos.EncodePayload(integers(v))
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return plaintext, nil
}

func integers(v any) any {
	switch t := v.(type) {
	case float64:
		if t == float64(int64(t)) {
			return int64(t)
		}
		return t
	case []any:
		for i := range t {
			t[i] = integers(t[i])
		}
		return t
	case map[string]any:
		for k := range t {
			t[k] = integers(t[k])
		}
		return t
	default:
		return v
	}
}
