package teos

import (
	"bytes"
	"fmt"

	"github.com/vmihailenko/msgpack/v5"
)

// wireEnvelope is the msgpack layout of a serialized envelope. The metadata
// block stays raw until the discriminant and mode are known.
type wireEnvelope struct {
	Type       string             `msgpack:"type"`
	Version    string             `msgpack:"version"`
	Algorithm  string             `msgpack:"algorithm"`
	AAD        AAD                `msgpack:"aad"`
	Nonce      []byte             `msgpack:"nonce"`
	Tag        []byte             `msgpack:"tag"`
	Ciphertext []byte             `msgpack:"ciphertext"`
	Mode       Mode               `msgpack:"mode"`
	Envelope   msgpack.RawMessage `msgpack:"envelope"`
}

// Serialize encodes env, in either mode, as msgpack.
func Serialize(env *Envelope, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)
	data, err := serialize(env)
	cfg.metrics.observeCodec("serialize", err)
	return data, err
}

func serialize(env *Envelope) ([]byte, error) {
	if env == nil || env.Metadata == nil {
		return nil, formatErr("envelope", "nothing to serialize")
	}

	meta, err := encode(env.Metadata)
	if err != nil {
		return nil, &FormatError{Field: "envelope", Err: err}
	}

	data, err := encode(&wireEnvelope{
		Type:       env.Type,
		Version:    env.Version,
		Algorithm:  env.Algorithm,
		AAD:        env.AAD,
		Nonce:      env.Nonce,
		Tag:        env.Tag,
		Ciphertext: env.Ciphertext,
		Mode:       env.Mode(),
		Envelope:   meta,
	})
	if err != nil {
		return nil, &FormatError{Err: err}
	}
	return data, nil
}

// Deserialize decodes bytes produced by [Serialize]. The type discriminant is
// checked before any other field is interpreted, and a malformed object is
// never returned partially populated.
func Deserialize(data []byte, opts ...Option) (*Envelope, error) {
	cfg := newConfig(opts)
	env, err := deserialize(data)
	cfg.metrics.observeCodec("deserialize", err)
	return env, err
}

func deserialize(data []byte) (*Envelope, error) {
	var probe struct {
		Type string `msgpack:"type"`
	}
	if err := msgpack.Unmarshal(data, &probe); err != nil {
		return nil, &FormatError{Message: "not a TEOS object", Err: err}
	}
	if probe.Type != Type {
		return nil, formatErr("type", fmt.Sprintf("got %q, want %q", probe.Type, Type))
	}

	var w wireEnvelope
	if err := msgpack.Unmarshal(data, &w); err != nil {
		return nil, &FormatError{Err: err}
	}

	var meta Metadata
	switch w.Mode {
	case ModePSK:
		meta = &PSKMetadata{}
	case ModeMLS:
		meta = &MLSMetadata{}
	default:
		return nil, formatErr("mode", fmt.Sprintf("unknown mode %q", w.Mode))
	}
	if len(w.Envelope) == 0 {
		return nil, formatErr("envelope", "missing metadata")
	}
	if err := msgpack.Unmarshal(w.Envelope, meta); err != nil {
		return nil, &FormatError{Field: "envelope", Err: err}
	}

	env := &Envelope{
		Base: Base{
			Type:       w.Type,
			Version:    w.Version,
			Algorithm:  w.Algorithm,
			AAD:        w.AAD,
			Nonce:      w.Nonce,
			Tag:        w.Tag,
			Ciphertext: w.Ciphertext,
		},
		Metadata: meta,
	}
	if err := checkShape(env); err != nil {
		return nil, err
	}
	return env, nil
}

// EncodePayload encodes v with the payload codec (msgpack). Use it to
// produce the plaintext handed to [CreatePSK] or sealed by the MLS layer.
func EncodePayload(v any) ([]byte, error) {
	data, err := encode(v)
	if err != nil {
		return nil, &FormatError{Field: "payload", Err: err}
	}
	return data, nil
}

// DecodePayload decodes plaintext produced by [EncodePayload] into v.
// Integers decoded into interface values come back as int64 or uint64.
func DecodePayload(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)
	if err := dec.Decode(v); err != nil {
		return &FormatError{Field: "payload", Err: err}
	}
	return nil
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.UseCompactInts(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
