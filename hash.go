package teos

import (
	"bytes"

	"github.com/vmihailenko/msgpack/v5"

	"github.com/torlnapp/teos-go/internal/crypto"
)

// canonicalEncoder writes msgpack from explicit field lists. Keys are written
// in ascending byte order so the encoding never depends on struct layout or
// map iteration.
type canonicalEncoder struct {
	enc *msgpack.Encoder
	err error
}

func (c *canonicalEncoder) do(err error) {
	if c.err == nil {
		c.err = err
	}
}

func (c *canonicalEncoder) mapLen(n int) { c.do(c.enc.EncodeMapLen(n)) }
func (c *canonicalEncoder) str(s string) { c.do(c.enc.EncodeString(s)) }
func (c *canonicalEncoder) bin(b []byte) { c.do(c.enc.EncodeBytes(b)) }
func (c *canonicalEncoder) unsigned(n uint64) { c.do(c.enc.EncodeUint(n)) }
func (c *canonicalEncoder) signed(n int64) { c.do(c.enc.EncodeInt(n)) }

func (c *canonicalEncoder) field(k, v string) {
	c.str(k)
	c.str(v)
}

func (c *canonicalEncoder) aad(a *AAD) {
	n := 6
	if a.ScopeID != "" {
		n++
	}
	c.mapLen(n)
	c.field("contextId", a.ContextID)
	c.str("epochId")
	c.unsigned(a.EpochID)
	c.field("identifier", a.Identifier)
	c.str("messageSequence")
	c.unsigned(a.MessageSequence)
	if a.ScopeID != "" {
		c.field("scopeId", a.ScopeID)
	}
	c.field("senderClientId", a.SenderClientID)
	c.str("timestamp")
	c.signed(a.Timestamp)
}

// CanonicalBytes returns the deterministic encoding of the signed field set:
// type, version, algorithm, aad, nonce, tag, ciphertext.
func (b *Base) CanonicalBytes() ([]byte, error) {
	var buf bytes.Buffer
	c := &canonicalEncoder{enc: msgpack.NewEncoder(&buf)}

	c.mapLen(7)
	c.str("aad")
	c.aad(&b.AAD)
	c.field("algorithm", b.Algorithm)
	c.str("ciphertext")
	c.bin(b.Ciphertext)
	c.str("nonce")
	c.bin(b.Nonce)
	c.str("tag")
	c.bin(b.Tag)
	c.field("type", b.Type)
	c.field("version", b.Version)

	if c.err != nil {
		return nil, c.err
	}
	return buf.Bytes(), nil
}

// Hash returns the SHA-256 digest of CanonicalBytes. This is the message the
// envelope signature covers.
func (b *Base) Hash() ([HashSize]byte, error) {
	data, err := b.CanonicalBytes()
	if err != nil {
		return [HashSize]byte{}, &FormatError{Field: "base", Message: "canonical encoding", Err: err}
	}
	return crypto.Hash(data), nil
}
