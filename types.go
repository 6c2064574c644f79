package teos

import (
	"bytes"
	"time"
)

// Mode discriminates the two envelope variants.
type Mode string

const (
	// ModePSK marks envelopes keyed from a pre-shared secret.
	ModePSK Mode = "psk"
	// ModeMLS marks envelopes keyed from an MLS exporter secret.
	ModeMLS Mode = "mls"
)

// AADPayload is the caller-supplied part of the additional authenticated data.
type AADPayload struct {
	// ContextID names the conversation or group.
	ContextID string
	// ScopeID optionally narrows ContextID (a channel, a thread).
	ScopeID string
	// EpochID is the monotonic group epoch.
	EpochID uint64
	// SenderClientID identifies the sending client.
	SenderClientID string
	// MessageSequence is the sender's monotonic message counter.
	MessageSequence uint64
}

// AAD is the additional authenticated data of an envelope. It travels in the
// clear and is bound into the signature.
type AAD struct {
	// Identifier is unique per envelope (a UUID for PSK envelopes).
	Identifier string `msgpack:"identifier"`
	// Timestamp is the creation instant in Unix milliseconds.
	Timestamp int64 `msgpack:"timestamp"`

	ContextID       string `msgpack:"contextId"`
	ScopeID         string `msgpack:"scopeId,omitempty"`
	EpochID         uint64 `msgpack:"epochId"`
	SenderClientID  string `msgpack:"senderClientId"`
	MessageSequence uint64 `msgpack:"messageSequence"`
}

func newAAD(identifier string, now time.Time, p AADPayload) AAD {
	return AAD{
		Identifier:      identifier,
		Timestamp:       now.UnixMilli(),
		ContextID:       p.ContextID,
		ScopeID:         p.ScopeID,
		EpochID:         p.EpochID,
		SenderClientID:  p.SenderClientID,
		MessageSequence: p.MessageSequence,
	}
}

// Payload returns the caller-supplied part of the AAD.
func (a AAD) Payload() AADPayload {
	return AADPayload{
		ContextID:       a.ContextID,
		ScopeID:         a.ScopeID,
		EpochID:         a.EpochID,
		SenderClientID:  a.SenderClientID,
		MessageSequence: a.MessageSequence,
	}
}

// Time returns Timestamp as a time.Time.
func (a AAD) Time() time.Time {
	return time.UnixMilli(a.Timestamp)
}

// Base holds the mode-independent fields. These, and only these, are hashed
// and signed.
type Base struct {
	Type       string `msgpack:"type"`
	Version    string `msgpack:"version"`
	Algorithm  string `msgpack:"algorithm"`
	AAD        AAD    `msgpack:"aad"`
	Nonce      []byte `msgpack:"nonce"`
	Tag        []byte `msgpack:"tag"`
	Ciphertext []byte `msgpack:"ciphertext"`
}

// Auth carries the envelope signature.
type Auth struct {
	// Signature is an Ed25519 signature over the base hash.
	Signature []byte `msgpack:"signature"`
}

// Metadata is the mode-specific envelope block. It is implemented by
// *PSKMetadata and *MLSMetadata only.
type Metadata interface {
	// Ciphersuite returns the human-readable suite label.
	Ciphersuite() string
	// Authentication returns the signature block.
	Authentication() *Auth
	mode() Mode
	clone() Metadata
}

// PSKMetadata is the envelope block of PSK-mode envelopes.
type PSKMetadata struct {
	Suite string `msgpack:"suite"`
	Auth  Auth   `msgpack:"auth"`
	// PSKGeneration selects the derivation salt; receivers need it to
	// rebuild the message key.
	PSKGeneration uint32 `msgpack:"pskGeneration"`
	// ExpiresAt is an advisory expiry in Unix milliseconds. It is not
	// covered by the signature.
	ExpiresAt *int64 `msgpack:"expiresAt,omitempty"`
}

func (m *PSKMetadata) Ciphersuite() string { return m.Suite }
func (m *PSKMetadata) Authentication() *Auth { return &m.Auth }
func (m *PSKMetadata) mode() Mode { return ModePSK }

func (m *PSKMetadata) clone() Metadata {
	c := *m
	c.Auth.Signature = bytes.Clone(m.Auth.Signature)
	if m.ExpiresAt != nil {
		exp := *m.ExpiresAt
		c.ExpiresAt = &exp
	}
	return &c
}

// MLSMetadata is the envelope block of MLS-mode envelopes.
type MLSMetadata struct {
	Suite string `msgpack:"suite"`
	Auth  Auth   `msgpack:"auth"`
}

func (m *MLSMetadata) Ciphersuite() string { return m.Suite }
func (m *MLSMetadata) Authentication() *Auth { return &m.Auth }
func (m *MLSMetadata) mode() Mode { return ModeMLS }

func (m *MLSMetadata) clone() Metadata {
	c := *m
	c.Auth.Signature = bytes.Clone(m.Auth.Signature)
	return &c
}

// Envelope is a TEOS object: the signed base plus the mode-specific block.
// Envelopes are immutable once created; edit a Clone and re-sign instead.
type Envelope struct {
	Base
	Metadata Metadata
}

// Mode reports the envelope variant, or "" if Metadata is unset.
func (e *Envelope) Mode() Mode {
	if e == nil || e.Metadata == nil {
		return ""
	}
	return e.Metadata.mode()
}

// Signature returns the envelope signature, or nil if Metadata is unset.
func (e *Envelope) Signature() []byte {
	if e == nil || e.Metadata == nil {
		return nil
	}
	return e.Metadata.Authentication().Signature
}

// Clone returns a deep copy of e.
func (e *Envelope) Clone() *Envelope {
	if e == nil {
		return nil
	}
	c := &Envelope{Base: e.Base}
	c.Nonce = bytes.Clone(e.Nonce)
	c.Tag = bytes.Clone(e.Tag)
	c.Ciphertext = bytes.Clone(e.Ciphertext)
	if e.Metadata != nil {
		c.Metadata = e.Metadata.clone()
	}
	return c
}

// Expired reports whether a PSK envelope carries an expiry at or before now.
// MLS envelopes and PSK envelopes without an expiry never expire.
func (e *Envelope) Expired(now time.Time) bool {
	if e == nil {
		return false
	}
	m, ok := e.Metadata.(*PSKMetadata)
	if !ok || m.ExpiresAt == nil {
		return false
	}
	return !now.Before(time.UnixMilli(*m.ExpiresAt))
}
