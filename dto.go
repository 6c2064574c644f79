package teos

import (
	"fmt"
	"time"

	"github.com/vmihailenko/msgpack/v5"
)

// DTO is a lightweight descriptor of an envelope for index and storage
// layers that should not need to understand envelope internals.
type DTO struct {
	Type        string    `msgpack:"type" json:"type"`
	ID          string    `msgpack:"id" json:"id"`
	Mode        Mode      `msgpack:"mode" json:"mode"`
	Ciphersuite string    `msgpack:"ciphersuite" json:"ciphersuite"`
	Blob        []byte    `msgpack:"blob" json:"blob"`
	Timestamp   time.Time `msgpack:"timestamp" json:"timestamp"`
}

// ToDTO projects env into a DTO. Blob holds the serialized envelope.
func ToDTO(env *Envelope, opts ...Option) (*DTO, error) {
	blob, err := Serialize(env, opts...)
	if err != nil {
		return nil, err
	}

	return &DTO{
		Type:        DTOType,
		ID:          env.AAD.Identifier,
		Mode:        env.Mode(),
		Ciphersuite: env.Metadata.Ciphersuite(),
		Blob:        blob,
		Timestamp:   env.AAD.Time().UTC(),
	}, nil
}

// Envelope deserializes the envelope carried in Blob.
func (d *DTO) Envelope(opts ...Option) (*Envelope, error) {
	return Deserialize(d.Blob, opts...)
}

// MarshalDTO encodes d as msgpack.
func MarshalDTO(d *DTO) ([]byte, error) {
	if d == nil || d.Type != DTOType {
		return nil, formatErr("type", "not a TEOS DTO")
	}
	data, err := encode(d)
	if err != nil {
		return nil, &FormatError{Err: err}
	}
	return data, nil
}

// UnmarshalDTO decodes bytes produced by [MarshalDTO], rejecting anything
// whose discriminant is not DTOType.
func UnmarshalDTO(data []byte) (*DTO, error) {
	var d DTO
	if err := msgpack.Unmarshal(data, &d); err != nil {
		return nil, &FormatError{Message: "not a TEOS DTO", Err: err}
	}
	if d.Type != DTOType {
		return nil, formatErr("type", fmt.Sprintf("got %q, want %q", d.Type, DTOType))
	}
	d.Timestamp = d.Timestamp.UTC()
	return &d, nil
}
