package teos

import (
	"fmt"

	"github.com/torlnapp/teos-go/internal/crypto"
)

// PSKKeyParams binds a PSK message key to one envelope.
type PSKKeyParams struct {
	Identifier      string
	GroupID         string
	EpochID         uint64
	PSKGeneration   uint32
	SenderClientID  string
	MessageSequence uint64
}

func pskParams(a AAD, generation uint32) PSKKeyParams {
	return PSKKeyParams{
		Identifier:      a.Identifier,
		GroupID:         a.ContextID,
		EpochID:         a.EpochID,
		PSKGeneration:   generation,
		SenderClientID:  a.SenderClientID,
		MessageSequence: a.MessageSequence,
	}
}

// salt is SHA-256("<group>|<epoch>|<generation>").
func (p PSKKeyParams) salt() []byte {
	h := crypto.Hash(fmt.Appendf(nil, "%s|%d|%d", p.GroupID, p.EpochID, p.PSKGeneration))
	return h[:]
}

// info is "torln-teos-v1:key|<identifier>|<sender>|<sequence>".
func (p PSKKeyParams) info() []byte {
	return fmt.Appendf(nil, "%s|%s|%s|%d", pskInfoPrefix, p.Identifier, p.SenderClientID, p.MessageSequence)
}

// DerivePSKKey derives the AES-256 message key for one envelope from a
// pre-shared secret with HKDF-SHA-256. Identical inputs always give the same
// key, which is how receivers rebuild it; changing any field gives an
// unrelated key.
func DerivePSKKey(psk []byte, p PSKKeyParams) ([]byte, error) {
	if len(psk) == 0 {
		return nil, providerErr("derive", fmt.Errorf("%w: empty pre-shared key", crypto.ErrInvalidKeySize))
	}

	key, err := crypto.DeriveKey(psk, p.salt(), p.info(), KeySize)
	if err != nil {
		return nil, providerErr("derive", err)
	}
	return key, nil
}
