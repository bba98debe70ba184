package meshproto

import (
	"crypto/aes"
	"crypto/rand"
	"fmt"
)

// KeySize is the width of every key, nonce-pair, and block this package
// operates on: AES-128 throughout, matching the mesh's fixed block size.
const KeySize = 16

// NonceSize is the width of the client and server handshake nonces.
const NonceSize = 8

// CombineNamePassword builds the 16-byte key used to authenticate the
// handshake from a mesh name and password, each right-padded with zero
// bytes to 16 and then XORed together. Names and passwords longer than 16
// bytes are truncated; the mesh app itself never allows that, but the
// protocol has no way to reject it at this layer.
func CombineNamePassword(name, password string) [KeySize]byte {
	var combined [KeySize]byte
	var n, p [KeySize]byte
	copy(n[:], name)
	copy(p[:], password)
	for i := range combined {
		combined[i] = n[i] ^ p[i]
	}
	return combined
}

// blockEncrypt is the single reversed-AES-ECB primitive every higher-level
// operation in this package is built from: the handshake key derivation,
// the per-packet MAC, and the per-packet keystream. Telink's firmware
// byte-reverses both the key and the plaintext before the AES-128 block
// encrypt, then byte-reverses the ciphertext on the way out.
func blockEncrypt(key, plaintext [KeySize]byte) [KeySize]byte {
	var rk, rp [KeySize]byte
	reverse(rk[:], key[:])
	reverse(rp[:], plaintext[:])

	block, err := aes.NewCipher(rk[:])
	if err != nil {
		// aes.NewCipher only fails on a bad key length, which is
		// impossible with a fixed [16]byte argument.
		panic(fmt.Sprintf("meshproto: unreachable aes.NewCipher error: %v", err))
	}
	var ct [KeySize]byte
	block.Encrypt(ct[:], rp[:])

	var out [KeySize]byte
	reverse(out[:], ct[:])
	return out
}

func reverse(dst, src []byte) {
	n := len(src)
	for i := 0; i < n; i++ {
		dst[i] = src[n-1-i]
	}
}

// NewClientNonce draws a fresh random 8-byte nonce for a pairing attempt.
func NewClientNonce() ([NonceSize]byte, error) {
	var nonce [NonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nonce, fmt.Errorf("meshproto: generating client nonce: %w", err)
	}
	return nonce, nil
}

// PairingRequest builds the 17-byte write to the pairing characteristic
// (0x0C): the command byte, the client nonce, and the first 8 bytes of
// blockEncrypt(combinedKey, clientNonce padded to 16).
func PairingRequest(combinedKey [KeySize]byte, clientNonce [NonceSize]byte) []byte {
	var padded [KeySize]byte
	copy(padded[:], clientNonce[:])
	enc := blockEncrypt(combinedKey, padded)

	out := make([]byte, 0, 1+NonceSize+8)
	out = append(out, 0x0C)
	out = append(out, clientNonce[:]...)
	out = append(out, enc[:8]...)
	return out
}

// ParsePairingResponse reads the pairing characteristic's notification
// (0x0D accept, followed by an 8-byte server nonce and 8-byte
// confirmation digest; 0x0E reject) and returns the server nonce on
// success.
func ParsePairingResponse(resp []byte) ([NonceSize]byte, error) {
	var serverNonce [NonceSize]byte
	if len(resp) < 1 {
		return serverNonce, fmt.Errorf("meshproto: empty pairing response: %w", ErrProtocolViolation)
	}
	switch resp[0] {
	case 0x0D:
		if len(resp) < 1+NonceSize {
			return serverNonce, fmt.Errorf("meshproto: short pairing accept: %w", ErrProtocolViolation)
		}
		copy(serverNonce[:], resp[1:1+NonceSize])
		return serverNonce, nil
	case 0x0E:
		return serverNonce, ErrAuthRejected
	default:
		return serverNonce, fmt.Errorf("meshproto: unexpected pairing opcode 0x%02x: %w", resp[0], ErrProtocolViolation)
	}
}

// DeriveSessionKey computes the session key from the combined key and both
// handshake nonces: blockEncrypt(combinedKey, clientNonce || serverNonce).
func DeriveSessionKey(combinedKey [KeySize]byte, clientNonce, serverNonce [NonceSize]byte) [KeySize]byte {
	var plaintext [KeySize]byte
	copy(plaintext[:NonceSize], clientNonce[:])
	copy(plaintext[NonceSize:], serverNonce[:])
	return blockEncrypt(combinedKey, plaintext)
}
