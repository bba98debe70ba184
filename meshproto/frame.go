package meshproto

import (
	"encoding/binary"
	"fmt"
)

// FrameSize is the fixed length of every mesh packet, encrypted or plain.
const FrameSize = 20

// headerSize is the minimum number of leading bytes a notification must
// carry before DecryptFrame can compute its keystream.
const headerSize = 7

// vendorCode is the fixed two-byte vendor code every outbound frame carries
// at offset 8; the mesh firmware ignores anything else here.
var vendorCode = [2]byte{0x60, 0x01}

// Frame is one plaintext 20-byte mesh packet before encryption, or after
// successful decryption.
type Frame [FrameSize]byte

// NewFrame lays out a plaintext frame: counter at [0:2], a zero byte at
// [2], destination at [5:7], the command code at [7], the fixed vendor
// code at [8:10], and the payload right-padded with zeros at [10:20].
// Payloads longer than 10 bytes are truncated.
func NewFrame(counter uint16, dest uint16, command byte, payload []byte) Frame {
	var f Frame
	binary.LittleEndian.PutUint16(f[0:2], counter)
	binary.LittleEndian.PutUint16(f[5:7], dest)
	f[7] = command
	f[8] = vendorCode[0]
	f[9] = vendorCode[1]
	n := copy(f[10:20], payload)
	_ = n
	return f
}

// Counter is the mesh packet counter. It starts at 1 and wraps from 0xFFFF
// back to 1 — 0 is never used as a live counter value.
type Counter uint16

// Next advances the counter, wrapping 0xFFFF back to 1.
func (c *Counter) Next() uint16 {
	if *c == 0 {
		*c = 1
	}
	v := uint16(*c)
	if *c == 0xFFFF {
		*c = 1
	} else {
		*c++
	}
	return v
}

// EncryptFrame computes the MAC and keystream for a plaintext frame in
// place, using the given session key and the peripheral's byte-reversed
// BLE address. After this call f holds the wire-ready encrypted packet.
func EncryptFrame(f *Frame, sessionKey [KeySize]byte, reverseAddr [6]byte) {
	authNonce := buildAuthNonce(reverseAddr, f[0:3])
	auth := blockEncrypt(sessionKey, authNonce)
	for i := 0; i < 15; i++ {
		auth[i] ^= f[5+i]
	}
	mac := blockEncrypt(sessionKey, auth)
	f[3] = mac[0]
	f[4] = mac[1]

	iv := buildEncryptIV(reverseAddr, f[0:3])
	stream := blockEncrypt(sessionKey, iv)
	for i := 0; i < 15; i++ {
		f[5+i] ^= stream[i]
	}
}

// DecryptFrame decrypts a notification in place using the given session
// key and the peripheral's byte-reversed BLE address. The MAC at [3:5] is
// never re-verified — the mesh firmware doesn't check it either, and
// neither does this implementation.
func DecryptFrame(notification []byte, sessionKey [KeySize]byte, reverseAddr [6]byte) error {
	if len(notification) < headerSize {
		return fmt.Errorf("meshproto: notification of %d bytes shorter than %d-byte header: %w", len(notification), headerSize, ErrFrameTooShort)
	}
	iv := buildDecryptIV(reverseAddr, notification[:5])
	stream := blockEncrypt(sessionKey, iv)
	n := len(notification) - headerSize
	if n > KeySize {
		n = KeySize
	}
	for i := 0; i < n; i++ {
		notification[headerSize+i] ^= stream[i]
	}
	return nil
}

func buildAuthNonce(reverseAddr [6]byte, packetHead []byte) [KeySize]byte {
	var nonce [KeySize]byte
	copy(nonce[0:4], reverseAddr[0:4])
	nonce[4] = 0x01
	copy(nonce[5:8], packetHead[:3])
	nonce[8] = 0x0F
	return nonce
}

func buildEncryptIV(reverseAddr [6]byte, packetHead []byte) [KeySize]byte {
	var iv [KeySize]byte
	iv[0] = 0x00
	copy(iv[1:5], reverseAddr[0:4])
	iv[5] = 0x01
	copy(iv[6:9], packetHead[:3])
	return iv
}

func buildDecryptIV(reverseAddr [6]byte, notificationHead []byte) [KeySize]byte {
	var iv [KeySize]byte
	iv[0] = 0x00
	copy(iv[1:4], reverseAddr[0:3])
	copy(iv[4:9], notificationHead[:5])
	return iv
}
