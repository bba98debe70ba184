package meshproto

import (
	"bytes"
	"testing"
)

func TestCombineNamePassword(t *testing.T) {
	a := CombineNamePassword("myMeshName", "myMeshPass")
	b := CombineNamePassword("myMeshName", "myMeshPass")
	if a != b {
		t.Fatalf("CombineNamePassword is not deterministic: %x != %x", a, b)
	}

	c := CombineNamePassword("otherName", "myMeshPass")
	if a == c {
		t.Fatalf("different names produced the same combined key")
	}
}

func TestCombineNamePasswordTruncatesLongInputs(t *testing.T) {
	// Inputs longer than KeySize must not panic or silently wrap; they
	// are truncated to the first 16 bytes.
	long := "this-name-is-longer-than-sixteen-bytes"
	short := long[:KeySize]
	got := CombineNamePassword(long, "pw")
	want := CombineNamePassword(short, "pw")
	if got != want {
		t.Fatalf("expected truncation to 16 bytes, got %x want %x", got, want)
	}
}

func TestBlockEncryptReversesKeyAndPlaintext(t *testing.T) {
	var key, plaintext [KeySize]byte
	for i := range key {
		key[i] = byte(i)
		plaintext[i] = byte(0xF0 + i&0x0F)
	}
	out1 := blockEncrypt(key, plaintext)
	out2 := blockEncrypt(key, plaintext)
	if out1 != out2 {
		t.Fatalf("blockEncrypt is not deterministic")
	}

	var zeroKey, zeroPlain [KeySize]byte
	if blockEncrypt(zeroKey, zeroPlain) == out1 {
		t.Fatalf("different key/plaintext produced identical output")
	}
}

func TestPairingRequestRoundTrip(t *testing.T) {
	combined := CombineNamePassword("name", "pass")
	clientNonce, err := NewClientNonce()
	if err != nil {
		t.Fatalf("NewClientNonce: %v", err)
	}

	req := PairingRequest(combined, clientNonce)
	if len(req) != 17 {
		t.Fatalf("pairing request length = %d, want 17", len(req))
	}
	if req[0] != 0x0C {
		t.Fatalf("pairing request opcode = 0x%02x, want 0x0C", req[0])
	}
	if !bytes.Equal(req[1:1+NonceSize], clientNonce[:]) {
		t.Fatalf("pairing request did not echo the client nonce")
	}
}

func TestParsePairingResponseAccept(t *testing.T) {
	var want [NonceSize]byte
	copy(want[:], []byte{1, 2, 3, 4, 5, 6, 7, 8})

	resp := append([]byte{0x0D}, want[:]...)
	resp = append(resp, make([]byte, 8)...) // confirmation digest, unchecked

	got, err := ParsePairingResponse(resp)
	if err != nil {
		t.Fatalf("ParsePairingResponse: %v", err)
	}
	if got != want {
		t.Fatalf("server nonce = %x, want %x", got, want)
	}
}

func TestParsePairingResponseReject(t *testing.T) {
	_, err := ParsePairingResponse([]byte{0x0E})
	if err != ErrAuthRejected {
		t.Fatalf("error = %v, want ErrAuthRejected", err)
	}
}

func TestParsePairingResponseUnknownOpcode(t *testing.T) {
	_, err := ParsePairingResponse([]byte{0x99})
	if err == nil {
		t.Fatalf("expected an error for an unrecognized opcode")
	}
}

func TestDeriveSessionKeyDeterministic(t *testing.T) {
	combined := CombineNamePassword("name", "pass")
	var client, server [NonceSize]byte
	copy(client[:], []byte{1, 2, 3, 4, 5, 6, 7, 8})
	copy(server[:], []byte{8, 7, 6, 5, 4, 3, 2, 1})

	k1 := DeriveSessionKey(combined, client, server)
	k2 := DeriveSessionKey(combined, client, server)
	if k1 != k2 {
		t.Fatalf("DeriveSessionKey is not deterministic")
	}

	var otherServer [NonceSize]byte
	copy(otherServer[:], []byte{1, 1, 1, 1, 1, 1, 1, 1})
	if k3 := DeriveSessionKey(combined, client, otherServer); k3 == k1 {
		t.Fatalf("different server nonce produced the same session key")
	}
}
