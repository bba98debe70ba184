package discovery

import "testing"

func TestReverseAddr(t *testing.T) {
	a := Advertisement{RawAddr: [6]byte{1, 2, 3, 4, 5, 6}}
	got := a.ReverseAddr()
	want := [6]byte{6, 5, 4, 3, 2, 1}
	if got != want {
		t.Fatalf("ReverseAddr() = %v, want %v", got, want)
	}
}

func TestMatchesVendorPrefix(t *testing.T) {
	a := Advertisement{RawAddr: [6]byte{0xA4, 0xC1, 0x38, 0x00, 0x00, 0x01}}
	if !a.MatchesVendorPrefix([3]byte{0xA4, 0xC1, 0x38}) {
		t.Fatalf("expected a match on the vendor OUI prefix")
	}
	if a.MatchesVendorPrefix([3]byte{0xA4, 0xC1, 0x39}) {
		t.Fatalf("unexpected match on a different OUI prefix")
	}
}
