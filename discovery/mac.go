package discovery

import "fmt"

// FormatMAC renders a raw 6-byte BLE address the way advertisements and
// connect calls identify a peripheral: uppercase, colon-separated hex,
// e.g. "A4:C1:11:22:33:44". The controller reconstructs a device's MAC
// from ADDRESS_REPORT fragments using the same format so scheduler
// candidate cross-linking (by MAC string) and the device table agree.
func FormatMAC(raw [6]byte) string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", raw[0], raw[1], raw[2], raw[3], raw[4], raw[5])
}
