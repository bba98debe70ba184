package session

import (
	"fmt"

	"github.com/awox-mesh/awox-bridge/meshproto"
)

// parseNotification decodes an already-decrypted 20-byte frame into an
// Event, dispatching on the command code at offset 7 exactly as the
// firmware's own notification handler does.
func parseNotification(packet []byte) (Event, bool) {
	if len(packet) < 8 {
		return Event{}, false
	}

	switch packet[7] {
	case meshproto.CommandOnlineStatusReport:
		return parseOnlineStatusReport(packet)
	case meshproto.CommandStatusReport:
		return parseStatusReport(packet)
	case meshproto.CommandAddressReport:
		return parseAddressReport(packet)
	case meshproto.CommandGroupIDReport:
		return parseGroupIDReport(packet)
	default:
		return Event{}, false
	}
}

func decodeMode(mode byte) (state, colorMode, transitionMode bool) {
	state = mode&1 == 1
	colorMode = (mode>>1)&1 == 1
	transitionMode = (mode>>2)&1 == 1
	return
}

func parseOnlineStatusReport(p []byte) (Event, bool) {
	if len(p) < 20 {
		return Event{}, false
	}
	meshID := uint16(p[19])*256 + uint16(p[10])
	state, colorMode, transitionMode := decodeMode(p[12])

	return Event{OnlineStatus: &OnlineStatusReport{
		MeshID: meshID,
		lightState: lightState{
			Online:          p[11] > 0,
			State:           state,
			ColorMode:       colorMode,
			TransitionMode:  transitionMode,
			WhiteBrightness: p[13],
			Temperature:     p[14],
			ColorBrightness: p[15],
			R:               p[16],
			G:               p[17],
			B:               p[18],
		},
	}}, true
}

func parseStatusReport(p []byte) (Event, bool) {
	if len(p) < 17 {
		return Event{}, false
	}
	meshID := uint16(p[4])*256 + uint16(p[3])
	state, colorMode, transitionMode := decodeMode(p[10])

	return Event{Status: &StatusReport{
		MeshID: meshID,
		lightState: lightState{
			Online:          true,
			State:           state,
			ColorMode:       colorMode,
			TransitionMode:  transitionMode,
			WhiteBrightness: p[11],
			Temperature:     p[12],
			ColorBrightness: p[13],
			R:               p[14],
			G:               p[15],
			B:               p[16],
		},
	}}, true
}

func parseAddressReport(p []byte) (Event, bool) {
	if len(p) < 17 || p[10] != 0 {
		return Event{}, false
	}
	meshID := uint16(p[4])*256 + uint16(p[3])
	productID := fmt.Sprintf("%04X", p[12])

	return Event{Address: &AddressReport{
		MeshID:    meshID,
		ProductID: productID,
		MAC:       [4]byte{p[16], p[15], p[14], p[13]},
	}}, true
}

func parseGroupIDReport(p []byte) (Event, bool) {
	if len(p) < 11 {
		return Event{}, false
	}
	meshID := uint16(p[4])*256 + uint16(p[3])
	var groupIDs []uint8
	for i := 10; i < len(p) && i < 20; i++ {
		if p[i] == 0xFF {
			break
		}
		groupIDs = append(groupIDs, p[i])
	}

	return Event{GroupIDs: &GroupIDReport{MeshID: meshID, GroupIDs: groupIDs}}, true
}
