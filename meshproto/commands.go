package meshproto

// Command codes occupy frame offset [7]. The outbound set is what
// mesh_connection's set_* helpers send; the inbound set is what
// handle_packet dispatches on.
const (
	// Outbound
	CommandSetPower             byte = 0xD0
	CommandSetColor             byte = 0xE2
	CommandSetColorBrightness   byte = 0xF2
	CommandSetWhiteBrightness   byte = 0xF1
	CommandSetWhiteTemperature  byte = 0xF0
	CommandSetSequencePreset    byte = 0xC8
	CommandSetCandleMode        byte = 0xC9
	CommandSequenceColorDur     byte = 0xF5
	CommandSequenceFadeDur      byte = 0xF6
	CommandGetStatus            byte = 0xDA
	// CommandQueryDeviceInfo and CommandQueryDeviceVersion share the same
	// wire opcode; they differ only in their second payload byte (0x00 vs
	// 0x02) and are kept as distinct names because they drive different
	// Controller operations.
	CommandQueryDeviceInfo      byte = 0xEA
	CommandQueryDeviceVersion   byte = 0xEA
	CommandQueryGroupMembership byte = 0xDD

	// Inbound (notification) opcodes
	CommandOnlineStatusReport byte = 0xDC
	CommandStatusReport       byte = 0xDB
	CommandAddressReport      byte = 0xE1
	CommandGroupIDReport      byte = 0xD4
)

// PayloadLen is the usable payload width at frame offset [10:20].
const PayloadLen = 10
