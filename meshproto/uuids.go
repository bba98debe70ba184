package meshproto

// GATT UUIDs for the mesh service and its three characteristics. These
// are fixed by the Telink mesh firmware, not configurable per device.
const (
	ServiceUUID          = "00010203-0405-0607-0809-0a0b0c0d1910"
	NotificationCharUUID = "00010203-0405-0607-0809-0a0b0c0d1911"
	CommandCharUUID      = "00010203-0405-0607-0809-0a0b0c0d1912"
	PairingCharUUID      = "00010203-0405-0607-0809-0a0b0c0d1914"
)
