package contracts

// DeviceInfo describes one entry of a device table. Index is the entry's
// position in the table and is the only identity the host ever sees.
type DeviceInfo struct {
	Index        int    // Position in the input or output table.
	Name         string // Display name reported by the platform.
	Manufacturer string // Manufacturer, empty when the platform does not expose it.
}

// UnknownDeviceName is returned by name queries for indices outside the table.
const UnknownDeviceName = "Unknown"
