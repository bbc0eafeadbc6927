package midi

import "fmt"

// ListDevices returns the named input ports of l in transport order.
// Ports reporting an empty name are skipped; every returned Device keeps
// the transport's port index.
func ListDevices(l PortLister) ([]Device, error) {
	ports, err := l.Ports()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate MIDI inputs: %w", err)
	}

	devices := make([]Device, 0, len(ports))
	for _, p := range ports {
		if p.Name == "" {
			continue
		}
		devices = append(devices, p)
	}
	return devices, nil
}

// FindDevice returns the device with the given name
func FindDevice(devices []Device, name string) (Device, bool) {
	for _, d := range devices {
		if d.Name == name {
			return d, true
		}
	}
	return Device{}, false
}
