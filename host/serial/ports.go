package serial

import (
	"fmt"
	"sort"
	"strings"

	bugst "go.bug.st/serial"
)

// candidatePrefixes are device names a USB CDC panel usually shows up as
var candidatePrefixes = []string{"/dev/ttyACM", "/dev/ttyUSB", "/dev/cu.usbmodem", "COM"}

// ListPorts returns the serial ports present on the system, likely panel
// devices first
func ListPorts() ([]string, error) {
	ports, err := bugst.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	SortCandidates(ports)
	return ports, nil
}

// SortCandidates orders ports so that likely panel devices come first,
// keeping name order within each group
func SortCandidates(ports []string) {
	sort.SliceStable(ports, func(i, j int) bool {
		ci, cj := isCandidate(ports[i]), isCandidate(ports[j])
		if ci != cj {
			return ci
		}
		return ports[i] < ports[j]
	})
}

// DetectDevice returns the first likely panel device
func DetectDevice() (string, error) {
	ports, err := ListPorts()
	if err != nil {
		return "", err
	}
	if len(ports) == 0 || !isCandidate(ports[0]) {
		return "", fmt.Errorf("no panel device found among %d serial ports", len(ports))
	}
	return ports[0], nil
}

func isCandidate(port string) bool {
	for _, prefix := range candidatePrefixes {
		if strings.HasPrefix(port, prefix) {
			return true
		}
	}
	return false
}
