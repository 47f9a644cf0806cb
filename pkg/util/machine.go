package util

import (
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/denisbrodbeck/machineid"
)

var (
	machineID      string
	machineIDMutex sync.Mutex
)

// GetMachineID returns a stable identifier for the host machine.
// It tries the machineid library first and falls back to the board
// serial on linux. Returns an empty string when nothing is available.
func GetMachineID() string {
	machineIDMutex.Lock()
	defer machineIDMutex.Unlock()

	if machineID != "" {
		return machineID
	}

	id, err := machineid.ID()
	if err == nil && id != "" {
		machineID = id
		return machineID
	}

	if runtime.GOOS == "linux" {
		content, err := os.ReadFile("/sys/class/dmi/id/board_serial")
		if err == nil {
			machineID = strings.TrimSpace(string(content))
			return machineID
		}
	}

	return ""
}
