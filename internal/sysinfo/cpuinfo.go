package sysinfo

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// physicalCores counts distinct (physical id, core id) pairs in a
// /proc/cpuinfo listing. When the listing has no topology fields it falls
// back to the first "cpu cores" value, and to 0 when that is missing too.
func physicalCores(r io.Reader) int {
	cores := make(map[string]bool)
	fromHeader := 0

	var physicalID, coreID string
	flush := func() {
		if physicalID != "" && coreID != "" {
			cores[physicalID+":"+coreID] = true
		}
		physicalID, coreID = "", ""
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			flush()
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "cpu cores":
			if fromHeader == 0 {
				if n, err := strconv.Atoi(value); err == nil {
					fromHeader = n
				}
			}
		case "physical id":
			physicalID = value
		case "core id":
			coreID = value
		}
	}
	flush()

	if len(cores) > 0 {
		return len(cores)
	}
	return fromHeader
}
