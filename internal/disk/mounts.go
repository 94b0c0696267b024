package disk

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	psdisk "github.com/shirou/gopsutil/v3/disk"
)

// ParseMounts reads a mounts(5) style table. Each line yields device, mount
// path and filesystem type; remaining fields are ignored and short lines
// are skipped. Octal escapes in paths (\040 for space) are decoded.
func ParseMounts(r io.Reader) ([]psdisk.PartitionStat, error) {
	var parts []psdisk.PartitionStat

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		parts = append(parts, psdisk.PartitionStat{
			Device:     unescapeMountField(fields[0]),
			Mountpoint: unescapeMountField(fields[1]),
			Fstype:     fields[2],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return parts, nil
}

// MountTableFile returns a PartitionsFunc that parses the file at path.
func MountTableFile(path string) PartitionsFunc {
	return func(ctx context.Context) ([]psdisk.PartitionStat, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ParseMounts(f)
	}
}

func unescapeMountField(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) && isOctal(s[i+1]) && isOctal(s[i+2]) && isOctal(s[i+3]) {
			b.WriteByte((s[i+1]-'0')<<6 | (s[i+2]-'0')<<3 | (s[i+3] - '0'))
			i += 3
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}
