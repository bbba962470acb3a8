package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/vitalvas/portbounce/pkg/dictionary"
	"github.com/vitalvas/portbounce/pkg/packet"
)

// parseAttributes reads "Name = value" lines; blank lines and # comments are skipped
func parseAttributes(r io.Reader) (map[string]string, error) {
	attributes := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid attribute format: %q (expected 'Name = value')", line)
		}

		name := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"`)
		if name == "" {
			return nil, fmt.Errorf("invalid attribute format: %q (empty name)", line)
		}

		attributes[name] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	return attributes, nil
}

// describeAttributes renders packet attributes as "Name = value" lines
func describeAttributes(pkt *packet.Packet) []string {
	lines := make([]string, 0, len(pkt.Attributes))

	for _, attr := range pkt.Attributes {
		if attr.Type == packet.AttributeTypeMessageAuthenticator {
			lines = append(lines, fmt.Sprintf("Message-Authenticator = 0x%s", hex.EncodeToString(attr.Value)))
			continue
		}

		if a, ok := dictionary.Lookup(attr); ok {
			if value, err := a.Decode(attr); err == nil {
				lines = append(lines, fmt.Sprintf("%s = %s", a.Name(), value))
				continue
			}
		}

		lines = append(lines, fmt.Sprintf("Attr-%d = 0x%s", attr.Type, hex.EncodeToString(attr.Value)))
	}

	return lines
}
