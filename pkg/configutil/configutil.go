package configutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"bytesize/pkg/bytesize"
)

var durationPattern = regexp.MustCompile(`(?i)^(?:(\d+)d)?(?:(\d+)h)?(?:(\d+)m)?(?:(\d+)s)?$`)

// ParseFlexibleDuration accepts day-aware durations such as "30d" or "1d12h"
// in addition to anything time.ParseDuration understands.
func ParseFlexibleDuration(raw string) (time.Duration, error) {
	clean := strings.TrimSpace(raw)
	if d, err := time.ParseDuration(clean); err == nil {
		return d, nil
	}
	matches := durationPattern.FindStringSubmatch(clean)
	if matches == nil {
		return 0, fmt.Errorf("invalid duration %q", raw)
	}
	var total time.Duration
	if matches[1] != "" {
		days, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, fmt.Errorf("parse duration days %q: %w", matches[1], err)
		}
		total += time.Duration(days) * 24 * time.Hour
	}
	units := []time.Duration{time.Hour, time.Minute, time.Second}
	for i, unit := range units {
		raw := matches[i+2]
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("parse duration %q: %w", raw, err)
		}
		total += time.Duration(n) * unit
	}
	return total, nil
}

// ParseByteSize parses a size such as "400kB", "5MiB" or "42". An empty or
// blank value means zero, so optional limits can be left unset.
func ParseByteSize(raw string) (bytesize.ByteSize, error) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return 0, nil
	}
	size, err := bytesize.Parse(clean)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", raw, err)
	}
	return size, nil
}
