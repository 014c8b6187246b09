package ytdlp

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// parseSubtitleFile turns a VTT or SRT file into plain text. Timestamp
// lines, sequence numbers and headers are dropped, and repeated lines
// (common in auto-generated VTT) are deduplicated. With timed=true every
// text line is prefixed with the start second of its cue, e.g.
// "[12.5s] some words", which is the shape the cue analysis prompt expects.
func parseSubtitleFile(path string, timed bool) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open subtitle file: %w", err)
	}
	defer file.Close()

	var (
		out        []string
		seen       = map[string]struct{}{}
		currentSec = -1.0
	)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case strings.Contains(line, "-->"):
			currentSec = parseCueStart(line)
			continue
		case isSequenceNumber(line):
			continue
		case strings.HasPrefix(line, "WEBVTT"),
			strings.HasPrefix(line, "Kind:"),
			strings.HasPrefix(line, "Language:"):
			continue
		}

		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}

		if timed && currentSec >= 0 {
			out = append(out, fmt.Sprintf("[%.1fs] %s", currentSec, line))
		} else {
			out = append(out, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read subtitle file: %w", err)
	}

	return strings.Join(out, "\n"), nil
}

// parseCueStart extracts the start second of a cue timing line like
// "00:01:02.500 --> 00:01:05.000" (VTT) or "00:01:02,500 --> ..." (SRT).
// Returns -1 when the line does not parse.
func parseCueStart(line string) float64 {
	start := strings.TrimSpace(strings.SplitN(line, "-->", 2)[0])
	// strip VTT cue settings that may trail the start stamp
	start = strings.Fields(start)[0]
	start = strings.ReplaceAll(start, ",", ".")

	parts := strings.Split(start, ":")
	var h, m int
	var s float64
	var err error

	switch len(parts) {
	case 3:
		if h, err = strconv.Atoi(parts[0]); err != nil {
			return -1
		}
		if m, err = strconv.Atoi(parts[1]); err != nil {
			return -1
		}
		if s, err = strconv.ParseFloat(parts[2], 64); err != nil {
			return -1
		}
	case 2:
		if m, err = strconv.Atoi(parts[0]); err != nil {
			return -1
		}
		if s, err = strconv.ParseFloat(parts[1], 64); err != nil {
			return -1
		}
	default:
		return -1
	}

	return float64(h)*3600 + float64(m)*60 + s
}

func isSequenceNumber(line string) bool {
	if line == "" {
		return false
	}
	for _, r := range line {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
