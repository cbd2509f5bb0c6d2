// Package transcript discovers generation ids in assistant session logs.
package transcript

import (
	"bufio"
	"bytes"
	"os"
)

// idMarker is the quoted prefix that identifies an OpenRouter generation id
// anywhere on a JSONL line, e.g. "gen-1732611001-AbCdEfGh".
var idMarker = []byte(`"gen-`)

// maxIDLen bounds how far we scan for the closing quote of an id token.
const maxIDLen = 128

// ExtractGenerationIDs scans a JSONL transcript and returns the unique
// generation ids it references, in first-seen order. The scan is best-effort
// discovery, not validation: malformed lines are skipped, and a missing or
// unreadable transcript yields an empty result rather than an error, so the
// absence of a log never blocks a render.
func ExtractGenerationIDs(path string) []string {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	seen := make(map[string]struct{})
	var ids []string

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 256*1024), 2*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		for pos := 0; ; {
			idx := bytes.Index(line[pos:], idMarker)
			if idx < 0 {
				break
			}
			start := pos + idx + 1 // past the opening quote
			id, next := readIDToken(line, start)
			pos = next
			if id == "" {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	// A scanner error (e.g. an oversized line) truncates discovery for this
	// run; ids found so far are still valid and the rest stay eligible later.
	return ids
}

// readIDToken reads a generation id starting at the byte after its opening
// quote. Returns the id ("" if the token is malformed) and the offset at
// which scanning should resume.
func readIDToken(line []byte, start int) (string, int) {
	end := bytes.IndexByte(line[start:], '"')
	if end < 0 || end > maxIDLen {
		return "", start + len(idMarker)
	}
	token := line[start : start+end]
	for _, b := range token {
		if b <= ' ' || b == '\\' {
			return "", start + end
		}
	}
	return string(token), start + end
}
