// Package core holds the pure history-aggregation logic for gitcontrib.
package core

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/gitcontrib/schema"
)

// historyFieldCount is the number of fields in one history line:
// hash, author name, author email, epoch seconds.
const historyFieldCount = 4

// historySeparator delimits history line fields. It is chosen when building
// the git log format string and is not expected inside names or emails.
const historySeparator = "|"

// ParseCommitLine parses a single history line of the form
// <hash>|<name>|<email>|<epoch-seconds>. A line that does not split into
// exactly four fields, or whose timestamp is not an integer, is a fatal
// format mismatch: the whole analysis aborts rather than silently dropping
// commits.
func ParseCommitLine(line string) (schema.CommitRecord, error) {
	parts := strings.Split(line, historySeparator)
	if len(parts) != historyFieldCount {
		return schema.CommitRecord{}, fmt.Errorf("malformed history line %q: expected %d fields, got %d", line, historyFieldCount, len(parts))
	}

	epoch, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return schema.CommitRecord{}, fmt.Errorf("malformed history line %q: bad timestamp: %w", line, err)
	}

	return schema.CommitRecord{
		Hash:      parts[0],
		Author:    schema.Identity{Name: parts[1], Email: parts[2]},
		Timestamp: time.Unix(epoch, 0).UTC(),
	}, nil
}

// ParseCommitLog parses the full history stream, one commit per non-empty
// line. The first malformed line aborts parsing with an error.
func ParseCommitLog(r io.Reader) ([]schema.CommitRecord, error) {
	var commits []schema.CommitRecord

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := ParseCommitLine(line)
		if err != nil {
			return nil, err
		}
		commits = append(commits, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history stream: %w", err)
	}

	return commits, nil
}

// ParseNumstat parses a change-volume stream of tab-delimited lines
// <added>\t<deleted>\t<path>. Binary file entries carry "-" markers instead
// of counts and are skipped; so is any other line that does not match the
// expected shape. Unexpected path metadata must never abort aggregation.
func ParseNumstat(r io.Reader) ([]schema.ChangeVolumeRecord, error) {
	var records []schema.ChangeVolumeRecord

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) < 2 {
			continue
		}
		added, err := strconv.Atoi(parts[0])
		if err != nil || added < 0 {
			continue
		}
		deleted, err := strconv.Atoi(parts[1])
		if err != nil || deleted < 0 {
			continue
		}
		records = append(records, schema.ChangeVolumeRecord{Added: added, Deleted: deleted})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read change-volume stream: %w", err)
	}

	return records, nil
}
