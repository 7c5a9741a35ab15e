// Package jsonl persists the account and record collections as
// line-delimited JSON, one object per line. It is the default backend:
// self-describing, diff-friendly, no external service.
package jsonl

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"fintrack/internal/core"
)

const (
	accountsFile = "accounts.jsonl"
	recordsFile  = "records.jsonl"
)

// Repository stores each collection in its own file under dir.
type Repository struct {
	dir string
}

func New(dir string) (*Repository, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Repository{dir: dir}, nil
}

// LoadAccounts reads the full account collection. A missing file is a
// first run, not an error.
func (r *Repository) LoadAccounts(_ context.Context) ([]core.Account, error) {
	var accounts []core.Account
	err := readLines(filepath.Join(r.dir, accountsFile), func(line []byte) error {
		var a core.Account
		if err := json.Unmarshal(line, &a); err != nil {
			return fmt.Errorf("decode account line %q: %w", line, err)
		}
		accounts = append(accounts, a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// SaveAccounts rewrites the account file with the full collection.
func (r *Repository) SaveAccounts(_ context.Context, accounts []core.Account) error {
	return writeLines(filepath.Join(r.dir, accountsFile), len(accounts), func(i int) any {
		return accounts[i]
	})
}

// LoadRecords reads the full record collection. A missing file is a
// first run, not an error.
func (r *Repository) LoadRecords(_ context.Context) ([]core.Record, error) {
	var records []core.Record
	err := readLines(filepath.Join(r.dir, recordsFile), func(line []byte) error {
		var rec core.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return fmt.Errorf("decode record line %q: %w", line, err)
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// SaveRecords rewrites the record file with the full collection.
func (r *Repository) SaveRecords(_ context.Context, records []core.Record) error {
	return writeLines(filepath.Join(r.dir, recordsFile), len(records), func(i int) any {
		return records[i]
	})
}

func readLines(path string, decode func(line []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}
		if err := decode(line); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// writeLines writes n items to a temp file and renames it into place, so
// a failed save never truncates the previous good file.
func writeLines(path string, n int, item func(i int) any) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	for i := 0; i < n; i++ {
		if err := enc.Encode(item(i)); err != nil {
			tmp.Close()
			return fmt.Errorf("encode line %d of %s: %w", i, path, err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
