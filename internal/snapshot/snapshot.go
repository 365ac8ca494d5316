// Package snapshot stores probe profiles on disk, so a profile taken on one
// machine can drive header generation on another.
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"tmplconfig/internal/probe"
)

// Current schema version - increment when the profile layout changes
const schemaVersion uint16 = 1

var (
	ErrSchema  = errors.New("unsupported snapshot schema")
	ErrCorrupt = errors.New("snapshot digest mismatch")
)

// Payload is the on-disk envelope. Body holds the msgpack-encoded profile.
type Payload struct {
	Schema  uint16
	Tool    string
	Machine string
	Digest  Digest
	Body    []byte
}

// Encode wraps p in a payload. tool records the producing version.
func Encode(p *probe.Profile, tool string) (*Payload, error) {
	body, err := msgpack.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	return &Payload{
		Schema:  schemaVersion,
		Tool:    tool,
		Machine: p.Machine,
		Digest:  digestOf(body),
		Body:    body,
	}, nil
}

// Decode checks the envelope and returns the profile.
func (pl *Payload) Decode() (*probe.Profile, error) {
	if pl.Schema != schemaVersion {
		return nil, fmt.Errorf("%w %d (want %d)", ErrSchema, pl.Schema, schemaVersion)
	}
	if digestOf(pl.Body) != pl.Digest {
		return nil, ErrCorrupt
	}
	var p probe.Profile
	if err := msgpack.Unmarshal(pl.Body, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

// Save writes the profile to path, replacing it atomically.
func Save(path string, p *probe.Profile, tool string) error {
	pl, err := Encode(p, tool)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(pl); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(tmp)
		}
	}()

	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// atomic replace
	if err := os.Rename(tmp, path); err != nil {
		return err
	}
	renamed = true
	return nil
}

// Load reads a profile written by Save.
func Load(path string) (*probe.Profile, *Payload, error) {
	// #nosec G304 -- path is chosen by the user
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	var pl Payload
	if err := msgpack.NewDecoder(f).Decode(&pl); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	p, err := pl.Decode()
	if err != nil {
		return nil, &pl, fmt.Errorf("%s: %w", path, err)
	}
	return p, &pl, nil
}
