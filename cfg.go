// Package cfg parses a small typed configuration language into a queryable
// tree of variables.
//
// A document is a sequence of declarations:
//
//	name = "service";        // string (adjacent literals concatenate)
//	port = 8080;             // int
//	ratio = 0.75;            // float
//	debug = false;           // bool
//	ports = [80, 443, 8080]; // array: homogeneous element type
//	misc = (1, "a", true);   // list: heterogeneous
//	limits = {               // struct: named members
//	    rps = 100;
//	    burst = 20;
//	};
//
// Line comments (//) and block comments (/* */) are allowed anywhere.
// Containers nest arbitrarily.
//
// Parse, ParseReader and ParseFile return an immutable Config. Values are
// read through typed accessors on the variable contexts: the plain family
// (Int, Float, Bool, String, Array, List, Struct and their *At index
// variants) returns a zero value on any failure, while the Lookup family
// reports an explicit Error with a kind, line and column where available.
//
// Unmarshal and Marshal additionally map documents onto Go structs, maps and
// slices in the manner of encoding/json, using `cfg` struct tags.
package cfg

import (
	"bytes"
	"io"
	"os"
)

// MaxInputSize is the largest input the load entry points accept. Documents
// are fully buffered token-by-token during the parse, so pathologically large
// files are rejected up front rather than parsed.
const MaxInputSize = 8 << 20

// Config is a loaded document. It is created by one of the Parse functions,
// is immutable afterwards, and needs no explicit teardown.
type Config struct {
	global *Variable
}

// Parse loads a document from an in-memory buffer.
func Parse(data []byte) (*Config, error) {
	if len(data) > MaxInputSize {
		return nil, errorf(ErrFileTooLarge, "input is %d bytes, limit is %d", len(data), MaxInputSize)
	}
	return ParseReader(bytes.NewReader(data))
}

// ParseReader loads a document incrementally from r.
func ParseReader(r io.Reader) (*Config, error) {
	root, err := parse(r)
	if err != nil {
		return nil, err
	}
	return &Config{global: root}, nil
}

// ParseFile opens, reads and parses the file at path. Files larger than
// MaxInputSize are rejected with an ErrFileTooLarge error before parsing.
func ParseFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errorf(ErrOpenFile, "failed to open file %s: %v", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errorf(ErrOpenFile, "failed to stat file %s: %v", path, err)
	}
	if info.Size() > MaxInputSize {
		return nil, errorf(ErrFileTooLarge, "file %s is %d bytes, limit is %d", path, info.Size(), MaxInputSize)
	}

	return ParseReader(f)
}

// Global returns the document's root context, the container of all top-level
// declarations.
func (c *Config) Global() *Variable {
	if c == nil {
		return nil
	}
	return c.global
}
