package machine

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

const noCode = ^uint64(0)

// charset maps the printable ASCII glyphs onto an execution character set.
type charset struct {
	name  string
	codes [PrintableCount]uint64
}

func isASCIIName(name string) bool {
	switch strings.ToUpper(name) {
	case "", "US-ASCII", "ASCII", "ANSI_X3.4-1968", "UTF-8", "UTF8":
		return true
	}
	return false
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		if mime, mimeErr := ianaindex.MIME.Encoding(name); mimeErr == nil && mime != nil {
			return mime, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("charset %q is registered but not supported", name)
	}
	return enc, nil
}

func newCharset(name string) (*charset, error) {
	cs := &charset{name: name}
	if isASCIIName(name) {
		for i := range cs.codes {
			cs.codes[i] = uint64(0x20 + i)
		}
		return cs, nil
	}
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	encoder := enc.NewEncoder()
	for i := range cs.codes {
		out, err := encoder.Bytes([]byte{byte(0x20 + i)})
		if err != nil || len(out) != 1 {
			cs.codes[i] = noCode
			continue
		}
		cs.codes[i] = uint64(out[0])
	}
	return cs, nil
}

func (cs *charset) code(i int) (uint64, bool) {
	if i < 0 || i >= PrintableCount {
		return 0, false
	}
	c := cs.codes[i]
	return c, c != noCode
}
