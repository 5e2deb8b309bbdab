package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/sandutsar/bqplot/pkg/errors"
)

// Format names an encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatBSON    Format = "bson"
	FormatMsgpack Format = "msgpack"
)

// ValidFormats is the set of supported encodings.
var ValidFormats = map[Format]bool{
	FormatJSON:    true,
	FormatBSON:    true,
	FormatMsgpack: true,
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(f Format) error {
	if !ValidFormats[f] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, bson, msgpack)", f)
	}
	return nil
}

// FormatFromPath infers the format from a file extension. Unknown
// extensions fall back to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bson":
		return FormatBSON
	case ".msgpack", ".mpk":
		return FormatMsgpack
	}
	return FormatJSON
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatBSON:
		return "application/bson"
	case FormatMsgpack:
		return "application/msgpack"
	}
	return "application/json"
}

// =============================================================================
// Encoding
// =============================================================================

// Marshal encodes s. JSON output is indented.
func Marshal(s Snapshot, f Format) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch f {
	case FormatJSON:
		data, err = json.MarshalIndent(s, "", "  ")
	case FormatBSON:
		data, err = bson.Marshal(s)
	case FormatMsgpack:
		data, err = msgpack.Marshal(&s)
	default:
		return nil, ValidateFormat(f)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "encode %s", f)
	}
	return data, nil
}

// Unmarshal decodes a snapshot encoded with Marshal.
func Unmarshal(data []byte, f Format) (Snapshot, error) {
	var (
		s   Snapshot
		err error
	)
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&s)
	case FormatBSON:
		err = bson.Unmarshal(data, &s)
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, &s)
	default:
		return Snapshot{}, ValidateFormat(f)
	}
	if err != nil {
		return Snapshot{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s snapshot", f)
	}
	return s, nil
}

// Write encodes s to w.
func Write(w io.Writer, s Snapshot, f Format) error {
	data, err := Marshal(s, f)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if f == FormatJSON {
		_, err = io.WriteString(w, "\n")
	}
	return err
}

// WriteFile writes s to path in the format implied by its extension.
func WriteFile(s Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(f, s, FormatFromPath(path))
}

// ReadFile reads a snapshot written by WriteFile.
func ReadFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "snapshot %s", path)
		}
		return Snapshot{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data, FormatFromPath(path))
}
