// SPDX-License-Identifier: Apache-2.0

package requestcache

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// entry is a cached response together with the time it was stored, used
// to decide freshness against the configured expiry.
type entry struct {
	StoredAt time.Time   `json:"stored_at"`
	Status   int         `json:"status"`
	Header   http.Header `json:"header"`
	Body     []byte      `json:"body"`
}

// response reconstructs an *http.Response from the cached entry.
func (e entry) response(req *http.Request) *http.Response {
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", e.Status, http.StatusText(e.Status)),
		StatusCode:    e.Status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        e.Header.Clone(),
		Body:          io.NopCloser(bytes.NewReader(e.Body)),
		ContentLength: int64(len(e.Body)),
		Request:       req,
	}
}

// Serializer encodes cache entries for storage.
type Serializer interface {
	Encode(e entry) ([]byte, error)
	Decode(data []byte) (entry, error)
}

// NewSerializer returns the serializer named by the cache settings:
// "json" for human-inspectable cache files, "binary" for gob encoding.
func NewSerializer(name string) (Serializer, error) {
	switch name {
	case "json":
		return jsonSerializer{}, nil
	case "binary":
		return binarySerializer{}, nil
	default:
		return nil, fmt.Errorf("unsupported cache serializer %q", name)
	}
}

type jsonSerializer struct{}

func (jsonSerializer) Encode(e entry) ([]byte, error) {
	return json.Marshal(e)
}

func (jsonSerializer) Decode(data []byte) (entry, error) {
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return entry{}, fmt.Errorf("error decoding cached response: %w", err)
	}
	return e, nil
}

type binarySerializer struct{}

func (binarySerializer) Encode(e entry) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(e); err != nil {
		return nil, fmt.Errorf("error encoding cached response: %w", err)
	}
	return buf.Bytes(), nil
}

func (binarySerializer) Decode(data []byte) (entry, error) {
	var e entry
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&e); err != nil {
		return entry{}, fmt.Errorf("error decoding cached response: %w", err)
	}
	return e, nil
}
