package bridge

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/viant/jsonrpc"
)

// readFrame reads one newline terminated frame. A frame longer than limit is drained up to
// its newline and reported as oversized without being buffered.
func readFrame(reader *bufio.Reader, limit int) (frame []byte, oversized bool, err error) {
	for {
		var chunk []byte
		chunk, err = reader.ReadSlice('\n')
		if !oversized {
			if limit > 0 && len(frame)+len(chunk) > limit+1 {
				oversized = true
				frame = nil
			} else {
				frame = append(frame, chunk...)
			}
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		return frame, oversized, err
	}
}

// decodeRequest parses a frame. A non-nil response is returned for frames that cannot be
// translated; notification reports a frame without an id member.
func decodeRequest(frame []byte) (request *jsonrpc.Request, notification bool, response *jsonrpc.Response) {
	if !json.Valid(frame) {
		return nil, false, errorResponse(jsonrpc.NewParsingError("parse error: invalid JSON", nil))
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(frame, &fields); err != nil {
		return nil, false, errorResponse(jsonrpc.NewInvalidRequest("request must be a JSON object", nil))
	}
	request = &jsonrpc.Request{}
	if err := json.Unmarshal(frame, request); err != nil {
		return nil, false, errorResponse(jsonrpc.NewInvalidRequest(fmt.Sprintf("invalid request: %v", err), nil))
	}
	_, hasID := fields["id"]
	return request, !hasID, nil
}

func errorResponse(err *jsonrpc.Error) *jsonrpc.Response {
	return &jsonrpc.Response{Jsonrpc: jsonrpc.Version, Error: err}
}
