package mcp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Params is the loosely typed parameter bag of a call. Numbers decode as
// json.Number so integer parsing sees the literal text.
type Params map[string]any

// CallEnvelope is a dispatcher request.
type CallEnvelope struct {
	Method string `json:"method"`
	Params Params `json:"params"`
}

// UnmarshalJSON decodes the envelope keeping numbers as json.Number.
func (c *CallEnvelope) UnmarshalJSON(data []byte) error {
	type wire CallEnvelope
	var w wire
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&w); err != nil {
		return err
	}
	*c = CallEnvelope(w)
	return nil
}

// DecodeCallEnvelope reads a single envelope from r.
func DecodeCallEnvelope(r io.Reader) (CallEnvelope, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return CallEnvelope{}, fmt.Errorf("read call envelope: %w", err)
	}
	var call CallEnvelope
	if err := json.Unmarshal(data, &call); err != nil {
		return CallEnvelope{}, fmt.Errorf("decode call envelope: %w", err)
	}
	return call, nil
}

// Result is the dispatcher response. Exactly one of Data and Error is set.
type Result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

func success(data any) Result {
	return Result{Success: true, Data: data}
}

func failure(err *Error) Result {
	return Result{Error: err}
}
