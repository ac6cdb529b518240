package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"hotel-inventory/core/events"
)

// Classifies upstream payloads offline. Each argument is a JSON file holding
// one payload object or an array of them; with no arguments stdin is read.
func main() {
	inputs := os.Args[1:]
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	for _, name := range inputs {
		data, err := read(name)
		if err != nil {
			log.Fatal(err)
		}

		payloads, err := decode(data)
		if err != nil {
			log.Fatalf("%s: %v", name, err)
		}

		fmt.Printf("=== %s: %d payload(s) ===\n", name, len(payloads))
		for i, payload := range payloads {
			c := events.Classify(payload)
			detail, _ := json.Marshal(c)
			fmt.Printf("[%d] kind=%s code=%q %s\n", i, c.Kind(), c.RoomTypeCode(), detail)
		}
	}
}

func read(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

func decode(data []byte) ([]map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	switch v := raw.(type) {
	case map[string]any:
		return []map[string]any{unwrap(v)}, nil
	case []any:
		out := make([]map[string]any, 0, len(v))
		for i, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("element %d is not an object", i)
			}
			out = append(out, unwrap(obj))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected an object or array, got %T", raw)
	}
}

// unwrap returns the nested payload of a stream envelope.
func unwrap(m map[string]any) map[string]any {
	if inner, ok := m["payload"].(map[string]any); ok {
		return inner
	}
	return m
}
