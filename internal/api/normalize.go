package api

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Kind tags a normalized response.
type Kind int

const (
	// KindEmpty means the response held no record array.
	KindEmpty Kind = iota
	// KindSequence means a record array was found (it may have zero elements).
	KindSequence
)

func (k Kind) String() string {
	if k == KindSequence {
		return "sequence"
	}
	return "empty"
}

// Result is the outcome of normalizing a response body.
type Result struct {
	Kind    Kind
	Records []Record
}

// Empty returns the result for a response without records.
func Empty() Result {
	return Result{Kind: KindEmpty, Records: []Record{}}
}

// Sequence returns the result for a found record array.
func Sequence(records []Record) Result {
	if records == nil {
		records = []Record{}
	}
	return Result{Kind: KindSequence, Records: records}
}

// Normalize extracts the record sequence from a JSON response body.
//
// A top-level array is returned element for element. For an object, the
// first property (in the order the backend wrote them) whose value is an
// array wins. Anything else, including bodies that fail to parse, yields
// Empty: the backend envelope is not a fixed contract, so missing data
// degrades instead of failing.
func Normalize(raw []byte) Result {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return Empty()
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return Empty()
	}

	switch delim {
	case '[':
		return decodeElements(dec)
	case '{':
		for dec.More() {
			if _, err := dec.Token(); err != nil {
				return Empty()
			}
			var value json.RawMessage
			if err := dec.Decode(&value); err != nil {
				return Empty()
			}
			if firstByte(value) == '[' {
				var elems []json.RawMessage
				if err := json.Unmarshal(value, &elems); err != nil {
					return Empty()
				}
				records := make([]Record, len(elems))
				for i, e := range elems {
					records[i] = Record(e)
				}
				return Sequence(records)
			}
		}
	}
	return Empty()
}

// decodeElements reads array elements from a decoder positioned just past '['.
func decodeElements(dec *json.Decoder) Result {
	records := []Record{}
	for dec.More() {
		var elem json.RawMessage
		if err := dec.Decode(&elem); err != nil {
			return Empty()
		}
		records = append(records, Record(elem))
	}
	if _, err := dec.Token(); err != nil {
		return Empty()
	}
	return Sequence(records)
}

// normalizeValue applies the Normalize rules to an already-decoded value.
// Go maps carry no key order, so object keys are scanned in sorted order.
func normalizeValue(v interface{}) Result {
	switch val := v.(type) {
	case []interface{}:
		return sequenceOf(val)
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if arr, ok := val[k].([]interface{}); ok {
				return sequenceOf(arr)
			}
		}
	}
	return Empty()
}

func sequenceOf(values []interface{}) Result {
	records := make([]Record, 0, len(values))
	for _, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return Empty()
		}
		records = append(records, Record(raw))
	}
	return Sequence(records)
}
