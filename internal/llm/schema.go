package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled caches compiled schemas by name.
var compiled = struct {
	sync.Mutex
	byName map[string]*jsonschema.Schema
}{byName: map[string]*jsonschema.Schema{}}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	compiled.Lock()
	defer compiled.Unlock()
	if c, ok := compiled.byName[s.Name]; ok {
		return c, nil
	}

	// The compiler wants plain decoded JSON, not Go maps with typed slices.
	raw, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	url := "mem://" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, err
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, err
	}
	compiled.byName[s.Name] = sch
	return sch, nil
}

// Check validates raw against the schema.
func (s *Schema) Check(raw json.RawMessage) error {
	sch, err := s.compile()
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", s.Name, err)
	}

	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &Error{Kind: KindInvalidOutput, Output: raw, Err: fmt.Errorf("not JSON: %w", err)}
	}
	if err := sch.Validate(v); err != nil {
		return &Error{Kind: KindInvalidOutput, Output: raw, Err: err}
	}
	return nil
}

// finish turns a provider reply into a Completion, enforcing the schema.
func finish(p Prompt, text string, truncated bool, c *Completion) (*Completion, error) {
	c.JSON = json.RawMessage(text)
	if truncated {
		return nil, &Error{Kind: KindTruncated, Output: c.JSON}
	}
	if p.Schema != nil {
		if err := p.Schema.Check(c.JSON); err != nil {
			return nil, err
		}
	}
	return c, nil
}
