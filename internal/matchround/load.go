package matchround

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/suyin/hanlian/internal/pinyin"
)

// pairsSchema constrains curated catalog files: an array of two-character
// words with their constituents. Readings are serialized triple keys and
// optional.
var pairsSchema = map[string]any{
	"type":     "array",
	"minItems": 1,
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"word":   map[string]any{"type": "string", "minLength": 1},
			"first":  pairCharSchema,
			"second": pairCharSchema,
		},
		"required":             []any{"word", "first", "second"},
		"additionalProperties": false,
	},
}

var pairCharSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"char":    map[string]any{"type": "string", "minLength": 1},
		"reading": map[string]any{"type": "string"},
	},
	"required":             []any{"char"},
	"additionalProperties": false,
}

var (
	pairsCompileOnce sync.Once
	pairsCompiled    *jsonschema.Schema
	pairsCompileErr  error
)

func compiledPairsSchema() (*jsonschema.Schema, error) {
	pairsCompileOnce.Do(func() {
		defBytes, err := json.Marshal(pairsSchema)
		if err != nil {
			pairsCompileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			pairsCompileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://word_pairs.json", defParsed); err != nil {
			pairsCompileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		pairsCompiled, pairsCompileErr = c.Compile("schema://word_pairs.json")
	})
	return pairsCompiled, pairsCompileErr
}

type pairDoc struct {
	Word   string      `json:"word"`
	First  pairCharDoc `json:"first"`
	Second pairCharDoc `json:"second"`
}

type pairCharDoc struct {
	Char    string `json:"char"`
	Reading string `json:"reading,omitempty"`
}

// LoadPairs reads a curated word-pair catalog file, validates it against
// the schema, and decodes it. Malformed curated data is a configuration
// error surfaced to the operator.
func LoadPairs(r io.Reader) ([]WordPair, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("catalog is not valid JSON: %w", err)
	}

	schema, err := compiledPairsSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("catalog failed schema validation: %w", err)
	}

	var docs []pairDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	pairs := make([]WordPair, 0, len(docs))
	for _, d := range docs {
		first, err := decodePairCharDoc(d.First)
		if err != nil {
			return nil, fmt.Errorf("pair %q: %w", d.Word, err)
		}
		second, err := decodePairCharDoc(d.Second)
		if err != nil {
			return nil, fmt.Errorf("pair %q: %w", d.Word, err)
		}
		pairs = append(pairs, WordPair{Word: d.Word, First: first, Second: second})
	}
	return pairs, nil
}

func decodePairCharDoc(d pairCharDoc) (PairCharacter, error) {
	pc := PairCharacter{Character: d.Char}
	if d.Reading != "" {
		syllables, err := pinyin.ParseKey(d.Reading)
		if err != nil {
			return PairCharacter{}, err
		}
		pc.Reading = pinyin.Pronunciation{Syllables: syllables}
	}
	return pc, nil
}
