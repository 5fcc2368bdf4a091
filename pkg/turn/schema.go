package turn

import "github.com/santhosh-tekuri/jsonschema/v5"

// turnResponseSchema bounds what a generator payload must look like
// before it is decoded. Required fields fail closed; everything outside
// the declared schema is ignorable, never an error. The quiz record is
// only shape-checked loosely here — structural problems with it are
// handled by Sanitize, which drops the quiz rather than killing the turn.
var turnResponseSchema = jsonschema.MustCompileString("turn_response.schema.json", `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["narration", "mode"],
	"properties": {
		"narration": {"type": "string"},
		"mode": {"enum": ["explore", "quiz"]},
		"media": {
			"type": ["object", "null"],
			"properties": {
				"image_prompt": {"type": "string"},
				"audio_prompt": {"type": "string"}
			}
		},
		"choices": {
			"type": ["array", "null"],
			"items": {
				"type": "object",
				"required": ["id", "text"],
				"properties": {
					"id": {"type": "string"},
					"text": {"type": "string"}
				}
			}
		},
		"quiz": {"type": ["object", "null"]},
		"state_update_hint": {
			"type": ["object", "null"],
			"properties": {
				"chapter": {"type": "integer"},
				"robot_parts": {"type": "object"},
				"flags": {"type": "object"},
				"inventory_add": {
					"type": ["array", "null"],
					"items": {"type": "string"}
				},
				"danger_delta": {"type": "integer"},
				"knowledge_delta": {"type": "integer"},
				"hp_delta": {"type": "integer"}
			}
		}
	}
}`)
