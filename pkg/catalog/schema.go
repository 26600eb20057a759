package catalog

// seedSchema is the JSON Schema every seed file must satisfy before it is decoded.
const seedSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["colleges"],
  "additionalProperties": false,
  "properties": {
    "version": {"type": "string"},
    "colleges": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "additionalProperties": false,
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string", "minLength": 1},
          "location": {"type": "string"},
          "type": {"enum": ["GOVERNMENT", "PRIVATE", "AIDED"]},
          "annual_fee": {"type": "number", "minimum": 0},
          "hostel_fee": {"type": ["number", "null"], "minimum": 0},
          "courses": {"type": "array", "items": {"type": "string"}},
          "website": {"type": "string"},
          "class10_cutoff": {
            "type": ["object", "null"],
            "required": ["percentage"],
            "additionalProperties": false,
            "properties": {
              "percentage": {"type": "number", "minimum": 0, "maximum": 100},
              "board": {"type": "string"}
            }
          },
          "puc_cutoff": {
            "type": ["object", "null"],
            "required": ["percentage"],
            "additionalProperties": false,
            "properties": {
              "percentage": {"type": "number", "minimum": 0, "maximum": 100},
              "stream": {"enum": ["science", "commerce", "arts", "Science", "Commerce", "Arts", ""]},
              "subjects": {"type": "string"}
            }
          }
        }
      }
    }
  }
}`
