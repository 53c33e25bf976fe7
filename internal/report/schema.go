package report

// Schema is the JSON Schema (Draft 2020-12) for the casevet check
// JSON output. It documents the structure returned by WriteJSON.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/unbound-force/casevet/check-report.schema.json",
  "title": "Casevet Check Report",
  "description": "Output schema for casevet check --format=json",
  "type": "object",
  "required": ["version", "diagnostics", "summary"],
  "properties": {
    "version": {
      "type": "string",
      "description": "Schema version (semver)"
    },
    "diagnostics": {
      "type": "array",
      "items": { "$ref": "#/$defs/Diagnostic" }
    },
    "summary": { "$ref": "#/$defs/Summary" }
  },
  "$defs": {
    "Diagnostic": {
      "type": "object",
      "required": ["id", "severity", "message", "file", "line", "col"],
      "properties": {
        "id": {
          "type": "string",
          "description": "Check identifier",
          "enum": [
            "CV1001", "CV1002", "CV1003", "CV1004", "CV1005", "CV1006",
            "CV2001", "CV2002", "CV2003"
          ]
        },
        "severity": {
          "type": "string",
          "enum": ["info", "warning", "error"]
        },
        "message": {
          "type": "string",
          "description": "Human-readable explanation"
        },
        "file": {
          "type": "string",
          "description": "Source file path"
        },
        "line": { "type": "integer" },
        "col": { "type": "integer" },
        "fixes": {
          "oneOf": [
            { "type": "array", "items": { "$ref": "#/$defs/Fix" } },
            { "type": "null" }
          ],
          "description": "Suggested fixes, if any"
        }
      }
    },
    "Fix": {
      "type": "object",
      "required": ["title", "edits"],
      "properties": {
        "title": { "type": "string" },
        "edits": {
          "type": "array",
          "items": { "$ref": "#/$defs/TextEdit" }
        }
      }
    },
    "TextEdit": {
      "type": "object",
      "required": ["file", "start", "end", "new_text"],
      "properties": {
        "file": { "type": "string" },
        "start": {
          "type": "integer",
          "description": "Byte offset of the span start"
        },
        "end": {
          "type": "integer",
          "description": "Byte offset one past the span end"
        },
        "new_text": { "type": "string" },
        "old_text": {
          "type": "string",
          "description": "Expected current text, used to detect drift"
        }
      }
    },
    "Summary": {
      "type": "object",
      "required": ["total", "errors", "warnings", "infos", "fixable"],
      "properties": {
        "total": { "type": "integer" },
        "errors": { "type": "integer" },
        "warnings": { "type": "integer" },
        "infos": { "type": "integer" },
        "fixable": { "type": "integer" }
      }
    }
  }
}`
