package llm

import "encoding/json"

// replySchema is the strict JSON schema of structuredReply. Strict mode
// requires every property to be listed, so absent payloads are null.
var replySchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "intent": {"type": "string", "enum": ["addEvent", "addNote", "generalQuery"]},
    "content": {"type": "string"},
    "event": {
      "anyOf": [
        {
          "type": "object",
          "properties": {
            "title": {"type": "string"},
            "description": {"type": "string"},
            "startTime": {"type": "string", "description": "ISO 8601 date-time"},
            "endTime": {"type": "string", "description": "ISO 8601 date-time"},
            "location": {"type": "string"}
          },
          "required": ["title", "description", "startTime", "endTime", "location"],
          "additionalProperties": false
        },
        {"type": "null"}
      ]
    },
    "note": {
      "anyOf": [
        {
          "type": "object",
          "properties": {
            "title": {"type": "string"},
            "content": {"type": "string"}
          },
          "required": ["title", "content"],
          "additionalProperties": false
        },
        {"type": "null"}
      ]
    }
  },
  "required": ["intent", "content", "event", "note"],
  "additionalProperties": false
}`)
