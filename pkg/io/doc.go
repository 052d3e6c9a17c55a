// Package io reads and writes decision-tree documents.
//
// # Document Format
//
// A document has two top-level arrays, mirroring [decision.Tree]:
//
//	{
//	  "nodes": [
//	    {
//	      "id": "root",
//	      "type": "condition",
//	      "position": {"x": 240, "y": 20},
//	      "data": {"nodeType": "condition", "label": "Signed in?", "condition": "context.user !== null"}
//	    },
//	    {
//	      "id": "hello",
//	      "type": "component",
//	      "position": {"x": 20, "y": 180},
//	      "data": {"nodeType": "component", "label": "Hello", "componentType": "message"}
//	    }
//	  ],
//	  "edges": [
//	    {"id": "e1", "source": "root", "target": "hello", "sourceHandle": "left", "targetHandle": "target", "label": "否"}
//	  ]
//	}
//
// The same structure is accepted as TOML (snake_case keys, [[nodes]] and
// [[edges]] tables) and YAML (the JSON key names). The format is chosen by
// file extension: .json, .toml, .yaml or .yml.
//
// # Validation
//
// Every document is checked with [decision.Validate] after decoding:
// ids must be unique and edges must reference existing nodes. Failures
// carry the INVALID_DOCUMENT code; unknown extensions carry
// INVALID_FORMAT and missing files FILE_NOT_FOUND.
//
// # Export
//
// [WriteTree] encodes a tree in any of the formats. It backs the preview
// server's /api/tree endpoint; trees are not saved anywhere by treeflow
// itself.
package io
