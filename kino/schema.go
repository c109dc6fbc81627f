// Copyright (C) 2022 The Superkinodb Authors.
//
// This file is part of Superkinodb.
//
// Superkinodb is free software: you can redistribute it and/or modify it under
// the terms of the GNU Affero General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.
//
// Superkinodb is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU Affero General Public License
// for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with Superkinodb.  If not, see <https://www.gnu.org/licenses/>.

package kino

// JSON schema documents published with write controls so clients can
// discover the expected request bodies.

func MovieSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []string{"name"},
		"properties": map[string]interface{}{
			"name": map[string]interface{}{
				"description": "Movie's name",
				"type":        "string",
			},
			"release": map[string]interface{}{
				"description": "Release date (yyyy-mm-dd)",
				"type":        "string",
				"format":      "date",
			},
			"genre": map[string]interface{}{
				"description": "Genre(s)",
				"type":        "string",
			},
			"actors": map[string]interface{}{
				"description": "Actors in the movie, limit to main roles",
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
			},
			"directors": map[string]interface{}{
				"description": "Directors of the movie",
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
			},
			"writers": map[string]interface{}{
				"description": "Writers of the movie",
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
			},
		},
	}
}

func ReviewSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []string{"reviewer", "score"},
		"properties": map[string]interface{}{
			"reviewer": map[string]interface{}{
				"description": "Reviewer's name or identifier",
				"type":        "string",
			},
			"review_text": map[string]interface{}{
				"description": "Freely written review text",
				"type":        "string",
				"maxLength":   1000,
			},
			"score": map[string]interface{}{
				"description": "Score 0.0 - 10.0",
				"type":        "number",
				"minimum":     0,
				"maximum":     10,
			},
		},
	}
}
