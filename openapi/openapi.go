// Copyright 2024 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2024 Martin Zimandl <martin.zimandl@gmail.com>
// Copyright 2024 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//   This file is part of COMPEL-O-METER.
//
//  COMPEL-O-METER is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  COMPEL-O-METER is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with COMPEL-O-METER.  If not, see <https://www.gnu.org/licenses/>.

package openapi

import "net/http"

const (
	openAPIVersion = "3.1.0"
	appJSON        = "application/json"
)

func jsonContent(props ObjectProperties) map[string]MethodResponseContent {
	return map[string]MethodResponseContent{
		appJSON: {
			Schema: MethodResponseSchema{
				Type:       "object",
				Properties: props,
			},
		},
	}
}

func errorResponses(codes ...int) MethodResponses {
	ans := make(MethodResponses)
	for _, c := range codes {
		ans[c] = MethodResponse{
			Description: http.StatusText(c),
			Content: jsonContent(ObjectProperties{
				"error": ObjectProperty{Type: "string"},
			}),
		}
	}
	return ans
}

func withOK(resp MethodResponses, desc string, props ObjectProperties) MethodResponses {
	resp[http.StatusOK] = MethodResponse{
		Description: desc,
		Content:     jsonContent(props),
	}
	return resp
}

// NewResponse creates an OpenAPI document describing the HTTP API
// available at the provided url
func NewResponse(ver, url string) *APIResponse {
	schemas := createSchemas()
	paths := make(map[string]Methods)

	paths["/"] = Methods{
		Get: &Method{
			Description: "Shows basic information about the running service.",
			OperationID: "ServerInfo",
			Parameters:  []Parameter{},
			Responses: withOK(
				make(MethodResponses),
				"service info",
				ObjectProperties{
					"name":    ObjectProperty{Type: "string"},
					"version": ObjectProperty{Type: "object"},
				},
			),
		},
	}

	paths["/score"] = Methods{
		Post: &Method{
			Description: "Calculates compellingness of a text along with its pathos and logos scores. " +
				"In the adaptive mode, the learned word sentiments are updated too.",
			OperationID: "Score",
			Parameters: []Parameter{
				{
					Name:        "describe",
					In:          "query",
					Description: "If true, human readable interpretations of the scores are attached.",
					Required:    false,
					Schema:      ParamSchema{Type: "boolean"},
				},
			},
			RequestBody: &RequestBody{
				Required: true,
				Content:  jsonContent(schemas["TextRequest"]),
			},
			Responses: withOK(
				errorResponses(
					http.StatusBadRequest,
					http.StatusUnprocessableEntity,
					http.StatusInternalServerError,
					http.StatusGatewayTimeout,
				),
				"scoring result",
				schemas["ScoreResult"],
			),
		},
	}

	paths["/train"] = Methods{
		Post: &Method{
			Description: "Trains the adaptive lexicon on a text, sentence by sentence. " +
				"Requires an authorization token if configured.",
			OperationID: "Train",
			Parameters:  []Parameter{},
			RequestBody: &RequestBody{
				Required: true,
				Content:  jsonContent(schemas["TextRequest"]),
			},
			Responses: withOK(
				errorResponses(
					http.StatusBadRequest,
					http.StatusUnauthorized,
					http.StatusUnprocessableEntity,
					http.StatusInternalServerError,
					http.StatusGatewayTimeout,
				),
				"training summary",
				schemas["TrainResult"],
			),
		},
	}

	paths["/lexicon"] = Methods{
		Get: &Method{
			Description: "Lists all the adaptive lexicon entries. " +
				"Requires an authorization token if configured.",
			OperationID: "AdaptiveEntries",
			Parameters:  []Parameter{},
			Responses: withOK(
				errorResponses(
					http.StatusUnauthorized,
					http.StatusNotFound,
					http.StatusInternalServerError,
				),
				"lexicon entries",
				ObjectProperties{
					"entries": ObjectProperty{
						Type:  "array",
						Items: &arrayItem{Type: "object", Properties: schemas["LexiconEntry"]},
					},
					"size": ObjectProperty{Type: "number"},
				},
			),
		},
	}

	paths["/lexicon/{word}"] = Methods{
		Get: &Method{
			Description: "Shows static and learned sentiment of a word.",
			OperationID: "WordInfo",
			Parameters: []Parameter{
				{
					Name:        "word",
					In:          "path",
					Description: "A word to look up (case insensitive).",
					Required:    true,
					Schema:      ParamSchema{Type: "string"},
				},
			},
			Responses: withOK(
				errorResponses(http.StatusInternalServerError),
				"word sentiment info",
				schemas["WordInfo"],
			),
		},
	}

	loadProps := ObjectProperties{
		"avgLoad":    ObjectProperty{Type: "number", Description: "average load within [0, 1]"},
		"numWorkers": ObjectProperty{Type: "number"},
		"numJobs":    ObjectProperty{Type: "number"},
		"numErrors":  ObjectProperty{Type: "number"},
	}

	paths["/monitoring/workers-load"] = Methods{
		Get: &Method{
			Description: "Shows a total load of all the workers.",
			OperationID: "WorkersLoad",
			Parameters:  []Parameter{},
			Responses:   withOK(make(MethodResponses), "workers load", loadProps),
		},
	}

	paths["/monitoring/workers-load/{workerId}"] = Methods{
		Get: &Method{
			Description: "Shows a load of a single worker.",
			OperationID: "SingleWorkerLoad",
			Parameters: []Parameter{
				{
					Name:     "workerId",
					In:       "path",
					Required: true,
					Schema:   ParamSchema{Type: "string"},
				},
			},
			Responses: withOK(make(MethodResponses), "worker load", loadProps),
		},
	}

	paths["/monitoring/recent-records"] = Methods{
		Get: &Method{
			Description: "Shows recently processed jobs.",
			OperationID: "RecentRecords",
			Parameters:  []Parameter{},
			Responses:   withOK(make(MethodResponses), "recent jobs", ObjectProperties{}),
		},
	}

	return &APIResponse{
		OpenAPI: openAPIVersion,
		Info: Info{
			Title:       "Compelometer API",
			Description: "Scores how compelling an English text is based on its pathos and logos",
			Version:     ver,
		},
		Servers: []Server{
			{URL: url},
		},
		Paths: paths,
	}
}
