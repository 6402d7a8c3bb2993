// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/classify": {
            "post": {
                "description": "Returns REAL or FAKE with the confidence of the predicted label. Accepts JSON or a text/plain body.",
                "consumes": ["application/json", "text/plain"],
                "produces": ["application/json"],
                "tags": ["classify"],
                "summary": "Classify a news text",
                "parameters": [
                    {
                        "description": "Text to analyze",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/usecase.ClassifyInput"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/handler.Response"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/usecase.ClassifyOutput"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            }
        },
        "/classify/batch": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["classify"],
                "summary": "Classify several news texts",
                "parameters": [
                    {
                        "description": "Texts to analyze",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/usecase.ClassifyBatchInput"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/handler.Response"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/usecase.ClassifyBatchOutput"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            }
        },
        "/checks": {
            "get": {
                "produces": ["application/json"],
                "tags": ["checks"],
                "summary": "Recent checks, newest first",
                "parameters": [
                    {"type": "integer", "default": 5, "description": "Maximum entries", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/handler.Response"},
                                {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/usecase.CheckOutput"}}}}
                            ]
                        }
                    }
                }
            }
        },
        "/checks/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["checks"],
                "summary": "One recent check",
                "parameters": [
                    {"type": "string", "description": "Check ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/handler.Response"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/usecase.CheckOutput"}}}
                            ]
                        }
                    },
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            }
        },
        "/model": {
            "get": {
                "produces": ["application/json"],
                "tags": ["model"],
                "summary": "Loaded model description",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/handler.Response"},
                                {"type": "object", "properties": {"data": {"$ref": "#/definitions/service.ModelInfo"}}}
                            ]
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "entity.Probabilities": {
            "type": "object",
            "properties": {
                "fake": {"type": "number"},
                "real": {"type": "number"}
            }
        },
        "handler.ErrorInfo": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.MetaInfo": {
            "type": "object",
            "properties": {
                "model_version": {"type": "string"},
                "request_id": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "handler.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/handler.ErrorInfo"},
                "meta": {"$ref": "#/definitions/handler.MetaInfo"},
                "success": {"type": "boolean"}
            }
        },
        "service.EstimatorInfo": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "name": {"type": "string"},
                "weight": {"type": "number"}
            }
        },
        "service.ModelInfo": {
            "type": "object",
            "properties": {
                "estimators": {"type": "array", "items": {"$ref": "#/definitions/service.EstimatorInfo"}},
                "features": {"type": "integer"},
                "ngram_range": {"type": "array", "items": {"type": "integer"}},
                "source": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "usecase.CheckOutput": {
            "type": "object",
            "properties": {
                "check_id": {"type": "string"},
                "checked_at": {"type": "string"},
                "confidence": {"type": "number"},
                "excerpt": {"type": "string"},
                "label": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "usecase.ClassifyBatchInput": {
            "type": "object",
            "required": ["texts"],
            "properties": {
                "texts": {"type": "array", "minItems": 1, "items": {"type": "string"}}
            }
        },
        "usecase.ClassifyBatchOutput": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "results": {"type": "array", "items": {"$ref": "#/definitions/usecase.ClassifyOutput"}}
            }
        },
        "usecase.ClassifyInput": {
            "type": "object",
            "properties": {
                "text": {"type": "string"}
            }
        },
        "usecase.ClassifyOutput": {
            "type": "object",
            "properties": {
                "cached": {"type": "boolean"},
                "check_id": {"type": "string"},
                "confidence": {"type": "number"},
                "label": {"type": "string", "enum": ["REAL", "FAKE"]},
                "latency_ms": {"type": "integer"},
                "model_version": {"type": "string"},
                "probabilities": {"$ref": "#/definitions/entity.Probabilities"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "NewsGuard API",
	Description:      "Classifies news text as REAL or FAKE.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
