// Package docs holds the OpenAPI description served under /swagger/.
// Regenerate with: swag init -g cmd/paperwallet/main.go
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
        "/wallet/batch": {
            "get": {
                "description": "Returns every record of the current batch with wrapped text and base64 PNG QR codes",
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Show current batch",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.BatchResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/export/encrypted": {
            "post": {
                "description": "Encrypts the engine payload with the password entered at startup (serve --encrypt)",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["export"],
                "summary": "Export batch as encrypted .cwt",
                "parameters": [
                    {"description": "Destination .cwt file", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.ExportRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ExportResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/export/json": {
            "post": {
                "description": "Writes the engine payload of the current batch verbatim, replacing any existing file",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["export"],
                "summary": "Export batch as JSON",
                "parameters": [
                    {"description": "Destination file", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.ExportRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ExportResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/export/pdf": {
            "post": {
                "description": "Renders the current batch to a PDF file inside the export directory",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["export"],
                "summary": "Export batch as PDF",
                "parameters": [
                    {"description": "Destination file", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.ExportRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ExportResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/generate": {
            "post": {
                "description": "Generates a new batch of addresses, replacing and wiping the current one",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Generate wallet batch",
                "parameters": [
                    {"description": "Generation parameters", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.GenerateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.GenerateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "model.BatchResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "createdAt": {"type": "string"},
                "network": {"type": "string"},
                "wallets": {"type": "array", "items": {"$ref": "#/definitions/model.WalletView"}}
            }
        },
        "model.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "model.ExportRequest": {
            "type": "object",
            "required": ["path"],
            "properties": {
                "path": {"type": "string"}
            }
        },
        "model.ExportResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "path": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "model.GenerateRequest": {
            "type": "object",
            "properties": {
                "entropy": {"type": "string"},
                "tCount": {"type": "integer"},
                "testnet": {"type": "boolean"},
                "zCount": {"type": "integer"}
            }
        },
        "model.GenerateResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "model.WalletView": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "addressLines": {"type": "string"},
                "addressQR": {"type": "string"},
                "index": {"type": "integer"},
                "path": {"type": "string"},
                "privateKey": {"type": "string"},
                "privateKeyLines": {"type": "string"},
                "privateKeyQR": {"type": "string"},
                "type": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "127.0.0.1:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Paper Wallet API",
	Description:      "Local paper wallet generation with secure export.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
