// Package docs registers the Swagger description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {"tags": ["health"], "summary": "Health check endpoint", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"], "summary": "Login and get JWT token",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/auth.LoginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.LoginResponse"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.StandardError"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.StandardError"}}}
            }
        },
        "/inventory/records": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["inventory"], "summary": "List all records", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ListRecordsResponse"}}, "503": {"description": "Storage unavailable", "schema": {"$ref": "#/definitions/errors.StandardError"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}], "tags": ["inventory"], "summary": "Create or replace a record",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.RecordRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.RecordResponse"}}, "400": {"description": "Invalid record", "schema": {"$ref": "#/definitions/errors.StandardError"}}, "503": {"description": "Storage unavailable", "schema": {"$ref": "#/definitions/errors.StandardError"}}}
            }
        },
        "/inventory/records/{id}": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["inventory"], "summary": "Get a record", "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.RecordResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.StandardError"}}}
            },
            "patch": {
                "security": [{"BearerAuth": []}], "tags": ["inventory"], "summary": "Edit a record",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateFieldsRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.RecordResponse"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.StandardError"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.StandardError"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}], "tags": ["inventory"], "summary": "Delete a record", "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.SuccessResponse"}}}
            }
        },
        "/inventory/records/{id}/quantity": {
            "put": {
                "security": [{"BearerAuth": []}], "tags": ["inventory"], "summary": "Set the quantity of a record",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "query", "name": "confirm", "type": "boolean"}, {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateQuantityRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.QuantityResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.StandardError"}}, "409": {"description": "Deletion not confirmed", "schema": {"$ref": "#/definitions/errors.StandardError"}}}
            }
        },
        "/inventory/expiring": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["freshness"], "summary": "Records sorted by freshness", "produces": ["application/json"],
                "parameters": [{"in": "query", "name": "include_expired", "type": "boolean"}, {"in": "query", "name": "limit", "type": "integer"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ExpiringResponse"}}}
            }
        },
        "/inventory/summary": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["freshness"], "summary": "Freshness summary", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.SummaryResponse"}}}
            }
        },
        "/products/{barcode}": {
            "get": {
                "security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Look up a scanned barcode", "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "barcode", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ScanResponse"}}}
            }
        }
    },
    "definitions": {
        "errors.StandardError": {"type": "object", "properties": {"error": {"type": "string"}, "message": {"type": "string"}, "details": {"type": "string"}}},
        "auth.LoginRequest": {"type": "object", "required": ["username", "password"], "properties": {"username": {"type": "string", "example": "frigo"}, "password": {"type": "string"}}},
        "auth.LoginResponse": {"type": "object", "properties": {"token": {"type": "string"}, "type": {"type": "string", "example": "Bearer"}, "expires_in": {"type": "integer"}, "expires_at": {"type": "string"}}},
        "handlers.RecordRequest": {"type": "object", "properties": {"id": {"type": "string", "example": "3017620422003"}, "product_name": {"type": "string", "example": "Nutella"}, "description": {"type": "string"}, "image_url": {"type": "string"}, "brands": {"type": "string"}, "quantity": {"type": "integer", "example": 1}, "expiration_date": {"type": "string", "example": "2024-05-01"}}},
        "handlers.UpdateFieldsRequest": {"type": "object", "properties": {"product_name": {"type": "string"}, "description": {"type": "string"}, "expiration_date": {"type": "string"}}},
        "handlers.UpdateQuantityRequest": {"type": "object", "required": ["quantity"], "properties": {"quantity": {"type": "integer", "example": 2}}},
        "handlers.RecordResponse": {"type": "object", "properties": {"id": {"type": "string"}, "product_name": {"type": "string"}, "description": {"type": "string"}, "image_url": {"type": "string"}, "brands": {"type": "string"}, "quantity": {"type": "integer"}, "expiration_date": {"type": "string"}, "manual": {"type": "boolean"}, "days_until_expiration": {"type": "integer"}, "urgency_color": {"type": "string", "enum": ["red", "orange", "green"]}, "expired": {"type": "boolean"}}},
        "handlers.SkippedRecord": {"type": "object", "properties": {"key": {"type": "string"}, "reason": {"type": "string"}}},
        "handlers.ListRecordsResponse": {"type": "object", "properties": {"records": {"type": "array", "items": {"$ref": "#/definitions/handlers.RecordResponse"}}, "skipped": {"type": "array", "items": {"$ref": "#/definitions/handlers.SkippedRecord"}}, "total": {"type": "integer"}}},
        "handlers.ExpiringResponse": {"type": "object", "properties": {"records": {"type": "array", "items": {"$ref": "#/definitions/handlers.RecordResponse"}}, "total": {"type": "integer"}, "today": {"type": "string"}}},
        "handlers.SummaryResponse": {"type": "object", "properties": {"total": {"type": "integer"}, "red": {"type": "integer"}, "orange": {"type": "integer"}, "green": {"type": "integer"}, "expired": {"type": "integer"}, "undated": {"type": "integer"}, "today": {"type": "string"}}},
        "handlers.QuantityResponse": {"type": "object", "properties": {"id": {"type": "string"}, "quantity": {"type": "integer"}, "deleted": {"type": "boolean"}, "record": {"$ref": "#/definitions/handlers.RecordResponse"}}},
        "handlers.ScanResponse": {"type": "object", "properties": {"barcode": {"type": "string"}, "found": {"type": "boolean"}, "manual_entry": {"type": "boolean"}, "reason": {"type": "string", "enum": ["not_found", "unavailable", "bad_response", "incomplete"]}, "draft": {"$ref": "#/definitions/handlers.RecordRequest"}, "existing": {"$ref": "#/definitions/handlers.RecordResponse"}}},
        "handlers.SuccessResponse": {"type": "object", "properties": {"message": {"type": "string"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"description": "Type \"Bearer\" followed by a space and JWT token.", "type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Frigo Service API",
	Description:      "Perishable food inventory: records keyed by barcode, ranked by freshness.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
