// Package docs registers the OpenAPI document served under /swagger/.
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
        "/api/inventory": {
            "get": {"tags": ["Inventory"], "summary": "List inventory", "produces": ["application/json"],
                "parameters": [
                    {"type": "boolean", "name": "low_stock", "in": "query"},
                    {"type": "string", "name": "location", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/inventory/low-stock": {
            "get": {"tags": ["Inventory"], "summary": "Low stock with shortfall", "responses": {"200": {"description": "OK"}}}
        },
        "/api/inventory/summary": {
            "get": {"tags": ["Inventory"], "summary": "Inventory summary", "responses": {"200": {"description": "OK"}}}
        },
        "/api/inventory/{part_id}": {
            "get": {"tags": ["Inventory"], "summary": "Inventory of one part",
                "parameters": [{"type": "integer", "name": "part_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "No inventory"}}},
            "put": {"tags": ["Inventory"], "summary": "Update reorder settings; clear_max_quantity removes the ceiling",
                "parameters": [{"type": "integer", "name": "part_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid settings"}, "404": {"description": "No inventory"}}}
        },
        "/api/inventory/{part_id}/adjust": {
            "post": {"tags": ["Inventory"], "summary": "Adjust stock",
                "parameters": [{"type": "integer", "name": "part_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Would go negative"}, "404": {"description": "No inventory"}}}
        },
        "/api/inventory/{part_id}/receive": {
            "post": {"tags": ["Inventory"], "summary": "Receive stock",
                "parameters": [{"type": "integer", "name": "part_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "No inventory"}}}
        },
        "/api/inventory/{part_id}/ship": {
            "post": {"tags": ["Inventory"], "summary": "Ship stock",
                "parameters": [{"type": "integer", "name": "part_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Insufficient inventory"}}}
        },
        "/api/inventory/{part_id}/count": {
            "post": {"tags": ["Inventory"], "summary": "Physical count",
                "parameters": [{"type": "integer", "name": "part_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/inventory/{part_id}/logs": {
            "get": {"tags": ["Inventory"], "summary": "Audit trail page, newest first, with total count",
                "parameters": [{"type": "integer", "name": "part_id", "in": "path", "required": true},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "No inventory"}}}
        },
        "/api/orders": {
            "get": {"tags": ["Orders"], "summary": "List orders", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Orders"], "summary": "Create a draft order", "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid"}, "404": {"description": "Unknown vendor or part"}}}
        },
        "/api/orders/{id}/status": {
            "patch": {"tags": ["Orders"], "summary": "Transition an order",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Illegal transition"}}}
        },
        "/api/orders/{id}": {
            "get": {"tags": ["Orders"], "summary": "Order with receipt logs",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "delete": {"tags": ["Orders"], "summary": "Delete a draft order",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Not a draft"}}}
        },
        "/api/reorder/check": {
            "post": {"tags": ["Reorder"], "summary": "Run a reorder scan", "responses": {"200": {"description": "OK"}}}
        },
        "/api/reorder/alerts": {
            "get": {"tags": ["Reorder"], "summary": "List alerts", "responses": {"200": {"description": "OK"}}}
        },
        "/api/reorder/alerts/{id}/process": {
            "post": {"tags": ["Reorder"], "summary": "Create an order from an alert",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Not pending or no vendor"}}}
        },
        "/api/reorder/process-all": {
            "post": {"tags": ["Reorder"], "summary": "Process every pending alert", "responses": {"200": {"description": "OK"}}}
        },
        "/api/reorder/create-orders": {
            "post": {"tags": ["Reorder"], "summary": "One order per vendor from current low stock", "responses": {"201": {"description": "Created"}}}
        },
        "/health": {
            "get": {"tags": ["Health"], "summary": "Health check", "responses": {"200": {"description": "OK"}, "503": {"description": "Database unavailable"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Parts Replenishment API",
	Description:      "Inventory ledger, purchase order lifecycle and automatic reordering",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
