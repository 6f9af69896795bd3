// Package docs registers the OpenAPI document served by the Swagger UI.
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
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Operator login",
                "responses": {
                    "200": {"description": "Bearer token"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Auth"],
                "summary": "Operator logout",
                "responses": {"204": {"description": "Logged out"}}
            }
        },
        "/vehicles": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Vehicles"],
                "summary": "List ledger records",
                "responses": {"200": {"description": "Vehicle ledger"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Vehicles"],
                "summary": "Admit a vehicle",
                "responses": {
                    "201": {"description": "Ledger record"},
                    "422": {"description": "Validation error"}
                }
            }
        },
        "/vehicles/{vehicle_id}/exit": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Vehicles"],
                "summary": "Record a vehicle exit",
                "parameters": [{"name": "vehicle_id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "Closed record with fee"},
                    "204": {"description": "No parked vehicle with this id"}
                }
            }
        },
        "/clients": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Clients"],
                "summary": "List permanent clients",
                "responses": {"200": {"description": "Client registry"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Clients"],
                "summary": "Register a permanent client",
                "responses": {"201": {"description": "New client"}}
            }
        },
        "/clients/{client_id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["Clients"],
                "summary": "Update a permanent client",
                "parameters": [{"name": "client_id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "Updated client"},
                    "404": {"description": "Unknown client"}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Clients"],
                "summary": "Remove a permanent client",
                "parameters": [{"name": "client_id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "Removed"},
                    "404": {"description": "Unknown client"}
                }
            }
        },
        "/stats/daily": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Stats"],
                "summary": "Daily statistics",
                "responses": {"200": {"description": "Per-day counts, income and vehicles"}}
            }
        },
        "/settings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Settings"],
                "summary": "Current settings",
                "responses": {"200": {"description": "Settings without the password hash"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["Settings"],
                "summary": "Update settings",
                "responses": {
                    "200": {"description": "Updated settings"},
                    "422": {"description": "Validation error"}
                }
            }
        },
        "/sync/restore": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Sync"],
                "summary": "Manual restore from the authoritative store",
                "responses": {
                    "200": {"description": "Restored"},
                    "502": {"description": "Remote unavailable"}
                }
            }
        },
        "/sync/backup": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Sync"],
                "summary": "Manual backup publish",
                "responses": {
                    "200": {"description": "Backup published"},
                    "502": {"description": "Remote or broker unavailable"}
                }
            }
        },
        "/ws/operators": {
            "get": {
                "tags": ["Operators"],
                "summary": "Operator event stream (WebSocket upgrade)",
                "responses": {"101": {"description": "Switching protocols"}}
            }
        },
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {"200": {"description": "Service status"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type \"Bearer\" followed by a space and JWT token."
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Park Ledger API",
	Description:      "Parking lot ledger service: vehicle entries and exits, tiered fee calculation, permanent client registry, daily statistics and state reconciliation against the authoritative store.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
