// Package docs holds the OpenAPI description served under /swagger/.
// Regenerate with: swag init -g cmd/app/main.go
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
        "/api/auth-url": {
            "get": {
                "description": "Builds the URL that starts the Spotify link flow for a Discord user",
                "produces": ["application/json"],
                "tags": ["spotify"],
                "summary": "Get Spotify authorization URL",
                "parameters": [
                    {"type": "string", "description": "Discord user id (userId is accepted too)", "name": "user_id", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.AuthURLResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "405": {"description": "Method not allowed", "schema": {"type": "string"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/callback": {
            "get": {
                "description": "Exchanges the authorization code and stores the tokens for the Discord user in state",
                "produces": ["text/html"],
                "tags": ["spotify"],
                "summary": "Spotify OAuth callback",
                "parameters": [
                    {"type": "string", "description": "Authorization code", "name": "code", "in": "query"},
                    {"type": "string", "description": "Discord user id", "name": "state", "in": "query"},
                    {"type": "string", "description": "Authorization error reported by Spotify", "name": "error", "in": "query"},
                    {"type": "string", "description": "Redirect binding token", "name": "bot", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Failure page", "schema": {"type": "string"}},
                    "302": {"description": "Redirect to the web front-end", "schema": {"type": "string"}},
                    "403": {"description": "Invalid redirect page", "schema": {"type": "string"}},
                    "405": {"description": "Method not allowed", "schema": {"type": "string"}},
                    "500": {"description": "Failure page", "schema": {"type": "string"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "description": "Returns OK if the service is running",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Returns OK if the link state database answers a ping",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.HealthResponse"}}
                }
            }
        },
        "/version": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Build information",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.VersionInfo"}}
                }
            }
        }
    },
    "definitions": {
        "handler.AuthURLResponse": {
            "type": "object",
            "properties": {"url": {"type": "string"}}
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.HealthResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "status": {"type": "string"}}
        },
        "handler.VersionInfo": {
            "type": "object",
            "properties": {
                "build_time": {"type": "string"},
                "git_commit": {"type": "string"},
                "go_version": {"type": "string"},
                "version": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Spotify Link API",
	Description:      "Links Discord users to their Spotify accounts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
