// Package portal holds the generated Swagger documentation for the
// portal API. Regenerate with `swag init` from the repository root.
package portal

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new account with the company invite code",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login with username or email; may require a second factor",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Logout (stateless tokens, client discards its copy)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Current authenticated user",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/auth/2fa/setup": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Begin 2FA enrolment: returns QR code and manual-entry secret",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/auth/2fa/verify-setup": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Confirm the first authenticator code and activate 2FA",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/auth/2fa/verify-login": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange a pending-login token plus code for a full session",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/auth/2fa/disable": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Turn off 2FA after re-confirming the account password",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/forms/{formType}": {
            "get": {
                "tags": ["forms"],
                "summary": "List forms of a kind, newest first",
                "parameters": [
                    {"type": "string", "name": "formType", "in": "path", "required": true},
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            },
            "post": {
                "tags": ["forms"],
                "summary": "Create a form document (draft or completed)",
                "parameters": [{"type": "string", "name": "formType", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/forms/{formType}/{id}": {
            "get": {
                "tags": ["forms"],
                "summary": "Fetch one form by id",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "tags": ["forms"],
                "summary": "Replace a form's contents",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "tags": ["forms"],
                "summary": "Delete a form",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/forms/{formType}/{id}/export": {
            "get": {
                "produces": ["application/pdf"],
                "tags": ["forms"],
                "summary": "Export a form as PDF",
                "parameters": [{"type": "string", "name": "format", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/forms/meta/job-sites": {
            "get": {
                "tags": ["forms"],
                "summary": "Job sites aggregated from form submissions, newest first",
                "parameters": [{"type": "integer", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/forms/meta/job-sites/locate": {
            "get": {
                "tags": ["forms"],
                "summary": "Resolve a job-site address to map coordinates",
                "parameters": [{"type": "string", "name": "address", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/forms/meta/job-sites/status": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["forms"],
                "summary": "Archive or restore a job site",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/signatures/upload": {
            "post": {
                "tags": ["signatures"],
                "summary": "Upload a drawn signature as a base64 data URI",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/health": {
            "get": {
                "tags": ["health"],
                "summary": "Simple health check used by the frontend",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/livez": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness probe with uptime and build version",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/readyz": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness probe, checks database connectivity",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT session token. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "FieldForms Portal API",
	Description:      "Digital jobsite forms for Stucco Rite Inc: daily logs, vehicle inspections, safety meetings and scaffold inspections, with PDF export and invite-code account registration.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
