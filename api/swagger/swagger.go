package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Accumulator Web Gateway",
        "description": "Pages and JSON views over the attendance backend. Every GET view renders HTML unless the client sends Accept: application/json.",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": ["http"],
    "tags": [
        {"name": "Auth", "description": "Gateway session cookie"},
        {"name": "Integrations", "description": "Linked platform accounts"},
        {"name": "Friends", "description": "Integration roster"},
        {"name": "Attendance", "description": "Attendance of a teacher"},
        {"name": "Users", "description": "Administration"}
    ],
    "paths": {
        "/healthz": {
            "get": {
                "summary": "Dependency health",
                "responses": {
                    "200": {"description": "All dependencies reachable"},
                    "503": {"description": "A dependency is unreachable"}
                }
            }
        },
        "/signin": {
            "post": {
                "tags": ["Auth"],
                "summary": "Sign in",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Credentials"}}
                ],
                "responses": {
                    "200": {"description": "Signed in", "schema": {"$ref": "#/definitions/UserEnvelope"}},
                    "401": {"description": "Rejected", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/signup": {
            "post": {
                "tags": ["Auth"],
                "summary": "Sign up",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Credentials"}}
                ],
                "responses": {
                    "200": {"description": "Registered and signed in", "schema": {"$ref": "#/definitions/UserEnvelope"}},
                    "400": {"description": "Invalid form", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/signout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Sign out",
                "responses": {"204": {"description": "Signed out"}}
            }
        },
        "/": {
            "get": {
                "tags": ["Integrations"],
                "summary": "List integrations",
                "produces": ["application/json", "text/html"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/integrations": {
            "post": {
                "tags": ["Integrations"],
                "summary": "Link an integration",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/IntegrationCredentials"}}
                ],
                "responses": {"204": {"description": "Linked"}}
            }
        },
        "/integrations/{integration_id}/update_friends": {
            "post": {
                "tags": ["Integrations"],
                "summary": "Re-pull the friends of an integration",
                "parameters": [{"name": "integration_id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Requested"}}
            }
        },
        "/integrations/{integration_id}/delete": {
            "post": {
                "tags": ["Integrations"],
                "summary": "Delete an integration",
                "parameters": [{"name": "integration_id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/integrations/{integration_id}/friends": {
            "get": {
                "tags": ["Friends"],
                "summary": "Students and teachers",
                "produces": ["application/json", "text/html"],
                "parameters": [{"name": "integration_id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/integrations/{integration_id}/friends/refresh": {
            "post": {
                "tags": ["Friends"],
                "summary": "Refresh the roster from the platform",
                "parameters": [{"name": "integration_id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Refreshed roster", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/integrations/{integration_id}/friends/{friend_id}/promote": {
            "post": {
                "tags": ["Friends"],
                "summary": "Mark a friend as teacher",
                "parameters": [
                    {"name": "integration_id", "in": "path", "required": true, "type": "string"},
                    {"name": "friend_id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"204": {"description": "Promoted"}}
            }
        },
        "/integrations/{integration_id}/friends/{friend_id}/demote": {
            "post": {
                "tags": ["Friends"],
                "summary": "Mark a teacher as student",
                "parameters": [
                    {"name": "integration_id", "in": "path", "required": true, "type": "string"},
                    {"name": "friend_id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"204": {"description": "Demoted"}}
            }
        },
        "/integrations/{integration_id}/teachers": {
            "get": {
                "tags": ["Friends"],
                "summary": "Teachers of an integration",
                "produces": ["application/json", "text/html"],
                "parameters": [{"name": "integration_id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/integrations/{integration_id}/attendance/{teacher_id}": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Attendance grouped by student, most recent first",
                "produces": ["application/json", "text/html"],
                "parameters": [
                    {"name": "integration_id", "in": "path", "required": true, "type": "string"},
                    {"name": "teacher_id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AttendanceEnvelope"}},
                    "404": {"description": "Teacher not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Backend failure or malformed payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/integrations/{integration_id}/attendance/{teacher_id}/export": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Download the attendance",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "integration_id", "in": "path", "required": true, "type": "string"},
                    {"name": "teacher_id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users (admin)",
                "produces": ["application/json", "text/html"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not an admin", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/{user_id}/impersonate": {
            "post": {
                "tags": ["Users"],
                "summary": "Act as another user (admin)",
                "parameters": [{"name": "user_id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "Session switched", "schema": {"$ref": "#/definitions/UserEnvelope"}},
                    "403": {"description": "Not an admin", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Credentials": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "format": "email"},
                "password": {"type": "string"}
            }
        },
        "IntegrationCredentials": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "email": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "Friend": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "is_teacher": {"type": "boolean"},
                "vrchat_display_name": {"type": "string"},
                "vrchat_avatar_thumbnail_image_url": {"type": "string"}
            }
        },
        "AttendanceRecord": {
            "type": "object",
            "properties": {
                "location": {"type": "string"},
                "integration_id": {"type": "integer"},
                "teacher_id": {"type": "integer"},
                "friend_id": {"type": "integer"},
                "timestamp": {"type": "integer", "description": "Unix seconds"}
            }
        },
        "AttendanceGroup": {
            "type": "object",
            "properties": {
                "friend_id": {"type": "integer"},
                "name": {"type": "string"},
                "student": {"$ref": "#/definitions/Friend"},
                "records": {"type": "array", "items": {"$ref": "#/definitions/AttendanceRecord"}}
            }
        },
        "AttendanceView": {
            "type": "object",
            "properties": {
                "integration_id": {"type": "string"},
                "teacher": {"$ref": "#/definitions/Friend"},
                "groups": {"type": "array", "items": {"$ref": "#/definitions/AttendanceGroup"}}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"}
            }
        },
        "UserEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/User"}
            }
        },
        "AttendanceEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/AttendanceView"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
