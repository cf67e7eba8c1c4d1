package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "paths": {
        "/reflections": {
            "get": {
                "tags": ["reflections"],
                "summary": "List reflections",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/entities.Reflection"}}
                    }
                }
            },
            "post": {
                "tags": ["reflections"],
                "summary": "Create a reflection",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {"$ref": "#/definitions/ports.CreateReflectionRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/entities.Reflection"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/reflections/{id}": {
            "get": {
                "tags": ["reflections"],
                "summary": "Get reflection by ID",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Reflection ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Reflection"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "put": {
                "tags": ["reflections"],
                "summary": "Update a reflection",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Reflection ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ports.UpdateReflectionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Reflection"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["reflections"],
                "summary": "Delete a reflection",
                "parameters": [{"type": "string", "description": "Reflection ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/projects": {
            "get": {
                "tags": ["projects"],
                "summary": "List projects",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/entities.Project"}}
                    }
                }
            },
            "post": {
                "tags": ["projects"],
                "summary": "Create a new project",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {"$ref": "#/definitions/ports.CreateProjectRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/entities.Project"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/projects/{id}": {
            "get": {
                "tags": ["projects"],
                "summary": "Get project by ID",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Project ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Project"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "put": {
                "tags": ["projects"],
                "summary": "Update a project",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Project ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ports.UpdateProjectRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.Project"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["projects"],
                "summary": "Delete a project",
                "parameters": [{"type": "string", "description": "Project ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "entities.Reflection": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "date": {"type": "string", "example": "Mon Jan 13 2025"},
                "reflection": {"type": "string"},
                "week": {"type": "integer", "x-nullable": true}
            }
        },
        "entities.Project": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "technologies": {"type": "array", "items": {"type": "string"}},
                "imageUrl": {"type": "string", "x-nullable": true},
                "demoUrl": {"type": "string", "x-nullable": true},
                "githubUrl": {"type": "string", "x-nullable": true},
                "date": {"type": "string", "example": "Jan 2025"}
            }
        },
        "ports.CreateReflectionRequest": {
            "type": "object",
            "required": ["name", "reflection"],
            "properties": {
                "name": {"type": "string"},
                "reflection": {"type": "string"},
                "week": {"type": "integer"}
            }
        },
        "ports.UpdateReflectionRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "reflection": {"type": "string"},
                "week": {"type": "integer", "x-nullable": true}
            }
        },
        "ports.CreateProjectRequest": {
            "type": "object",
            "required": ["title", "description", "technologies", "date"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "technologies": {"type": "array", "items": {"type": "string"}},
                "imageUrl": {"type": "string"},
                "demoUrl": {"type": "string"},
                "githubUrl": {"type": "string"},
                "date": {"type": "string"}
            }
        },
        "ports.UpdateProjectRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "technologies": {"type": "array", "items": {"type": "string"}},
                "imageUrl": {"type": "string", "x-nullable": true},
                "demoUrl": {"type": "string", "x-nullable": true},
                "githubUrl": {"type": "string", "x-nullable": true},
                "date": {"type": "string"}
            }
        },
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Learning Journal API",
	Description:      "Reflections and portfolio projects stored as JSON documents",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
