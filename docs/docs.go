// Package docs registers the OpenAPI document described by the handler swag
// annotations. Keep it in step with them; the router tests check that every
// routed endpoint is documented.
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
        "/register": {
            "post": {
                "description": "Creates an account. The username must be a valid e-mail address and the\npassword at least 6 characters long; every violated rule is reported.\nA confirmation e-mail is queued after the account is stored.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a new user",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/register.Request"}
                    }
                ],
                "responses": {
                    "201": {"description": "Registration successful", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Username already exists", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/login": {
            "post": {
                "description": "Exchanges credentials for a bearer token valid for two hours.\nUnknown usernames and wrong passwords produce the same response.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Log in",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/login.Request"}
                    }
                ],
                "responses": {
                    "200": {"description": "Session token", "schema": {"$ref": "#/definitions/login.Response"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/forgot-password": {
            "post": {
                "description": "Issues a single-use reset token valid for one hour and e-mails it to the\naccount address. Requesting again replaces any outstanding token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Request a password reset",
                "parameters": [
                    {
                        "description": "Account e-mail",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/forgotPassword.Request"}
                    }
                ],
                "responses": {
                    "200": {"description": "Reset e-mail sent", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Email is required", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/reset-password/{token}": {
            "post": {
                "description": "Sets a new password using the token from the reset e-mail. The token is\nconsumed on success; unknown and expired tokens are rejected alike.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Reset a password",
                "parameters": [
                    {"type": "string", "description": "Reset token", "name": "token", "in": "path", "required": true},
                    {
                        "description": "New password",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/resetPassword.Request"}
                    }
                ],
                "responses": {
                    "200": {"description": "Password has been reset", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Invalid or expired token, or missing field", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/books": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "List books",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Book"}}},
                    "401": {"description": "Access denied: token missing", "schema": {"$ref": "#/definitions/response.Response"}},
                    "403": {"description": "Invalid token", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "title and author are required; publishedYear must be a non-negative\ninteger and genre a string when present. All violations are reported.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Create a book",
                "parameters": [
                    {
                        "description": "Book",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/catalog.BookInput"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Book"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Access denied: token missing", "schema": {"$ref": "#/definitions/response.Response"}},
                    "403": {"description": "Invalid token", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/api/books/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Get a book",
                "parameters": [
                    {"type": "string", "description": "Book ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Book"}},
                    "401": {"description": "Access denied: token missing", "schema": {"$ref": "#/definitions/response.Response"}},
                    "403": {"description": "Invalid token", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Book not found", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Replace a book",
                "parameters": [
                    {"type": "string", "description": "Book ID", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Book",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/catalog.BookInput"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Book"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Access denied: token missing", "schema": {"$ref": "#/definitions/response.Response"}},
                    "403": {"description": "Invalid token", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Book not found", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Delete a book",
                "parameters": [
                    {"type": "string", "description": "Book ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Book deleted", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Access denied: token missing", "schema": {"$ref": "#/definitions/response.Response"}},
                    "403": {"description": "Invalid token", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Book not found", "schema": {"$ref": "#/definitions/response.Response"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "catalog.BookInput": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "genre": {"type": "string"},
                "publishedYear": {"type": "integer"},
                "title": {"type": "string"}
            }
        },
        "forgotPassword.Request": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "a@b.com"}
            }
        },
        "login.Request": {
            "type": "object",
            "properties": {
                "password": {"type": "string", "example": "secret1"},
                "username": {"type": "string", "example": "a@b.com"}
            }
        },
        "login.Response": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "errors": {"type": "array", "items": {"type": "string"}},
                "message": {"type": "string"},
                "status": {"type": "string"},
                "token": {"type": "string"}
            }
        },
        "models.Book": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "genre": {"type": "string"},
                "id": {"type": "string"},
                "publishedYear": {"type": "integer"},
                "title": {"type": "string"}
            }
        },
        "register.Request": {
            "type": "object",
            "properties": {
                "password": {"type": "string", "example": "secret1"},
                "username": {"type": "string", "example": "a@b.com"}
            }
        },
        "resetPassword.Request": {
            "type": "object",
            "properties": {
                "newPassword": {"type": "string", "example": "newpass1"}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "errors": {"type": "array", "items": {"type": "string"}},
                "message": {"type": "string"},
                "status": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the session token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo is the registered document; main may override Host or BasePath.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Book API",
	Description:      "Book catalog with bearer-token accounts and password reset by e-mail.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
