// Package docs registers the SportFit OpenAPI document with swag.
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
        "/jwt": {"post": {"tags": ["auth"], "summary": "Issue an access token", "responses": {"200": {"description": "Token issued"}, "401": {"description": "Unknown user or wrong password"}}}},
        "/users": {
            "post": {"tags": ["users"], "summary": "Register a user", "responses": {"200": {"description": "User already exists"}, "201": {"description": "User created"}}},
            "get": {"tags": ["users"], "summary": "List users", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Users retrieved"}, "403": {"description": "Forbidden - admin only"}}}
        },
        "/users/admin/{id}": {"patch": {"tags": ["users"], "summary": "Make a user admin", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Role updated"}, "404": {"description": "User not found"}}}},
        "/users/instructor/{id}": {"patch": {"tags": ["users"], "summary": "Make a user instructor", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Role updated"}, "404": {"description": "User not found"}}}},
        "/user/admin/{email}": {"get": {"tags": ["users"], "summary": "Check admin role", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "email", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/user/instructor/{email}": {"get": {"tags": ["users"], "summary": "Check instructor role", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "email", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/instructors": {"get": {"tags": ["instructors"], "summary": "List instructors", "responses": {"200": {"description": "Instructors retrieved"}}}},
        "/addclasses": {"post": {"tags": ["classes"], "summary": "Create a class", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Class created"}, "403": {"description": "Forbidden - instructor only"}}}},
        "/myclass": {"get": {"tags": ["classes"], "summary": "List my classes", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "email", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/myclass/{id}": {
            "get": {"tags": ["classes"], "summary": "Get a class", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Class not found"}}},
            "delete": {"tags": ["classes"], "summary": "Delete a class", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Class deleted"}, "403": {"description": "Forbidden"}}}
        },
        "/update/class/{id}": {"patch": {"tags": ["classes"], "summary": "Update a class", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "Capacity below current enrollment"}}}},
        "/allClass": {"get": {"tags": ["classes"], "summary": "List all classes", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/allApprovedClass": {"get": {"tags": ["classes"], "summary": "List approved classes", "responses": {"200": {"description": "OK"}}}},
        "/allClass/approved/{id}": {"patch": {"tags": ["classes"], "summary": "Approve a class", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "Illegal status transition"}}}},
        "/allClass/denied/{id}": {"patch": {"tags": ["classes"], "summary": "Deny a class", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "Illegal status transition"}}}},
        "/allClass/feedback/{id}": {"patch": {"tags": ["classes"], "summary": "Give feedback on a class", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"type": "string", "name": "feedback", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/selected": {"post": {"tags": ["cart"], "summary": "Select a class", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "409": {"description": "Already selected or class not approved"}}}},
        "/selectedClass": {"get": {"tags": ["cart"], "summary": "List selected classes", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "email", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/selectedDelete/{id}": {"delete": {"tags": ["cart"], "summary": "Remove a selected class", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Selection removed"}, "404": {"description": "Selection not found"}}}},
        "/createIntent": {"post": {"tags": ["payments"], "summary": "Create a payment intent", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "502": {"description": "Payment processor error"}}}},
        "/payments": {"post": {"tags": ["payments"], "summary": "Confirm a payment", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "classId", "in": "query"}], "responses": {"200": {"description": "Payment already recorded"}, "201": {"description": "Enrollment recorded"}, "409": {"description": "No seats available"}}}},
        "/myenrolled": {"get": {"tags": ["payments"], "summary": "List enrolled classes", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "email", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/myPaymentHistory": {"get": {"tags": ["payments"], "summary": "Payment history", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "email", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/health": {"get": {"tags": ["health"], "summary": "Health check", "responses": {"200": {"description": "OK"}, "503": {"description": "Database unreachable"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "SportFit API",
	Description:      "Fitness class marketplace: instructors publish classes, admins review them, students pay and enroll.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
