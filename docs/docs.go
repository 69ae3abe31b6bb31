// Package docs registers the swagger spec served at /docs/*.
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
        "/auth/register": {"post": {"summary": "Register a farmer or officer account", "tags": ["auth"]}},
        "/auth/login": {"post": {"summary": "Login and receive a bearer token", "tags": ["auth"]}},
        "/queries": {
            "post": {"summary": "Ask a question and receive AI advice", "tags": ["queries"]},
            "get": {"summary": "List the caller's recent queries", "tags": ["queries"]}
        },
        "/queries/{id}/resolve": {"post": {"summary": "Mark an own query resolved, optionally with a rating", "tags": ["queries"]}},
        "/queries/{id}/escalate": {"post": {"summary": "Escalate an own query to an officer", "tags": ["queries"]}},
        "/officer/queries/pending": {"get": {"summary": "Open escalations, newest first", "tags": ["officer"]}},
        "/officer/queries/handled": {"get": {"summary": "Closed escalations, most recently resolved first", "tags": ["officer"]}},
        "/officer/queries/{id}/respond": {"post": {"summary": "Reply to an escalated query, optionally resolving it", "tags": ["officer"]}},
        "/officer/queries/{id}/force-resolve": {"post": {"summary": "Close an escalated query without a reply", "tags": ["officer"]}},
        "/forum/posts": {
            "post": {"summary": "Create a forum post", "tags": ["forum"]},
            "get": {"summary": "Paginated community feed", "tags": ["forum"]}
        },
        "/forum/posts/{postId}/comments": {
            "post": {"summary": "Comment on a post", "tags": ["forum"]},
            "get": {"summary": "List comments on a post", "tags": ["forum"]}
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "AgriSathi API",
	Description:      "Farmer advisory backend: AI-answered queries, officer escalation workflow, community forum.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
