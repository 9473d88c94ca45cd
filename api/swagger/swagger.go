package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Workshop Hub API",
        "description": "Live workshop dashboard, registration wizard and assistant chat",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "AttendeePass": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {
            "name": "Ops",
            "description": "Probes and metrics"
        },
        {
            "name": "Views",
            "description": "Dashboard sections and live updates"
        },
        {
            "name": "Registration",
            "description": "Three step registration wizard"
        },
        {
            "name": "Chat",
            "description": "Workshop assistant"
        },
        {
            "name": "Feedback",
            "description": "Post-session survey"
        },
        {
            "name": "Exports",
            "description": "Summary exports and certificates"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": [
                    "Ops"
                ],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": [
                    "Ops"
                ],
                "summary": "Readiness probe covering database and cache",
                "responses": {
                    "200": {
                        "description": "Ready"
                    },
                    "503": {
                        "description": "Degraded"
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": [
                    "Ops"
                ],
                "summary": "Prometheus metrics",
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "Metrics exposition"
                    }
                }
            }
        },
        "/api/v1/metrics/summary": {
            "get": {
                "tags": [
                    "Ops"
                ],
                "summary": "Cache hit ratio and runtime snapshot",
                "responses": {
                    "200": {
                        "description": "Snapshot",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/views/current": {
            "get": {
                "tags": [
                    "Views"
                ],
                "summary": "Render the current view",
                "responses": {
                    "200": {
                        "description": "Rendered view",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "put": {
                "tags": [
                    "Views"
                ],
                "summary": "Switch the current view",
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SelectViewRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Rendered view",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Unknown view",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/views/{view}": {
            "get": {
                "tags": [
                    "Views"
                ],
                "summary": "Render a view without switching",
                "parameters": [
                    {
                        "in": "path",
                        "name": "view",
                        "required": true,
                        "type": "string",
                        "description": "dashboard, registration, content, tracking, feedback or certificate"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Rendered view",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Unknown view",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/participants": {
            "get": {
                "tags": [
                    "Views"
                ],
                "summary": "Paginated participant tracking rows",
                "parameters": [
                    {
                        "in": "query",
                        "name": "page",
                        "type": "integer"
                    },
                    {
                        "in": "query",
                        "name": "page_size",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Participants",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/modules/{id}/select": {
            "post": {
                "tags": [
                    "Views"
                ],
                "summary": "Open a module's detail panel",
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string",
                        "description": ""
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Module detail",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown module",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/events": {
            "get": {
                "tags": [
                    "Views"
                ],
                "summary": "Server-sent render events",
                "produces": [
                    "text/event-stream"
                ],
                "responses": {
                    "200": {
                        "description": "Event stream"
                    }
                }
            }
        },
        "/api/v1/registration": {
            "get": {
                "tags": [
                    "Registration"
                ],
                "summary": "Wizard state",
                "responses": {
                    "200": {
                        "description": "Wizard state",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/registration/fields/{field}": {
            "put": {
                "tags": [
                    "Registration"
                ],
                "summary": "Set a field value",
                "parameters": [
                    {
                        "in": "path",
                        "name": "field",
                        "required": true,
                        "type": "string",
                        "description": ""
                    },
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/FieldValueRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Wizard state",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Unknown field",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/registration/fields/{field}/blur": {
            "post": {
                "tags": [
                    "Registration"
                ],
                "summary": "Validate a field on blur",
                "parameters": [
                    {
                        "in": "path",
                        "name": "field",
                        "required": true,
                        "type": "string",
                        "description": ""
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Wizard state",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "422": {
                        "description": "Field invalid",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/registration/next": {
            "post": {
                "tags": [
                    "Registration"
                ],
                "summary": "Advance to the next step",
                "responses": {
                    "200": {
                        "description": "Wizard state",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Already on the last step",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "422": {
                        "description": "Step invalid",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/registration/back": {
            "post": {
                "tags": [
                    "Registration"
                ],
                "summary": "Return to the previous step",
                "responses": {
                    "200": {
                        "description": "Wizard state",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Already on the first step",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/registration/submit": {
            "post": {
                "tags": [
                    "Registration"
                ],
                "summary": "Submit the registration and issue an attendee pass",
                "responses": {
                    "201": {
                        "description": "Registration stored",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Not on the last step",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "422": {
                        "description": "Step invalid",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/registration/resend-code": {
            "post": {
                "tags": [
                    "Registration"
                ],
                "summary": "Resend the verification code",
                "responses": {
                    "200": {
                        "description": "Confirmation",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/chat": {
            "get": {
                "tags": [
                    "Chat"
                ],
                "summary": "Chat transcript",
                "responses": {
                    "200": {
                        "description": "Transcript",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/chat/messages": {
            "post": {
                "tags": [
                    "Chat"
                ],
                "summary": "Send a message to the assistant",
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ChatMessageRequest"
                        }
                    }
                ],
                "responses": {
                    "202": {
                        "description": "Reply scheduled",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Blank message",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "429": {
                        "description": "Rate limited",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/feedback": {
            "post": {
                "tags": [
                    "Feedback"
                ],
                "summary": "Submit the workshop survey",
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/FeedbackRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Feedback recorded",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/feedback/stats": {
            "get": {
                "tags": [
                    "Feedback"
                ],
                "summary": "Average rating",
                "responses": {
                    "200": {
                        "description": "Stats",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/summary/export": {
            "post": {
                "tags": [
                    "Exports"
                ],
                "summary": "Export the session summary",
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SummaryExportRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Export stored",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/certificate": {
            "post": {
                "tags": [
                    "Exports"
                ],
                "summary": "Generate the attendance certificate",
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CertificateRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "AttendeePass": []
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Certificate stored",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Attendee pass required",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/downloads/{token}": {
            "get": {
                "tags": [
                    "Exports"
                ],
                "summary": "Download a stored export",
                "parameters": [
                    {
                        "in": "path",
                        "name": "token",
                        "required": true,
                        "type": "string",
                        "description": ""
                    }
                ],
                "produces": [
                    "application/octet-stream"
                ],
                "responses": {
                    "200": {
                        "description": "File"
                    },
                    "404": {
                        "description": "Unknown or expired link",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "SelectViewRequest": {
            "type": "object",
            "properties": {
                "view": {
                    "type": "string"
                }
            },
            "required": [
                "view"
            ]
        },
        "FieldValueRequest": {
            "type": "object",
            "properties": {
                "value": {
                    "type": "string"
                }
            }
        },
        "ChatMessageRequest": {
            "type": "object",
            "properties": {
                "text": {
                    "type": "string"
                }
            },
            "required": [
                "text"
            ]
        },
        "FeedbackRequest": {
            "type": "object",
            "properties": {
                "rating": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 5
                },
                "content_rating": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 5
                },
                "recommend": {
                    "type": "boolean"
                },
                "comments": {
                    "type": "string"
                }
            },
            "required": [
                "rating",
                "content_rating"
            ]
        },
        "SummaryExportRequest": {
            "type": "object",
            "properties": {
                "format": {
                    "type": "string",
                    "enum": [
                        "csv",
                        "pdf"
                    ]
                }
            },
            "required": [
                "format"
            ]
        },
        "CertificateRequest": {
            "type": "object",
            "properties": {
                "delivery": {
                    "type": "string",
                    "enum": [
                        "download",
                        "email"
                    ]
                }
            },
            "required": [
                "delivery"
            ]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {
                    "type": "integer"
                },
                "page_size": {
                    "type": "integer"
                },
                "total_count": {
                    "type": "integer"
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                },
                "details": {
                    "type": "object"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "pagination": {
                    "$ref": "#/definitions/Pagination"
                },
                "meta": {
                    "type": "object"
                }
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
