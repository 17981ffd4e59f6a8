// Package swagger registers the OpenAPI document served at /swagger/doc.json.
// Regenerate with: swag init -g cmd/api/main.go -o docs/swagger --parseDependency
package swagger

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
        "/qrcodes": {
            "get": {
                "security": [{"SessionToken": []}],
                "produces": ["application/json"],
                "tags": ["qrcodes"],
                "summary": "List QR codes",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/QRCode"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/RemoteErrorResponse"}}
                }
            },
            "post": {
                "security": [{"SessionToken": []}],
                "description": "Creates a QR code owned by the authenticated shop and returns it enriched with product data",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["qrcodes"],
                "summary": "Create QR code",
                "parameters": [
                    {"description": "QR code creation request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateQRCodeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/QRCode"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/RemoteErrorResponse"}}
                }
            }
        },
        "/qrcodes/{id}": {
            "get": {
                "security": [{"SessionToken": []}],
                "produces": ["application/json"],
                "tags": ["qrcodes"],
                "summary": "Get QR code",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "QR code ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/QRCode"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "QR code not found (empty body)"},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/RemoteErrorResponse"}}
                }
            },
            "patch": {
                "security": [{"SessionToken": []}],
                "description": "Updates only the supplied fields; the merged record must still be valid",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["qrcodes"],
                "summary": "Update QR code",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "QR code ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateQRCodeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/QRCode"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "QR code not found (empty body)"},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/RemoteErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"SessionToken": []}],
                "tags": ["qrcodes"],
                "summary": "Delete QR code",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "QR code ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Deleted (empty body)"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "QR code not found (empty body)"}
                }
            }
        },
        "/discounts": {
            "get": {
                "security": [{"SessionToken": []}],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List discounts",
                "responses": {
                    "200": {"description": "Admin API data", "schema": {"type": "object"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/RemoteErrorResponse"}}
                }
            }
        },
        "/products": {
            "get": {
                "security": [{"SessionToken": []}],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List products",
                "parameters": [
                    {"type": "integer", "default": 2, "description": "Page size (1-50)", "name": "first", "in": "query"},
                    {"type": "string", "description": "Cursor from pageInfo.endCursor", "name": "after", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Admin API data", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/RemoteErrorResponse"}}
                }
            }
        },
        "/products/edit": {
            "patch": {
                "security": [{"SessionToken": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Rename product",
                "description": "Sets the title of one product. The body names the product (productId, a Product global id) and the new title; both are required",
                "parameters": [
                    {"description": "Product and new title", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateProductTitleRequest"}}
                ],
                "responses": {
                    "200": {"description": "Admin API data", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/RemoteErrorResponse"}}
                }
            }
        },
        "/products/tests": {
            "post": {
                "security": [{"SessionToken": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Rename product",
                "description": "Sets the title of one product. The body names the product (productId, a Product global id) and the new title; both are required",
                "parameters": [
                    {"description": "Product and new title", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateProductTitleRequest"}}
                ],
                "responses": {
                    "200": {"description": "Admin API data", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/RemoteErrorResponse"}}
                }
            }
        },
        "/products/add-metafield": {
            "patch": {
                "security": [{"SessionToken": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Add or edit product metafield",
                "parameters": [
                    {"description": "Metafield write", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MetafieldRequest"}}
                ],
                "responses": {
                    "200": {"description": "Admin API data", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/RemoteErrorResponse"}}
                }
            }
        },
        "/products/edit-metafield": {
            "patch": {
                "security": [{"SessionToken": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Add or edit product metafield",
                "parameters": [
                    {"description": "Metafield write", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MetafieldRequest"}}
                ],
                "responses": {
                    "200": {"description": "Admin API data", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/RemoteErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "CreateQRCodeRequest": {
            "type": "object",
            "required": ["destination", "productId", "title"],
            "properties": {
                "destination": {"type": "string", "enum": ["product", "checkout", "discount"], "example": "product"},
                "discountCode": {"type": "string", "maxLength": 255, "example": "SPRING10"},
                "productId": {"type": "string", "example": "gid://shopify/Product/7513594282178"},
                "title": {"type": "string", "maxLength": 255, "example": "Spring poster"}
            }
        },
        "UpdateQRCodeRequest": {
            "type": "object",
            "properties": {
                "destination": {"type": "string", "enum": ["product", "checkout", "discount"], "example": "checkout"},
                "discountCode": {"type": "string", "maxLength": 255, "example": "SUMMER15"},
                "productId": {"type": "string", "example": "gid://shopify/Product/7513594282178"},
                "title": {"type": "string", "maxLength": 255, "minLength": 1, "example": "Summer poster"}
            }
        },
        "ProductSummary": {
            "type": "object",
            "properties": {
                "handle": {"type": "string", "example": "the-collection-snowboard"},
                "id": {"type": "string", "example": "gid://shopify/Product/7513594282178"},
                "imageUrl": {"type": "string"},
                "title": {"type": "string", "example": "The Collection Snowboard"}
            }
        },
        "QRCode": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string", "example": "2024-01-15T10:30:00Z"},
                "destination": {"type": "string", "enum": ["product", "checkout", "discount"], "example": "product"},
                "destinationUrl": {"type": "string", "example": "https://example.myshopify.com/products/the-collection-snowboard"},
                "discountCode": {"type": "string", "example": "SPRING10"},
                "id": {"type": "string", "example": "123e4567-e89b-12d3-a456-426614174000"},
                "product": {"$ref": "#/definitions/ProductSummary"},
                "productId": {"type": "string", "example": "gid://shopify/Product/7513594282178"},
                "qrCodeImageUrl": {"type": "string", "example": "https://qrcodes.example.com/qrcodes/123e4567-e89b-12d3-a456-426614174000/image"},
                "scans": {"type": "integer", "example": 0},
                "shopDomain": {"type": "string", "example": "example.myshopify.com"},
                "title": {"type": "string", "example": "Spring poster"}
            }
        },
        "UpdateProductTitleRequest": {
            "type": "object",
            "required": ["productId", "title"],
            "properties": {
                "productId": {"type": "string", "example": "gid://shopify/Product/7513594282178"},
                "title": {"type": "string", "maxLength": 255, "example": "Winter snowboard"}
            }
        },
        "MetafieldRequest": {
            "type": "object",
            "required": ["productId", "value"],
            "properties": {
                "id": {"type": "string", "example": "gid://shopify/Metafield/1069228937"},
                "key": {"type": "string", "example": "liner_material"},
                "namespace": {"type": "string", "example": "my_field"},
                "productId": {"type": "string", "example": "gid://shopify/Product/7513594282178"},
                "value": {"type": "string", "example": "Synthetic leather"}
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Validation failed"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "RemoteErrorResponse": {
            "type": "object",
            "properties": {
                "details": {},
                "error": {"type": "string", "example": "Upstream Shopify request failed"}
            }
        }
    },
    "securityDefinitions": {
        "SessionToken": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "QR Codes API",
	Description:      "Multi-tenant QR code backend for an embedded storefront admin app.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
