// Package api embeds the HTTP control API description served by reeferlink.
package api

import _ "embed"

// Document is the OpenAPI 3 document for the /v1 control API.
//
//go:embed reeferlink.openapi.yaml
var Document []byte
