package ginpbjson

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"
)

// DocsIndex is the body served by the docs endpoint: one JSON-Schema
// description per registered message, plus the envelope types used by
// the decode routes' own responses.
type DocsIndex struct {
	Info     Info                      `json:"info"`
	Messages map[string]map[string]any `json:"messages"`
	Envelope map[string]any            `json:"envelopeSchemas"`
}

// docsHandler renders DocsIndex for every message currently in the
// registry, rebuilt on each request so newly-registered messages show up
// without a restart.
func (api *API) docsHandler() gin.HandlerFunc {
	envelope := envelopeSchemas()
	return func(c *gin.Context) {
		messages := make(map[string]map[string]any)
		for _, name := range api.reg.Names() {
			md, ok := api.reg.Lookup(name)
			if !ok {
				continue
			}
			messages[name] = messageSchema(md, make(map[string]bool))
		}
		c.JSON(http.StatusOK, DocsIndex{
			Info:     api.info,
			Messages: messages,
			Envelope: envelope,
		})
	}
}

// envelopeSchemas describes this package's own Go response types
// (ErrorResponse, ErrorDetail) via invopop/jsonschema -- these are
// ordinary Go structs, not protobuf messages, so the protoreflect walk
// messageSchema does above does not apply to them.
func envelopeSchemas() map[string]any {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		RequiredFromJSONSchemaTags: false,
	}
	out := make(map[string]any)
	for name, t := range map[string]reflect.Type{
		"ErrorResponse": reflect.TypeOf(ErrorResponse{}),
		"ErrorDetail":   reflect.TypeOf(ErrorDetail{}),
	} {
		out[name] = reflector.Reflect(reflect.New(t).Interface())
	}
	return out
}
