package ginpbjson

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/deepankarm/pbjson/pkg/pbjson"
	"github.com/deepankarm/pbjson/pkg/protoadapter"
)

// decodeHandler returns a gin.HandlerFunc that decodes the request body
// as fullName's JSON representation and echoes back the canonical
// protojson re-encoding for confirmation (spec §4.12): this repository
// never builds a general encoder, so "show me what you decoded" is
// satisfied by handing the populated dynamicpb.Message to
// protojson.Marshal rather than by writing one here.
func (api *API) decodeHandler(fullName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		desc, err := api.reg.Descriptor(fullName)
		if err != nil {
			status, body := errorResponse(err)
			c.JSON(status, body)
			c.Abort()
			return
		}

		msg, err := api.reg.NewMessage(fullName)
		if err != nil {
			status, body := errorResponse(err)
			c.JSON(status, body)
			c.Abort()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
			c.Abort()
			return
		}

		sink := protoadapter.NewSink(msg)
		api.mu.RLock()
		opts := api.opts
		api.mu.RUnlock()

		driver, err := pbjson.Create(desc, sink, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			c.Abort()
			return
		}

		if _, err := driver.Feed(body); err != nil {
			status, respBody := errorResponse(err)
			c.JSON(status, respBody)
			c.Abort()
			return
		}
		if err := driver.End(); err != nil {
			status, respBody := errorResponse(err)
			c.JSON(status, respBody)
			c.Abort()
			return
		}

		out, err := protojson.Marshal(msg.Interface())
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "decoded message could not be re-encoded: " + err.Error()})
			c.Abort()
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", out)
	}
}
