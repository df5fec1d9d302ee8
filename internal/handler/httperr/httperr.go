package httperr

import (
	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key the request logger stores the request id under.
const RequestIDKey = "request_id"

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail    any    `json:"detail,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func NewResponse(c *gin.Context, status int, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail, RequestID: c.GetString(RequestIDKey)}
	resp.Error.Message = msg
	return resp
}

// AbortWithError writes the response and records err on the context so the
// request logger reports the cause, not just the status.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := NewResponse(c, status, msg, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
