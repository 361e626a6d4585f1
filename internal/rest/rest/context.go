package rest

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/seventv/common/errors"
	"github.com/valyala/fasthttp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Ctx struct {
	*fasthttp.RequestCtx
}

type APIError = errors.APIError

func (c *Ctx) JSON(status HttpStatusCode, v interface{}) APIError {
	b, err := json.Marshal(v)
	if err != nil {
		c.SetStatusCode(InternalServerError)

		return errors.ErrInternalServerError().
			SetDetail("JSON Parsing Failed").
			SetFields(errors.Fields{"JSON_ERROR": err.Error()})
	}

	c.SetStatusCode(status)
	c.SetContentType("application/json")
	c.SetBody(b)

	return nil
}

// Error writes the standard error body for err.
func (c *Ctx) Error(err APIError) {
	if c.StatusCode() < 400 {
		c.SetStatusCode(HttpStatusCode(err.ExpectedHTTPStatus()))
	}

	b, _ := json.Marshal(&APIErrorResponse{
		Status:     c.StatusCode().String(),
		StatusCode: c.StatusCode(),
		Error:      err.Message(),
		ErrorCode:  err.Code(),
		Details:    err.GetFields(),
	})

	c.SetContentType("application/json")
	c.SetBody(b)
}

func (c *Ctx) SetStatusCode(code HttpStatusCode) {
	c.RequestCtx.SetStatusCode(int(code))
}

func (c *Ctx) StatusCode() HttpStatusCode {
	return HttpStatusCode(c.RequestCtx.Response.StatusCode())
}
