package rest

import (
	"github.com/fasthttp/router"
)

type Route interface {
	Config() RouteConfig
	Handler(ctx *Ctx) APIError
}

type Router = router.Router

type RouteConfig struct {
	URI        string
	Method     RouteMethod
	Children   []Route
	Middleware []Middleware
}

type RouteMethod string

const (
	GET     RouteMethod = "GET"
	POST    RouteMethod = "POST"
	OPTIONS RouteMethod = "OPTIONS"
)

type Middleware = func(ctx *Ctx) APIError

type APIErrorResponse struct {
	StatusCode HttpStatusCode         `json:"status_code"`
	Status     string                 `json:"status"`
	Error      string                 `json:"error"`
	ErrorCode  int                    `json:"error_code"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

type HttpStatusCode int

const (
	OK                  HttpStatusCode = 200
	NoContent           HttpStatusCode = 204
	BadRequest          HttpStatusCode = 400
	NotFound            HttpStatusCode = 404
	MethodNotAllowed    HttpStatusCode = 405
	InternalServerError HttpStatusCode = 500
	ServiceUnavailable  HttpStatusCode = 503
)

// String returns the status text of the code
func (c HttpStatusCode) String() string {
	if s, ok := codeTextMap[c]; ok {
		return s
	}

	return "Unknown"
}

var codeTextMap = map[HttpStatusCode]string{
	OK:                  "OK",
	NoContent:           "No Content",
	BadRequest:          "Bad Request",
	NotFound:            "Not Found",
	MethodNotAllowed:    "Method Not Allowed",
	InternalServerError: "Internal Server Error",
	ServiceUnavailable:  "Service Unavailable",
}
