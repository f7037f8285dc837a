package api

import (
	"context"
	"net/http"

	"github.com/reaandrew/cloudauditor/core"
	log "github.com/sirupsen/logrus"
)

const RootMessage = "Cloud Auditor Backend is Running!"

// FindingsService is what the API needs from the findings service.
type FindingsService interface {
	ListFindings(ctx context.Context) ([]core.Finding, error)
	GetStats(ctx context.Context) (core.Stats, error)
}

type MessageBody struct {
	Message string `json:"message"`
}

type ErrorBody struct {
	Detail string `json:"detail"`
}

// Response is a transport independent result: a status code and a body to
// be encoded as JSON.
type Response struct {
	StatusCode int
	Body       interface{}
}

// Api is the route table shared by the HTTP server and the Lambda handler.
type Api struct {
	Service FindingsService
}

func NewApi(service FindingsService) Api {
	return Api{Service: service}
}

// Dispatch resolves method and path to a route and runs it.
func (a Api) Dispatch(ctx context.Context, method, path string) Response {
	var handle func(context.Context) Response
	switch path {
	case "/":
		handle = a.root
	case "/findings":
		handle = a.findings
	case "/stats":
		handle = a.stats
	default:
		return errorResponse(http.StatusNotFound, "Not Found")
	}

	if method != http.MethodGet {
		return errorResponse(http.StatusMethodNotAllowed, "Method Not Allowed")
	}
	return handle(ctx)
}

func (a Api) root(ctx context.Context) Response {
	return Response{StatusCode: http.StatusOK, Body: MessageBody{Message: RootMessage}}
}

func (a Api) findings(ctx context.Context) Response {
	findings, err := a.Service.ListFindings(ctx)
	if err != nil {
		return failure("/findings", err)
	}
	return Response{StatusCode: http.StatusOK, Body: findings}
}

func (a Api) stats(ctx context.Context) Response {
	stats, err := a.Service.GetStats(ctx)
	if err != nil {
		return failure("/stats", err)
	}
	return Response{StatusCode: http.StatusOK, Body: stats}
}

// failure is the single place where errors become HTTP 500 responses.
func failure(route string, err error) Response {
	log.WithError(err).WithField("route", route).Error("Request failed")
	return errorResponse(http.StatusInternalServerError, err.Error())
}

func errorResponse(statusCode int, detail string) Response {
	return Response{StatusCode: statusCode, Body: ErrorBody{Detail: detail}}
}
