package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/reaandrew/cloudauditor/api"
	log "github.com/sirupsen/logrus"
)

type LambdaHandler func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// NewLambdaHandler serves API Gateway proxy requests through the same routes as
// the HTTP server. Failures are always reported in the response, never as a
// Lambda invocation error.
func NewLambdaHandler(a api.Api) LambdaHandler {
	return func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		log.WithFields(log.Fields{
			"method":     request.HTTPMethod,
			"path":       request.Path,
			"request_id": request.RequestContext.RequestID,
		}).Info("Handling API Gateway request")

		headers := corsHeaders(request)
		if request.HTTPMethod == http.MethodOptions {
			return events.APIGatewayProxyResponse{StatusCode: http.StatusNoContent, Headers: headers}, nil
		}

		response := a.Dispatch(ctx, request.HTTPMethod, request.Path)
		body, err := json.Marshal(response.Body)
		if err != nil {
			log.Printf("Error marshalling response body: %v", err)
			errorBody, _ := json.Marshal(api.ErrorBody{Detail: err.Error()})
			return toAPIGatewayResponse(http.StatusInternalServerError, string(errorBody), headers), nil
		}

		return toAPIGatewayResponse(response.StatusCode, string(body), headers), nil
	}
}

func toAPIGatewayResponse(statusCode int, body string, headers map[string]string) events.APIGatewayProxyResponse {
	headers["Content-Type"] = "application/json"
	return events.APIGatewayProxyResponse{
		StatusCode:      statusCode,
		Headers:         headers,
		Body:            body,
		IsBase64Encoded: false,
	}
}

// corsHeaders allows every origin, method and header. The caller's origin is
// echoed so credentialed requests are accepted.
func corsHeaders(request events.APIGatewayProxyRequest) map[string]string {
	headers := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, HEAD, POST, PUT, PATCH, DELETE, OPTIONS",
		"Access-Control-Allow-Headers": "*",
	}

	for name, value := range request.Headers {
		if strings.EqualFold(name, "Origin") && value != "" {
			headers["Access-Control-Allow-Origin"] = value
			headers["Access-Control-Allow-Credentials"] = "true"
			headers["Vary"] = "Origin"
		}
		if strings.EqualFold(name, "Access-Control-Request-Headers") && value != "" {
			headers["Access-Control-Allow-Headers"] = value
		}
	}
	return headers
}
