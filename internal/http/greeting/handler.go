package greeting

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/devops-greeter/internal/platform/logging"
)

// Path is the greeting route.
const Path = "/"

// Register wires the greeting route into the provided API.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-greeting",
		Method:      http.MethodGet,
		Path:        Path,
		Summary:     "Get greeting",
		Description: "Returns a fixed plain-text greeting. The request is not inspected.",
		Tags:        []string{"Greeting"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Greeting text",
				Content: map[string]*huma.MediaType{
					ContentType: {Schema: &huma.Schema{Type: huma.TypeString, Examples: []any{Message}}},
				},
			},
		},
	}, getHandler)
}

func getHandler(ctx context.Context, _ *struct{}) (*Output, error) {
	applog.LoggerFromContext(ctx).Debug("greeting served", zap.String("path", Path))
	return &Output{ContentType: ContentType, Body: []byte(Message)}, nil
}
