package pagetags

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-pagetags/pkg/model"
)

// LoadForm reads an OpenAPI 3 document from path and builds the form for
// operationID from its JSON request body.
func LoadForm(ctx context.Context, path, operationID string) (model.FormModel, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return model.FormModel{}, fmt.Errorf("pagetags: openapi path is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("pagetags: read openapi document: %w", err)
	}
	return model.FromOpenAPI(ctx, raw, operationID)
}
