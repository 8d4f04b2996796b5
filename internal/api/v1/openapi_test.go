package apiv1

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docPath = "../../../public/docs/v1/openapi.yml"

func loadAPIDoc(t *testing.T) *openapi3.T {
	t.Helper()
	doc, err := openapi3.NewLoader().LoadFromFile(docPath)
	require.NoError(t, err)
	require.NoError(t, doc.Validate(context.Background()))
	return doc
}

func TestOpenAPIDocIsValid(t *testing.T) {
	doc := loadAPIDoc(t)
	assert.Equal(t, "PayU Starter API", doc.Info.Title)
}

func TestRegisteredRoutesMatchAPIDoc(t *testing.T) {
	doc := loadAPIDoc(t)

	app := fiber.New()
	RegisterHandlers(app, NewAPIServer())
	registered := map[string]bool{}
	for _, r := range app.GetRoutes() {
		registered[r.Method+" "+r.Path] = true
	}

	for path, item := range doc.Paths.Map() {
		for method := range item.Operations() {
			assert.True(t, registered[method+" "+path], "documented route %s %s is not registered", method, path)
		}
	}
}

func TestGetPingMatchesSchema(t *testing.T) {
	doc := loadAPIDoc(t)

	app := fiber.New()
	RegisterHandlers(app, NewAPIServer())
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.NoError(t, doc.Components.Schemas["Pong"].Value.VisitJSON(body))
}
