package bridge

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/kulesy/TimePro-MCP/internal/mcp"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tools derives the tool list from the dispatcher catalog, one tool per method.
func Tools() []*sdkmcp.Tool {
	catalog := mcp.Catalog()
	tools := make([]*sdkmcp.Tool, 0, len(catalog))
	for _, method := range catalog {
		tools = append(tools, &sdkmcp.Tool{
			Name:        method.Name,
			Description: method.Description,
			InputSchema: inputSchema(method.Params),
		})
	}
	return tools
}

// inputSchema always carries properties and required, even when empty.
func inputSchema(params []mcp.ParamSpec) any {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(params)),
		Required:   []string{},
	}
	for _, p := range params {
		schema.Properties[p.Name] = &jsonschema.Schema{
			Type:        schemaType(p.Kind),
			Description: p.Description,
		}
		if p.Required {
			schema.Required = append(schema.Required, p.Name)
		}
	}

	data, err := json.Marshal(schema)
	if err != nil {
		return schema
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return schema
	}
	if _, ok := doc["properties"]; !ok {
		doc["properties"] = map[string]any{}
	}
	if _, ok := doc["required"]; !ok {
		doc["required"] = []string{}
	}
	return doc
}

func schemaType(kind mcp.ParamKind) string {
	switch kind {
	case mcp.KindInt:
		return "integer"
	case mcp.KindDouble:
		return "number"
	default:
		return "string"
	}
}
