package graphql

import (
	"strings"
	"sync"

	_ "embed"
)

//go:embed schema.graphqls
var schemaBase string

var (
	schemaExtensions []string
	schemaMu         sync.Mutex
)

// RegisterSchemaExtension appends type definitions to the base schema.
// Call from init() before the schema is parsed.
func RegisterSchemaExtension(schema string) {
	schemaMu.Lock()
	defer schemaMu.Unlock()
	schemaExtensions = append(schemaExtensions, strings.TrimSpace(schema))
}

// Schema returns base schema + registered extensions.
func Schema() string {
	schemaMu.Lock()
	ext := schemaExtensions
	schemaMu.Unlock()
	if len(ext) == 0 {
		return schemaBase
	}
	return schemaBase + "\n\n" + strings.Join(ext, "\n\n")
}

// InventoryItemsArgs matches the inventoryItems query arguments.
type InventoryItemsArgs struct {
	Search   *string
	Type     *string
	Category *string
	Stock    *string
}

// ExtensionArgs matches _extension(name, args). Args is a JSON object.
type ExtensionArgs struct {
	Name string
	Args *string
}
