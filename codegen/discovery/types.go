// Package discovery classifies raw OpenAPI operations into CRUD semantics and
// derives per-resource metadata for module generation.
package discovery

// Kind is the CRUD classification of an operation.
type Kind string

const (
	KindCreate Kind = "create"
	KindGetAll Kind = "get_all"
	KindGetOne Kind = "get_one"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"

	// KindNone marks an operation that does not match any CRUD shape.
	KindNone Kind = ""
)

// Operation is a flattened view of a single path-item operation, populated
// once at collection time so classification never probes nested spec
// fragments.
type Operation struct {
	Method               string   // upper-case HTTP method
	Path                 string   // path template, e.g. "/api/nodes/{uuid}"
	OperationID          string   // e.g. "NodesController_createNode"
	Tags                 []string // controller tags
	RequestBodySchemaRef string   // raw $ref of the application/json request body schema
	ResponseSchemaRef    string   // raw $ref of the preferred (200, then 201) response schema
}

// Endpoint records the operation chosen for one CRUD kind of a resource.
type Endpoint struct {
	Path        string
	Method      string
	DTO         string // request body schema name
	ResponseDTO string // response schema name
}

// Resource is an auto-discovered panel resource. A resource is only emitted
// when its endpoints contain at least create and get_all.
type Resource struct {
	ControllerTag     string            // "Nodes Controller"
	ResourceName      string            // "Node"
	ModuleName        string            // "node"
	BasePath          string            // "/api/nodes"
	IDParam           string            // "uuid"
	LookupField       string            // "name"
	Description       string            // override from config, empty otherwise
	Endpoints         map[Kind]Endpoint // at most one endpoint per kind
	ReadOnlyFields    []string          // sorted union: global + schema diff + override
	ResolveUUIDByName bool
	FieldRenames      map[string]string
}
