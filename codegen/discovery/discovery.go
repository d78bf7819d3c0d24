package discovery

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	version "github.com/hashicorp/go-version"

	"github.com/IlyaGulya/ansible-collection-remnawave-panel/codegen/genconfig"
	"github.com/IlyaGulya/ansible-collection-remnawave-panel/codegen/schema"
	"github.com/IlyaGulya/ansible-collection-remnawave-panel/core"
)

const schemaRefPrefix = "#/components/schemas/"

var idParamRe = regexp.MustCompile(`\{(\w+)\}`)

// collectionMethods is the fixed visiting order of path-item operations.
var collectionMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE"}

// CollectOperations flattens the document's path items into Operation values
// grouped by controller tag. An operation bearing multiple tags appears once
// under every tag.
func CollectOperations(doc *openapi3.T) map[string][]Operation {
	controllers := make(map[string][]Operation)
	if doc.Paths == nil {
		return controllers
	}
	paths := doc.Paths.Map()
	pathKeys := make([]string, 0, len(paths))
	for path := range paths {
		pathKeys = append(pathKeys, path)
	}
	sort.Strings(pathKeys)
	for _, path := range pathKeys {
		item := paths[path]
		if item == nil {
			continue
		}
		for _, method := range collectionMethods {
			op := item.GetOperation(method)
			if op == nil {
				continue
			}
			flattened := Operation{
				Method:               method,
				Path:                 path,
				OperationID:          op.OperationID,
				Tags:                 op.Tags,
				RequestBodySchemaRef: requestBodySchemaRef(op),
				ResponseSchemaRef:    responseSchemaRef(op),
			}
			for _, tag := range op.Tags {
				controllers[tag] = append(controllers[tag], flattened)
			}
		}
	}
	return controllers
}

func requestBodySchemaRef(op *openapi3.Operation) string {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return ""
	}
	mt, ok := op.RequestBody.Value.Content["application/json"]
	if !ok || mt.Schema == nil {
		return ""
	}
	return mt.Schema.Ref
}

// responseSchemaRef prefers status 200 over 201 and stops at the first
// declared status, whether or not it carries a usable ref.
func responseSchemaRef(op *openapi3.Operation) string {
	if op.Responses == nil {
		return ""
	}
	responses := op.Responses.Map()
	for _, status := range []string{"200", "201"} {
		resp, ok := responses[status]
		if !ok {
			continue
		}
		if resp == nil || resp.Value == nil {
			return ""
		}
		mt, ok := resp.Value.Content["application/json"]
		if !ok || mt.Schema == nil {
			return ""
		}
		return mt.Schema.Ref
	}
	return ""
}

// ExtractDTOFromRef extracts the schema name from a component $ref string.
// Refs outside #/components/schemas/ yield "".
func ExtractDTOFromRef(ref string) string {
	if !strings.HasPrefix(ref, schemaRefPrefix) {
		return ""
	}
	parts := strings.Split(ref, "/")
	return parts[len(parts)-1]
}

// DetectIDParam extracts the placeholder name from a path template like
// /api/nodes/{uuid}.
func DetectIDParam(path string) string {
	match := idParamRe.FindStringSubmatch(path)
	if match == nil {
		return ""
	}
	return match[1]
}

// DetectLookupField picks the human-meaningful locator property of the create
// schema: a required string property literally named "name" wins; otherwise
// the first (in sorted property order) required string property carrying a
// length or pattern constraint; "" when none qualifies.
func DetectLookupField(createSchema *openapi3.Schema) string {
	required := make(map[string]struct{}, len(createSchema.Required))
	for _, name := range createSchema.Required {
		required[name] = struct{}{}
	}
	if prop, ok := createSchema.Properties["name"]; ok && prop.Value != nil {
		if _, isRequired := required["name"]; isRequired && schema.TypeOf(prop.Value) == "string" {
			return "name"
		}
	}
	names := make([]string, 0, len(createSchema.Properties))
	for name := range createSchema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, isRequired := required[name]; !isRequired {
			continue
		}
		prop := createSchema.Properties[name].Value
		if prop == nil || schema.TypeOf(prop) != "string" {
			continue
		}
		if prop.MinLength != 0 || prop.MaxLength != nil || prop.Pattern != "" {
			return name
		}
	}
	return ""
}

// ComputeReadOnlyFields returns the response schema's property names that the
// create schema does not accept, sorted alphabetically. Response schemas
// wrapped in an enclosing "response" property are unwrapped first.
func ComputeReadOnlyFields(createSchema, responseSchema *openapi3.Schema) []string {
	createFields := make(map[string]struct{}, len(createSchema.Properties))
	for name := range createSchema.Properties {
		createFields[name] = struct{}{}
	}
	responseProps := responseSchema.Properties
	if inner, ok := responseProps["response"]; ok && inner.Value != nil {
		responseProps = inner.Value.Properties
	}
	var readOnly []string
	for name := range responseProps {
		if _, accepted := createFields[name]; !accepted {
			readOnly = append(readOnly, name)
		}
	}
	sort.Strings(readOnly)
	return readOnly
}

// DeriveResourceNameFromTag strips a trailing " Controller" and singularizes
// a trailing non-"ss" s: "Nodes Controller" -> "Node", "Config Profiles
// Controller" -> "Config Profile".
func DeriveResourceNameFromTag(tag string) string {
	name := strings.TrimSpace(strings.ReplaceAll(tag, " Controller", ""))
	if strings.HasSuffix(name, "s") && !strings.HasSuffix(name, "ss") {
		name = name[:len(name)-1]
	}
	return name
}

// DeriveModuleNameFromResource snake-cases the resource name with spaces
// removed: "Config Profile" -> "config_profile".
func DeriveModuleNameFromResource(resourceName string) string {
	return core.ToSnakeCase(strings.ReplaceAll(resourceName, " ", ""))
}

// Discover classifies every tagged operation in the document and assembles
// the Resource descriptors the renderer consumes. The result order follows
// map iteration of the tag grouping; callers requiring determinism sort
// explicitly.
func Discover(doc *openapi3.T, cfg *genconfig.Config) []Resource {
	include := toSet(cfg.Discovery.IncludeControllers)
	exclude := toSet(cfg.Discovery.ExcludeControllers)

	controllers := CollectOperations(doc)
	var resources []Resource

	for tag, operations := range controllers {
		if len(include) > 0 {
			if _, ok := include[tag]; !ok {
				continue
			}
		}
		if _, ok := exclude[tag]; ok {
			continue
		}

		endpoints := make(map[Kind]Endpoint)
		var basePath, idParam string

		for _, op := range operations {
			kind := Classify(op)
			if kind == KindNone {
				continue
			}
			// Last one wins when a tag carries several operations of the
			// same kind; no upstream precedence is defined.
			endpoints[kind] = Endpoint{
				Path:        op.Path,
				Method:      op.Method,
				DTO:         ExtractDTOFromRef(op.RequestBodySchemaRef),
				ResponseDTO: ExtractDTOFromRef(op.ResponseSchemaRef),
			}
			switch {
			case kind == KindCreate:
				basePath = op.Path
			case (kind == KindGetOne || kind == KindDelete) && strings.Contains(op.Path, "{"):
				idParam = DetectIDParam(op.Path)
			}
		}

		if _, ok := endpoints[KindCreate]; !ok {
			continue
		}
		if _, ok := endpoints[KindGetAll]; !ok {
			continue
		}

		resourceName := DeriveResourceNameFromTag(tag)
		moduleName := DeriveModuleNameFromResource(resourceName)

		createDTO := endpoints[KindCreate].DTO
		if createDTO == "" {
			continue
		}
		createSchema := schema.ByName(doc, createDTO)
		if createSchema == nil {
			continue
		}

		lookupField := DetectLookupField(createSchema)
		if lookupField == "" {
			lookupField = "name"
		}

		var readOnly []string
		if responseDTO := endpoints[KindCreate].ResponseDTO; responseDTO != "" {
			if responseSchema := schema.ByName(doc, responseDTO); responseSchema != nil {
				readOnly = ComputeReadOnlyFields(createSchema, responseSchema)
			}
		}

		if idParam == "" {
			idParam = "uuid"
		}
		resource := Resource{
			ControllerTag:  tag,
			ResourceName:   resourceName,
			ModuleName:     moduleName,
			BasePath:       basePath,
			IDParam:        idParam,
			LookupField:    lookupField,
			Endpoints:      endpoints,
			ReadOnlyFields: readOnly,
		}
		applyOverrides(&resource, cfg.ModuleOverrides[moduleName], cfg.ReadOnlyFields)
		resources = append(resources, resource)
	}
	return resources
}

// applyOverrides merges the per-module override record into a discovered
// resource. Read-only fields are a union (global + schema-derived +
// override), never a subtraction; the remaining overrides replace outright.
func applyOverrides(resource *Resource, override genconfig.ModuleOverride, globalReadOnly []string) {
	union := make(map[string]struct{})
	for _, f := range globalReadOnly {
		union[f] = struct{}{}
	}
	for _, f := range resource.ReadOnlyFields {
		union[f] = struct{}{}
	}
	for _, f := range override.ReadOnlyFields {
		union[f] = struct{}{}
	}
	merged := make([]string, 0, len(union))
	for f := range union {
		merged = append(merged, f)
	}
	sort.Strings(merged)
	resource.ReadOnlyFields = merged

	if override.LookupField != "" {
		resource.LookupField = override.LookupField
	}
	if override.IDParam != "" {
		resource.IDParam = override.IDParam
	}
	if override.Description != "" {
		resource.Description = override.Description
	}
	if override.ResolveUUIDByName {
		resource.ResolveUUIDByName = true
	}
	if override.FieldRenames != nil {
		resource.FieldRenames = override.FieldRenames
	}
}

// Describe returns the module description: the configured override when set,
// otherwise a generated "Manage Remnawave panel <plural>" line. Pluralization
// is naive (word + "s"); that is a cosmetic limitation.
func (r Resource) Describe() string {
	if r.Description != "" {
		return r.Description
	}
	words := strings.Split(strings.ToLower(r.ResourceName), " ")
	words[len(words)-1] += "s"
	return fmt.Sprintf("Manage Remnawave panel %s", strings.Join(words, " "))
}

// APIVersion extracts info.version from the document, "unknown" when absent.
func APIVersion(doc *openapi3.T) string {
	if doc.Info == nil || doc.Info.Version == "" {
		return "unknown"
	}
	return doc.Info.Version
}

// CheckAPIVersion gates generation on a minimum supported panel API version.
// An empty minimum or an unparsable spec version disables the gate.
func CheckAPIVersion(doc *openapi3.T, minSupported string) error {
	if minSupported == "" {
		return nil
	}
	minVer, err := version.NewVersion(minSupported)
	if err != nil {
		return fmt.Errorf("invalid min_api_version %q: %w", minSupported, err)
	}
	specVer, err := version.NewVersion(APIVersion(doc))
	if err != nil {
		return nil
	}
	if specVer.LessThan(minVer) {
		return fmt.Errorf(
			"panel API version %s is older than the minimum supported version %s",
			specVer, minVer,
		)
	}
	return nil
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
