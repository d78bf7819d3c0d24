package render

import (
	"bytes"
	"embed"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/IlyaGulya/ansible-collection-remnawave-panel/codegen/discovery"
	"github.com/IlyaGulya/ansible-collection-remnawave-panel/codegen/schema"
	"github.com/IlyaGulya/ansible-collection-remnawave-panel/core"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Renderer holds the parsed artifact templates.
type Renderer struct {
	templates *template.Template
}

// New parses the embedded templates once; template errors are programming
// errors and surface at startup.
func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"snake":        core.ToSnakeCase,
		"camel":        core.ToCamelCase,
		"lower":        strings.ToLower,
		"join":         strings.Join,
		"pyLiteral":    PyLiteral,
		"hasDefault":   func(v any) bool { return v != nil },
		"pyStringList": pyStringList,
		"yamlValue":    yamlValue,
		"exampleYAML":  exampleYAML,
		"fieldComment": FieldComment,
	}
	templates, err := template.New("render").Funcs(funcs).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing artifact templates: %w", err)
	}
	return &Renderer{templates: templates}, nil
}

// ModuleData is the template input for one generated module and its API
// reference page.
type ModuleData struct {
	ModuleName        string
	ResourceName      string
	Description       string
	IDParam           string
	LookupField       string
	Fields            []schema.Field
	UpdateFields      []schema.Field
	ReadOnlyFields    []string
	ResolveUUIDByName bool
	CollectionVersion string
	APIVersion        string

	CreatePath string
	GetAllPath string
	GetOnePath string
	UpdatePath string
	DeletePath string
	HasGetOne  bool
	HasUpdate  bool
	HasDelete  bool
}

// BuildModuleData resolves a discovered resource's schemas into template
// input. A missing create schema is the one fatal rendering failure.
func BuildModuleData(doc *openapi3.T, resource discovery.Resource, collectionVersion, apiVersion string) (*ModuleData, error) {
	createEndpoint := resource.Endpoints[discovery.KindCreate]
	createSchema, err := schema.MustByName(doc, createEndpoint.DTO)
	if err != nil {
		return nil, err
	}
	fields := schema.ExtractFields(createSchema, resource.ReadOnlyFields)
	applyFieldRenames(fields, resource.FieldRenames)

	updateFields := fields
	if updateEndpoint, ok := resource.Endpoints[discovery.KindUpdate]; ok {
		if updateEndpoint.DTO != "" && updateEndpoint.DTO != createEndpoint.DTO {
			if updateSchema := schema.ByName(doc, updateEndpoint.DTO); updateSchema != nil {
				updateFields = schema.ExtractFields(updateSchema, resource.ReadOnlyFields)
				applyFieldRenames(updateFields, resource.FieldRenames)
			}
		}
	}

	data := &ModuleData{
		ModuleName:        resource.ModuleName,
		ResourceName:      resource.ResourceName,
		Description:       resource.Describe(),
		IDParam:           resource.IDParam,
		LookupField:       resource.LookupField,
		Fields:            fields,
		UpdateFields:      updateFields,
		ReadOnlyFields:    resource.ReadOnlyFields,
		ResolveUUIDByName: resource.ResolveUUIDByName,
		CollectionVersion: collectionVersion,
		APIVersion:        apiVersion,
		CreatePath:        createEndpoint.Path,
		GetAllPath:        resource.Endpoints[discovery.KindGetAll].Path,
	}
	if ep, ok := resource.Endpoints[discovery.KindGetOne]; ok {
		data.GetOnePath = ep.Path
		data.HasGetOne = true
	}
	if ep, ok := resource.Endpoints[discovery.KindUpdate]; ok {
		data.UpdatePath = ep.Path
		data.HasUpdate = true
	}
	if ep, ok := resource.Endpoints[discovery.KindDelete]; ok {
		data.DeletePath = ep.Path
		data.HasDelete = true
	}
	return data, nil
}

func applyFieldRenames(fields []schema.Field, renames map[string]string) {
	for i, field := range fields {
		if renamed, ok := renames[field.Name]; ok {
			fields[i].SnakeName = core.ToSnakeCase(renamed)
		}
	}
}

// Module renders the Ansible module source for one resource.
func (r *Renderer) Module(data *ModuleData) (string, error) {
	return r.execute("module.py.tmpl", data)
}

// APIReference renders the Markdown reference page for one resource.
func (r *Renderer) APIReference(data *ModuleData) (string, error) {
	return r.execute("api_reference.md.tmpl", data)
}

// ModuleUtilsData is the template input for the shared module_utils file.
type ModuleUtilsData struct {
	ReadOnlyFields []string
}

// ModuleUtils renders the shared Python runtime that every generated module
// imports, carrying the global read-only field list.
func (r *Renderer) ModuleUtils(readOnlyFields []string) (string, error) {
	var buf bytes.Buffer
	data := ModuleUtilsData{ReadOnlyFields: readOnlyFields}
	if err := r.templates.ExecuteTemplate(&buf, "module_utils.py.tmpl", data); err != nil {
		return "", fmt.Errorf("rendering module_utils.py.tmpl: %w", err)
	}
	return buf.String(), nil
}

func (r *Renderer) execute(name string, data *ModuleData) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s for module %s: %w", name, data.ModuleName, err)
	}
	return buf.String(), nil
}

// ModuleFiles lists the module files generation would produce, sorted.
func ModuleFiles(resources []discovery.Resource) []string {
	files := make([]string, 0, len(resources))
	for _, r := range resources {
		files = append(files, r.ModuleName+".py")
	}
	sort.Strings(files)
	return files
}

// APIReferenceFiles lists the reference pages generation would produce,
// sorted. Used by dry-run output.
func APIReferenceFiles(resources []discovery.Resource) []string {
	files := make([]string, 0, len(resources))
	for _, r := range resources {
		if _, ok := r.Endpoints[discovery.KindCreate]; ok {
			files = append(files, r.ModuleName+".md")
		}
	}
	sort.Strings(files)
	return files
}

// PyLiteral formats a JSON-decoded value as Python source.
func PyLiteral(value any) string {
	switch v := value.(type) {
	case nil:
		return "None"
	case bool:
		if v {
			return "True"
		}
		return "False"
	case string:
		return fmt.Sprintf("%q", v)
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case int:
		return fmt.Sprintf("%d", v)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = PyLiteral(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%q: %s", k, PyLiteral(v[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func pyStringList(items []string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%q", item)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// yamlValue formats a scalar default for the DOCUMENTATION block.
func yamlValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case string:
		return fmt.Sprintf("%q", v)
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FieldComment summarizes a field's constraints for reference output:
// "required, str, format: uuid, maxLength: 32, default: true".
func FieldComment(field schema.Field) string {
	var parts []string
	if field.Required {
		parts = append(parts, "required")
	}
	parts = append(parts, field.Type)
	if field.Format != "" {
		parts = append(parts, "format: "+field.Format)
	}
	if field.MinLength != nil {
		parts = append(parts, fmt.Sprintf("minLength: %d", *field.MinLength))
	}
	if field.MaxLength != nil {
		parts = append(parts, fmt.Sprintf("maxLength: %d", *field.MaxLength))
	}
	if field.Min != nil {
		parts = append(parts, fmt.Sprintf("min: %s", trimFloat(*field.Min)))
	}
	if field.Max != nil {
		parts = append(parts, fmt.Sprintf("max: %s", trimFloat(*field.Max)))
	}
	if field.Default != nil {
		parts = append(parts, "default: "+yamlValue(field.Default))
	}
	return strings.Join(parts, ", ")
}

func trimFloat(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

// ExampleValue fabricates a plausible example for one field, keyed off its
// type, name and constraints.
func ExampleValue(field schema.Field) any {
	nameLower := strings.ToLower(field.SnakeName)

	switch field.Type {
	case "bool":
		if strings.Contains(nameLower, "active") ||
			strings.Contains(nameLower, "enabled") ||
			strings.Contains(nameLower, "tracking") {
			return false
		}
		return true
	case "float":
		return 1.0
	case "int":
		switch {
		case strings.Contains(nameLower, "port"):
			return 443
		case strings.Contains(nameLower, "percent"):
			return 80
		case strings.Contains(nameLower, "bytes"):
			return int64(10737418240)
		case strings.Contains(nameLower, "day"):
			if field.Min != nil {
				return int64(*field.Min)
			}
			return 1
		case field.Min != nil:
			return int64(*field.Min)
		}
		return 0
	case "str":
		if field.Format == "uuid" {
			return "00000000-0000-0000-0000-000000000001"
		}
		if field.MaxLength != nil && *field.MaxLength == 2 {
			return "US"
		}
		switch {
		case strings.Contains(nameLower, "name"):
			return "example-name"
		case strings.Contains(nameLower, "address"):
			return "203.0.113.10"
		case strings.Contains(nameLower, "code") && field.MaxLength != nil && *field.MaxLength <= 5:
			return "US"
		}
		return "example-value"
	case "list":
		if field.Elements == "str" || field.Elements == "" {
			if strings.Contains(nameLower, "tag") || strings.Contains(nameLower, "inbound") {
				if field.Format == "uuid" {
					return []any{"00000000-0000-0000-0000-000000000001"}
				}
				return []any{"EXAMPLE_TAG"}
			}
			return []any{"example-item"}
		}
		return []any{}
	case "dict":
		return map[string]any{}
	}
	return "example-value"
}

// exampleYAML renders an ExampleValue in flow style for a one-line YAML
// assignment.
func exampleYAML(field schema.Field) string {
	return flowYAML(ExampleValue(field))
}

func flowYAML(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case string:
		return fmt.Sprintf("%q", v)
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = flowYAML(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		if len(v) == 0 {
			return "{}"
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s: %s", k, flowYAML(v[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%v", v)
	}
}
