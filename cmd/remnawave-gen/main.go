// Command remnawave-gen generates Ansible modules and API reference pages
// for the Remnawave panel from its OpenAPI specification.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/spf13/cobra"

	"github.com/IlyaGulya/ansible-collection-remnawave-panel/codegen/discovery"
	"github.com/IlyaGulya/ansible-collection-remnawave-panel/codegen/genconfig"
	"github.com/IlyaGulya/ansible-collection-remnawave-panel/codegen/render"
	"github.com/IlyaGulya/ansible-collection-remnawave-panel/core"
)

var (
	configPath     string
	specPath       string
	outputDir      string
	moduleUtilsDir string
	apiRefDir      string
	dryRun         bool

	rootCmd = &cobra.Command{
		Use:     "remnawave-gen",
		Short:   "Generate Ansible modules from the Remnawave panel OpenAPI spec",
		Version: core.ClientVersion(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
)

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "config.yaml", "Generator configuration file")
	rootCmd.Flags().StringVar(&specPath, "spec", "", "OpenAPI specification file (overrides the config)")
	rootCmd.Flags().StringVar(&outputDir, "output", "", "Module output directory (overrides the config)")
	rootCmd.Flags().StringVar(&moduleUtilsDir, "module-utils", "", "module_utils output directory (overrides the config)")
	rootCmd.Flags().StringVar(&apiRefDir, "api-reference", "", "API reference output directory (overrides the config)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print discovered resources without writing files")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := genconfig.Load(configPath)
	if err != nil {
		return err
	}
	if specPath == "" {
		specPath = cfg.General.SpecFile
	}
	if outputDir == "" {
		outputDir = cfg.General.OutputDir
	}
	if moduleUtilsDir == "" {
		moduleUtilsDir = cfg.General.ModuleUtilsDir
	}
	if apiRefDir == "" {
		apiRefDir = cfg.General.APIReferenceDir
	}

	fmt.Printf("Loading OpenAPI spec from %s...\n", specPath)
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true
	doc, err := loader.LoadFromFile(specPath)
	if err != nil {
		return fmt.Errorf("loading OpenAPI spec %s: %w", specPath, err)
	}

	if err := discovery.CheckAPIVersion(doc, cfg.General.MinAPIVersion); err != nil {
		return err
	}
	apiVersion := discovery.APIVersion(doc)

	resources := discovery.Discover(doc, cfg)
	sort.Slice(resources, func(i, j int) bool {
		return resources[i].ModuleName < resources[j].ModuleName
	})

	if dryRun {
		printDiscovered(resources)
		return nil
	}
	return generate(doc, resources, cfg, apiVersion)
}

// printDiscovered renders one summary table per discovered resource.
func printDiscovered(resources []discovery.Resource) {
	fmt.Println("\nDiscovered resources:")
	summaries := make(core.RecordSet, 0, len(resources))
	for _, r := range resources {
		kinds := make([]string, 0, len(r.Endpoints))
		for kind := range r.Endpoints {
			kinds = append(kinds, string(kind))
		}
		sort.Strings(kinds)
		readOnly := r.ReadOnlyFields
		if len(readOnly) > 5 {
			readOnly = readOnly[:5]
		}
		summaries = append(summaries, core.Record{
			"name":             r.ModuleName,
			"tag":              r.ControllerTag,
			"resource_name":    r.ResourceName,
			"base_path":        r.BasePath,
			"id_param":         r.IDParam,
			"lookup_field":     r.LookupField,
			"endpoints":        strings.Join(kinds, ", "),
			"read_only_fields": strings.Join(readOnly, ", "),
		})
	}
	fmt.Println(summaries.PrettyTable())

	fmt.Println("Module files to generate:")
	fmt.Println("  - module_utils/remnawave.py")
	for _, name := range render.ModuleFiles(resources) {
		fmt.Printf("  - %s\n", name)
	}
	fmt.Println("\nAPI reference files to generate:")
	for _, name := range render.APIReferenceFiles(resources) {
		fmt.Printf("  - %s\n", name)
	}
}

func generate(doc *openapi3.T, resources []discovery.Resource, cfg *genconfig.Config, apiVersion string) error {
	renderer, err := render.New()
	if err != nil {
		return err
	}
	for _, dir := range []string{outputDir, moduleUtilsDir, apiRefDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}

	fmt.Println("Generating module_utils/remnawave.py...")
	utilsCode, err := renderer.ModuleUtils(cfg.ReadOnlyFields)
	if err != nil {
		return err
	}
	utilsPath := filepath.Join(moduleUtilsDir, "remnawave.py")
	if err := os.WriteFile(utilsPath, []byte(utilsCode), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", utilsPath, err)
	}
	fmt.Printf("  -> Generated %s\n", utilsPath)

	for _, resource := range resources {
		fmt.Printf("Generating %s.py...\n", resource.ModuleName)
		data, err := render.BuildModuleData(doc, resource, core.ClientVersion(), apiVersion)
		if err != nil {
			return fmt.Errorf("generating %s: %w", resource.ModuleName, err)
		}

		moduleCode, err := renderer.Module(data)
		if err != nil {
			return err
		}
		modulePath := filepath.Join(outputDir, resource.ModuleName+".py")
		if err := os.WriteFile(modulePath, []byte(moduleCode), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", modulePath, err)
		}
		fmt.Printf("  -> Generated %s\n", modulePath)

		refPage, err := renderer.APIReference(data)
		if err != nil {
			return err
		}
		refPath := filepath.Join(apiRefDir, resource.ModuleName+".md")
		if err := os.WriteFile(refPath, []byte(refPage), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", refPath, err)
		}
		fmt.Printf("  -> Generated %s\n", refPath)
	}

	fmt.Println("\nGeneration complete!")
	return nil
}
