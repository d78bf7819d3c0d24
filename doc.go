/*
Package remnawave provides a client for the Remnawave panel REST API and the
building blocks shared by the generated Ansible modules for it.

It wraps raw HTTP operations in a small CRUD surface (GetAll, GetOne, Create,
Update, Delete) over JSON records, plus the supporting pieces the modules
need: camelCase/snake_case normalization, a read-only-aware recursive diff
for idempotency checks, and name-to-UUID resolution for config profiles and
their inbounds.

The companion remnawave-gen command discovers CRUD resources in the panel's
OpenAPI specification and renders one Ansible module per resource.

The main entry point is the Client, which is initialized from a PanelConfig
carrying the panel base URL, an API token and TLS/timeout settings.
*/
package remnawave
