package discovery

import (
	"net/http"
	"strings"
)

// baseSegmentCount is the number of path segments forming a resource base,
// e.g. ["api", "nodes"] in /api/nodes/{uuid}.
const baseSegmentCount = 2

// getAllExclusions are identifier substrings that disqualify a bare GET from
// being a collection read; they mark sub-resource reads like getInbounds or
// getStats.
var getAllExclusions = []string{"tags", "inbound", "stats", "settings"}

// classifyRule matches one row of the classification table: HTTP method,
// path-parameter presence, and an operation-identifier predicate.
type classifyRule struct {
	method    string
	hasParam  bool
	matchName func(methodName string) bool
	kind      Kind
}

// classifyRules is the ordered rule table. The first matching rule wins, so
// new rules slot in with explicit precedence.
var classifyRules = []classifyRule{
	{
		method:   http.MethodPost,
		hasParam: false,
		matchName: func(name string) bool {
			return strings.Contains(name, "create")
		},
		kind: KindCreate,
	},
	{
		method:   http.MethodGet,
		hasParam: true,
		matchName: func(name string) bool {
			return strings.Contains(name, "getone") ||
				strings.Contains(name, "byuuid") ||
				strings.Contains(name, "byname")
		},
		kind: KindGetOne,
	},
	{
		method:   http.MethodGet,
		hasParam: false,
		matchName: func(name string) bool {
			if strings.Contains(name, "getall") {
				return true
			}
			if !strings.HasPrefix(name, "get") {
				return false
			}
			for _, excluded := range getAllExclusions {
				if strings.Contains(name, excluded) {
					return false
				}
			}
			return true
		},
		kind: KindGetAll,
	},
	{
		method:   http.MethodPatch,
		hasParam: false,
		matchName: func(name string) bool {
			return strings.Contains(name, "update")
		},
		kind: KindUpdate,
	},
	{
		method:   http.MethodDelete,
		hasParam: true,
		matchName: func(name string) bool {
			return strings.Contains(name, "delete")
		},
		kind: KindDelete,
	},
}

// Classify maps an operation to its CRUD kind, or KindNone when it does not
// match a standard CRUD pattern. The function is pure and total: ambiguity
// and non-CRUD shapes are a silent KindNone, never an error, which keeps
// discovery total over arbitrary specs.
func Classify(op Operation) Kind {
	hasPathParam := strings.Contains(op.Path, "{")
	if !isBaseCRUDPath(op.Path, hasPathParam) {
		return KindNone
	}
	methodName := methodNameFromOperationID(op.OperationID)
	method := strings.ToUpper(op.Method)
	for _, rule := range classifyRules {
		if rule.method != method || rule.hasParam != hasPathParam {
			continue
		}
		if rule.matchName(methodName) {
			return rule.kind
		}
	}
	return KindNone
}

// isBaseCRUDPath rejects paths carrying non-parameter segments beyond the two
// base segments. That excludes sub-resource actions like
// /api/nodes/{uuid}/restart and nested collections like
// /api/config-profiles/inbounds.
func isBaseCRUDPath(path string, hasPathParam bool) bool {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if !hasPathParam {
		return len(segments) <= baseSegmentCount
	}
	for _, s := range segments[min(baseSegmentCount, len(segments)):] {
		if !strings.HasPrefix(s, "{") {
			return false
		}
	}
	return true
}

// methodNameFromOperationID lowers the operation identifier and keeps the
// substring after the last underscore: "NodesController_createNode" ->
// "createnode", "createNode" -> "createnode".
func methodNameFromOperationID(operationID string) string {
	id := strings.ToLower(operationID)
	if idx := strings.LastIndex(id, "_"); idx >= 0 {
		return id[idx+1:]
	}
	return id
}
