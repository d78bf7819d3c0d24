package core

const (
	HeaderAccept        = "Accept"
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderUserAgent     = "User-Agent"

	ContentTypeJSON = "application/json"

	AuthTypeBearer = "Bearer"
)

// DefaultReadOnlyFields lists panel response properties that are never accepted
// on create or update. They are reported by the API (camelCase, as on the wire)
// but must be excluded from desired/current comparisons. Callers pass this set
// (or an extended one) explicitly into RecursiveDiff.
var DefaultReadOnlyFields = []string{
	"uuid",
	"createdAt",
	"updatedAt",
	"isConnected",
	"isConnecting",
	"isDisabled",
	"isNodeOnline",
	"isXrayRunning",
	"xrayUptime",
	"xrayVersion",
	"nodeVersion",
	"usersOnline",
	"lastStatusChange",
	"lastStatusMessage",
	"cpuCount",
	"cpuModel",
	"totalRam",
	"publicIp",
	"viewPosition",
	"activeInbounds",
	"activeConfigProfileUuid",
	"activeInboundsCount",
	"excludedInboundsCount",
}
