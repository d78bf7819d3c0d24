package core

// clientVersion is the version of this client library.
// Bump on release.
const clientVersion = "1.2.0"

// ClientVersion returns the version string of the client library.
func ClientVersion() string {
	return clientVersion
}
