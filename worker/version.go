package worker

import "golang.org/x/mod/semver"

// ProtocolVersion is the version of the Accumulate message layout.
const ProtocolVersion = "v1.0.0"

// IsCompatibleVersion reports whether a peer speaking version v can exchange
// units with this build. Only the major version has to match.
func IsCompatibleVersion(v string) bool {
	if !semver.IsValid(v) {
		return false
	}
	return semver.Major(v) == semver.Major(ProtocolVersion)
}
