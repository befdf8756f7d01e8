package model

// Remote identifies a source location serving content, together with the
// verification policy to apply when pulling from it.
//
// Two remotes are the same remote iff their Name and URL are equal.
// A finder discovering the same physical location twice must canonicalize
// the location before constructing the Remote, so that a single Result is
// emitted per physical remote.
type Remote struct {
	Name             string `json:"name" yaml:"name"`
	URL              string `json:"url" yaml:"url"`
	GPGVerify        bool   `json:"gpg-verify" yaml:"gpg-verify"`
	GPGVerifySummary bool   `json:"gpg-verify-summary" yaml:"gpg-verify-summary"`
	_                struct{}
}

func (r Remote) String() string {
	return r.Name
}

// Equal tells whether two remotes identify the same source location.
// Verification policy flags do not contribute to identity.
func (r Remote) Equal(other Remote) bool {
	return r.Name == other.Name && r.URL == other.URL
}
