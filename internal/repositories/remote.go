package repositories

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Manifest is one version of a package as listed by a repository.
type Manifest struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	Unity       string `json:"unity,omitempty"`
	URL         string `json:"url"`
	ZipSHA256   string `json:"zipSHA256,omitempty"`
	VRCGet      struct {
		Yanked json.RawMessage `json:"yanked,omitempty"`
	} `json:"vrc-get"`
}

// Yanked reports whether the version was withdrawn. The marker is either
// true or a non-empty reason string.
func (m Manifest) Yanked() bool {
	if len(m.VRCGet.Yanked) == 0 {
		return false
	}
	var flag bool
	if err := json.Unmarshal(m.VRCGet.Yanked, &flag); err == nil {
		return flag
	}
	var reason string
	if err := json.Unmarshal(m.VRCGet.Yanked, &reason); err == nil {
		return reason != ""
	}
	return false
}

// Title is the display name, or the package name when none is set.
func (m Manifest) Title() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.Name
}

// Package is every listed version of one package, newest first.
type Package struct {
	Name     string
	Versions []Manifest
}

// Latest returns the newest stable version that is not yanked, falling back
// to the newest prerelease and then to a yanked version.
func (p Package) Latest() (Manifest, bool) {
	if len(p.Versions) == 0 {
		return Manifest{}, false
	}
	var prerelease *Manifest
	for i, m := range p.Versions {
		if m.Yanked() {
			continue
		}
		if v, err := semver.NewVersion(m.Version); err == nil && v.Prerelease() == "" {
			return m, true
		}
		if prerelease == nil {
			prerelease = &p.Versions[i]
		}
	}
	if prerelease != nil {
		return *prerelease, true
	}
	return p.Versions[0], true
}

// Version returns the manifest for an exact version string.
func (p Package) Version(version string) (Manifest, bool) {
	for _, m := range p.Versions {
		if m.Version == version {
			return m, true
		}
	}
	return Manifest{}, false
}

// Remote is a parsed repository document. Unknown top-level fields are kept
// so the cached document round-trips.
type Remote struct {
	raw      map[string]json.RawMessage
	name     string
	url      string
	id       string
	packages []Package
}

type remotePackages struct {
	Versions map[string]Manifest `json:"versions"`
}

// Parse decodes a repository document. A leading UTF-8 BOM is ignored. When
// the document declares no url, fetchURL is used, and the id then defaults to
// that url.
func Parse(body []byte, fetchURL string) (*Remote, error) {
	body = bytes.TrimPrefix(body, utf8BOM)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRepository, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: document is not an object", ErrInvalidRepository)
	}

	r := &Remote{raw: raw}
	for key, dst := range map[string]*string{"name": &r.name, "url": &r.url, "id": &r.id} {
		v, ok := raw[key]
		if !ok || string(v) == "null" {
			continue
		}
		if err := json.Unmarshal(v, dst); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRepository, key, err)
		}
	}

	if v, ok := raw["packages"]; ok && string(v) != "null" {
		var pkgs map[string]remotePackages
		if err := json.Unmarshal(v, &pkgs); err != nil {
			return nil, fmt.Errorf("%w: packages: %v", ErrInvalidRepository, err)
		}
		r.packages = buildPackages(pkgs)
	}

	if fetchURL != "" {
		r.setURLIfNone(fetchURL)
	}
	return r, nil
}

func buildPackages(pkgs map[string]remotePackages) []Package {
	out := make([]Package, 0, len(pkgs))
	for name, p := range pkgs {
		versions := make([]Manifest, 0, len(p.Versions))
		for key, m := range p.Versions {
			if m.Version == "" {
				m.Version = key
			}
			if m.Name == "" {
				m.Name = name
			}
			versions = append(versions, m)
		}
		sort.SliceStable(versions, func(i, j int) bool {
			return newerThan(versions[i].Version, versions[j].Version)
		})
		out = append(out, Package{Name: name, Versions: versions})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// newerThan orders semantic versions descending; unparsable versions sort
// after valid ones.
func newerThan(a, b string) bool {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	switch {
	case errA == nil && errB == nil:
		if c := va.Compare(vb); c != 0 {
			return c > 0
		}
		return a > b
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a > b
	}
}

func (r *Remote) setURLIfNone(url string) {
	if r.url != "" {
		return
	}
	r.url = url
	r.raw["url"] = mustMarshal(url)
	r.setIDIfNone(url)
}

func (r *Remote) setIDIfNone(id string) {
	if r.id != "" {
		return
	}
	r.id = id
	r.raw["id"] = mustMarshal(id)
}

func mustMarshal(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

// Name is the repository's display name.
func (r *Remote) Name() string { return r.name }

// URL is the repository's canonical url.
func (r *Remote) URL() string { return r.url }

// ID is the repository identifier.
func (r *Remote) ID() string { return r.id }

// Packages lists the packages sorted by name.
func (r *Remote) Packages() []Package { return r.packages }

// Package looks up a package by name.
func (r *Remote) Package(name string) (Package, bool) {
	i := sort.Search(len(r.packages), func(i int) bool { return r.packages[i].Name >= name })
	if i < len(r.packages) && r.packages[i].Name == name {
		return r.packages[i], true
	}
	return Package{}, false
}

// VersionCount is the number of listed package versions.
func (r *Remote) VersionCount() int {
	n := 0
	for _, p := range r.packages {
		n += len(p.Versions)
	}
	return n
}

// MarshalJSON returns the document including any defaulted url and id.
func (r *Remote) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.raw)
}
