package artifacts

import (
	"fmt"
	"net/url"
	"strings"
)

// Locator points at a directory of compiled contract artifacts. The contracts
// themselves live in a separate repository, so the deployer only ever sees
// their build output. Only file: URLs are supported.
type Locator struct {
	URL *url.URL
}

func NewLocatorFromURL(in string) (*Locator, error) {
	u, err := url.Parse(in)
	if err != nil {
		return nil, fmt.Errorf("failed to parse artifacts URL: %w", err)
	}
	if u.Scheme != "file" {
		return nil, fmt.Errorf("unsupported artifacts URL scheme: %s", u.Scheme)
	}
	return &Locator{URL: u}, nil
}

func MustNewLocatorFromURL(in string) *Locator {
	loc, err := NewLocatorFromURL(in)
	if err != nil {
		panic(err)
	}
	return loc
}

func NewFileLocator(dir string) *Locator {
	return MustNewLocatorFromURL("file://" + dir)
}

func (a *Locator) Empty() bool {
	return a.URL == nil
}

func (a *Locator) Dir() string {
	return a.URL.Path
}

func (a *Locator) MarshalText() ([]byte, error) {
	if a.URL == nil {
		return nil, nil
	}
	return []byte(a.URL.String()), nil
}

func (a *Locator) UnmarshalText(text []byte) error {
	in := strings.TrimSpace(string(text))
	if in == "" {
		return nil
	}
	loc, err := NewLocatorFromURL(in)
	if err != nil {
		return err
	}
	*a = *loc
	return nil
}

func (a *Locator) String() string {
	if a.URL == nil {
		return ""
	}
	return a.URL.String()
}
