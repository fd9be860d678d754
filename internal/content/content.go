package content

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load returns the default content overlaid with the YAML file at path.
// A missing file yields the defaults. Lists present in the file replace the
// default lists instead of merging into them.
func Load(path string) (*Content, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("accessing content %s: %w", path, err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}

	err := k.UnmarshalWithConf("", c, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			ZeroFields:       true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("unmarshalling content %s: %w", path, err)
	}
	return c, nil
}

// Save writes the content as YAML, so editors can start from the defaults.
func (c *Content) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling content: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing content to %s: %w", path, err)
	}
	return nil
}

// Validate reports content the site cannot run without.
func (c *Content) Validate() error {
	if strings.TrimSpace(c.Company.Name) == "" {
		return fmt.Errorf("company.name is required")
	}
	if strings.TrimSpace(c.Contact.Recipient) == "" {
		return fmt.Errorf("contact.recipient is required")
	}
	if c.MarqueeRepeat < 0 {
		return fmt.Errorf("marquee_repeat must be non-negative")
	}
	return nil
}

// ServiceIDs returns the service identifiers in display order.
func (c *Content) ServiceIDs() []string {
	ids := make([]string, len(c.Services))
	for i, s := range c.Services {
		ids[i] = s.ID
	}
	return ids
}

// Resolve maps a navigation target to its href. Page paths pass through,
// known targets use their configured href and anything else goes home.
func (c *Content) Resolve(target string) string {
	target = strings.TrimSpace(target)
	if IsLocalPath(target) {
		return target
	}
	t := strings.ToLower(strings.TrimPrefix(target, "#"))
	for _, links := range [][]NavLink{c.Nav, c.Footer.Sitemap} {
		for _, l := range links {
			if strings.EqualFold(l.Target, t) {
				if l.Href != "" {
					return l.Href
				}
				return "/#" + t
			}
		}
	}
	return "/"
}

// IsLocalPath reports whether p is a path on this site. Browsers treat a
// backslash like a slash, so `/\host` is as external as "//host".
func IsLocalPath(p string) bool {
	if p == "" || p[0] != '/' {
		return false
	}
	if len(p) > 1 && (p[1] == '/' || p[1] == '\\') {
		return false
	}
	u, err := url.Parse(p)
	return err == nil && u.Scheme == "" && u.Host == ""
}

// MarqueeRows returns the marquee items repeated for a seamless loop.
func (c *Content) MarqueeRows() [][]string {
	rows := make([][]string, c.MarqueeRepeat)
	for i := range rows {
		rows[i] = c.Marquee
	}
	return rows
}
