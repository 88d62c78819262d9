package routes

import (
	"fmt"
	"strings"

	xb "github.com/cordialsys/xcmbridge"
	"github.com/cordialsys/xcmbridge/client/errors"
	"github.com/tidwall/btree"
	"gopkg.in/yaml.v3"
)

// RouteConfig is the persisted form of a route from a known source chain:
//
//	{ to, token, xcm: { fee: { token, amount }, weightLimit } }
type RouteConfig struct {
	To    xb.ChainID `yaml:"to" json:"to"`
	Token string     `yaml:"token" json:"token"`
	Xcm   XcmConfig  `yaml:"xcm" json:"xcm"`
}

type XcmConfig struct {
	Fee         xb.RelayFee    `yaml:"fee" json:"fee"`
	WeightLimit xb.WeightLimit `yaml:"weightLimit" json:"weightLimit"`
}

var _ yaml.Unmarshaler = &XcmConfig{}

// UnmarshalYAML also accepts "weightlimit", as viper lowercases the keys of config files.
func (c *XcmConfig) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Fee         xb.RelayFee     `yaml:"fee"`
		WeightLimit *xb.WeightLimit `yaml:"weightLimit"`
		Lowercase   *xb.WeightLimit `yaml:"weightlimit"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	c.Fee = raw.Fee
	switch {
	case raw.WeightLimit != nil:
		c.WeightLimit = *raw.WeightLimit
	case raw.Lowercase != nil:
		c.WeightLimit = *raw.Lowercase
	default:
		c.WeightLimit = xb.Unlimited()
	}
	return nil
}

type key struct {
	to    xb.ChainID
	token string
}

func newKey(to xb.ChainID, token string) key {
	return key{to: to.Normalize(), token: strings.ToUpper(token)}
}

func less(a, b key) bool {
	if a.to != b.to {
		return a.to < b.to
	}
	return a.token < b.token
}

// Registry is the immutable route table of one source chain.
type Registry struct {
	from    xb.ChainID
	entries *btree.BTreeG[entry]
}

type entry struct {
	key   key
	route xb.RouteEntry
}

// New builds a registry. A (destination, token) pair listed twice is an error.
func New(from xb.ChainID, configs []RouteConfig) (*Registry, error) {
	registry := &Registry{
		from: from,
		entries: btree.NewBTreeG(func(a, b entry) bool {
			return less(a.key, b.key)
		}),
	}
	for _, cfg := range configs {
		if cfg.To == "" || cfg.Token == "" {
			return nil, fmt.Errorf("route from %s requires both a destination and a token", from)
		}
		if cfg.Xcm.Fee.Token == "" {
			return nil, fmt.Errorf("route %s->%s %s is missing its fee token", from, cfg.To, cfg.Token)
		}
		k := newKey(cfg.To, cfg.Token)
		if _, ok := registry.entries.Get(entry{key: k}); ok {
			return nil, errors.DuplicateRoutef("route %s->%s %s is defined more than once", from, cfg.To, cfg.Token)
		}
		registry.entries.Set(entry{
			key: k,
			route: xb.RouteEntry{
				From:        from,
				To:          cfg.To,
				Token:       cfg.Token,
				Fee:         cfg.Xcm.Fee,
				WeightLimit: cfg.Xcm.WeightLimit,
			},
		})
	}
	return registry, nil
}

func (r *Registry) From() xb.ChainID {
	return r.from
}

func (r *Registry) Lookup(to xb.ChainID, token string) (xb.RouteEntry, error) {
	found, ok := r.entries.Get(entry{key: newKey(to, token)})
	if !ok {
		return xb.RouteEntry{}, errors.RouteNotFoundf("no route from %s to %s for %s", r.from, to, token)
	}
	return found.route, nil
}

func (r *Registry) Len() int {
	return r.entries.Len()
}

// Routes lists every entry ordered by destination then token.
func (r *Registry) Routes() []xb.RouteEntry {
	routes := make([]xb.RouteEntry, 0, r.entries.Len())
	r.entries.Scan(func(item entry) bool {
		routes = append(routes, item.route)
		return true
	})
	return routes
}

// Destinations lists the distinct destinations reachable with token, in order.
func (r *Registry) Destinations(token string) []xb.ChainID {
	var destinations []xb.ChainID
	r.entries.Scan(func(item entry) bool {
		if strings.EqualFold(item.route.Token, token) {
			destinations = append(destinations, item.route.To)
		}
		return true
	})
	return destinations
}
