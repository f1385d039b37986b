// client.go wraps gompd for live fetches: dialing the daemon, listing
// songs and reading the tag types it reports.

package mpdproto

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fhs/gompd/v2/mpd"
	"github.com/jpl-au/mpdtags/internal/config"
	"github.com/jpl-au/mpdtags/internal/song"
	"github.com/jpl-au/mpdtags/internal/tagtype"
)

// Dial connects to the daemon at addr. Addresses starting with "/" are
// unix sockets. A non-empty password is sent on connect.
func Dial(ctx context.Context, addr, password string) (*mpd.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	network := "tcp"
	if strings.HasPrefix(addr, "/") {
		network = "unix"
	}
	var (
		c   *mpd.Client
		err error
	)
	if password != "" {
		c, err = mpd.DialAuthenticated(network, addr, password)
	} else {
		c, err = mpd.Dial(network, addr)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to mpd at %s: %w", addr, err)
	}
	return c, nil
}

// Fetch lists every song below uri ("" for the whole library).
//
// gompd returns each entry as a map, so a tag repeated within one song
// arrives with only one of its values.
func Fetch(ctx context.Context, c *mpd.Client, uri string, opts Options) ([]*song.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := c.ListAllInfo(uri)
	if err != nil {
		return nil, fmt.Errorf("listallinfo %q: %w", uri, err)
	}
	out := make([]*song.Song, 0, len(entries))
	for _, a := range entries {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if s := FromAttrs(a, opts); s != nil {
			out = append(out, s)
		}
	}
	return out, nil
}

// FromAttrs builds a song from one gompd entry. It returns nil for
// entries without a "file" key, such as directories.
func FromAttrs(a mpd.Attrs, opts Options) *song.Song {
	uri, ok := a["file"]
	if !ok {
		return nil
	}
	s := song.New(uri)
	s.SetMaxValues(opts.MaxValues)

	// Map order is random; sort so Time is always seen before duration.
	keys := make([]string, 0, len(a))
	for k := range a {
		if k != "file" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	log := opts.logger()
	hasTime := false
	if v, ok := a["Time"]; ok {
		hasTime = apply(s, "Time", v, false, log)
	}
	for _, k := range keys {
		if k == "Time" {
			continue
		}
		hasTime = apply(s, k, a[k], hasTime, log)
	}
	return s
}

// TagTypes returns the tag categories the daemon has enabled. Names the
// daemon reports that are unknown here are skipped.
func TagTypes(c *mpd.Client) (tagtype.Set, error) {
	entries, err := c.Command("tagtypes").AttrsList("tagtype")
	if err != nil {
		return tagtype.Set{}, fmt.Errorf("tagtypes: %w", err)
	}
	cats := make([]tagtype.Category, 0, len(entries))
	for _, a := range entries {
		if cat := tagtype.Parse(a["tagtype"]); cat != tagtype.Unknown {
			cats = append(cats, cat)
		}
	}
	return tagtype.NewSet(cats...), nil
}

// DialConfig connects using addr when set, otherwise the address in cfg.
// The password always comes from cfg.
func DialConfig(ctx context.Context, cfg *config.Config, addr string) (*mpd.Client, error) {
	if addr == "" {
		addr = cfg.Addr()
	}
	return Dial(ctx, addr, cfg.MPD.Password)
}

// Allow connects to the daemon and returns the tag categories it reports,
// for use as a registry allow-list.
func Allow(ctx context.Context, cfg *config.Config, addr string) (tagtype.Set, error) {
	c, err := DialConfig(ctx, cfg, addr)
	if err != nil {
		return tagtype.Set{}, err
	}
	defer c.Close()
	return TagTypes(c)
}
