package recipe

import (
	"slices"
	"strconv"
	"strings"
)

// DefaultBaseURL is the site root relative image and link paths resolve against.
const DefaultBaseURL = "https://cookanythingkitchen.com/"

// PlaceholderLink stands in for recipes without a link.
const PlaceholderLink = "#"

// Recipe is a normalized directory entry. The JSON shape is also the cache
// slot's data format.
type Recipe struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Cuisine  string   `json:"cuisine"`
	Tags     []string `json:"tags"`
	Image    string   `json:"image"`
	Link     string   `json:"link"`
	Date     string   `json:"date"`
}

// Raw is a loosely typed record as delivered by the endpoint.
type Raw map[string]any

// Normalize maps a raw record onto a Recipe. Missing fields become empty
// values; it never fails.
func Normalize(raw Raw, base string) Recipe {
	base = BaseURL(base)

	image := raw.text("image url")
	if image == "" {
		image = raw.text("image")
	}
	link := raw.text("link")
	if link == "" {
		link = PlaceholderLink
	}

	return Recipe{
		Name:     strings.TrimSpace(raw.text("name")),
		Category: strings.ToLower(strings.TrimSpace(raw.text("category"))),
		Cuisine:  strings.ToLower(strings.TrimSpace(raw.text("cuisine"))),
		Tags:     raw.tags(),
		Image:    Absolutize(image, base),
		Link:     Absolutize(link, base),
		Date:     raw.text("date"),
	}
}

// NormalizeAll normalizes every record, preserving order.
func NormalizeAll(raws []Raw, base string) []Recipe {
	out := make([]Recipe, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(raw, base))
	}
	return out
}

// Absolutize resolves value against base unless it is empty or already
// starts with "http". Leading slashes are dropped before joining.
func Absolutize(value, base string) string {
	if value == "" || strings.HasPrefix(value, "http") {
		return value
	}
	return base + strings.TrimLeft(value, "/")
}

// BaseURL trims base and guarantees a trailing slash. Anything that is not
// an http(s) URL falls back to DefaultBaseURL.
func BaseURL(base string) string {
	base = strings.TrimSpace(base)
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}

// Raw converts r back into an endpoint-shaped record.
func (r Recipe) Raw() Raw {
	return Raw{
		"name":     r.Name,
		"category": r.Category,
		"cuisine":  r.Cuisine,
		"tags":     slices.Clone(r.Tags),
		"image":    r.Image,
		"link":     r.Link,
		"date":     r.Date,
	}
}

// Clone returns a deep copy of r.
func (r Recipe) Clone() Recipe {
	r.Tags = slices.Clone(r.Tags)
	if r.Tags == nil {
		r.Tags = []string{}
	}
	return r
}

// CloneAll deep-copies a list of recipes.
func CloneAll(list []Recipe) []Recipe {
	if list == nil {
		return nil
	}
	out := make([]Recipe, len(list))
	for i, r := range list {
		out[i] = r.Clone()
	}
	return out
}

func (raw Raw) text(key string) string {
	return scalarText(raw[key])
}

// tags accepts the endpoint's comma separated string as well as a list, which
// is what Recipe.Raw produces.
func (raw Raw) tags() []string {
	var tokens []string
	switch v := raw["tags"].(type) {
	case []string:
		tokens = v
	case []any:
		tokens = make([]string, 0, len(v))
		for _, item := range v {
			tokens = append(tokens, scalarText(item))
		}
	default:
		text := scalarText(v)
		if text == "" {
			return []string{}
		}
		tokens = strings.Split(text, ",")
	}

	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, strings.ToLower(strings.TrimSpace(tok)))
	}
	return out
}

func scalarText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
