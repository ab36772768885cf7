package embedder

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"

	"github.com/google/go-querystring/query"
)

// PlayerParams are the YouTube iframe player parameters understood when
// params is given as an object instead of a raw query string.
type PlayerParams struct {
	Start          int    `json:"start" url:"start,omitempty"`
	End            int    `json:"end" url:"end,omitempty"`
	Controls       *int   `json:"controls" url:"controls,omitempty"`
	Loop           int    `json:"loop" url:"loop,omitempty"`
	ModestBranding int    `json:"modestbranding" url:"modestbranding,omitempty"`
	Rel            *int   `json:"rel" url:"rel,omitempty"`
	CCLoadPolicy   int    `json:"cc_load_policy" url:"cc_load_policy,omitempty"`
	IVLoadPolicy   int    `json:"iv_load_policy" url:"iv_load_policy,omitempty"`
	FS             *int   `json:"fs" url:"fs,omitempty"`
	PlaysInline    int    `json:"playsinline" url:"playsinline,omitempty"`
	EnableJSAPI    int    `json:"enablejsapi" url:"enablejsapi,omitempty"`
	HL             string `json:"hl" url:"hl,omitempty"`
	CCLangPref     string `json:"cc_lang_pref" url:"cc_lang_pref,omitempty"`
	Origin         string `json:"origin" url:"origin,omitempty"`
	Playlist       string `json:"playlist" url:"playlist,omitempty"`
	Color          string `json:"color" url:"color,omitempty"`
}

var playerParamKeys = map[string]struct{}{
	"start": {}, "end": {}, "controls": {}, "loop": {}, "modestbranding": {},
	"rel": {}, "cc_load_policy": {}, "iv_load_policy": {}, "fs": {},
	"playsinline": {}, "enablejsapi": {}, "hl": {}, "cc_lang_pref": {},
	"origin": {}, "playlist": {}, "color": {},
}

// EncodeParams returns the query string appended to the iframe URL. A string
// is used verbatim; a map is encoded through PlayerParams, with unknown keys
// appended in key order.
func EncodeParams(raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case map[string]any:
		return encodeParamMap(v)
	}
	return "", fmt.Errorf("unsupported params type %T", raw)
}

func encodeParamMap(m map[string]any) (string, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	var p PlayerParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return "", fmt.Errorf("decode player params: %w", err)
	}
	values, err := query.Values(p)
	if err != nil {
		return "", err
	}

	extra := make([]string, 0)
	for k := range m {
		if _, ok := playerParamKeys[k]; !ok {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	encoded := values.Encode()
	rest := url.Values{}
	for _, k := range extra {
		rest.Set(k, attrValue(m[k]))
	}
	if len(rest) == 0 {
		return encoded, nil
	}
	if encoded == "" {
		return rest.Encode(), nil
	}
	return encoded + "&" + rest.Encode(), nil
}
