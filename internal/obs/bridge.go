package obs

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mkosler/linkcast/internal/link"
)

// SceneName is the scene that owns every source this tool manages.
const SceneName = "VDO Assets"

const (
	browserKind = "browser_source"
	textKind    = "text_gdi_plus"
)

// Bridge mirrors a set of named links into the broadcast tool: one
// browser source showing the link and one text source showing the
// display label per entry, all inside SceneName.
type Bridge struct {
	client *Client
}

func NewBridge(client *Client) *Bridge {
	return &Bridge{client: client}
}

// Sync ensures the scene and all sources exist and match the given
// links. Entry order drives the p0/p1/... source numbering: the
// director entry comes first, then players in roster order. The first
// failed call aborts the sequence; earlier changes stay applied.
func (b *Bridge) Sync(links []link.NamedLink) error {
	if err := b.ensureScene(SceneName); err != nil {
		return err
	}
	inScene, err := b.sceneItems(SceneName)
	if err != nil {
		return err
	}
	for i, l := range links {
		browser := fmt.Sprintf("p%dvdosolo", i)
		label := fmt.Sprintf("p%dname", i)
		log.Info().Str("module", "obs").Str("entry", l.Name).Str("source", browser).Msg("syncing sources")

		if err := b.syncBrowserSource(browser, l.URL, inScene); err != nil {
			return err
		}
		if err := b.syncTextSource(label, l.Label, inScene); err != nil {
			return err
		}
	}
	log.Info().Str("module", "obs").Int("entries", len(links)).Msg("sources synced")
	return nil
}

func (b *Bridge) ensureScene(name string) error {
	var out struct {
		Scenes []struct {
			SceneName string `json:"sceneName"`
		} `json:"scenes"`
	}
	if err := b.client.Call("GetSceneList", nil, &out); err != nil {
		return err
	}
	for _, s := range out.Scenes {
		if s.SceneName == name {
			return nil
		}
	}
	log.Info().Str("module", "obs").Str("scene", name).Msg("creating scene")
	return b.client.Call("CreateScene", map[string]any{"sceneName": name}, nil)
}

// sceneItems returns the set of source names currently placed in the
// scene, fetched once per Sync.
func (b *Bridge) sceneItems(scene string) (map[string]bool, error) {
	var out struct {
		SceneItems []struct {
			SourceName string `json:"sourceName"`
		} `json:"sceneItems"`
	}
	if err := b.client.Call("GetSceneItemList", map[string]any{"sceneName": scene}, &out); err != nil {
		return nil, err
	}
	items := make(map[string]bool, len(out.SceneItems))
	for _, item := range out.SceneItems {
		items[item.SourceName] = true
	}
	return items, nil
}

// syncBrowserSource updates the source when it already exists and
// creates it inside the scene otherwise. GetInputSettings doubles as
// the existence probe.
func (b *Bridge) syncBrowserSource(name, url string, inScene map[string]bool) error {
	settings := map[string]any{
		"url":           url,
		"width":         1920,
		"height":        1080,
		"reroute_audio": true,
	}
	return b.syncInput(name, browserKind, settings, inScene)
}

func (b *Bridge) syncTextSource(name, text string, inScene map[string]bool) error {
	settings := map[string]any{
		"text": text,
		"font": map[string]any{
			"face":  "Arial",
			"size":  32,
			"style": "Regular",
		},
		"color":         uint32(0xFFFFFFFF),
		"outline":       true,
		"outline_color": uint32(0xFF000000),
		"outline_size":  2,
	}
	return b.syncInput(name, textKind, settings, inScene)
}

// syncInput updates an existing input or creates it in the scene. An
// input can exist globally yet sit outside the scene, so the update
// path also restores scene membership when it is missing.
func (b *Bridge) syncInput(name, kind string, settings map[string]any, inScene map[string]bool) error {
	probe := map[string]any{"inputName": name}
	if err := b.client.Call("GetInputSettings", probe, nil); err == nil {
		if err := b.client.Call("SetInputSettings", map[string]any{
			"inputName":     name,
			"inputSettings": settings,
		}, nil); err != nil {
			return err
		}
		if inScene[name] {
			return nil
		}
		log.Info().Str("module", "obs").Str("source", name).Msg("adding existing source to scene")
		if err := b.client.Call("CreateSceneItem", map[string]any{
			"sceneName":        SceneName,
			"sourceName":       name,
			"sceneItemEnabled": true,
		}, nil); err != nil {
			return err
		}
		inScene[name] = true
		return nil
	}
	if err := b.client.Call("CreateInput", map[string]any{
		"sceneName":        SceneName,
		"inputName":        name,
		"inputKind":        kind,
		"inputSettings":    settings,
		"sceneItemEnabled": true,
	}, nil); err != nil {
		return err
	}
	inScene[name] = true
	return nil
}
