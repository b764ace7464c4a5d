package factory

import (
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/automoto/tilewalk/assets"
	"github.com/automoto/tilewalk/components"
	cfg "github.com/automoto/tilewalk/config"
	"github.com/automoto/tilewalk/shared/sprite"
)

// LoadCharacter resolves a sprite reference. A .yaml or .yml file is a full
// spec whose sheet path is relative to the spec; anything else is a sheet in
// the default four-direction layout.
func LoadCharacter(fsys fs.FS, name string) (sprite.Spec, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		spec, err := sprite.LoadSpec(fsys, name)
		if err != nil {
			return sprite.Spec{}, err
		}
		spec.Sheet = path.Join(path.Dir(name), spec.Sheet)
		return spec, nil
	}
	return sprite.CharacterSpec(name,
		cfg.Sprite.FrameWidth, cfg.Sprite.FrameHeight,
		time.Duration(cfg.Sprite.FrameMS)*time.Millisecond,
	), nil
}

// newAnimation builds the animation state for spec. The returned data is
// usable even on error: it simply draws nothing.
func newAnimation(images *assets.ImageCache, spec sprite.Spec) (components.AnimationData, error) {
	anims, err := spec.Animations()
	if err != nil {
		return components.AnimationData{}, err
	}
	data := components.AnimationData{
		Animator: sprite.NewAnimator(anims),
		Sheet:    spec.SheetGrid(),
	}
	img, err := images.Load(spec.Sheet)
	if err != nil {
		return data, err
	}
	data.Image = img
	return data, nil
}
