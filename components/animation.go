package components

import (
	"github.com/automoto/tilewalk/shared/sprite"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
)

type AnimationData struct {
	Animator     *sprite.Animator
	Sheet        sprite.Sheet
	Image        *ebiten.Image         // nil when the sheet could not be loaded
	CachedFrames map[int]*ebiten.Image // Sub-images keyed by sheet index
}

// SetAnimation plays name, leaving the current animation alone when name is
// unknown.
func (a *AnimationData) SetAnimation(name string) {
	if a.Animator == nil {
		return
	}
	a.Animator.Play(name)
}

// FrameImage returns the sub-image of the current frame.
func (a *AnimationData) FrameImage() *ebiten.Image {
	if a.Animator == nil || a.Image == nil {
		return nil
	}
	frame := a.Animator.Frame()
	if frame < 0 {
		return nil
	}
	if img, ok := a.CachedFrames[frame]; ok {
		return img
	}
	src := a.Sheet.Frame(frame)
	if src.Empty() {
		return nil
	}
	img := a.Image.SubImage(src).(*ebiten.Image)
	if a.CachedFrames == nil {
		a.CachedFrames = make(map[int]*ebiten.Image)
	}
	a.CachedFrames[frame] = img
	return img
}

var Animation = donburi.NewComponentType[AnimationData]()
