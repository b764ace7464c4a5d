package systems

import (
	"time"

	"github.com/automoto/tilewalk/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateAnimations picks the idle or walk animation for each actor's facing
// and advances it.
func UpdateAnimations(e *ecs.ECS) {
	dt := time.Duration(frameDelta() * float64(time.Second))
	components.Animation.Each(e.World, func(entry *donburi.Entry) {
		anim := components.Animation.Get(entry)
		if anim.Animator == nil {
			return
		}
		if entry.HasComponent(components.Actor) {
			actor := components.Actor.Get(entry)
			anim.SetAnimation(actor.Facing.Animation(actor.Moving()))
		}
		anim.Animator.Advance(dt)
	})
}
