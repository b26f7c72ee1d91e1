package ecs

// Drawer is implemented by systems that also draw onto a frontend target
// (an *ebiten.Image for the window, a tcell.Screen for the terminal).
type Drawer[S any] interface {
	Draw(w *World, screen S)
}

// Draw calls every system of the scheduler that can draw onto S, in order.
func Draw[S any](s *Scheduler, w *World, screen S) {
	if s == nil || w == nil {
		return
	}
	for _, system := range s.systems {
		d, ok := system.(Drawer[S])
		if !ok {
			continue
		}
		d.Draw(w, screen)
	}
}
