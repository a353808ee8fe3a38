package game

import (
	"context"
	"time"

	"github.com/annel0/isotiles/internal/render"
)

// RunHeadless крутит кадры на surface с частотой MaxFPS.
// Останавливается по отмене ctx, после frames кадров (0 - без ограничения) или по RequestQuit.
func (s *Session) RunHeadless(ctx context.Context, surface render.Surface, frames int) error {
	ticker := time.NewTicker(time.Second / time.Duration(s.maxFPS))
	defer ticker.Stop()

	for n := 0; frames <= 0 || n < frames; n++ {
		if s.quit {
			return nil
		}
		if err := s.Frame(ctx, surface); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
