package response

import "mealremind/internal/core/domain/sound"

type Sound struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	URL             string  `json:"url"`
	DurationSeconds float64 `json:"duration_seconds"`
}

func (s *Sound) FromDomainType(ds sound.Sound) {
	s.ID = ds.ID
	s.Name = ds.Name
	s.URL = ds.URL
	s.DurationSeconds = ds.PlayDuration().Seconds()
}

type SoundStatus struct {
	IsPlaying        bool `json:"is_playing"`
	RemainingSeconds int  `json:"remaining_seconds"`
}

func (s *SoundStatus) FromDomainType(ds sound.Status) {
	s.IsPlaying = ds.IsPlaying
	s.RemainingSeconds = ds.RemainingSeconds
}
