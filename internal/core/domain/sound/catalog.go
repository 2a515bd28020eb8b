package sound

import (
	"errors"
	e "mealremind/internal/core/domain/errors"
	"net/url"
	"sync"
)

var (
	ErrSoundDoesNotExist = errors.New("sound does not exist")
	ErrInvalidSoundURL   = errors.New("sound URL must be an absolute http(s) URL")
	ErrInvalidSoundName  = errors.New("sound name must not be empty")
)

const DEFAULT_SOUND_ID = "default"

var builtIn = []Sound{
	{ID: "default", Name: "Default Bell", URL: "https://assets.mixkit.co/active_storage/sfx/212/212-preview.mp3"},
	{ID: "gentle", Name: "Gentle Chime", URL: "https://assets.mixkit.co/active_storage/sfx/1531/1531-preview.mp3"},
	{ID: "buzzer", Name: "Buzzer Alert", URL: "https://assets.mixkit.co/active_storage/sfx/209/209-preview.mp3"},
	{ID: "kitchen", Name: "Kitchen Timer", URL: "https://assets.mixkit.co/active_storage/sfx/2869/2869-preview.mp3"},
	{ID: "alarm", Name: "Loud Alarm", URL: "https://assets.mixkit.co/active_storage/sfx/2869/2869-preview.mp3"},
	{ID: "siren", Name: "Warning Siren", URL: "https://assets.mixkit.co/active_storage/sfx/1815/1815-preview.mp3"},
	{ID: "bell", Name: "School Bell", URL: "https://assets.mixkit.co/active_storage/sfx/2872/2872-preview.mp3"},
	{ID: "emergency", Name: "Emergency Alert", URL: "https://assets.mixkit.co/active_storage/sfx/951/951-preview.mp3"},
	{ID: "digital", Name: "Digital Alarm", URL: "https://assets.mixkit.co/active_storage/sfx/2870/2870-preview.mp3"},
	{ID: "ring", Name: "Phone Ring", URL: "https://assets.mixkit.co/active_storage/sfx/2907/2907-preview.mp3"},
	{ID: "industrial", Name: "Industrial Alarm", URL: "https://assets.mixkit.co/active_storage/sfx/2865/2865-preview.mp3"},
	{ID: "hospital", Name: "Hospital Alert", URL: "https://assets.mixkit.co/active_storage/sfx/2908/2908-preview.mp3"},
	{ID: "doorbell", Name: "Doorbell", URL: "https://assets.mixkit.co/active_storage/sfx/1/1-preview.mp3"},
	{ID: "clockalarm", Name: "Alarm Clock", URL: "https://assets.mixkit.co/active_storage/sfx/214/214-preview.mp3"},
}

// Catalog holds the built-in sounds and a bounded, keyed collection of custom ones.
// When the custom collection is full the oldest custom sound is evicted.
type Catalog struct {
	builtIn     []Sound
	custom      []Sound
	maxCustom   int
	idGenerator IDGenerator
	lock        sync.RWMutex
}

func NewCatalog(maxCustom int, idGenerator IDGenerator) *Catalog {
	if idGenerator == nil {
		panic(e.NewNilArgumentError("idGenerator"))
	}
	if maxCustom < 1 {
		panic(e.NewInvalidArgumentError("maxCustom", "must be at least 1"))
	}
	sounds := make([]Sound, len(builtIn))
	copy(sounds, builtIn)
	for ix := range sounds {
		sounds[ix].Duration = DEFAULT_DURATION
	}
	return &Catalog{builtIn: sounds, maxCustom: maxCustom, idGenerator: idGenerator}
}

func (c *Catalog) List() []Sound {
	c.lock.RLock()
	defer c.lock.RUnlock()
	result := make([]Sound, 0, len(c.builtIn)+len(c.custom))
	result = append(result, c.builtIn...)
	result = append(result, c.custom...)
	return result
}

func (c *Catalog) Get(id string) (Sound, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	for _, s := range c.builtIn {
		if s.ID == id {
			return s, true
		}
	}
	for _, s := range c.custom {
		if s.ID == id {
			return s, true
		}
	}
	return Sound{}, false
}

// Resolve returns the sound with the given ID, or the default sound when it is unknown.
func (c *Catalog) Resolve(id string) Sound {
	if s, ok := c.Get(id); ok {
		return s
	}
	s, _ := c.Get(DEFAULT_SOUND_ID)
	return s
}

func (c *Catalog) AddCustom(name string, rawURL string) (Sound, error) {
	if name == "" {
		return Sound{}, ErrInvalidSoundName
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return Sound{}, ErrInvalidSoundURL
	}

	s := Sound{
		ID:       "custom-" + c.idGenerator.GenerateCustomSoundID(),
		Name:     name,
		URL:      rawURL,
		Duration: DEFAULT_DURATION,
	}

	c.lock.Lock()
	defer c.lock.Unlock()
	c.custom = append(c.custom, s)
	if len(c.custom) > c.maxCustom {
		c.custom = c.custom[len(c.custom)-c.maxCustom:]
	}
	return s, nil
}
