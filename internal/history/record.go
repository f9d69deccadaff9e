package history

import (
	"bytes"
	"time"
)

// Record is one completed generation. It is immutable once appended to a Store.
type Record struct {
	ID        string
	Prompt    string
	Seed      int64
	CreatedAt time.Time
	Duration  time.Duration

	image []byte
}

// Image returns a copy of the generated image bytes.
func (r Record) Image() []byte {
	return bytes.Clone(r.image)
}

func (r Record) Size() int {
	return len(r.image)
}

// Filename is the name offered when the image is downloaded.
func (r Record) Filename() string {
	return "z-image-" + r.ID + ".png"
}

func (r Record) DurationSeconds() float64 {
	return r.Duration.Seconds()
}

// Time is the creation time formatted for display.
func (r Record) Time() string {
	return r.CreatedAt.Format("15:04:05")
}
