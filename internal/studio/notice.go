package studio

import (
	"errors"
	"fmt"

	"github.com/dmorgan81/zimage/internal/image"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is the message shown to the user after a submission.
type Notice struct {
	Level   Level
	Message string
}

func SuccessNotice() Notice {
	return Notice{Level: LevelSuccess, Message: "Generation complete!"}
}

// NoticeFor describes a Submit error for display. The credential is never part of it.
func NoticeFor(err error) Notice {
	var (
		remote *image.RemoteError
		netErr *image.NetworkError
	)
	switch {
	case errors.Is(err, ErrMissingCredential):
		return Notice{Level: LevelWarning, Message: "Configure your API key in the sidebar first"}
	case errors.Is(err, ErrEmptyPrompt):
		return Notice{Level: LevelWarning, Message: "Enter a prompt"}
	case errors.Is(err, ErrBusy):
		return Notice{Level: LevelWarning, Message: "A generation is already in progress"}
	case errors.As(err, &remote):
		return Notice{Level: LevelError, Message: fmt.Sprintf("Error %d: %s", remote.StatusCode, remote.Body)}
	case errors.Is(err, image.ErrMalformedResponse):
		return Notice{Level: LevelError, Message: "API returned success but no image data"}
	case errors.As(err, &netErr):
		if netErr.Timeout() {
			return Notice{Level: LevelError, Message: "Connection error: request timed out: " + netErr.Error()}
		}
		return Notice{Level: LevelError, Message: "Connection error: " + netErr.Error()}
	default:
		return Notice{Level: LevelError, Message: "Unexpected error: " + err.Error()}
	}
}
