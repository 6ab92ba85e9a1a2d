package views

import (
	"github.com/desertthunder/vtx/internal/services"
	tu "github.com/desertthunder/vtx/internal/testing"
)

var (
	signedIn = tu.SignedIn
	video    = tu.NewVideo
)

func statusErr(code int) error {
	return &services.StatusError{StatusCode: code}
}
