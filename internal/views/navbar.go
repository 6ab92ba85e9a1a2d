package views

import (
	"github.com/desertthunder/vtx/internal/session"
)

// NavAction is a navigation bar entry.
type NavAction int

const (
	NavHome NavAction = iota
	NavCreators
	NavAddPost
	NavLogin
	NavRegister
	NavLogout
)

func (a NavAction) String() string {
	switch a {
	case NavHome:
		return "Home"
	case NavCreators:
		return "Creators"
	case NavAddPost:
		return "AddPost"
	case NavLogin:
		return "Login"
	case NavRegister:
		return "Register"
	case NavLogout:
		return "Logout"
	default:
		return ""
	}
}

// Navbar lists the entries available for the current session and carries them out.
type Navbar struct {
	session *session.Store
	nav     *Navigator
	upload  *UploadFlow
}

// NewNavbar creates the navigation bar. upload receives the AddPost action.
func NewNavbar(store *session.Store, nav *Navigator, upload *UploadFlow) *Navbar {
	return &Navbar{session: store, nav: nav, upload: upload}
}

// Items returns the entries in display order. Login and Register show only when signed out; Logout only when signed in.
func (n *Navbar) Items() []NavAction {
	items := []NavAction{NavHome, NavCreators, NavAddPost}
	if n.session.IsAuthenticated() {
		return append(items, NavLogout)
	}
	return append(items, NavLogin, NavRegister)
}

// Activate performs action.
func (n *Navbar) Activate(action NavAction) {
	switch action {
	case NavHome:
		n.nav.Go(RouteHome)
	case NavCreators:
		n.nav.Go(RouteUsers)
	case NavAddPost:
		if n.upload != nil {
			n.upload.Open()
		}
	case NavLogin:
		n.nav.Go(RouteLogin)
	case NavRegister:
		n.nav.Go(RouteRegister)
	case NavLogout:
		n.session.Logout()
		n.nav.Go(RouteLogin)
	}
}
