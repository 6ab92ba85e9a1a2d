package views

import (
	"testing"
	"time"
)

func TestNavigator(t *testing.T) {
	t.Run("Starts Home", func(t *testing.T) {
		if got := NewNavigator().Current().Route; got != RouteHome {
			t.Errorf("expected home, got %s", got)
		}
	})

	t.Run("Navigate And Back", func(t *testing.T) {
		nav := NewNavigator()
		var seen []Route
		nav.Subscribe(func(l Location) { seen = append(seen, l.Route) })

		nav.Go(RouteUsers)
		nav.Navigate(VideoLocation(video("v1", time.Now())))

		cur := nav.Current()
		if cur.Route != RouteVideo || cur.Path != "/video/v1" || cur.Video == nil || cur.Video.ID != "v1" {
			t.Errorf("unexpected location %+v", cur)
		}

		if !nav.Back() || nav.Current().Route != RouteUsers {
			t.Errorf("expected back to users, got %s", nav.Current().Route)
		}
		if !nav.Back() || nav.Current().Route != RouteHome {
			t.Errorf("expected back to home, got %s", nav.Current().Route)
		}
		if nav.Back() {
			t.Error("expected no further history")
		}

		want := []Route{RouteUsers, RouteVideo, RouteUsers, RouteHome}
		if len(seen) != len(want) {
			t.Fatalf("expected %d notifications, got %d", len(want), len(seen))
		}
		for i := range want {
			if seen[i] != want[i] {
				t.Errorf("notification %d: expected %s, got %s", i, want[i], seen[i])
			}
		}
	})

	t.Run("Replace Skips History", func(t *testing.T) {
		nav := NewNavigator()
		nav.Go(RouteLogin)
		nav.Replace(Location{Route: RouteHome})

		if nav.Current().Path != "/" {
			t.Errorf("expected path to default to route, got %q", nav.Current().Path)
		}
		if !nav.Back() || nav.Current().Route != RouteHome {
			t.Error("expected the replaced entry to be skipped")
		}
	})

	t.Run("VideoLocation Copies State", func(t *testing.T) {
		v := video("v1", time.Now())
		loc := VideoLocation(v)
		v.Title = "changed"
		if loc.Video.Title == "changed" {
			t.Error("navigation state should not alias the caller's video")
		}
	})
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		path string
		want Route
	}{
		{"", RouteHome},
		{"/", RouteHome},
		{"/home", RouteHome},
		{"/login", RouteLogin},
		{"/register", RouteRegister},
		{"/userspage", RouteUsers},
		{"/video/abc", RouteVideo},
		{"/nowhere", RouteHome},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			loc := ParseLocation(tt.path)
			if loc.Route != tt.want {
				t.Errorf("expected %s, got %s", tt.want, loc.Route)
			}
			if loc.Video != nil {
				t.Error("parsed locations never carry a video")
			}
		})
	}
}
