// Package views holds the state and actions of each client screen, independent of how it is drawn.
//
// Every view fetches its own data through a [services.Backend] and reads identity from a
// [session.Store]. Navigation between screens goes through a [Navigator], which carries an
// optional [models.Video] as navigation state for the detail screen.
//
// Actions that the user must acknowledge return an [*Alert]. Other failures are logged and
// reflected in the view's state (an error string, an empty list) so the screen stays usable.
//
// The bubbletea screens in internal/ui render these views; CLI commands call the same actions.
package views
