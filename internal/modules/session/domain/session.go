package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "niamverse/internal/platform/errors"
)

const (
	MinStars = 1
	MaxStars = 5
)

// Entry is the part of a game the open session needs.
type Entry struct {
	GameID int
	Name   string
	About  string
	Link   string
}

// Session is the per-run play state: Closed until Open, with an in-progress
// rating (0 = unset) and notes that reset every time an entry opens.
type Session struct {
	entry  *Entry
	rating int
	notes  string
}

func (s Session) IsOpen() bool { return s.entry != nil }

func (s Session) Current() (Entry, bool) {
	if s.entry == nil {
		return Entry{}, false
	}
	return *s.entry, true
}

func (s Session) Rating() int   { return s.rating }
func (s Session) Notes() string { return s.notes }

// Open replaces any current entry and clears the rating draft.
func (s *Session) Open(e Entry) {
	s.entry = &e
	s.rating = 0
	s.notes = ""
}

// Close reports the entry that was open, if any.
func (s *Session) Close() (Entry, bool) {
	prev, ok := s.Current()
	s.entry = nil
	s.rating = 0
	s.notes = ""
	return prev, ok
}

func (s *Session) SetRating(stars int) error {
	if s.entry == nil {
		return apperrors.ErrNoOpenEntry
	}
	if stars < MinStars || stars > MaxStars {
		return fmt.Errorf("%w: rating must be between %d and %d", apperrors.ErrInvalidInput, MinStars, MaxStars)
	}
	s.rating = stars
	return nil
}

func (s *Session) SetNotes(notes string) error {
	if s.entry == nil {
		return apperrors.ErrNoOpenEntry
	}
	s.notes = notes
	return nil
}

// Submit turns the draft (rating and notes) into a Rating and resets the draft,
// leaving the entry open. Without stars nothing changes and ErrRatingRequired
// is returned.
func (s *Session) Submit() (Rating, error) {
	if s.entry == nil {
		return Rating{}, apperrors.ErrNoOpenEntry
	}
	if s.rating == 0 {
		return Rating{}, apperrors.ErrRatingRequired
	}
	r := Rating{
		GameID:   s.entry.GameID,
		GameName: s.entry.Name,
		Stars:    s.rating,
		Notes:    s.notes,
	}
	s.rating = 0
	s.notes = ""
	return r, nil
}

type Rating struct {
	ID          string
	GameID      int
	GameName    string
	Stars       int
	Notes       string
	SubmittedAt time.Time
}

func (r Rating) ThankYou() string {
	return fmt.Sprintf("Thank you for rating %s!", r.GameName)
}

func ShareText(name string) string {
	return fmt.Sprintf("Check out %s on NiamVerse!", name)
}

const (
	DefaultCloakTitle = "NiamVerse"
	DefaultCloakIcon  = "logo.png"
)

// Cloak is the decorative window title and icon shown instead of the app's own.
type Cloak struct {
	Title string
	Icon  string
}

func NewCloak(title, icon string) Cloak {
	title = strings.TrimSpace(title)
	icon = strings.TrimSpace(icon)
	if title == "" {
		title = DefaultCloakTitle
	}
	if icon == "" {
		icon = DefaultCloakIcon
	}
	return Cloak{Title: title, Icon: icon}
}
