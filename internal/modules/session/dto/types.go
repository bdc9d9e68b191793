package dto

import "time"

type OpenInput struct {
	GameID int
	Launch bool
}

type EntryOutput struct {
	Open   bool
	GameID int
	Name   string
	About  string
	Link   string
	Rating int
	Notes  string
}

type OpenOutput struct {
	Entry    EntryOutput
	Recorded bool
	Recents  []int
	Launched bool
}

type CloseOutput struct {
	Closed bool
	GameID int
	Name   string
}

type SubmitOutput struct {
	RatingID    string
	GameID      int
	GameName    string
	Stars       int
	Notes       string
	SubmittedAt time.Time
	Message     string
}

type CloakOutput struct {
	Title   string
	Icon    string
	Message string
}

type EmbedOutput struct {
	URL      string
	Launched bool
}

type ShareOutput struct {
	Text string
	Link string
}
