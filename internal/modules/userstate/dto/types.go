package dto

type StateOutput struct {
	Favorites []int
	Recents   []int
	Theme     string
}

type ToggleFavoriteOutput struct {
	GameID        int
	Favorite      bool
	FavoriteCount int
}

type RecordRecentOutput struct {
	GameID  int
	Added   bool
	Recents []int
}

type ThemeOutput struct {
	Name   string
	Active bool
}
